package registration

import (
	"time"
)

const StatusConfirmed = "confirmed"

// Registration is one attendee's ticket purchase, keyed by RegistrationID.
// Immutable after creation; there is no update route.
type Registration struct {
	RegistrationID string    `json:"registrationId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	TicketType     string    `json:"ticketType"`
	Quantity       int       `json:"quantity"`
	Newsletter     bool      `json:"newsletter"`
	TotalAmount    int       `json:"totalAmount"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateRegistrationRequest is the raw POST /register body. Quantity stays
// untyped until Validate coerces it: callers send numbers or numeric strings
// and both must be accepted.
type CreateRegistrationRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	TicketType string `json:"ticketType"`
	Quantity   any    `json:"quantity"`
	Newsletter bool   `json:"newsletter"`
}

// NewFromCreateRequest builds a Registration from a validated request.
// The id and totalAmount are always produced server-side; quantity is the
// coerced value returned by Validate, never the raw body field.
func NewFromCreateRequest(req CreateRegistrationRequest, quantity, totalAmount int) Registration {
	now := time.Now().UTC()

	return Registration{
		RegistrationID: NewID(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		TicketType:     req.TicketType,
		Quantity:       quantity,
		Newsletter:     req.Newsletter,
		TotalAmount:    totalAmount,
		Status:         StatusConfirmed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
