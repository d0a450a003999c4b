package registration

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// deliberately loose: local@domain.tld, nothing more
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validTicketTypes = map[string]struct{}{
	"general": {},
	"vip":     {},
	"student": {},
}

type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks a create request and returns the coerced quantity.
//
// Check order is part of the contract: missing fields first (naming every
// absent field), then email, then quantity, then ticket type — and only the
// first failing check after missing-fields is reported. An empty string or
// zero counts as missing, not invalid.
func Validate(req CreateRegistrationRequest) (int, *ValidationError) {
	var missing []string

	if req.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if req.LastName == "" {
		missing = append(missing, "lastName")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.TicketType == "" {
		missing = append(missing, "ticketType")
	}
	if quantityAbsent(req.Quantity) {
		missing = append(missing, "quantity")
	}

	if len(missing) > 0 {
		return 0, &ValidationError{
			Code:    "missing_fields",
			Message: "Missing required fields: " + strings.Join(missing, ", "),
		}
	}

	if !emailPattern.MatchString(req.Email) {
		return 0, &ValidationError{
			Code:    "invalid_email",
			Message: "Invalid email format",
		}
	}

	quantity, ok := coerceQuantity(req.Quantity)
	if !ok || quantity < MinQuantity || quantity > MaxQuantity {
		return 0, &ValidationError{
			Code:    "invalid_quantity",
			Message: "Quantity must be a number between 1 and 10",
		}
	}

	if _, ok := validTicketTypes[req.TicketType]; !ok {
		return 0, &ValidationError{
			Code:    "invalid_ticket_type",
			Message: "Invalid ticket type",
		}
	}

	return quantity, nil
}

// quantityAbsent treats the JSON falsy values as missing: null/absent, empty
// string, zero, false.
func quantityAbsent(v any) bool {
	switch q := v.(type) {
	case nil:
		return true
	case string:
		return q == ""
	case float64:
		return q == 0
	case int:
		return q == 0
	case bool:
		return !q
	case json.Number:
		return q.String() == "" || q.String() == "0"
	default:
		return false
	}
}

// coerceQuantity turns the raw body value into an int. JSON numbers are
// truncated toward zero; numeric strings are parsed. Anything else is not a
// number.
func coerceQuantity(v any) (int, bool) {
	switch q := v.(type) {
	case float64:
		return int(q), true
	case int:
		return q, true
	case json.Number:
		n, err := strconv.Atoi(q.String())
		if err != nil {
			f, ferr := q.Float64()
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return n, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(q))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
