package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/eventica/registration-api/internal/config"
	"github.com/eventica/registration-api/internal/domain/pricing"
	"github.com/eventica/registration-api/internal/domain/registration"
	"github.com/gin-gonic/gin"
)

// RegistrationStore is the persistence capability set the handlers need.
// Put is all-or-nothing per record; ScanAll carries no ordering guarantee;
// DeleteByID succeeds even when the id does not exist.
type RegistrationStore interface {
	Put(ctx context.Context, rec registration.Registration) error
	ScanAll(ctx context.Context) ([]registration.Registration, error)
	DeleteByID(ctx context.Context, id string) error
}

type RegistrationsHandler struct {
	store RegistrationStore
	log   *slog.Logger
}

func NewRegistrationsHandler(store RegistrationStore, log *slog.Logger) *RegistrationsHandler {
	return &RegistrationsHandler{store: store, log: log}
}

// Register handles POST /register: parse -> validate -> price -> persist.
// totalAmount is always recomputed server-side, never trusted from the body.
func (h *RegistrationsHandler) Register(ctx *gin.Context) {
	start := time.Now()

	var req registration.CreateRegistrationRequest

	err := ctx.ShouldBindJSON(&req)

	if err != nil {
		h.log.WarnContext(ctx.Request.Context(), "invalid JSON in request body",
			"err", err, "request_id", requestIDFrom(ctx))
		RespondBadRequest(ctx, "Invalid JSON in request body")
		return
	}

	quantity, verr := registration.Validate(req)

	if verr != nil {
		h.log.WarnContext(ctx.Request.Context(), "registration validation failed",
			"code", verr.Code, "reason", verr.Message, "request_id", requestIDFrom(ctx))
		RespondBadRequest(ctx, verr.Message)
		return
	}

	quote := pricing.Calculate(req.TicketType, quantity)
	rec := registration.NewFromCreateRequest(req, quantity, quote.Total)

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	err = h.store.Put(cctx, rec)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "failed to save registration",
			"err", err, "registration_id", rec.RegistrationID, "request_id", requestIDFrom(ctx))
		RespondInternal(ctx)
		return
	}

	h.log.InfoContext(ctx.Request.Context(), "registration completed",
		"registration_id", rec.RegistrationID,
		"email", rec.Email,
		"ticket_type", rec.TicketType,
		"quantity", rec.Quantity,
		"total_amount", rec.TotalAmount,
		"processing_ms", time.Since(start).Milliseconds(),
		"request_id", requestIDFrom(ctx))

	ctx.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"message":        "Registration successful",
		"registrationId": rec.RegistrationID,
		"data":           rec,
	})
}

// List handles GET /registrations: every record, no pagination.
func (h *RegistrationsHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	regs, err := h.store.ScanAll(cctx)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "failed to list registrations",
			"err", err, "request_id", requestIDFrom(ctx))
		RespondInternal(ctx)
		return
	}

	if regs == nil {
		regs = make([]registration.Registration, 0)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    regs,
		"count":   len(regs),
	})
}

// Delete handles DELETE /registrations/:id. Idempotent: the store's keyed
// delete succeeds whether or not the id existed.
func (h *RegistrationsHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	err := h.store.DeleteByID(cctx, id)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "failed to delete registration",
			"err", err, "registration_id", id, "request_id", requestIDFrom(ctx))
		RespondInternal(ctx)
		return
	}

	h.log.InfoContext(ctx.Request.Context(), "registration deleted",
		"registration_id", id, "request_id", requestIDFrom(ctx))

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Registration deleted",
	})
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get("request_id")

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}
