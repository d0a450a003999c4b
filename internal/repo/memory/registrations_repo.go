package memory

import (
	"context"
	"sync"

	"github.com/eventica/registration-api/internal/domain/registration"
)

// RegistrationsRepo is the in-memory store backend, used by tests and local
// development without external services.
type RegistrationsRepo struct {
	mu    sync.RWMutex
	items map[string]registration.Registration
}

func NewRegistrationsRepo() *RegistrationsRepo {
	return &RegistrationsRepo{
		items: make(map[string]registration.Registration),
	}
}

func (r *RegistrationsRepo) Put(ctx context.Context, rec registration.Registration) error {
	r.mu.Lock()
	r.items[rec.RegistrationID] = rec
	r.mu.Unlock()

	return nil
}

// ScanAll returns every stored record. Map iteration order applies: callers
// get no ordering guarantee, same as the real backends.
func (r *RegistrationsRepo) ScanAll(ctx context.Context) ([]registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registration.Registration, 0, len(r.items))

	for _, rec := range r.items {
		out = append(out, rec)
	}

	return out, nil
}

// DeleteByID is a keyed delete: removing an absent id succeeds.
func (r *RegistrationsRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()

	return nil
}
