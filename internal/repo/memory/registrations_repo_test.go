package memory

import (
	"context"
	"testing"

	"github.com/eventica/registration-api/internal/domain/registration"
)

func TestPutScanDelete(t *testing.T) {
	repo := NewRegistrationsRepo()
	ctx := context.Background()

	regs, err := repo.ScanAll(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(regs) != 0 {
		t.Fatalf("expected empty store, got %d records", len(regs))
	}

	rec := registration.Registration{RegistrationID: "EVT-A-AAAAA", Email: "ann@example.com"}

	if err := repo.Put(ctx, rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	regs, err = repo.ScanAll(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(regs) != 1 || regs[0].RegistrationID != rec.RegistrationID {
		t.Fatalf("unexpected scan result: %+v", regs)
	}

	if err := repo.DeleteByID(ctx, rec.RegistrationID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	regs, _ = repo.ScanAll(ctx)
	if len(regs) != 0 {
		t.Fatalf("expected empty store after delete, got %d records", len(regs))
	}
}

func TestPutOverwritesSameID(t *testing.T) {
	repo := NewRegistrationsRepo()
	ctx := context.Background()

	_ = repo.Put(ctx, registration.Registration{RegistrationID: "EVT-A-AAAAA", Quantity: 1})
	_ = repo.Put(ctx, registration.Registration{RegistrationID: "EVT-A-AAAAA", Quantity: 2})

	regs, _ := repo.ScanAll(ctx)

	if len(regs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(regs))
	}

	if regs[0].Quantity != 2 {
		t.Fatalf("expected last write to win, got quantity %d", regs[0].Quantity)
	}
}

func TestDeleteAbsentIDSucceeds(t *testing.T) {
	repo := NewRegistrationsRepo()

	if err := repo.DeleteByID(context.Background(), "EVT-NEVER-EXIST"); err != nil {
		t.Fatalf("keyed delete of absent id must succeed, got %v", err)
	}
}
