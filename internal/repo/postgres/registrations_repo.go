package postgres

import (
	"context"

	"github.com/eventica/registration-api/internal/domain/registration"
	"github.com/eventica/registration-api/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegistrationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewRegistrationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *RegistrationsRepo {
	return &RegistrationsRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *RegistrationsRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveStore(op, fn)
	}

	return fn()
}

// EnsureSchema creates the registrations table if it does not exist yet.
// Flat key-value layout keyed by registration_id, no secondary indexes.
func (repo *RegistrationsRepo) EnsureSchema(ctx context.Context) error {
	return repo.observe("registrations.ensure_schema", func() error {
		_, err := repo.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS registrations (
			registration_id TEXT PRIMARY KEY,
			first_name      TEXT NOT NULL,
			last_name       TEXT NOT NULL,
			email           TEXT NOT NULL,
			phone           TEXT NOT NULL DEFAULT '',
			ticket_type     TEXT NOT NULL,
			quantity        INT NOT NULL,
			newsletter      BOOLEAN NOT NULL,
			total_amount    INT NOT NULL,
			status          TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL,
			updated_at      TIMESTAMPTZ NOT NULL
		)`)
		return err
	})
}

// Put upserts the full record in a single statement: all-or-nothing per
// record, a retried write with the same id simply overwrites.
func (repo *RegistrationsRepo) Put(ctx context.Context, rec registration.Registration) error {
	return repo.observe("registrations.put", func() error {
		_, err := repo.pool.Exec(ctx, `
		INSERT INTO registrations
			(registration_id, first_name, last_name, email, phone, ticket_type,
			 quantity, newsletter, total_amount, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (registration_id) DO UPDATE SET
			first_name   = EXCLUDED.first_name,
			last_name    = EXCLUDED.last_name,
			email        = EXCLUDED.email,
			phone        = EXCLUDED.phone,
			ticket_type  = EXCLUDED.ticket_type,
			quantity     = EXCLUDED.quantity,
			newsletter   = EXCLUDED.newsletter,
			total_amount = EXCLUDED.total_amount,
			status       = EXCLUDED.status,
			created_at   = EXCLUDED.created_at,
			updated_at   = EXCLUDED.updated_at
	`, rec.RegistrationID, rec.FirstName, rec.LastName, rec.Email, rec.Phone, rec.TicketType,
			rec.Quantity, rec.Newsletter, rec.TotalAmount, rec.Status, rec.CreatedAt, rec.UpdatedAt)
		return err
	})
}

func (repo *RegistrationsRepo) ScanAll(ctx context.Context) (regs []registration.Registration, err error) {
	var rows pgx.Rows

	err = repo.observe("registrations.scan_all", func() error {
		var e error
		rows, e = repo.pool.Query(ctx, `
		SELECT registration_id, first_name, last_name, email, phone, ticket_type,
		       quantity, newsletter, total_amount, status, created_at, updated_at
		FROM registrations
	`)
		return e
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	regs = make([]registration.Registration, 0)

	for rows.Next() {
		var r registration.Registration

		e := rows.Scan(&r.RegistrationID, &r.FirstName, &r.LastName, &r.Email, &r.Phone, &r.TicketType,
			&r.Quantity, &r.Newsletter, &r.TotalAmount, &r.Status, &r.CreatedAt, &r.UpdatedAt)

		if e != nil {
			return nil, e
		}

		regs = append(regs, r)
	}

	if e := rows.Err(); e != nil {
		return nil, e
	}

	return regs, nil
}

// DeleteByID is a keyed delete. Rows-affected is deliberately not checked:
// deleting an id that never existed is a success, not an error.
func (repo *RegistrationsRepo) DeleteByID(ctx context.Context, id string) error {
	return repo.observe("registrations.delete", func() error {
		_, err := repo.pool.Exec(ctx, `DELETE FROM registrations WHERE registration_id = $1`, id)
		return err
	})
}
