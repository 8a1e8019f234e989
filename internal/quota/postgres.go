package quota

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/replyforge/replyforge/internal/errs"
)

// PG is a PostgreSQL-backed gate. The check-and-increment is a single
// conditional UPDATE, so concurrent requests for one account cannot
// over-admit past the ceiling or lose increments. Unrelated accounts touch
// different rows and are never serialized against each other.
type PG struct {
	pool    pgxExecer
	ceiling int
}

type pgxExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// NewPG constructs a PostgreSQL-backed gate with the free-tier ceiling.
func NewPG(pool *pgxpool.Pool, ceiling int) *PG {
	return &PG{pool: pool, ceiling: ceiling}
}

// NewPGWithExecer constructs a PostgreSQL-backed gate over a raw execer (tests).
func NewPGWithExecer(e pgxExecer, ceiling int) *PG {
	return &PG{pool: e, ceiling: ceiling}
}

// AdmitAndCharge performs the atomic conditional increment. Zero rows
// affected means the account exists but its free-tier ceiling is reached;
// callers resolve existence before charging.
func (g *PG) AdmitAndCharge(ctx context.Context, userID uuid.UUID) error {
	const q = `
UPDATE users
SET usage_count = usage_count + 1
WHERE id = $1 AND (tier = 'premium' OR usage_count < $2)`
	tag, err := g.pool.Exec(ctx, q, userID, g.ceiling)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrQuotaExceeded
	}
	return nil
}
