package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/replyforge/replyforge/internal/errs"
	"github.com/replyforge/replyforge/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row. The unique key on email turns concurrent
// duplicate registrations into errs.ErrAlreadyExists instead of a race.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, email, first_name, last_name, pwd_hash, tier, usage_count)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.Email, u.FirstName, u.LastName, u.PwdHash, u.Tier, u.UsageCount)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const q = `
SELECT id, email, first_name, last_name, pwd_hash, tier, usage_count, created_at
FROM users WHERE id=$1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByEmail selects a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, email, first_name, last_name, pwd_hash, tier, usage_count, created_at
FROM users WHERE email=$1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, email))
}

// SetPremium flips the tier to premium. The update matches the row whether or
// not it is already premium, so re-applying is a no-op success.
func (r *UserRepo) SetPremium(ctx context.Context, email string) error {
	const q = `UPDATE users SET tier=$2 WHERE email=$1`
	tag, err := r.db.Pool.Exec(ctx, q, email, model.TierPremium)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *UserRepo) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PwdHash, &u.Tier, &u.UsageCount, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
