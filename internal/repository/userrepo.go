// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/replyforge/replyforge/internal/model"
)

// UserRepository provides account storage. Email uniqueness is enforced by
// the backend as a hard constraint, not by a pre-check.
type UserRepository interface {
	// Create inserts a new user; returns errs.ErrAlreadyExists on a duplicate email.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// SetPremium flips the account to the premium tier. Idempotent: applying
	// it to an already-premium account succeeds without effect.
	SetPremium(ctx context.Context, email string) error
}
