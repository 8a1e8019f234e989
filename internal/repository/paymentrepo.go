package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/replyforge/replyforge/internal/model"
)

// PaymentRepository records created payment intents for audit.
type PaymentRepository interface {
	// Create inserts a payment record.
	Create(ctx context.Context, p *model.Payment) error
	// ListByUser returns payment records for a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Payment, error)
}
