package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/replyforge/replyforge/internal/model"
)

// PaymentRepo implements PaymentRepository using PostgreSQL.
type PaymentRepo struct{ db *DB }

// NewPaymentRepo constructs a payment repository.
func NewPaymentRepo(db *DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Create inserts a payment record.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	const q = `
INSERT INTO payments (id, user_id, provider_intent_id, amount, currency, status)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Pool.Exec(ctx, q, p.ID, p.UserID, p.ProviderIntentID, p.Amount, p.Currency, p.Status)
	return err
}

// ListByUser returns payment records for a user, newest first.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Payment, error) {
	const q = `
SELECT id, user_id, provider_intent_id, amount, currency, status, created_at
FROM payments WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.ProviderIntentID, &p.Amount, &p.Currency, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
