package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/replyforge/replyforge/internal/model"
)

func TestPaymentRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPaymentRepo(db)
	ctx := context.Background()

	p := &model.Payment{
		ID:               uuid.Must(uuid.NewV4()),
		UserID:           uuid.Must(uuid.NewV4()),
		ProviderIntentID: "pi_123",
		Amount:           999,
		Currency:         "usd",
		Status:           "requires_confirmation",
	}

	mock.ExpectExec(`INSERT INTO payments \(id, user_id, provider_intent_id, amount, currency, status\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WithArgs(p.ID, p.UserID, p.ProviderIntentID, p.Amount, p.Currency, p.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, p))
}

func TestPaymentRepo_ListByUser(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPaymentRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	cols := []string{"id", "user_id", "provider_intent_id", "amount", "currency", "status", "created_at"}
	mock.ExpectQuery(`SELECT id, user_id, provider_intent_id, amount, currency, status, created_at FROM payments WHERE user_id=\$1 ORDER BY created_at DESC`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(uuid.Must(uuid.NewV4()), userID, "pi_2", int64(500), "usd", "succeeded", time.Now()).
			AddRow(uuid.Must(uuid.NewV4()), userID, "pi_1", int64(999), "usd", "requires_confirmation", time.Now().Add(-time.Hour)))

	got, err := r.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "pi_2", got[0].ProviderIntentID)
	require.Equal(t, int64(999), got[1].Amount)
}
