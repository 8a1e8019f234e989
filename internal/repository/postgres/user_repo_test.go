package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/replyforge/replyforge/internal/errs"
	"github.com/replyforge/replyforge/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func userColumns() []string {
	return []string{"id", "email", "first_name", "last_name", "pwd_hash", "tier", "usage_count", "created_at"}
}

func TestUserRepo_Create_OK_and_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := &model.User{
		ID:        uuid.Must(uuid.NewV4()),
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		PwdHash:   "digest",
		Tier:      model.TierFree,
	}

	// OK
	mock.ExpectExec(`INSERT INTO users \(id, email, first_name, last_name, pwd_hash, tier, usage_count\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)`).
		WithArgs(u.ID, u.Email, u.FirstName, u.LastName, u.PwdHash, u.Tier, u.UsageCount).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, u))

	// Unique violation: duplicate email becomes ErrAlreadyExists
	mock.ExpectExec(`INSERT INTO users \(id, email, first_name, last_name, pwd_hash, tier, usage_count\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)`).
		WithArgs(u.ID, u.Email, u.FirstName, u.LastName, u.PwdHash, u.Tier, u.UsageCount).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	err := r.Create(ctx, u)
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, email, first_name, last_name, pwd_hash, tier, usage_count, created_at FROM users WHERE email=\$1`).
		WithArgs("alice@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(id, "alice@example.com", "Alice", "Smith", "digest", model.TierFree, 3, time.Now()))
	u, err := r.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, model.TierFree, u.Tier)
	require.Equal(t, 3, u.UsageCount)

	mock.ExpectQuery(`SELECT id, email, first_name, last_name, pwd_hash, tier, usage_count, created_at FROM users WHERE email=\$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, email, first_name, last_name, pwd_hash, tier, usage_count, created_at FROM users WHERE id=\$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(id, "bob@example.com", "Bob", "Jones", "digest", model.TierPremium, 12, time.Now()))
	u, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", u.Email)
	require.Equal(t, model.TierPremium, u.Tier)

	mock.ExpectQuery(`SELECT id, email, first_name, last_name, pwd_hash, tier, usage_count, created_at FROM users WHERE id=\$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByID(ctx, id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_SetPremium(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE users SET tier=\$2 WHERE email=\$1`).
		WithArgs("alice@example.com", model.TierPremium).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.SetPremium(ctx, "alice@example.com"))

	// already premium: still matches the row, still a success
	mock.ExpectExec(`UPDATE users SET tier=\$2 WHERE email=\$1`).
		WithArgs("alice@example.com", model.TierPremium).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.SetPremium(ctx, "alice@example.com"))

	// unknown account
	mock.ExpectExec(`UPDATE users SET tier=\$2 WHERE email=\$1`).
		WithArgs("ghost@example.com", model.TierPremium).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	err := r.SetPremium(ctx, "ghost@example.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
