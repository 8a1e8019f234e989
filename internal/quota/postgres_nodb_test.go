package quota

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/replyforge/replyforge/internal/errs"
)

type fakeExecer struct {
	rows    int64
	execErr error

	lastSQL  string
	lastArgs []any
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL = sql
	f.lastArgs = args
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	if f.rows > 0 {
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	return pgconn.NewCommandTag("UPDATE 0"), nil
}

func TestAdmitAndCharge_Admitted(t *testing.T) {
	fe := &fakeExecer{rows: 1}
	g := NewPGWithExecer(fe, 5)
	id := uuid.Must(uuid.NewV4())

	if err := g.AdmitAndCharge(context.Background(), id); err != nil {
		t.Fatalf("AdmitAndCharge: %v", err)
	}
	if !strings.Contains(fe.lastSQL, "usage_count = usage_count + 1") {
		t.Fatalf("unexpected SQL: %s", fe.lastSQL)
	}
	if len(fe.lastArgs) != 2 || fe.lastArgs[1] != 5 {
		t.Fatalf("ceiling not passed: %v", fe.lastArgs)
	}
}

func TestAdmitAndCharge_CeilingReached(t *testing.T) {
	fe := &fakeExecer{rows: 0}
	g := NewPGWithExecer(fe, 5)

	err := g.AdmitAndCharge(context.Background(), uuid.Must(uuid.NewV4()))
	if !errors.Is(err, errs.ErrQuotaExceeded) {
		t.Fatalf("want ErrQuotaExceeded, got %v", err)
	}
}

func TestAdmitAndCharge_DBError_Propagates(t *testing.T) {
	fe := &fakeExecer{execErr: errors.New("db boom")}
	g := NewPGWithExecer(fe, 5)

	err := g.AdmitAndCharge(context.Background(), uuid.Must(uuid.NewV4()))
	if err == nil || errors.Is(err, errs.ErrQuotaExceeded) {
		t.Fatalf("want raw db error, got %v", err)
	}
}
