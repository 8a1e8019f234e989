package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/replyforge/replyforge/internal/payments"
	"github.com/replyforge/replyforge/internal/repository"
)

// UpgradeService processes payment-processor status signals and flips
// account tiers.
type UpgradeService interface {
	// HandlePaymentStatus upgrades the account when the status matches the
	// upgrade trigger. Unknown accounts return errs.ErrNotFound; callers may
	// treat that as non-fatal.
	HandlePaymentStatus(ctx context.Context, email, status string) error
}

type UpgradeServiceImpl struct {
	users repository.UserRepository
	log   *zap.Logger
}

// NewUpgradeService constructs UpgradeService.
func NewUpgradeService(users repository.UserRepository, log *zap.Logger) *UpgradeServiceImpl {
	return &UpgradeServiceImpl{users: users, log: log}
}

// HandlePaymentStatus sets tier=premium when the processor reports
// requires_confirmation. Re-applying to an already-premium account is a
// no-op success.
//
// TODO: confirm with the payment-flow owner that the intermediate
// requires_confirmation status, not succeeded, is the intended upgrade
// trigger; see the WARN log below.
func (s *UpgradeServiceImpl) HandlePaymentStatus(ctx context.Context, email, status string) error {
	if status != payments.StatusRequiresConfirmation {
		return nil
	}
	s.log.Warn("upgrading tier on intermediate payment status",
		zap.String("status", status),
	)
	return s.users.SetPremium(ctx, email)
}
