// Package quota decides admit/deny for generation requests and charges usage.
package quota

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// Gate admits or denies a generation attempt for an account.
type Gate interface {
	// AdmitAndCharge checks the account's quota and increments its usage
	// counter as one atomic unit. Premium accounts are always admitted (the
	// increment is still recorded for analytics). Free accounts at the
	// ceiling get errs.ErrQuotaExceeded with no state change.
	AdmitAndCharge(ctx context.Context, userID uuid.UUID) error
}
