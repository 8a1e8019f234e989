// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Tier classifies an account for quota purposes.
type Tier string

// Known tiers. Free is the initial tier; the premium transition is
// one-directional (no downgrade path).
const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// User represents an account. The password digest is never serialized or logged.
type User struct {
	ID         uuid.UUID // PK
	Email      string    // unique, natural key; immutable after creation
	FirstName  string
	LastName   string
	PwdHash    string // bcrypt digest of the password
	Tier       Tier
	UsageCount int // admitted generations within the current tier epoch; never decremented
	CreatedAt  time.Time
}

// Tokens collects an issued access token (refresh not in scope).
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// ReplyRequest is the ephemeral input of a generation request; never persisted.
type ReplyRequest struct {
	EmailContent string
	Tone         string // optional tone hint
}

// Payment records a created payment intent for audit purposes.
type Payment struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	ProviderIntentID string // processor-side intent ID
	Amount           int64  // minor currency units
	Currency         string
	Status           string // processor-reported status at creation time
	CreatedAt        time.Time
}
