// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication; it deliberately covers
	// both unknown-account and wrong-password outcomes.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)

// Registration validation sentinels.
var (
	// ErrInvalidEmail indicates the email is not syntactically valid.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrWeakPassword indicates the password does not meet the strength policy.
	ErrWeakPassword = errors.New("weak password")
)

// Token verification sentinels. The HTTP boundary collapses all three into a
// uniform 401; logs keep the distinction.
var (
	// ErrTokenExpired indicates the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed indicates the token is structurally invalid.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenSignature indicates the token signature does not verify.
	ErrTokenSignature = errors.New("token signature invalid")
)

// Generation and payment sentinels.
var (
	// ErrQuotaExceeded indicates a free-tier account reached its generation ceiling.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrProviderFailure indicates the generation provider call failed
	// (network, timeout, non-2xx).
	ErrProviderFailure = errors.New("provider failure")

	// ErrBadProviderResponse indicates the provider answered without the
	// expected candidate/content/text shape.
	ErrBadProviderResponse = errors.New("unexpected provider response")

	// ErrInvalidPayment indicates an invalid amount or currency in a payment request.
	ErrInvalidPayment = errors.New("invalid payment parameters")

	// ErrPaymentFailure indicates the payment processor call failed.
	ErrPaymentFailure = errors.New("payment failure")
)
