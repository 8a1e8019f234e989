// Package service contains application services for authentication,
// reply generation, and tier upgrades.
package service

import (
	"context"
	"regexp"
	"unicode"

	"github.com/gofrs/uuid/v5"
	pkgcrypto "github.com/replyforge/replyforge/internal/crypto"
	"github.com/replyforge/replyforge/internal/errs"
	"github.com/replyforge/replyforge/internal/limiter"
	"github.com/replyforge/replyforge/internal/model"
	"github.com/replyforge/replyforge/internal/repository"
	"github.com/replyforge/replyforge/internal/token"
)

// AuthService defines registration and login operations.
type AuthService interface {
	// Register creates a new free-tier account with secure password hashing.
	Register(ctx context.Context, email, password, firstName, lastName string) (userID string, err error)
	// LoginWithIP applies rate-limiting and authenticates the user.
	LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens *token.Issuer
	lim    limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Issuer, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// minPasswordLen is the minimum accepted password length.
const minPasswordLen = 8

// validatePassword enforces the strength policy: minimum length plus at
// least one letter and one digit.
func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return errs.ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errs.ErrWeakPassword
	}
	return nil
}

// Register validates identity and password, hashes the password, and creates
// the account with tier=free and usage_count=0. A duplicate email surfaces
// as errs.ErrAlreadyExists from the storage unique key, which also settles
// concurrent registrations for the same email.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, firstName, lastName string) (string, error) {
	if !emailRe.MatchString(email) {
		return "", errs.ErrInvalidEmail
	}
	if err := validatePassword(password); err != nil {
		return "", err
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	pwdHash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return "", err
	}

	u := &model.User{
		ID:         uid,
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		PwdHash:    pwdHash,
		Tier:       model.TierFree,
		UsageCount: 0,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	return uid.String(), nil
}

// LoginWithIP authenticates with rate limiting by (email, ip). Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Tokens{}, err
	}
	if !allowed {
		return model.Tokens{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword(u.PwdHash, password) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Tokens{}, errs.ErrRateLimited
		}
		// lookup errors and wrong passwords are indistinguishable here
		return model.Tokens{}, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	access, exp, err := s.tokens.Issue(u.Email)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: access, ExpiresAt: exp}, nil
}
