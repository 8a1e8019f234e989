// Package token issues and verifies signed, time-bound identity assertions.
// Verification is pure: no store lookup, no revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/replyforge/replyforge/internal/errs"
)

// Issuer signs and verifies HS256 JWTs with a process-wide key loaded at
// startup. The key and TTL are immutable for the life of the process.
type Issuer struct {
	signKey []byte
	ttl     time.Duration
}

// NewIssuer constructs an Issuer with the given signing key and validity window.
func NewIssuer(signKey []byte, ttl time.Duration) *Issuer {
	return &Issuer{signKey: signKey, ttl: ttl}
}

// Issue creates a signed assertion bound to subject, valid for the configured TTL.
func (i *Issuer) Issue(subject string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(i.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.signKey)
	return signed, exp, err
}

// Verify checks the signature and validity window and returns the subject.
// Failure modes: errs.ErrTokenExpired, errs.ErrTokenSignature, errs.ErrTokenMalformed.
func (i *Issuer) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrTokenSignature
		}
		return i.signKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", errs.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, errs.ErrTokenSignature):
			return "", errs.ErrTokenSignature
		default:
			return "", errs.ErrTokenMalformed
		}
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errs.ErrTokenMalformed
	}
	return claims.Subject, nil
}
