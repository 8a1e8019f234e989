package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/replyforge/replyforge/internal/errs"
	"github.com/replyforge/replyforge/internal/model"
	"github.com/replyforge/replyforge/internal/quota"
	"github.com/replyforge/replyforge/internal/repository"
)

// Provider is the external text-generation collaborator.
type Provider interface {
	// GenerateText sends a single prompt and returns the generated text.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ReplyService orchestrates quota-gated reply generation.
type ReplyService interface {
	// GenerateReply charges quota and produces a reply for the given account.
	GenerateReply(ctx context.Context, email string, req model.ReplyRequest) (string, error)
}

type ReplyServiceImpl struct {
	users    repository.UserRepository
	gate     quota.Gate
	provider Provider
	log      *zap.Logger
}

// NewReplyService constructs ReplyService with required dependencies.
func NewReplyService(users repository.UserRepository, gate quota.Gate, provider Provider, log *zap.Logger) *ReplyServiceImpl {
	return &ReplyServiceImpl{users: users, gate: gate, provider: provider, log: log}
}

// GenerateReply admits the request through the quota gate, then calls the
// provider. The charge happens before the provider call: the gate's
// conditional increment is the only way to keep concurrent requests from one
// account within the ceiling, at the cost of a failed call consuming quota.
// Provider diagnostics are logged here and never returned to the caller.
func (s *ReplyServiceImpl) GenerateReply(ctx context.Context, email string, req model.ReplyRequest) (string, error) {
	if strings.TrimSpace(req.EmailContent) == "" {
		return "", errors.New("validation: empty email content")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// valid token for an account that no longer exists
			return "", errs.ErrUnauthorized
		}
		return "", err
	}

	if err := s.gate.AdmitAndCharge(ctx, u.ID); err != nil {
		return "", err
	}

	reply, err := s.provider.GenerateText(ctx, buildPrompt(req))
	if err != nil {
		s.log.Error("provider call failed",
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
		if errors.Is(err, errs.ErrBadProviderResponse) {
			return "", errs.ErrBadProviderResponse
		}
		return "", errs.ErrProviderFailure
	}
	return reply, nil
}

// buildPrompt composes the provider instruction: fixed directive, optional
// tone clause, then the original email content.
func buildPrompt(req model.ReplyRequest) string {
	var b strings.Builder
	b.WriteString("Generate a professional email reply for the following email content. Please don't generate a subject. ")
	if req.Tone != "" {
		b.WriteString("Use a ")
		b.WriteString(req.Tone)
		b.WriteString(" tone. ")
	}
	b.WriteString("\nOriginal email: \n")
	b.WriteString(req.EmailContent)
	return b.String()
}
