package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/replyforge/replyforge/internal/errs"
	"github.com/replyforge/replyforge/internal/model"
	"github.com/replyforge/replyforge/internal/payments"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *Server) register(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if _, err := s.deps.Auth.Register(c.Request.Context(), body.Email, body.Password, body.FirstName, body.LastName); err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		case errors.Is(err, errs.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "password is too weak"})
		case errors.Is(err, errs.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		default:
			s.deps.Log.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	toks, err := s.deps.Auth.LoginWithIP(c.Request.Context(), body.Email, body.Password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		case errors.Is(err, errs.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
		default:
			s.deps.Log.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": toks.AccessToken, "expires_at": toks.ExpiresAt})
}

type generateRequest struct {
	EmailContent string `json:"emailContent"`
	Tone         string `json:"tone"`
}

func (s *Server) generateReply(c *gin.Context) {
	email, ok := identityFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.EmailContent) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "emailContent is required"})
		return
	}

	reply, err := s.deps.Replies.GenerateReply(c.Request.Context(), email, model.ReplyRequest{
		EmailContent: body.EmailContent,
		Tone:         body.Tone,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrQuotaExceeded):
			c.JSON(http.StatusForbidden, gin.H{"error": "limit exceeded, upgrade to premium"})
		case errors.Is(err, errs.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		case errors.Is(err, errs.ErrProviderFailure), errors.Is(err, errs.ErrBadProviderResponse):
			// detail stays in server logs, caller gets a generic denial
			c.JSON(http.StatusBadGateway, gin.H{"error": "unable to generate email reply"})
		default:
			s.deps.Log.Error("generate failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to generate email reply"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

type createIntentRequest struct {
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	PaymentMethodID string `json:"paymentMethodId"`
}

func (s *Server) createPaymentIntent(c *gin.Context) {
	email, ok := identityFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var body createIntentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	intent, err := s.deps.Intents.CreateIntent(c.Request.Context(), body.Amount, body.Currency, body.PaymentMethodID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidPayment):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount or currency"})
		default:
			s.deps.Log.Error("create payment intent failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment processing failed"})
		}
		return
	}

	s.recordPayment(c, email, body, intent)

	if intent.Status == payments.StatusRequiresConfirmation {
		if err := s.deps.Upgrades.HandlePaymentStatus(c.Request.Context(), email, intent.Status); err != nil {
			// the intent was created either way; an upgrade hiccup is not fatal
			s.deps.Log.Error("tier upgrade failed", zap.String("email", email), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
}

// recordPayment persists an audit record for the created intent; failures are
// logged, not surfaced.
func (s *Server) recordPayment(c *gin.Context, email string, body createIntentRequest, intent *payments.Intent) {
	u, err := s.deps.Users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		s.deps.Log.Error("payment record: user lookup failed", zap.Error(err))
		return
	}
	id, err := uuid.NewV4()
	if err != nil {
		s.deps.Log.Error("payment record: uuid", zap.Error(err))
		return
	}
	rec := &model.Payment{
		ID:               id,
		UserID:           u.ID,
		ProviderIntentID: intent.ID,
		Amount:           body.Amount,
		Currency:         body.Currency,
		Status:           intent.Status,
	}
	if err := s.deps.Payments.Create(c.Request.Context(), rec); err != nil {
		s.deps.Log.Error("payment record: insert failed", zap.Error(err))
	}
}

type paymentDTO struct {
	ID       string `json:"id"`
	IntentID string `json:"intent_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func (s *Server) listPayments(c *gin.Context) {
	email, ok := identityFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	u, err := s.deps.Users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		s.deps.Log.Error("list payments: user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	recs, err := s.deps.Payments.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		s.deps.Log.Error("list payments failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]paymentDTO, 0, len(recs))
	for _, p := range recs {
		out = append(out, paymentDTO{
			ID:       p.ID.String(),
			IntentID: p.ProviderIntentID,
			Amount:   p.Amount,
			Currency: p.Currency,
			Status:   p.Status,
		})
	}
	c.JSON(http.StatusOK, gin.H{"payments": out})
}

func (s *Server) healthz(c *gin.Context) {
	if err := s.deps.DB.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}
