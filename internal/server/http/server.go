package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/replyforge/replyforge/internal/payments"
	"github.com/replyforge/replyforge/internal/repository"
	"github.com/replyforge/replyforge/internal/service"
)

// IntentCreator is the payment-processor collaborator.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency, paymentMethodID string) (*payments.Intent, error)
}

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps collects the collaborators wired into the HTTP server.
type Deps struct {
	Auth     service.AuthService
	Replies  service.ReplyService
	Upgrades service.UpgradeService
	Intents  IntentCreator
	Payments repository.PaymentRepository
	Users    repository.UserRepository
	Verifier TokenVerifier
	DB       Pinger
	Log      *zap.Logger
}

// Server wires services into HTTP handlers.
type Server struct {
	deps Deps
}

// New constructs an HTTP server with injected services.
func New(deps Deps) *Server {
	return &Server{deps: deps}
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(Recovery(s.deps.Log), Logging(s.deps.Log))

	r.GET("/healthz", s.healthz)

	api := r.Group("/api")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	authed := api.Group("", RequireAuth(s.deps.Verifier, s.deps.Log))
	authed.POST("/email/generate", s.generateReply)
	authed.POST("/payments/create-payment-intent", s.createPaymentIntent)
	authed.GET("/payments", s.listPayments)

	return r
}
