package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/replyforge/replyforge/internal/token"
)

func runAuthedRequest(t *testing.T, verifier TokenVerifier, authHeader string) (*httptest.ResponseRecorder, *string) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	var seen *string
	router := gin.New()
	router.Use(RequireAuth(verifier, zap.NewNop()))
	router.GET("/probe", func(c *gin.Context) {
		if email, ok := identityFromCtx(c); ok {
			seen = &email
		}
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	iss := token.NewIssuer([]byte("k"), time.Minute)

	rec, _ := runAuthedRequest(t, iss, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_NotBearer(t *testing.T) {
	iss := token.NewIssuer([]byte("k"), time.Minute)

	rec, _ := runAuthedRequest(t, iss, "Basic abc123")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_ExpiredAndForgedTokensUniform401(t *testing.T) {
	iss := token.NewIssuer([]byte("k"), time.Minute)

	expired, _, err := token.NewIssuer([]byte("k"), -time.Minute).Issue("a@b.c")
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}
	forged, _, err := token.NewIssuer([]byte("other"), time.Minute).Issue("a@b.c")
	if err != nil {
		t.Fatalf("issue forged: %v", err)
	}

	for _, tok := range []string{expired, forged, "garbage"} {
		rec, _ := runAuthedRequest(t, iss, "Bearer "+tok)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: expected 401, got %d", tok, rec.Code)
		}
		if rec.Body.String() != `{"error":"unauthenticated"}` {
			t.Fatalf("responses must be indistinguishable, got %s", rec.Body.String())
		}
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	iss := token.NewIssuer([]byte("k"), time.Minute)
	signed, _, err := iss.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, seen := runAuthedRequest(t, iss, "Bearer "+signed)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if seen == nil || *seen != "alice@example.com" {
		t.Fatalf("identity not propagated: %v", seen)
	}
}
