// Package payments is a client for the external payment processor's
// payment-intent API.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/replyforge/replyforge/internal/errs"
)

// Intent-status values reported by the processor.
const (
	StatusRequiresConfirmation = "requires_confirmation"
	StatusSucceeded            = "succeeded"
	StatusFailed               = "failed"
)

// Intent is the processor-side record tracking a single charge.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// Client talks to a Stripe-style payment-intent API.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient constructs a payment client.
func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateIntent creates a payment intent. Amount is in minor currency units
// and must be positive; currency must be non-empty; paymentMethodID is
// optional. Validation failures return errs.ErrInvalidPayment; processor
// failures wrap errs.ErrPaymentFailure with diagnostics for server-side logs.
func (c *Client) CreateIntent(ctx context.Context, amount int64, currency, paymentMethodID string) (*Intent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidPayment)
	}
	if strings.TrimSpace(currency) == "" {
		return nil, fmt.Errorf("%w: currency is required", errs.ErrInvalidPayment)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	if strings.TrimSpace(paymentMethodID) != "" {
		form.Set("payment_method", paymentMethodID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %v", errs.ErrPaymentFailure, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPaymentFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", errs.ErrPaymentFailure, resp.StatusCode, snippet)
	}

	var parsed Intent
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", errs.ErrPaymentFailure, err)
	}
	if parsed.ID == "" || parsed.ClientSecret == "" {
		return nil, fmt.Errorf("%w: missing id or client secret", errs.ErrPaymentFailure)
	}
	return &parsed, nil
}
