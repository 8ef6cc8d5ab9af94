package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Verifier answers whether a payment reference has been authorized by the
// provider. The engine never sees provider details; it only consumes this
// boolean signal before a claim or mint proceeds.
type Verifier interface {
	VerifyPayment(ctx context.Context, reference string) (bool, error)
}

// NewReference generates an opaque payment reference handed to the
// frontend before checkout.
func NewReference() string {
	return uuid.New().String()
}

// HTTPVerifier checks a reference against the payment provider's API.
type HTTPVerifier struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

func NewHTTPVerifier(baseURL, secretKey string) *HTTPVerifier {
	return &HTTPVerifier{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   baseURL,
		secretKey: secretKey,
	}
}

func (v *HTTPVerifier) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", v.baseURL, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.secretKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("payment verification failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("failed to decode provider response: %w", err)
	}

	return payload.Status == "succeeded", nil
}

// NoopVerifier accepts every reference. Used in development when no
// provider is configured.
type NoopVerifier struct{}

func (NoopVerifier) VerifyPayment(context.Context, string) (bool, error) {
	return true, nil
}
