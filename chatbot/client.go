package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ContactRequest is the body accepted by the email-send endpoint
type ContactRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResponse is the body returned by the email-send endpoint
type ContactResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Gateway delivers a confirmed contact submission. Any error is a failed send.
type Gateway interface {
	Send(ctx context.Context, req ContactRequest) error
}

// GatewayFunc adapts a function to a Gateway
type GatewayFunc func(ctx context.Context, req ContactRequest) error

// Send calls f
func (f GatewayFunc) Send(ctx context.Context, req ContactRequest) error {
	return f(ctx, req)
}

// ErrNoGateway is returned when a machine has no gateway configured
var ErrNoGateway = errors.New("no email gateway configured")

// HTTPGateway posts submissions to a remote email-send endpoint
type HTTPGateway struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPGateway creates a gateway for the given endpoint URL
func NewHTTPGateway(endpoint string) *HTTPGateway {
	return &HTTPGateway{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// Send posts req as JSON. Non-2xx statuses and responses without success are
// errors.
func (g *HTTPGateway) Send(ctx context.Context, req ContactRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gateway error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var contactResp ContactResponse
	if err := json.NewDecoder(resp.Body).Decode(&contactResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !contactResp.Success {
		return fmt.Errorf("gateway reported failure: %s", contactResp.Error)
	}

	return nil
}
