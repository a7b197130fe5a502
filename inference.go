package corral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// LocalInference runs a machine-learning pipeline on the local machine. It
// receives the input expected by the model and returns the model's output.
// The models subpackage provides an adapter for langchaingo models.
type LocalInference interface {
	Infer(ctx context.Context, input any) (any, error)
}

// RemoteInference runs a machine-learning pipeline on a remote service.
// Implementations are selected once at validator construction, not
// re-decided per call.
//
// Remote calls are synchronous and blocking with no built-in timeout, retry
// or cancellation beyond what ctx provides; callers needing bounded latency
// must wrap the dispatch with a context deadline.
type RemoteInference interface {
	Infer(ctx context.Context, endpoint string, input any) (any, error)
}

// LocalInferenceFunc adapts a bare function to the LocalInference interface.
type LocalInferenceFunc func(ctx context.Context, input any) (any, error)

// Infer implements LocalInference.
func (f LocalInferenceFunc) Infer(ctx context.Context, input any) (any, error) {
	return f(ctx, input)
}

// HubClient is the stock RemoteInference implementation: it POSTs the model
// input as JSON to the validator's inference endpoint, authenticated with a
// bearer token from the credentials.
//
// On a non-success status the decoded body is still returned, together with
// a *HubStatusError; Validator.Inference absorbs that error and degrades to
// the partial body, so _validate implementations must treat the response
// defensively (missing or malformed fields are expected on degradation).
type HubClient struct {
	client *http.Client
	token  string
}

// NewHubClient creates a HubClient authenticated with the credentials'
// API key. The underlying http.Client has no timeout; bound calls with a
// context deadline if needed.
func NewHubClient(creds *Credentials) *HubClient {
	token := ""
	if creds != nil {
		token = creds.APIKey
	}
	return &HubClient{
		client: &http.Client{},
		token:  token,
	}
}

// WithHTTPClient replaces the underlying http.Client. Returns the client for
// chaining.
func (c *HubClient) WithHTTPClient(client *http.Client) *HubClient {
	c.client = client
	return c
}

// Infer implements RemoteInference.
func (c *HubClient) Infer(ctx context.Context, endpoint string, input any) (any, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("corral: failed to encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("corral: failed to build inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("corral: inference request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("corral: failed to read inference response: %w", err)
	}

	var body any
	if len(raw) > 0 {
		// A malformed body on an error status is still a degraded
		// (nil-body) result, not a hard failure.
		if jsonErr := json.Unmarshal(raw, &body); jsonErr != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("corral: failed to decode inference response: %w", jsonErr)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, &HubStatusError{
			StatusCode: resp.StatusCode,
			Message:    extractHubMessage(body),
		}
	}
	return body, nil
}

// extractHubMessage pulls the "message" field from a hub error body, if the
// body has the usual shape.
func extractHubMessage(body any) string {
	m, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := m["message"].(string)
	return msg
}

// Compile-time check that HubClient implements RemoteInference.
var _ RemoteInference = (*HubClient)(nil)
