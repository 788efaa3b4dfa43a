package distribution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"releasedesk/internal/api"
	"releasedesk/internal/config"
	"releasedesk/internal/draft"
	"releasedesk/internal/services"
)

const userAgent = "releasedesk/0.1.0"

// HTTPDoer describes the HTTP client used by the distribution service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the distribution back-office API.
type Client struct {
	baseURL string
	token   string
	client  HTTPDoer
}

// NewClient builds a client from configuration with a timeout-bound
// http.Client.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.Distribution.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return New(cfg.Distribution.BaseURL, cfg.Distribution.APIToken, &http.Client{Timeout: timeout})
}

// New builds a client over an explicit HTTPDoer. Tests inject stub doers
// here.
func New(baseURL, token string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		client:  doer,
	}
}

type createDraftRequest struct {
	Category string `json:"category"`
}

type createDraftResponse struct {
	ReleaseID string `json:"releaseId"`
}

type ackResponse struct {
	Ack bool `json:"ack"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// CreateDraft registers a new draft for the category and returns the
// server-assigned release id. Any rejection is fatal to the workflow.
func (c *Client) CreateDraft(ctx context.Context, category draft.Category) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/releases", createDraftRequest{Category: string(category)})
	if err != nil {
		return "", services.Wrap(services.ErrNetwork, "", "create draft", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		reason := readError(resp)
		marker := services.ErrDraftCreation
		if resp.StatusCode >= http.StatusInternalServerError {
			marker = services.ErrNetwork
		}
		return "", services.Wrap(marker, "", "create draft", fmt.Sprintf("service returned %d: %s", resp.StatusCode, reason.Error), nil)
	}

	var body createDraftResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", services.Wrap(services.ErrNetwork, "", "create draft", "decode response", err)
	}
	if strings.TrimSpace(body.ReleaseID) == "" {
		return "", services.Wrap(services.ErrDraftCreation, "", "create draft", "service returned no release id", nil)
	}
	return body.ReleaseID, nil
}

// PersistStep sends the full current payload for one step. The service
// overwrites; the call is not idempotency-guaranteed and may be re-invoked
// after a partial failure.
func (c *Client) PersistStep(ctx context.Context, releaseID string, step int, payload api.StepPayload) error {
	stepName := draft.StepName(step)
	path := fmt.Sprintf("/releases/%s/%s", releaseID, stepName)
	resp, err := c.do(ctx, http.MethodPatch, path, payload)
	if err != nil {
		return services.Wrap(services.ErrNetwork, stepName, "persist", "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return services.Wrap(services.ErrNetwork, stepName, "persist", fmt.Sprintf("service returned %d", resp.StatusCode), nil)
	case resp.StatusCode >= http.StatusBadRequest:
		reason := readError(resp)
		details := &services.ValidationDetails{Fields: reason.Fields}
		if len(details.Fields) == 0 {
			details.Fields = map[string]string{"": reason.Error}
		}
		return services.Wrap(services.ErrValidation, stepName, "persist", "service rejected payload", details)
	}
	return nil
}

// Finalize moves the release out of draft status. Terminal on success.
func (c *Client) Finalize(ctx context.Context, releaseID string) error {
	resp, err := c.do(ctx, http.MethodPost, "/releases/"+releaseID+"/submit", nil)
	if err != nil {
		return services.Wrap(services.ErrNetwork, "", "submit", "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return services.Wrap(services.ErrNetwork, "", "submit", fmt.Sprintf("service returned %d", resp.StatusCode), nil)
	case resp.StatusCode >= http.StatusBadRequest:
		reason := readError(resp)
		return services.Wrap(services.ErrFinalization, "", "submit", reason.Error, nil)
	}
	return nil
}

// FetchRelease returns the read-only projection of a release.
func (c *Client) FetchRelease(ctx context.Context, releaseID string) (*api.Release, error) {
	resp, err := c.do(ctx, http.MethodGet, "/releases/"+releaseID, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "", "fetch release", "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrValidation, "", "fetch release", fmt.Sprintf("release %s not found", releaseID), nil)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, services.Wrap(services.ErrNetwork, "", "fetch release", fmt.Sprintf("service returned %d", resp.StatusCode), nil)
	}

	var release api.Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, services.Wrap(services.ErrNetwork, "", "fetch release", "decode response", err)
	}
	return &release, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		req.Header.Set("X-Request-ID", rid)
	}

	return c.client.Do(req)
}

func readError(resp *http.Response) errorResponse {
	var body errorResponse
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	if body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	return body
}
