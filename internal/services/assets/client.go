package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"releasedesk/internal/config"
	"releasedesk/internal/services"
)

const userAgent = "releasedesk/0.1.0"

// HTTPDoer describes the HTTP client used by the asset service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result describes a stored asset.
type Result struct {
	URL       string `json:"url"`
	SizeBytes int64  `json:"size"`
	Format    string `json:"format"`
}

// Client uploads binaries to the asset storage API.
type Client struct {
	baseURL string
	token   string
	client  HTTPDoer
}

// NewClient builds a client from configuration. Upload timeouts are long;
// audio masters routinely run to hundreds of megabytes.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.Assets.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return New(cfg.Assets.BaseURL, cfg.Assets.APIToken, &http.Client{Timeout: timeout})
}

// New builds a client over an explicit HTTPDoer.
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

// Upload stores one file and returns its location and metadata.
func (c *Client) Upload(ctx context.Context, filename, contentType string, data []byte) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, filename)}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, services.Wrap(services.ErrUpload, "", "upload", "build multipart body", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, services.Wrap(services.ErrUpload, "", "upload", "write multipart body", err)
	}
	if err := writer.Close(); err != nil {
		return nil, services.Wrap(services.ErrUpload, "", "upload", "close multipart body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/assets", &body)
	if err != nil {
		return nil, services.Wrap(services.ErrUpload, "", "upload", "build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "", "upload", "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, services.Wrap(services.ErrNetwork, "", "upload", fmt.Sprintf("storage returned %d", resp.StatusCode), nil)
	case resp.StatusCode >= http.StatusBadRequest:
		reason := readReason(resp)
		return nil, services.Wrap(services.ErrUpload, "", "upload", fmt.Sprintf("storage rejected file: %s", reason), nil)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, services.Wrap(services.ErrNetwork, "", "upload", "decode response", err)
	}
	if strings.TrimSpace(result.URL) == "" {
		return nil, services.Wrap(services.ErrUpload, "", "upload", "storage returned no url", nil)
	}
	return &result, nil
}

func readReason(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	if body.Error == "" {
		return http.StatusText(resp.StatusCode)
	}
	return body.Error
}
