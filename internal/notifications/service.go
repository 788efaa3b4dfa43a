package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"releasedesk/internal/config"
	"releasedesk/internal/draft"
)

const userAgent = "releasedesk/0.1.0"

// Service defines the notification surface exposed to workflow components.
type Service interface {
	NotifyDraftCreated(ctx context.Context, releaseID string, category draft.Category) error
	NotifyStepSaved(ctx context.Context, releaseID string, step int) error
	NotifyUploadCompleted(ctx context.Context, releaseID, slot string) error
	NotifyReleaseSubmitted(ctx context.Context, releaseID, releaseName string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		events:   cfg.Notifications,
		client:   client,
	}
}

// NewNop returns a Service that drops every event.
func NewNop() Service {
	return noopService{}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	events   config.Notifications
	client   *http.Client
}

func (n *ntfyService) NotifyDraftCreated(ctx context.Context, releaseID string, category draft.Category) error {
	if !n.events.Drafts {
		return nil
	}
	data := payload{
		title:   "Releasedesk - Draft Created",
		message: fmt.Sprintf("New %s draft: %s", category, strings.TrimSpace(releaseID)),
		tags:    []string{"releasedesk", "draft", "created"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyStepSaved(ctx context.Context, releaseID string, step int) error {
	if !n.events.Steps {
		return nil
	}
	data := payload{
		title:   "Releasedesk - Step Saved",
		message: fmt.Sprintf("Saved %s for release %s", draft.StepName(step), strings.TrimSpace(releaseID)),
		tags:    []string{"releasedesk", "step", "saved"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyUploadCompleted(ctx context.Context, releaseID, slot string) error {
	if !n.events.Uploads {
		return nil
	}
	data := payload{
		title:   "Releasedesk - Upload Complete",
		message: fmt.Sprintf("Upload complete: %s (release %s)", strings.TrimSpace(slot), strings.TrimSpace(releaseID)),
		tags:    []string{"releasedesk", "upload", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyReleaseSubmitted(ctx context.Context, releaseID, releaseName string) error {
	if !n.events.Submissions {
		return nil
	}
	releaseName = strings.TrimSpace(releaseName)
	message := fmt.Sprintf("Release submitted: %s", strings.TrimSpace(releaseID))
	if releaseName != "" {
		message = fmt.Sprintf("Release submitted: %s (%s)", releaseName, strings.TrimSpace(releaseID))
	}
	data := payload{
		title:    "Releasedesk - Submitted",
		message:  message,
		tags:     []string{"releasedesk", "release", "submitted"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.events.Errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Releasedesk - Error",
		message:  builder.String(),
		tags:     []string{"releasedesk", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Releasedesk - Test",
		message:  "Notification system test",
		tags:     []string{"releasedesk", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyDraftCreated(context.Context, string, draft.Category) error { return nil }
func (noopService) NotifyStepSaved(context.Context, string, int) error               { return nil }
func (noopService) NotifyUploadCompleted(context.Context, string, string) error      { return nil }
func (noopService) NotifyReleaseSubmitted(context.Context, string, string) error     { return nil }
func (noopService) NotifyError(context.Context, error, string) error                 { return nil }
func (noopService) TestNotification(context.Context) error                           { return nil }
