package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"releasedesk/internal/config"
	"releasedesk/internal/draft"
	"releasedesk/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyDraftCreated(context.Background(), "rel-1", draft.CategoryAlbum); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		notify         func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "draft created",
			notify: func(svc notifications.Service) error {
				return svc.NotifyDraftCreated(context.Background(), "rel-42", draft.CategoryAlbum)
			},
			expectTitle:   "Releasedesk - Draft Created",
			expectMessage: "New album draft: rel-42",
			expectTags:    "releasedesk,draft,created",
		},
		{
			name: "step saved",
			notify: func(svc notifications.Service) error {
				return svc.NotifyStepSaved(context.Background(), "rel-42", draft.StepTracks)
			},
			expectTitle:   "Releasedesk - Step Saved",
			expectMessage: "Saved step2 for release rel-42",
			expectTags:    "releasedesk,step,saved",
		},
		{
			name: "upload completed",
			notify: func(svc notifications.Service) error {
				return svc.NotifyUploadCompleted(context.Background(), "rel-42", draft.SlotCoverArt)
			},
			expectTitle:   "Releasedesk - Upload Complete",
			expectMessage: "Upload complete: coverArt (release rel-42)",
			expectTags:    "releasedesk,upload,completed",
		},
		{
			name: "release submitted",
			notify: func(svc notifications.Service) error {
				return svc.NotifyReleaseSubmitted(context.Background(), "rel-42", "Midnight Sessions")
			},
			expectTitle:    "Releasedesk - Submitted",
			expectMessage:  "Release submitted: Midnight Sessions (rel-42)",
			expectTags:     "releasedesk,release,submitted",
			expectPriority: "high",
		},
		{
			name: "error",
			notify: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("backend unreachable"), "step save")
			},
			expectTitle:    "Releasedesk - Error",
			expectMessage:  "Error with step save: backend unreachable",
			expectTags:     "releasedesk,error,alert",
			expectPriority: "high",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5
			cfg.Notifications.Drafts = true
			cfg.Notifications.Steps = true
			cfg.Notifications.Uploads = true
			cfg.Notifications.Submissions = true
			cfg.Notifications.Errors = true

			svc := notifications.NewService(&cfg)
			if err := tc.notify(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceHonorsEventToggles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for disabled event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Drafts = false
	cfg.Notifications.Steps = false
	cfg.Notifications.Uploads = false
	cfg.Notifications.Submissions = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	ctx := context.Background()
	if err := svc.NotifyDraftCreated(ctx, "rel-1", draft.CategorySingle); err != nil {
		t.Fatalf("disabled draft event returned error: %v", err)
	}
	if err := svc.NotifyStepSaved(ctx, "rel-1", draft.StepReleaseInfo); err != nil {
		t.Fatalf("disabled step event returned error: %v", err)
	}
	if err := svc.NotifyUploadCompleted(ctx, "rel-1", draft.SlotCoverArt); err != nil {
		t.Fatalf("disabled upload event returned error: %v", err)
	}
	if err := svc.NotifyReleaseSubmitted(ctx, "rel-1", ""); err != nil {
		t.Fatalf("disabled submission event returned error: %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), "test"); err != nil {
		t.Fatalf("disabled error event returned error: %v", err)
	}
}
