package testsupport

import (
	"path/filepath"
	"testing"

	"releasedesk/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// WithBaseURL points the distribution and asset clients at the given server,
// typically one started by StartBackend.
func WithBaseURL(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Distribution.BaseURL = baseURL
		cfg.Assets.BaseURL = baseURL
	}
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Distribution.BaseURL = "http://127.0.0.1:1"
	cfg.Distribution.APIToken = "test-token"
	cfg.Assets.BaseURL = cfg.Distribution.BaseURL
	cfg.Assets.APIToken = cfg.Distribution.APIToken

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate test config: %v", err)
	}
	return &cfg
}
