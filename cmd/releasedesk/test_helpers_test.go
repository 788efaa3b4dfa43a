package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"releasedesk/internal/testsupport"
)

type cliTestEnv struct {
	backend    *testsupport.Backend
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	backend := testsupport.StartBackend(t)
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, base, backend.URL())

	return &cliTestEnv{
		backend:    backend,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path, baseDir, backendURL string) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nstate_dir = %q\nlog_dir = %q\n\n[distribution]\nbase_url = %q\napi_token = \"test-token\"\n",
		filepath.Join(baseDir, "state"),
		filepath.Join(baseDir, "logs"),
		backendURL,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
