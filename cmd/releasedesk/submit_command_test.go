package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"releasedesk/internal/testsupport"
)

func writeReleaseFixture(t *testing.T, dir string) string {
	t.Helper()

	testsupport.WriteFile(t, filepath.Join(dir, "cover.png"), testsupport.PNGHeader(3000, 3000))
	testsupport.WriteFile(t, filepath.Join(dir, "master.wav"), testsupport.WAVHeader(4096))
	testsupport.WriteFile(t, filepath.Join(dir, "license.pdf"), testsupport.PDFBytes())

	manifest := `
category = "single"

[release]
name = "Midnight Sessions"
genre = "Pop"
date = "2026-10-01"
primary_artists = ["Asha Sharma"]
cover_art = "cover.png"
copyright_document = "license.pdf"

[[tracks]]
name = "Midnight Drive"
primary_artists = ["Asha Sharma"]
language = "hi"
genre = "Pop"
audio = "master.wav"

[distribution]
worldwide = true
domestic_stores = ["JioSaavn"]
international_stores = ["Spotify"]
`
	path := filepath.Join(dir, "release.toml")
	testsupport.WriteFile(t, path, []byte(manifest))
	return path
}

func TestSubmitRunsFullWorkflow(t *testing.T) {
	env := setupCLITestEnv(t)
	manifestPath := writeReleaseFixture(t, filepath.Join(env.baseDir, "release"))

	out, _, err := runCLI(t, []string{"submit", manifestPath}, env.configPath)
	if err != nil {
		t.Fatalf("submit: %v\noutput:\n%s", err, out)
	}
	requireContains(t, out, "Draft created")
	requireContains(t, out, "Saved step3")
	requireContains(t, out, "submitted")

	releaseID := extractReleaseID(t, out)
	if got := env.backend.ReleaseStatus(t, releaseID); got != "submitted" {
		t.Fatalf("backend status = %q, want submitted", got)
	}
	if got := env.backend.AssetCount(t); got != 3 {
		t.Fatalf("backend accepted %d assets, want 3", got)
	}
}

func TestSubmitReportsRejectedFields(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "release")
	manifestPath := writeReleaseFixture(t, dir)

	// Break the manifest: no release name.
	broken := `
category = "single"

[release]
genre = "Pop"
primary_artists = ["Asha Sharma"]
cover_art = "cover.png"

[[tracks]]
name = "Midnight Drive"
primary_artists = ["Asha Sharma"]
language = "hi"
genre = "Pop"
audio = "master.wav"

[distribution]
worldwide = true
international_stores = ["Spotify"]
`
	testsupport.WriteFile(t, manifestPath, []byte(broken))

	out, _, err := runCLI(t, []string{"submit", manifestPath}, env.configPath)
	if err == nil {
		t.Fatalf("expected submit to fail\noutput:\n%s", out)
	}
	requireContains(t, err.Error(), "releaseName")
}

func TestSubmitShowRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)
	manifestPath := writeReleaseFixture(t, filepath.Join(env.baseDir, "release"))

	out, _, err := runCLI(t, []string{"submit", manifestPath}, env.configPath)
	if err != nil {
		t.Fatalf("submit: %v\noutput:\n%s", err, out)
	}
	releaseID := extractReleaseID(t, out)

	shown, _, err := runCLI(t, []string{"show", releaseID}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, shown, "Midnight Sessions")
	requireContains(t, shown, "Midnight Drive")
	requireContains(t, shown, "submitted")
	requireContains(t, shown, "worldwide")
}

func TestShowUnknownRelease(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"show", "rel-missing"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func extractReleaseID(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		var id string
		if _, err := fmt.Sscanf(line, "Draft created: %s", &id); err == nil {
			return id
		}
	}
	t.Fatalf("no release id in output:\n%s", out)
	return ""
}
