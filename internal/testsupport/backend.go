package testsupport

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Backend is an in-process stand-in for the distribution and asset
// services, persisting drafts to a temp SQLite database so tests can
// inspect what the server accepted.
type Backend struct {
	Server *httptest.Server
	db     *sql.DB
}

// StartBackend opens the backing database, starts the HTTP server and
// registers cleanup with the test.
func StartBackend(t testing.TB) *Backend {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "backend.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			t.Fatalf("apply pragma %q: %v", pragma, execErr)
		}
	}

	schema := `
CREATE TABLE IF NOT EXISTS releases (
    id         TEXT PRIMARY KEY,
    category   TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'draft',
    acked      INTEGER NOT NULL DEFAULT 0,
    step1      TEXT,
    step2      TEXT,
    step3      TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assets (
    id           TEXT PRIMARY KEY,
    filename     TEXT NOT NULL,
    content_type TEXT NOT NULL,
    size         INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	backend := &Backend{db: db}
	backend.Server = httptest.NewServer(http.HandlerFunc(backend.handle))
	t.Cleanup(func() {
		backend.Server.Close()
		_ = db.Close()
	})
	return backend
}

// URL returns the server base URL.
func (b *Backend) URL() string {
	return b.Server.URL
}

// ReleaseStatus reads the stored status of one release.
func (b *Backend) ReleaseStatus(t testing.TB, releaseID string) string {
	t.Helper()
	var status string
	err := b.db.QueryRow("SELECT status FROM releases WHERE id = ?", releaseID).Scan(&status)
	if err != nil {
		t.Fatalf("read release status: %v", err)
	}
	return status
}

// StepBody returns the raw JSON the server stored for one step.
func (b *Backend) StepBody(t testing.TB, releaseID string, step int) []byte {
	t.Helper()
	column := fmt.Sprintf("step%d", step+1)
	var body sql.NullString
	err := b.db.QueryRow("SELECT "+column+" FROM releases WHERE id = ?", releaseID).Scan(&body)
	if err != nil {
		t.Fatalf("read %s: %v", column, err)
	}
	if !body.Valid {
		return nil
	}
	return []byte(body.String)
}

// AssetCount returns how many uploads the server accepted.
func (b *Backend) AssetCount(t testing.TB) int {
	t.Helper()
	var count int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM assets").Scan(&count); err != nil {
		t.Fatalf("count assets: %v", err)
	}
	return count
}

func (b *Backend) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/releases":
		b.createRelease(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/assets":
		b.storeAsset(w, r)
	case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/releases/"):
		b.persistStep(w, r)
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/submit"):
		b.submit(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/releases/"):
		b.fetchRelease(w, r)
	default:
		writeError(w, http.StatusNotFound, "no such route", nil)
	}
}

func (b *Backend) createRelease(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Category) == "" {
		writeError(w, http.StatusUnprocessableEntity, "category is required", nil)
		return
	}

	id := "rel-" + uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := b.db.Exec(
		"INSERT INTO releases (id, category, created_at, updated_at) VALUES (?, ?, ?, ?)",
		id, req.Category, now, now,
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"releaseId": id})
}

func (b *Backend) persistStep(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 {
		writeError(w, http.StatusNotFound, "no such route", nil)
		return
	}
	releaseID := parts[1]
	var step int
	if _, err := fmt.Sscanf(parts[2], "step%d", &step); err != nil || step < 1 || step > 3 {
		writeError(w, http.StatusNotFound, "no such step", nil)
		return
	}

	var status string
	var acked int
	err := b.db.QueryRow("SELECT status, acked FROM releases WHERE id = ?", releaseID).Scan(&status, &acked)
	if err != nil {
		writeError(w, http.StatusNotFound, "no such release", nil)
		return
	}
	if status != "draft" {
		writeError(w, http.StatusUnprocessableEntity, "release is not editable", nil)
		return
	}
	if step > acked+1 {
		writeError(w, http.StatusUnprocessableEntity, "step out of order", nil)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusUnprocessableEntity, "invalid payload", nil)
		return
	}

	if step == acked+1 {
		acked = step
	}
	now := time.Now().UTC().Format(time.RFC3339)
	column := fmt.Sprintf("step%d", step)
	_, err = b.db.Exec(
		"UPDATE releases SET "+column+" = ?, acked = ?, updated_at = ? WHERE id = ?",
		string(body), acked, now, releaseID,
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"acknowledged": true, "currentStep": acked})
}

func (b *Backend) submit(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[0] != "releases" {
		writeError(w, http.StatusNotFound, "no such route", nil)
		return
	}
	releaseID := parts[1]

	var status string
	var acked int
	err := b.db.QueryRow("SELECT status, acked FROM releases WHERE id = ?", releaseID).Scan(&status, &acked)
	if err != nil {
		writeError(w, http.StatusNotFound, "no such release", nil)
		return
	}
	if status != "draft" {
		writeError(w, http.StatusUnprocessableEntity, "release already submitted", nil)
		return
	}
	if acked < 3 {
		writeError(w, http.StatusUnprocessableEntity, "all steps must be saved before submitting", nil)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := b.db.Exec("UPDATE releases SET status = 'submitted', updated_at = ? WHERE id = ?", now, releaseID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "submitted"})
}

func (b *Backend) fetchRelease(w http.ResponseWriter, r *http.Request) {
	releaseID := strings.TrimPrefix(r.URL.Path, "/releases/")

	var (
		category, status, createdAt, updatedAt string
		step1, step2, step3                    sql.NullString
	)
	err := b.db.QueryRow(
		"SELECT category, status, step1, step2, step3, created_at, updated_at FROM releases WHERE id = ?",
		releaseID,
	).Scan(&category, &status, &step1, &step2, &step3, &createdAt, &updatedAt)
	if err != nil {
		writeError(w, http.StatusNotFound, "no such release", nil)
		return
	}

	projection := map[string]any{
		"releaseId": releaseID,
		"category":  category,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}
	for name, body := range map[string]sql.NullString{"step1": step1, "step2": step2, "step3": step3} {
		if body.Valid {
			projection[name] = json.RawMessage(body.String)
		}
	}
	writeJSON(w, http.StatusOK, projection)
}

func (b *Backend) storeAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "expected multipart body", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "file part is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	contentType := header.Header.Get("Content-Type")
	format := contentType
	if idx := strings.IndexByte(contentType, '/'); idx >= 0 {
		format = contentType[idx+1:]
	}

	id := uuid.NewString()
	_, err = b.db.Exec(
		"INSERT INTO assets (id, filename, content_type, size) VALUES (?, ?, ?, ?)",
		id, header.Filename, contentType, len(data),
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"url":    b.Server.URL + "/assets/" + id,
		"size":   len(data),
		"format": format,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string, fields map[string]string) {
	body := map[string]any{"error": msg}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	writeJSON(w, status, body)
}
