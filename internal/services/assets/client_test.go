package assets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"releasedesk/internal/services"
)

func TestUploadSendsMultipartAndDecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "cover.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("part content type = %q", ct)
		}
		data, err := io.ReadAll(file)
		if err != nil || string(data) != "jpegbytes" {
			t.Errorf("file body = %q, %v", data, err)
		}
		_ = json.NewEncoder(w).Encode(Result{URL: "https://cdn.example.com/cover.jpg", SizeBytes: 9, Format: "jpeg"})
	}))
	defer server.Close()

	client := New(server.URL, "tok", nil)
	result, err := client.Upload(context.Background(), "cover.jpg", "image/jpeg", []byte("jpegbytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if result.URL != "https://cdn.example.com/cover.jpg" || result.Format != "jpeg" {
		t.Fatalf("result = %+v", result)
	}
}

func TestUploadRejectionIsUploadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "format not allowed"})
	}))
	defer server.Close()

	client := New(server.URL, "", nil)
	_, err := client.Upload(context.Background(), "track.xyz", "application/octet-stream", []byte("x"))
	if !errors.Is(err, services.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}
}

func TestUploadServerErrorIsNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "", nil)
	_, err := client.Upload(context.Background(), "a.wav", "audio/wav", []byte("x"))
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestUploadEmptyURLIsUploadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Result{})
	}))
	defer server.Close()

	client := New(server.URL, "", nil)
	_, err := client.Upload(context.Background(), "a.wav", "audio/wav", []byte("x"))
	if !errors.Is(err, services.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}
}
