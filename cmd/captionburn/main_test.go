package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"captionburn/internal/services"
)

func TestRootWithoutArgsShowsHelp(t *testing.T) {
	configPath := setupCLITestEnv(t)
	out, _, err := runCLI(t, nil, configPath)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	requireContains(t, out, "captionburn")
	requireContains(t, out, "languages")
}

func TestBurnRejectsInvalidURL(t *testing.T) {
	configPath := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"https://example.com/watch?v=nope"}, configPath)
	if !errors.Is(err, services.ErrInvalidURL) {
		t.Fatalf("expected invalid url error, got %v", err)
	}
	if code := services.ExitCode(err); code != services.ExitInvalidURL {
		t.Fatalf("exit code = %d, want %d", code, services.ExitInvalidURL)
	}
}

func TestLanguagesListsTracks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("type") != "list" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript_list docid="1">
  <track id="0" name="" lang_code="en" lang_original="English"/>
  <track id="1" name="" lang_code="de" lang_original="Deutsch" kind="asr"/>
</transcript_list>`))
	}))
	defer server.Close()

	configPath := setupCLITestEnv(t)
	appendTranscriptBaseURL(t, configPath, server.URL)

	out, _, err := runCLI(t, []string{"languages", "https://youtu.be/dQw4w9WgXcQ"}, configPath)
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	requireContains(t, out, "en")
	requireContains(t, out, "manual")
	requireContains(t, out, "auto")
}

func appendTranscriptBaseURL(t *testing.T, path, baseURL string) {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	marker := "[transcript]\n"
	idx := strings.Index(string(raw), marker)
	if idx < 0 {
		t.Fatal("config missing [transcript] section")
	}
	idx += len(marker)
	updated := string(raw[:idx]) + "base_url = " + tomlQuote(baseURL) + "\n" + string(raw[idx:])
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
}

func TestLanguagesFailsWhenCaptionsDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(""))
	}))
	defer server.Close()

	configPath := setupCLITestEnv(t)
	appendTranscriptBaseURL(t, configPath, server.URL)

	_, _, err := runCLI(t, []string{"languages", "https://youtu.be/dQw4w9WgXcQ"}, configPath)
	if !errors.Is(err, services.ErrTranscriptUnavailable) {
		t.Fatalf("expected transcript unavailable, got %v", err)
	}
}

func TestInspectMissingFileIsInvalidURL(t *testing.T) {
	configPath := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"inspect", filepath.Join(t.TempDir(), "missing.mp4")}, configPath)
	if !errors.Is(err, services.ErrInvalidURL) {
		t.Fatalf("expected invalid url for a non-file non-url argument, got %v", err)
	}
}
