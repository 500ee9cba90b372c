package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"captionburn/internal/services"
)

func TestWrapTagsMarkerAndKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := services.Wrap(services.ErrRenderFailure, "composing", "ffmpeg", "encode failed", cause)
	if !errors.Is(err, services.ErrRenderFailure) {
		t.Fatalf("expected render failure marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
}

func TestWrapWithoutMarkerFallsBackToExternalTool(t *testing.T) {
	err := services.Wrap(nil, "fetching", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool fallback, got %v", err)
	}
}

func TestClassifyPromotesDeadlineToTimeout(t *testing.T) {
	err := services.Classify(fmt.Errorf("download: %w", context.DeadlineExceeded))
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout classification, got %v", err)
	}
}

func TestClassifyLeavesNilAndTaggedErrorsAlone(t *testing.T) {
	if services.Classify(nil) != nil {
		t.Fatal("expected nil to stay nil")
	}
	tagged := services.Wrap(services.ErrTimeout, "pipeline", "", "budget exceeded", context.DeadlineExceeded)
	if got := services.Classify(tagged); got != tagged {
		t.Fatalf("expected tagged error unchanged, got %v", got)
	}
}

func TestExitCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, services.ExitSuccess},
		{"invalid url", services.Wrap(services.ErrInvalidURL, "resolving", "", "bad host", nil), services.ExitInvalidURL},
		{"video unavailable", services.ErrVideoUnavailable, services.ExitVideoUnavailable},
		{"transcript unavailable", services.ErrTranscriptUnavailable, services.ExitTranscriptUnavailable},
		{"render failure", services.ErrRenderFailure, services.ExitRenderFailure},
		{"timeout", services.ErrTimeout, services.ExitTimeout},
		{"bare deadline", context.DeadlineExceeded, services.ExitTimeout},
		{"unclassified", errors.New("other"), services.ExitFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.ExitCode(tc.err); got != tc.want {
				t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
