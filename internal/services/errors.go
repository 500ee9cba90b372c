package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidURL            = errors.New("invalid url")
	ErrVideoUnavailable      = errors.New("video unavailable")
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrRenderFailure         = errors.New("render failure")
	ErrTimeout               = errors.New("timeout")
	ErrConfiguration         = errors.New("configuration error")
	ErrExternalTool          = errors.New("external tool error")
)

// Exit codes reported by the CLI, one per terminal failure class.
const (
	ExitSuccess               = 0
	ExitFailure               = 1
	ExitInvalidURL            = 2
	ExitVideoUnavailable      = 3
	ExitTranscriptUnavailable = 4
	ExitRenderFailure         = 5
	ExitTimeout               = 6
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps context cancellation to the timeout sentinel so deadline
// expiry anywhere in the pipeline reports as a Timeout rather than the
// stage-specific failure it interrupted.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

// ExitCode maps a classified error to the process exit code the CLI reports.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidURL):
		return ExitInvalidURL
	case errors.Is(err, ErrVideoUnavailable):
		return ExitVideoUnavailable
	case errors.Is(err, ErrTranscriptUnavailable):
		return ExitTranscriptUnavailable
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ExitTimeout
	case errors.Is(err, ErrRenderFailure):
		return ExitRenderFailure
	default:
		return ExitFailure
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
