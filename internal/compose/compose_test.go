package compose

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"captionburn/internal/overlay"
	"captionburn/internal/services"
)

func writeFakeVideo(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "input.mp4")
	if err := os.WriteFile(path, []byte("fake video bytes"), 0o644); err != nil {
		t.Fatalf("write fake video: %v", err)
	}
	return path
}

func TestComposeInvokesFFmpegAndRenames(t *testing.T) {
	dir := t.TempDir()
	video := writeFakeVideo(t, dir)
	output := filepath.Join(dir, "out", "final.mp4")

	engine := NewEngine(nil, nil)
	var gotArgs []string
	engine.WithCommandRunner(func(ctx context.Context, binary string, args ...string) error {
		gotArgs = args
		// The runner stands in for ffmpeg: produce the temp output.
		return os.WriteFile(args[len(args)-1], []byte("rendered"), 0o644)
	})

	result, err := engine.Compose(context.Background(), Request{
		VideoPath:   video,
		Descriptors: []overlay.Descriptor{{Lines: []string{"hi"}, Start: 0, End: 1}},
		Style:       testStyle(),
		WorkDir:     dir,
		OutputPath:  output,
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if result.OutputPath != output {
		t.Fatalf("unexpected output path %q", result.OutputPath)
	}
	if result.OverlayCount != 1 {
		t.Fatalf("unexpected overlay count %d", result.OverlayCount)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected output file: %v", err)
	}

	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "-c:a copy") {
		t.Fatalf("expected audio passthrough, args: %s", joined)
	}
	if !strings.Contains(joined, "-vf ass=") {
		t.Fatalf("expected ass filter, args: %s", joined)
	}
	tmpArg := gotArgs[len(gotArgs)-1]
	if filepath.Ext(tmpArg) != ".mp4" {
		t.Fatalf("temp output should keep container extension, got %q", tmpArg)
	}
	if filepath.Base(tmpArg) == "final.mp4" {
		t.Fatal("ffmpeg must not write the requested path directly")
	}

	// The script referenced by the filter must exist before ffmpeg ran.
	if _, err := os.Stat(result.ScriptPath); err != nil {
		t.Fatalf("expected overlay script: %v", err)
	}
}

func TestComposeFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	video := writeFakeVideo(t, dir)
	output := filepath.Join(dir, "final.mp4")

	engine := NewEngine(nil, nil)
	engine.WithCommandRunner(func(ctx context.Context, binary string, args ...string) error {
		// Simulate ffmpeg dying after writing a partial temp file.
		_ = os.WriteFile(args[len(args)-1], []byte("partial"), 0o644)
		return errors.New("encoder exploded")
	})

	_, err := engine.Compose(context.Background(), Request{
		VideoPath:   video,
		Descriptors: []overlay.Descriptor{{Lines: []string{"hi"}, Start: 0, End: 1}},
		Style:       testStyle(),
		WorkDir:     dir,
		OutputPath:  output,
	})
	if !errors.Is(err, services.ErrRenderFailure) {
		t.Fatalf("expected render failure, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Fatalf("output path must not exist after failure, stat err = %v", statErr)
	}
	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".burn-") {
			t.Fatalf("temp file %q left behind", entry.Name())
		}
	}
}

func TestComposeEmptyOverlaysCopiesSource(t *testing.T) {
	dir := t.TempDir()
	video := writeFakeVideo(t, dir)
	output := filepath.Join(dir, "final.mp4")

	engine := NewEngine(nil, nil)
	engine.WithCommandRunner(func(ctx context.Context, binary string, args ...string) error {
		t.Fatal("ffmpeg must not run for an empty overlay set")
		return nil
	})

	result, err := engine.Compose(context.Background(), Request{
		VideoPath:  video,
		WorkDir:    dir,
		OutputPath: output,
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	data, err := os.ReadFile(result.OutputPath)
	if err != nil || string(data) != "fake video bytes" {
		t.Fatalf("expected source copied unchanged, got %q err=%v", data, err)
	}
}

func TestComposeRejectsMissingVideo(t *testing.T) {
	dir := t.TempDir()
	engine := NewEngine(nil, nil)
	_, err := engine.Compose(context.Background(), Request{
		VideoPath:  filepath.Join(dir, "nope.mp4"),
		WorkDir:    dir,
		OutputPath: filepath.Join(dir, "out.mp4"),
	})
	if !errors.Is(err, services.ErrRenderFailure) {
		t.Fatalf("expected render failure, got %v", err)
	}
}

func TestComposeRejectsExtensionlessOutput(t *testing.T) {
	dir := t.TempDir()
	video := writeFakeVideo(t, dir)
	engine := NewEngine(nil, nil)
	_, err := engine.Compose(context.Background(), Request{
		VideoPath:  video,
		WorkDir:    dir,
		OutputPath: filepath.Join(dir, "no_extension"),
	})
	if !errors.Is(err, services.ErrRenderFailure) {
		t.Fatalf("expected render failure, got %v", err)
	}
}

func TestEscapeFilterValue(t *testing.T) {
	got := escapeFilterValue(`/tmp/it's:a,path`)
	want := `/tmp/it\'s\:a\,path`
	if got != want {
		t.Fatalf("escapeFilterValue = %q, want %q", got, want)
	}
}
