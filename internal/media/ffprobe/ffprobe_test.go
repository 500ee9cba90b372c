package ffprobe

import (
	"testing"
)

const samplePayload = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "channels": 2}
  ],
  "format": {
    "filename": "input.mp4",
    "nb_streams": 2,
    "duration": "10.500000",
    "size": "1048576",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2"
  }
}`

func TestDecodeAndHelpers(t *testing.T) {
	result, err := Decode([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := result.VideoStreamCount(); got != 1 {
		t.Fatalf("VideoStreamCount = %d, want 1", got)
	}
	if got := result.AudioStreamCount(); got != 1 {
		t.Fatalf("AudioStreamCount = %d, want 1", got)
	}
	if got := result.DurationSeconds(); got != 10.5 {
		t.Fatalf("DurationSeconds = %v, want 10.5", got)
	}
	if got := result.ContainerExtension(); got != "mp4" {
		t.Fatalf("ContainerExtension = %q, want mp4", got)
	}
}

func TestContainerExtension(t *testing.T) {
	cases := []struct {
		formatName string
		want       string
	}{
		{"matroska,webm", "mkv"},
		{"webm", "webm"},
		{"avi", "avi"},
		{"mpegts", ""},
		{"", ""},
	}
	for _, tc := range cases {
		result := Result{Format: Format{FormatName: tc.formatName}}
		if got := result.ContainerExtension(); got != tc.want {
			t.Fatalf("ContainerExtension(%q) = %q, want %q", tc.formatName, got, tc.want)
		}
	}
}

func TestDurationSecondsHandlesGarbage(t *testing.T) {
	result := Result{Format: Format{Duration: "not-a-number"}}
	if got := result.DurationSeconds(); got != 0 {
		t.Fatalf("DurationSeconds = %v, want 0", got)
	}
	result = Result{Format: Format{Duration: ""}}
	if got := result.DurationSeconds(); got != 0 {
		t.Fatalf("DurationSeconds = %v, want 0 for empty", got)
	}
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	if _, err := Decode([]byte("{nope")); err == nil {
		t.Fatal("expected decode error")
	}
}
