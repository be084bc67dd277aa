package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forPelevin/vidagent/internal/types"
)

func TestIsVideo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"clip.mp4", true},
		{"CLIP.MP4", true},
		{"movie.MkV", true},
		{"notes.txt", false},
		{"archive.tar.gz", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsVideo(tt.name); got != tt.want {
			t.Fatalf("IsVideo(%q) = %t, want %t", tt.name, got, tt.want)
		}
	}
}

func TestBuild_ListsVideosWithMetadata(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.mp4", "a.mp4", "broken.mkv", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	probe := func(_ context.Context, path string) (types.VideoMetadata, error) {
		if strings.Contains(path, "broken") {
			return types.VideoMetadata{}, errors.New("unreadable container")
		}
		return types.VideoMetadata{DurationSec: 90, Width: 1920, Height: 1080, FPS: 29.97, HasAudio: true}, nil
	}

	out, err := Build(context.Background(), dir, probe)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !strings.Contains(out, "- a.mp4:") || !strings.Contains(out, "- b.mp4:") {
		t.Fatalf("expected both videos listed, got:\n%s", out)
	}
	if strings.Index(out, "- a.mp4:") > strings.Index(out, "- b.mp4:") {
		t.Fatalf("expected entries sorted by name, got:\n%s", out)
	}
	if !strings.Contains(out, "Duration: 00:01:30") {
		t.Fatalf("expected formatted duration, got:\n%s", out)
	}
	if !strings.Contains(out, "Resolution: 1920x1080") || !strings.Contains(out, "FPS: 29.97") {
		t.Fatalf("expected resolution and fps, got:\n%s", out)
	}
	if !strings.Contains(out, "- broken.mkv:") || !strings.Contains(out, "Metadata: unavailable") {
		t.Fatalf("expected degraded entry for failed probe, got:\n%s", out)
	}
	if strings.Contains(out, "notes.txt") || strings.Contains(out, "sub.mp4") {
		t.Fatalf("expected non-videos and directories skipped, got:\n%s", out)
	}
}

func TestBuild_EmptyDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	probe := func(_ context.Context, _ string) (types.VideoMetadata, error) {
		t.Fatal("probe must not be called for an empty directory")
		return types.VideoMetadata{}, nil
	}

	out, err := Build(context.Background(), dir, probe)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, "No video files found") {
		t.Fatalf("expected empty-directory message, got: %q", out)
	}
}

func TestBuild_MissingDirectory(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope")
	_, err := Build(context.Background(), missing, nil)
	if !errors.Is(err, ErrMissingDirectory) {
		t.Fatalf("expected ErrMissingDirectory, got %v", err)
	}
}

func TestBuild_FileInsteadOfDirectory(t *testing.T) {
	t.Parallel()

	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Build(context.Background(), f, nil); !errors.Is(err, ErrMissingDirectory) {
		t.Fatalf("expected ErrMissingDirectory, got %v", err)
	}
}

func ExampleBuild() {
	dir, _ := os.MkdirTemp("", "catalog")
	defer os.RemoveAll(dir)
	_ = os.WriteFile(filepath.Join(dir, "demo.mp4"), []byte("x"), 0o644)

	out, _ := Build(context.Background(), dir, func(_ context.Context, _ string) (types.VideoMetadata, error) {
		return types.VideoMetadata{DurationSec: 5, Width: 640, Height: 360, FPS: 25}, nil
	})
	fmt.Println(strings.Contains(out, "demo.mp4"))
	// Output: true
}
