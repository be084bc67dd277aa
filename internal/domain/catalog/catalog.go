// Package catalog enumerates the video files in a directory and renders a
// metadata-annotated plaintext listing for the model.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forPelevin/vidagent/internal/domain/timecode"
	"github.com/forPelevin/vidagent/internal/types"
)

// ErrMissingDirectory marks a catalog directory that does not exist or is
// not a directory. An existing empty directory is not an error.
var ErrMissingDirectory = errors.New("video directory not found")

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".flv":  {},
	".wmv":  {},
	".webm": {},
}

// IsVideo reports whether the file name carries a known video extension,
// case-insensitively.
func IsVideo(name string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ProbeFunc retrieves metadata for one file. Probe failures degrade the
// single entry instead of aborting the listing.
type ProbeFunc func(ctx context.Context, path string) (types.VideoMetadata, error)

// Build lists the video files under dir, sorted by name, each annotated with
// probed metadata. Non-video files and subdirectories are skipped.
func Build(ctx context.Context, dir string, probe ProbeFunc) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %q", ErrMissingDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read directory %q: %w", dir, err)
	}

	var lines []string
	for _, e := range entries {
		if e.IsDir() || !IsVideo(e.Name()) {
			continue
		}
		lines = append(lines, renderEntry(ctx, dir, e.Name(), probe))
	}

	if len(lines) == 0 {
		return fmt.Sprintf("No video files found in directory %q.", dir), nil
	}
	header := fmt.Sprintf("Video files in %q:\n", filepath.Base(dir))
	return header + strings.Join(lines, "\n\n"), nil
}

func renderEntry(ctx context.Context, dir, name string, probe ProbeFunc) string {
	path := filepath.Join(dir, name)
	meta, err := probe(ctx, path)
	if err != nil {
		return fmt.Sprintf("- %s:\n    Metadata: unavailable (%v)", name, err)
	}

	size := "N/A"
	if fi, err := os.Stat(path); err == nil {
		size = fmt.Sprintf("%.2f MB", float64(fi.Size())/(1024*1024))
	}
	return fmt.Sprintf("- %s:\n    Duration: %s\n    Resolution: %dx%d\n    FPS: %.2f\n    Size: %s",
		name, timecode.Format(meta.DurationSec), meta.Width, meta.Height, meta.FPS, size)
}
