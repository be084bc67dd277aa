// Package ffmpeg implements ports.MediaEngine on top of the ffmpeg and
// ffprobe binaries. Every call is a one-shot subprocess; temporary decode
// artifacts live in per-call directories removed on all exit paths.
package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	ffmpeg_go "github.com/u2takey/ffmpeg-go"

	"github.com/forPelevin/vidagent/internal/types"
)

const (
	defaultSampleRate = 22050
	probeTimeout      = 30 * time.Second
)

type Adapter struct {
	ffmpeg     string
	sampleRate int
	log        hclog.Logger
}

func New(ffmpegPath string, sampleRate int, log hclog.Logger) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Adapter{ffmpeg: ffmpegPath, sampleRate: sampleRate, log: log}
}

// probePayload mirrors the ffprobe -print_format json output.
type probePayload struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
	} `json:"streams"`
}

func (a *Adapter) Probe(ctx context.Context, path string) (types.VideoMetadata, error) {
	timeout := probeTimeout
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}
	raw, err := ffmpeg_go.ProbeWithTimeout(path, timeout, nil)
	if err != nil {
		return types.VideoMetadata{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	meta, err := parseProbePayload([]byte(raw))
	if err != nil {
		return types.VideoMetadata{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	a.log.Debug("probed source", "path", path, "meta", meta.String())
	return meta, nil
}

func parseProbePayload(raw []byte) (types.VideoMetadata, error) {
	var p probePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return types.VideoMetadata{}, fmt.Errorf("parse probe output: %w", err)
	}

	var meta types.VideoMetadata
	if p.Format.Duration != "" {
		d, err := strconv.ParseFloat(p.Format.Duration, 64)
		if err != nil {
			return types.VideoMetadata{}, fmt.Errorf("parse duration %q: %w", p.Format.Duration, err)
		}
		meta.DurationSec = d
	}
	for _, s := range p.Streams {
		switch s.CodecType {
		case "video":
			if meta.Width == 0 {
				meta.Width = s.Width
				meta.Height = s.Height
				meta.FPS = parseRational(s.AvgFrameRate)
			}
		case "audio":
			meta.HasAudio = true
		}
	}
	return meta, nil
}

// parseRational converts ffprobe frame rates like "30000/1001" or "25".
func parseRational(s string) float64 {
	if s == "" {
		return 0
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0
		}
		return n / d
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func (a *Adapter) ExtractFrames(ctx context.Context, path string, plan types.FramePlan) ([][]byte, error) {
	tmpDir, err := os.MkdirTemp("", "vidagent-frames-")
	if err != nil {
		return nil, fmt.Errorf("create frame workdir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pattern := filepath.Join(tmpDir, "frame_%04d.png")
	args := buildFrameArgs(path, plan, pattern)

	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	if b, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg extract frames: %w\n%s", err, string(b))
	}

	frames := make([][]byte, 0, plan.Count)
	for i := 1; i <= plan.Count; i++ {
		b, err := os.ReadFile(filepath.Join(tmpDir, fmt.Sprintf("frame_%04d.png", i)))
		if err != nil {
			// Short ranges can yield fewer decoded frames than planned.
			break
		}
		frames = append(frames, b)
	}
	a.log.Debug("extracted frames", "path", path, "planned", plan.Count, "got", len(frames))
	return frames, nil
}

func buildFrameArgs(src string, plan types.FramePlan, outPattern string) []string {
	args := []string{"-y", "-ss", fmtSeconds(plan.Span.Start)}
	if !plan.SingleInstant {
		args = append(args, "-to", fmtSeconds(plan.Span.End))
	}
	args = append(args, "-i", src)

	var filters []string
	if !plan.SingleInstant {
		filters = append(filters, "fps="+strconv.FormatFloat(plan.FPSFilter, 'f', 6, 64))
	}
	if plan.ScaleWidth > 0 {
		filters = append(filters, fmt.Sprintf("scale=%d:-2", plan.ScaleWidth))
	}
	if len(filters) > 0 {
		args = append(args, "-vf", strings.Join(filters, ","))
	}
	if plan.SingleInstant {
		args = append(args, "-vframes", "1")
	}
	return append(args,
		"-f", "image2",
		"-pix_fmt", "rgb24",
		"-start_number", "1",
		outPattern,
	)
}

func (a *Adapter) ExtractAudio(ctx context.Context, path string, span types.TimeRange) ([]byte, error) {
	tmp, err := os.CreateTemp("", "vidagent-audio-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create audio workfile: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	args := buildAudioArgs(path, span, a.sampleRate, tmpPath)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	if b, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}

	b, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read audio workfile: %w", err)
	}
	if len(b) == 0 {
		a.log.Debug("audio slice came back empty", "path", path)
		return nil, nil
	}
	return b, nil
}

func buildAudioArgs(src string, span types.TimeRange, sampleRate int, outPath string) []string {
	return []string{
		"-y",
		"-ss", fmtSeconds(span.Start),
		"-to", fmtSeconds(span.End),
		"-i", src,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-f", "wav",
		outPath,
	}
}

func (a *Adapter) EncodeSegment(ctx context.Context, src string, span types.TimeRange, outPath string) error {
	args := buildEncodeArgs(src, span, outPath)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	if b, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg encode segment: %w\n%s", err, string(b))
	}
	a.log.Debug("encoded segment", "src", src, "out", outPath,
		"start", span.Start, "end", span.End)
	return nil
}

// buildEncodeArgs re-encodes rather than stream-copies so cut points land on
// exact timestamps regardless of the source keyframe layout.
func buildEncodeArgs(src string, span types.TimeRange, outPath string) []string {
	return []string{
		"-y",
		"-ss", fmtSeconds(span.Start),
		"-to", fmtSeconds(span.End),
		"-i", src,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		outPath,
	}
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
