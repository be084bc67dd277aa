package ffmpeg

import (
	"strings"
	"testing"

	"github.com/forPelevin/vidagent/internal/types"
)

func TestBuildFrameArgs_Uniform(t *testing.T) {
	t.Parallel()

	plan := types.FramePlan{
		Span:       types.TimeRange{Start: 8, End: 10},
		Count:      3,
		FPSFilter:  1.5,
		ScaleWidth: 640,
	}
	args := buildFrameArgs("in.mp4", plan, "/tmp/frame_%04d.png")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-ss 8.000",
		"-to 10.000",
		"-i in.mp4",
		"-vf fps=1.500000,scale=640:-2",
		"-pix_fmt rgb24",
		"-start_number 1",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected args to contain %q, got: %s", want, joined)
		}
	}
	if strings.Contains(joined, "-vframes") {
		t.Fatalf("uniform plan must not cap output frames, got: %s", joined)
	}
}

func TestBuildFrameArgs_SingleInstant(t *testing.T) {
	t.Parallel()

	plan := types.FramePlan{
		Span:          types.TimeRange{Start: 2, End: 2},
		Count:         1,
		SingleInstant: true,
	}
	args := buildFrameArgs("in.mp4", plan, "/tmp/frame_%04d.png")
	joined := strings.Join(args, " ")

	if !strings.Contains(joined, "-ss 2.000") || !strings.Contains(joined, "-vframes 1") {
		t.Fatalf("expected single-instant seek and frame cap, got: %s", joined)
	}
	if strings.Contains(joined, "-to") || strings.Contains(joined, "fps=") {
		t.Fatalf("single-instant plan must ignore the end bound, got: %s", joined)
	}
	if strings.Contains(joined, "scale=") {
		t.Fatalf("no scale filter expected for width 0, got: %s", joined)
	}
}

func TestBuildFrameArgs_ScaleOnlyFilter(t *testing.T) {
	t.Parallel()

	plan := types.FramePlan{
		Span:          types.TimeRange{Start: 1, End: 1},
		Count:         1,
		ScaleWidth:    1280,
		SingleInstant: true,
	}
	args := buildFrameArgs("in.mp4", plan, "/tmp/frame_%04d.png")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-vf scale=1280:-2") {
		t.Fatalf("expected lone scale filter, got: %s", joined)
	}
}

func TestBuildAudioArgs(t *testing.T) {
	t.Parallel()

	args := buildAudioArgs("in.mp4", types.TimeRange{Start: 1, End: 3.5}, 22050, "/tmp/a.wav")
	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-ss 1.000",
		"-to 3.500",
		"-vn",
		"-acodec pcm_s16le",
		"-ac 1",
		"-ar 22050",
		"-f wav",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected args to contain %q, got: %s", want, joined)
		}
	}
}

func TestBuildEncodeArgs(t *testing.T) {
	t.Parallel()

	args := buildEncodeArgs("in.mp4", types.TimeRange{Start: 2, End: 5}, "/out/clip.mp4")
	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-y",
		"-ss 2.000",
		"-to 5.000",
		"-c:v libx264",
		"-c:a aac",
		"/out/clip.mp4",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected args to contain %q, got: %s", want, joined)
		}
	}
	if strings.Contains(joined, "-c copy") {
		t.Fatalf("trim must re-encode, not stream-copy: %s", joined)
	}
}

func TestParseProbePayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want types.VideoMetadata
	}{
		{
			name: "video and audio",
			raw: `{
				"format": {"duration": "125.500000"},
				"streams": [
					{"codec_type": "video", "width": 1920, "height": 1080, "avg_frame_rate": "30000/1001"},
					{"codec_type": "audio"}
				]
			}`,
			want: types.VideoMetadata{DurationSec: 125.5, Width: 1920, Height: 1080, FPS: 30000.0 / 1001.0, HasAudio: true},
		},
		{
			name: "no audio stream",
			raw: `{
				"format": {"duration": "10.0"},
				"streams": [{"codec_type": "video", "width": 640, "height": 360, "avg_frame_rate": "25"}]
			}`,
			want: types.VideoMetadata{DurationSec: 10, Width: 640, Height: 360, FPS: 25},
		},
		{
			name: "no video stream still probes",
			raw: `{
				"format": {"duration": "30.0"},
				"streams": [{"codec_type": "audio"}]
			}`,
			want: types.VideoMetadata{DurationSec: 30, HasAudio: true},
		},
		{
			name: "zero denominator frame rate",
			raw: `{
				"format": {"duration": "1.0"},
				"streams": [{"codec_type": "video", "width": 10, "height": 10, "avg_frame_rate": "0/0"}]
			}`,
			want: types.VideoMetadata{DurationSec: 1, Width: 10, Height: 10},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseProbePayload([]byte(tt.raw))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseProbePayload_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := parseProbePayload([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if _, err := parseProbePayload([]byte(`{"format":{"duration":"abc"}}`)); err == nil {
		t.Fatal("expected error for unparsable duration")
	}
}
