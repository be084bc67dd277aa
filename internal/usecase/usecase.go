// Package usecase implements the four media operations exposed to the agent
// loop: catalog listing, segment sampling, segment saving and probing. All
// engine access goes through ports.MediaEngine; nothing here touches pixels.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/forPelevin/vidagent/internal/domain/catalog"
	"github.com/forPelevin/vidagent/internal/domain/sampling"
	"github.com/forPelevin/vidagent/internal/ports"
	"github.com/forPelevin/vidagent/internal/types"
)

// ErrSourceNotFound marks a request naming a file that does not exist in the
// video directory.
var ErrSourceNotFound = errors.New("source video not found")

// DefaultSavedClipsDir receives trimmed segments when the caller does not
// pick an output directory.
const DefaultSavedClipsDir = "saved_clips"

// savedExtensions are the output containers accepted verbatim; anything else
// gets .mp4 appended.
var savedExtensions = map[string]struct{}{
	".mp4": {},
	".mov": {},
	".avi": {},
	".mkv": {},
}

type Deps struct {
	Engine ports.MediaEngine
	Log    hclog.Logger

	// EngineTimeout bounds each engine invocation. Zero means no bound, which
	// matches the engine's own blocking behavior.
	EngineTimeout time.Duration
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Log == nil {
		d.Log = hclog.NewNullLogger()
	}
	return Usecase{d: d}
}

type SampleInput struct {
	Dir       string
	FileName  string
	Start     string
	End       string
	NumFrames int
	Quality   types.Quality
}

// SampleSegment extracts frames and one audio slice for a time range.
// Fewer frames than requested, zero frames, or absent audio are success
// outcomes; only validation and engine invocation failures are errors.
func (u Usecase) SampleSegment(ctx context.Context, in SampleInput) (types.SampleResult, error) {
	path := filepath.Join(in.Dir, in.FileName)
	if _, err := os.Stat(path); err != nil {
		return types.SampleResult{}, fmt.Errorf("%w: %q in %q", ErrSourceNotFound, in.FileName, in.Dir)
	}

	meta, err := u.probe(ctx, path)
	if err != nil {
		return types.SampleResult{}, err
	}

	span, err := sampling.ValidateRange(in.Start, in.End, meta, false)
	if err != nil {
		return types.SampleResult{}, err
	}

	quality := in.Quality
	if quality == "" {
		quality = types.QualityLow
	}
	plan := sampling.PlanFrames(span, in.NumFrames, quality, meta)
	u.d.Log.Info("sampling segment", "file", in.FileName,
		"start", span.Start, "end", span.End, "frames", plan.Count, "quality", string(quality))

	ectx, cancel := u.engineCtx(ctx)
	defer cancel()

	frames, err := u.d.Engine.ExtractFrames(ectx, path, plan)
	if err != nil {
		return types.SampleResult{}, fmt.Errorf("extract frames from %q: %w", in.FileName, err)
	}

	var audio []byte
	if meta.HasAudio && span.Duration() > 0 {
		audio, err = u.d.Engine.ExtractAudio(ectx, path, span)
		if err != nil {
			return types.SampleResult{}, fmt.Errorf("extract audio from %q: %w", in.FileName, err)
		}
	}

	res := types.SampleResult{Frames: frames, Audio: audio}
	if len(frames) == 0 && len(audio) == 0 {
		res.Note = "No media was extracted for the requested segment (it might be too short, empty, " +
			"or have no audio track). There is nothing to describe from this segment."
	} else {
		res.Note = fmt.Sprintf("Media has been extracted at %q quality. "+
			"Please analyze the provided image and audio parts and describe their content.", quality)
	}
	return res, nil
}

type SaveInput struct {
	Dir            string
	SourceFileName string
	Start          string
	End            string
	OutputName     string

	// OutDir defaults to DefaultSavedClipsDir when empty.
	OutDir string
}

// SaveSegment re-encodes a strictly positive time range of the source into a
// new standalone file and returns its absolute path. Existing files at the
// destination are overwritten.
func (u Usecase) SaveSegment(ctx context.Context, in SaveInput) (types.SavedSegment, error) {
	src := filepath.Join(in.Dir, in.SourceFileName)
	if _, err := os.Stat(src); err != nil {
		return types.SavedSegment{}, fmt.Errorf("%w: %q in %q", ErrSourceNotFound, in.SourceFileName, in.Dir)
	}

	meta, err := u.probe(ctx, src)
	if err != nil {
		return types.SavedSegment{}, err
	}

	span, err := sampling.ValidateRange(in.Start, in.End, meta, true)
	if err != nil {
		return types.SavedSegment{}, err
	}

	outDir := in.OutDir
	if outDir == "" {
		outDir = DefaultSavedClipsDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return types.SavedSegment{}, fmt.Errorf("create output directory %q: %w", outDir, err)
	}

	outPath, err := filepath.Abs(filepath.Join(outDir, normalizeOutputName(in.OutputName)))
	if err != nil {
		return types.SavedSegment{}, err
	}

	u.d.Log.Info("saving segment", "source", in.SourceFileName,
		"start", span.Start, "end", span.End, "out", outPath)

	ectx, cancel := u.engineCtx(ctx)
	defer cancel()
	if err := u.d.Engine.EncodeSegment(ectx, src, span, outPath); err != nil {
		return types.SavedSegment{}, fmt.Errorf("encode segment of %q: %w", in.SourceFileName, err)
	}

	return types.SavedSegment{OutputPath: outPath, SourcePath: src, Span: span}, nil
}

// ListCatalog renders the metadata-annotated listing of dir. Per-file probe
// failures degrade single entries; a missing directory is a hard error.
func (u Usecase) ListCatalog(ctx context.Context, dir string) (string, error) {
	u.d.Log.Info("listing catalog", "dir", dir)
	return catalog.Build(ctx, dir, u.probe)
}

// Probe returns fresh metadata for one file.
func (u Usecase) Probe(ctx context.Context, path string) (types.VideoMetadata, error) {
	return u.probe(ctx, path)
}

func (u Usecase) probe(ctx context.Context, path string) (types.VideoMetadata, error) {
	ectx, cancel := u.engineCtx(ctx)
	defer cancel()
	meta, err := u.d.Engine.Probe(ectx, path)
	if err != nil {
		return types.VideoMetadata{}, fmt.Errorf("probe %q: %w", filepath.Base(path), err)
	}
	return meta, nil
}

func (u Usecase) engineCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.d.EngineTimeout > 0 {
		return context.WithTimeout(ctx, u.d.EngineTimeout)
	}
	return context.WithCancel(ctx)
}

func normalizeOutputName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := savedExtensions[ext]; ok {
		return name
	}
	return name + ".mp4"
}
