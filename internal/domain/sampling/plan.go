package sampling

import "github.com/forPelevin/vidagent/internal/types"

const (
	// DefaultFrameCount is used when the caller omits a count or passes <= 0.
	DefaultFrameCount = 3

	// Ranges shorter than this are treated as a single instant.
	singleInstantEpsilon = 0.001
)

// PlanFrames resolves a validated span plus caller preferences into the
// schedule the engine executes. The decision table, in order:
//
//  1. count == 1 or a (near) zero-length span: one frame at span.Start.
//  2. otherwise: count frames decoded at count/duration fps over the span.
//
// Scaling is downscale-only; the plan carries width 0 when the tier's
// target is not below the probed source width.
func PlanFrames(span types.TimeRange, count int, quality types.Quality, meta types.VideoMetadata) types.FramePlan {
	if count <= 0 {
		count = DefaultFrameCount
	}
	width := scaleWidth(quality, meta)

	if count == 1 || span.Duration() < singleInstantEpsilon {
		return types.FramePlan{
			Span:          span,
			Count:         1,
			ScaleWidth:    width,
			SingleInstant: true,
		}
	}

	return types.FramePlan{
		Span:       span,
		Count:      count,
		FPSFilter:  float64(count) / span.Duration(),
		ScaleWidth: width,
	}
}

func scaleWidth(quality types.Quality, meta types.VideoMetadata) int {
	target := quality.TargetWidth()
	if meta.Width > 0 && target < meta.Width {
		return target
	}
	return 0
}
