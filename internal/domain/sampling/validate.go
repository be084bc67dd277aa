// Package sampling holds the pure range-validation and frame-scheduling
// policy shared by the view and save operations. It performs no IO; the
// engine adapter executes whatever plan comes out of here.
package sampling

import (
	"errors"
	"fmt"

	"github.com/forPelevin/vidagent/internal/domain/timecode"
	"github.com/forPelevin/vidagent/internal/types"
)

var (
	ErrNegativeTime        = errors.New("times must be non-negative")
	ErrInvalidOrder        = errors.New("end time must not be before start time")
	ErrStartBeyondDuration = errors.New("start time is at or beyond the video duration")
	ErrRangeCollapsed      = errors.New("range collapsed after clamping to video duration")
)

// ValidateRange parses raw start/end timecodes and checks them against the
// probed metadata, clamping the end to the source duration. In strict mode
// (trimming) the range must have positive duration even before clamping; in
// relaxed mode (sampling) start == end is legal and means a single instant.
func ValidateRange(startRaw, endRaw string, meta types.VideoMetadata, strict bool) (types.TimeRange, error) {
	start, err := timecode.Parse(startRaw)
	if err != nil {
		return types.TimeRange{}, fmt.Errorf("start time: %w", err)
	}
	end, err := timecode.Parse(endRaw)
	if err != nil {
		return types.TimeRange{}, fmt.Errorf("end time: %w", err)
	}

	if start < 0 || end < 0 {
		return types.TimeRange{}, ErrNegativeTime
	}
	if end < start || (strict && end == start) {
		return types.TimeRange{}, fmt.Errorf("%w: start %q (%.2fs), end %q (%.2fs)",
			ErrInvalidOrder, startRaw, start, endRaw, end)
	}
	if start >= meta.DurationSec {
		return types.TimeRange{}, fmt.Errorf("%w: start %q (%.2fs), duration %.2fs",
			ErrStartBeyondDuration, startRaw, start, meta.DurationSec)
	}

	if end > meta.DurationSec {
		end = meta.DurationSec
	}
	if strict && end <= start {
		return types.TimeRange{}, fmt.Errorf("%w: start %.2fs, clamped end %.2fs",
			ErrRangeCollapsed, start, end)
	}

	return types.TimeRange{Start: start, End: end}, nil
}
