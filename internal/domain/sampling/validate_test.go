package sampling

import (
	"errors"
	"testing"

	"github.com/forPelevin/vidagent/internal/domain/timecode"
	"github.com/forPelevin/vidagent/internal/types"
)

func TestValidateRange_Table(t *testing.T) {
	t.Parallel()

	meta := types.VideoMetadata{DurationSec: 10.0}

	tests := []struct {
		name    string
		start   string
		end     string
		strict  bool
		want    types.TimeRange
		wantErr error
	}{
		{
			name:  "plain range",
			start: "00:00:02", end: "00:00:05",
			want: types.TimeRange{Start: 2, End: 5},
		},
		{
			name:  "end clamped to duration",
			start: "00:00:08", end: "00:00:15",
			want: types.TimeRange{Start: 8, End: 10},
		},
		{
			name:  "end clamped in strict mode keeps positive duration",
			start: "00:00:08", end: "00:00:15",
			strict: true,
			want:   types.TimeRange{Start: 8, End: 10},
		},
		{
			name:  "zero-length allowed when relaxed",
			start: "00:00:02", end: "00:00:02",
			want: types.TimeRange{Start: 2, End: 2},
		},
		{
			name:  "zero-length rejected when strict",
			start: "00:00:02", end: "00:00:02",
			strict:  true,
			wantErr: ErrInvalidOrder,
		},
		{
			name:  "end before start",
			start: "00:00:05", end: "00:00:02",
			wantErr: ErrInvalidOrder,
		},
		{
			name:  "start at duration",
			start: "00:00:10", end: "00:00:12",
			wantErr: ErrStartBeyondDuration,
		},
		{
			name:  "start beyond duration",
			start: "00:00:11", end: "00:00:12",
			wantErr: ErrStartBeyondDuration,
		},
		{
			name:  "bad start timecode",
			start: "abc", end: "00:00:05",
			wantErr: timecode.ErrParse,
		},
		{
			name:  "bad end timecode",
			start: "00:00:01", end: "1:2:3:4",
			wantErr: timecode.ErrParse,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ValidateRange(tt.start, tt.end, meta, tt.strict)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateRange_FractionalClamp(t *testing.T) {
	t.Parallel()

	meta := types.VideoMetadata{DurationSec: 9.5}
	got, err := ValidateRange("00:00:08.250", "00:00:15", meta, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Start != 8.25 || got.End != 9.5 {
		t.Fatalf("got %+v, want [8.25, 9.5]", got)
	}
}
