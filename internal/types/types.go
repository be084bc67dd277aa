package types

import "fmt"

// VideoMetadata is the result of one probe of a source file. It is built
// fresh per call and never cached. A readable container without a video
// stream probes with zeroed video fields rather than failing.
type VideoMetadata struct {
	DurationSec float64 `json:"duration_seconds"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FPS         float64 `json:"fps"`
	HasAudio    bool    `json:"has_audio"`
}

func (m VideoMetadata) String() string {
	return fmt.Sprintf("duration=%.2fs %dx%d fps=%.2f audio=%t",
		m.DurationSec, m.Width, m.Height, m.FPS, m.HasAudio)
}

// TimeRange is a validated, clamped span within a source file, in seconds.
type TimeRange struct {
	Start float64
	End   float64
}

func (r TimeRange) Duration() float64 {
	return r.End - r.Start
}

// Quality names a target output width for extracted frames. Frames are only
// ever downscaled toward the target; a tier wider than the source is a no-op.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// TargetWidth maps the tier to pixels. Unknown tiers fall back to low.
func (q Quality) TargetWidth() int {
	switch q {
	case QualityMedium:
		return 1280
	case QualityHigh:
		return 1920
	default:
		return 640
	}
}

// FramePlan is the fully resolved sampling schedule handed to the engine.
// A SingleInstant plan decodes exactly one frame at Span.Start and ignores
// Span.End; otherwise the engine decodes Count frames at FPSFilter over
// [Span.Start, Span.End). ScaleWidth of 0 means no scaling.
type FramePlan struct {
	Span          TimeRange
	Count         int
	FPSFilter     float64
	ScaleWidth    int
	SingleInstant bool
}

// SampleResult carries the media extracted for one view request. Zero frames
// and nil audio is a legal outcome, distinct from failure; Note is the
// human-readable status handed back to the model.
type SampleResult struct {
	Frames [][]byte
	Audio  []byte
	Note   string
}

// SavedSegment describes a trimmed clip written to disk. The file is an
// independent copy; its lifecycle is not tied to the source.
type SavedSegment struct {
	OutputPath string
	SourcePath string
	Span       TimeRange
}

// Chat types shared by the agent loop and the chat-model adapter.

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is one function invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ToolSpec declares one callable tool to the model. Parameters is a JSON
// Schema object.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ChatMessage is one conversation entry. Images and Audio hold raw PNG/WAV
// bytes attached to user messages; ToolCalls is set on assistant messages;
// ToolCallID ties a tool-role message back to the call it answers.
type ChatMessage struct {
	Role       string
	Text       string
	Images     [][]byte
	Audio      []byte
	ToolCalls  []ToolCall
	ToolCallID string
}

// ChatTurn is one model response: either plain text or tool calls.
type ChatTurn struct {
	Text      string
	ToolCalls []ToolCall
}
