package ports

import (
	"context"

	"github.com/forPelevin/vidagent/internal/types"
)

// MediaEngine is the external decode/encode capability behind every media
// operation. The one real implementation shells out to ffmpeg; tests inject
// fakes and assert on the plans and spans they receive.
type MediaEngine interface {
	// Probe returns fresh metadata for path, or an error when the container
	// is unreadable. A readable container without a video stream probes with
	// zeroed video fields.
	Probe(ctx context.Context, path string) (types.VideoMetadata, error)

	// ExtractFrames decodes the frames described by plan as PNG buffers, in
	// order. Fewer frames than planned is success; an empty slice is success.
	ExtractFrames(ctx context.Context, path string, plan types.FramePlan) ([][]byte, error)

	// ExtractAudio decodes one mono WAV covering span. A nil result with nil
	// error means the engine produced no audio.
	ExtractAudio(ctx context.Context, path string, span types.TimeRange) ([]byte, error)

	// EncodeSegment re-encodes span of src into a new standalone file at
	// outPath, overwriting any existing file.
	EncodeSegment(ctx context.Context, src string, span types.TimeRange, outPath string) error
}

// ChatModel is one turn of the conversational model: given the history and
// the declared tools, it answers with text or tool calls.
type ChatModel interface {
	Complete(ctx context.Context, msgs []types.ChatMessage, tools []types.ToolSpec) (types.ChatTurn, error)
}
