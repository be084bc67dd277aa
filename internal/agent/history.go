package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/forPelevin/vidagent/internal/types"
)

// serializedPart is the on-disk shape of one message part. Binary media is
// summarized (mime type and byte count) rather than embedded.
type serializedPart struct {
	Type      string         `json:"type"`
	Text      string         `json:"text,omitempty"`
	MimeType  string         `json:"mime_type,omitempty"`
	DataBytes int            `json:"data_length_bytes,omitempty"`
	ToolCall  map[string]any `json:"tool_call,omitempty"`
}

type serializedMessage struct {
	Role  string           `json:"role"`
	Parts []serializedPart `json:"parts"`
}

// SaveHistory writes the conversation to a timestamped JSON file under dir
// and returns the file path.
func SaveHistory(history []types.ChatMessage, dir string) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("conversation history is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create conversations directory %q: %w", dir, err)
	}

	out := make([]serializedMessage, 0, len(history))
	for _, m := range history {
		out = append(out, serializeMessage(m))
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal history: %w", err)
	}

	name := fmt.Sprintf("conversation_%s.json", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write history: %w", err)
	}
	return path, nil
}

func serializeMessage(m types.ChatMessage) serializedMessage {
	sm := serializedMessage{Role: m.Role}
	if m.Text != "" {
		sm.Parts = append(sm.Parts, serializedPart{Type: "text", Text: m.Text})
	}
	for _, img := range m.Images {
		sm.Parts = append(sm.Parts, serializedPart{
			Type:      "inline_data",
			MimeType:  "image/png",
			DataBytes: len(img),
		})
	}
	if len(m.Audio) > 0 {
		sm.Parts = append(sm.Parts, serializedPart{
			Type:      "inline_data",
			MimeType:  "audio/wav",
			DataBytes: len(m.Audio),
		})
	}
	for _, tc := range m.ToolCalls {
		sm.Parts = append(sm.Parts, serializedPart{
			Type: "tool_call",
			ToolCall: map[string]any{
				"id":   tc.ID,
				"name": tc.Name,
				"args": tc.Args,
			},
		})
	}
	return sm
}
