// Package agent runs the conversation loop: it hands the history and tool
// schema to the chat model, executes the tool calls the model makes against
// the media use cases, and feeds results (including extracted media) back
// until the model answers in plain text.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/forPelevin/vidagent/internal/ports"
	"github.com/forPelevin/vidagent/internal/types"
	"github.com/forPelevin/vidagent/internal/usecase"
)

const maxToolIterations = 10

const systemPrompt = `You are an agentic video editor named Codec. When given a task, do everything possible to complete it without asking the user for clarification; only ask when absolutely necessary. This usually means making multiple tool calls, e.g. listing the videos first to find the exact file, then viewing it.

You have tools to:
- list video files,
- view segments of these videos,
- save segments of videos to new files.

When the 'view_video_segment' tool is used it first returns a status message; the image and audio data then arrive in a user message. Describe the visual content of all provided frames and the audible content of the audio segment before anything else, then suggest next steps.

When the 'save_video_segment' tool is used it returns a status message with the path of the saved file, or a failure. If a tool call fails, inform the user.`

// Tools is the media surface the agent dispatches to. usecase.Usecase
// satisfies it; tests inject fakes.
type Tools interface {
	ListCatalog(ctx context.Context, dir string) (string, error)
	SampleSegment(ctx context.Context, in usecase.SampleInput) (types.SampleResult, error)
	SaveSegment(ctx context.Context, in usecase.SaveInput) (types.SavedSegment, error)
}

type Deps struct {
	Chat  ports.ChatModel
	Tools Tools
	Log   hclog.Logger
}

// Options fix the per-session parameters the model does not control.
type Options struct {
	VideoDir       string
	OutDir         string
	DefaultFrames  int
	DefaultQuality types.Quality
}

type Agent struct {
	d   Deps
	opt Options
}

func New(d Deps, opt Options) *Agent {
	if d.Log == nil {
		d.Log = hclog.NewNullLogger()
	}
	return &Agent{d: d, opt: opt}
}

// Process runs one user prompt to completion and returns the model's final
// text plus the grown history. Tool failures are reported back to the model
// as structured results, not returned as errors; only chat transport
// failures abort the turn.
func (a *Agent) Process(ctx context.Context, prompt string, history []types.ChatMessage) (string, []types.ChatMessage, error) {
	if len(history) == 0 {
		history = append(history, types.ChatMessage{Role: types.RoleSystem, Text: systemPrompt})
	}
	history = append(history, types.ChatMessage{Role: types.RoleUser, Text: prompt})

	for i := 0; i < maxToolIterations; i++ {
		turn, err := a.d.Chat.Complete(ctx, history, ToolSpecs())
		if err != nil {
			return "", history, err
		}

		if len(turn.ToolCalls) == 0 {
			text := turn.Text
			if text == "" {
				text = "(the model did not provide a text response)"
			}
			history = append(history, types.ChatMessage{Role: types.RoleAssistant, Text: turn.Text})
			return text, history, nil
		}

		tc := turn.ToolCalls[0]
		a.d.Log.Info("tool call", "tool", tc.Name, "args", fmt.Sprintf("%v", tc.Args))
		history = append(history, types.ChatMessage{
			Role:      types.RoleAssistant,
			Text:      turn.Text,
			ToolCalls: []types.ToolCall{tc},
		})

		status, media := a.dispatch(ctx, tc)
		history = append(history, types.ChatMessage{
			Role:       types.RoleTool,
			ToolCallID: tc.ID,
			Text:       status,
		})

		if media != nil && (len(media.Frames) > 0 || len(media.Audio) > 0) {
			history = append(history, mediaMessage(tc.Name, media))
		}
	}

	return "The tool iteration limit was reached before the request could be completed.", history, nil
}

// dispatch executes one tool call and returns the JSON status for the model,
// plus extracted media when the view tool produced any.
func (a *Agent) dispatch(ctx context.Context, tc types.ToolCall) (string, *types.SampleResult) {
	switch tc.Name {
	case toolListDirectory:
		listing, err := a.d.Tools.ListCatalog(ctx, a.opt.VideoDir)
		if err != nil {
			return statusError(err), nil
		}
		return statusJSON(map[string]any{"result": listing}), nil

	case toolViewSegment:
		in := usecase.SampleInput{
			Dir:       a.opt.VideoDir,
			FileName:  stringArg(tc.Args, "file_name"),
			Start:     stringArg(tc.Args, "start_time"),
			End:       stringArg(tc.Args, "end_time"),
			NumFrames: intArg(tc.Args, "num_frames", a.opt.DefaultFrames),
			Quality:   types.Quality(stringArg(tc.Args, "quality")),
		}
		if in.Quality == "" {
			in.Quality = a.opt.DefaultQuality
		}
		res, err := a.d.Tools.SampleSegment(ctx, in)
		if err != nil {
			return statusError(err), nil
		}
		status := "success"
		if len(res.Frames) == 0 && len(res.Audio) == 0 {
			status = "partial_success"
		}
		return statusJSON(map[string]any{"status": status, "message": res.Note}), &res

	case toolSaveSegment:
		saved, err := a.d.Tools.SaveSegment(ctx, usecase.SaveInput{
			Dir:            a.opt.VideoDir,
			SourceFileName: stringArg(tc.Args, "source_file_name"),
			Start:          stringArg(tc.Args, "start_time"),
			End:            stringArg(tc.Args, "end_time"),
			OutputName:     stringArg(tc.Args, "output_file_name"),
			OutDir:         a.opt.OutDir,
		})
		if err != nil {
			return statusError(err), nil
		}
		return statusJSON(map[string]any{
			"status":      "success",
			"message":     fmt.Sprintf("Successfully trimmed segment and saved to %q.", saved.OutputPath),
			"output_path": saved.OutputPath,
		}), nil

	default:
		a.d.Log.Warn("unknown tool requested", "tool", tc.Name)
		return statusJSON(map[string]any{"error": "unknown tool: " + tc.Name}), nil
	}
}

func mediaMessage(toolName string, media *types.SampleResult) types.ChatMessage {
	return types.ChatMessage{
		Role: types.RoleUser,
		Text: fmt.Sprintf("The tool %q has provided media output. "+
			"Please describe the visual content of the provided frames and the audible content of the audio segment.", toolName),
		Images: media.Frames,
		Audio:  media.Audio,
	}
}

func statusError(err error) string {
	return statusJSON(map[string]any{"status": "error", "message": err.Error()})
}

func statusJSON(v map[string]any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{"status":"error","message":"internal: could not encode tool result"}`
	}
	return string(b)
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg tolerates the float64 that JSON decoding produces for numbers.
func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}
