package agent

import "github.com/forPelevin/vidagent/internal/types"

const (
	toolListDirectory = "list_directory_contents"
	toolViewSegment   = "view_video_segment"
	toolSaveSegment   = "save_video_segment"
)

// ToolSpecs declares the three tools the model may call.
func ToolSpecs() []types.ToolSpec {
	return []types.ToolSpec{
		{
			Name: toolListDirectory,
			Description: "Lists video files and their basic metadata (duration, resolution, fps, size) " +
				"from the configured video directory. Takes no parameters.",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name: toolViewSegment,
			Description: "Extracts evenly spaced visual frames and one audio slice from a video file " +
				"within a time range. The tool returns a status message first; the image frames and " +
				"audio snippet are then provided for you to describe.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"file_name": map[string]any{
						"type":        "string",
						"description": "Name of the video file in the configured directory (e.g. 'my_vacation.mp4').",
					},
					"start_time": map[string]any{
						"type":        "string",
						"description": "Start of the segment, as HH:MM:SS, MM:SS or SS, optionally with .mmm (e.g. '00:01:30.500').",
					},
					"end_time": map[string]any{
						"type":        "string",
						"description": "End of the segment, in the same format (e.g. '00:02:00').",
					},
					"num_frames": map[string]any{
						"type":        "integer",
						"description": "Number of frames to sample evenly from the range. Defaults to 3.",
					},
					"quality": map[string]any{
						"type":        "string",
						"enum":        []string{"low", "medium", "high"},
						"description": "Frame resolution tier. Defaults to 'low'; frames are never upscaled.",
					},
				},
				"required": []string{"file_name", "start_time", "end_time"},
			},
		},
		{
			Name: toolSaveSegment,
			Description: "Trims a time range of a source video and saves it as a new standalone file. " +
				"Returns the path of the saved clip on success.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"source_file_name": map[string]any{
						"type":        "string",
						"description": "Name of the source video file in the configured directory.",
					},
					"start_time": map[string]any{
						"type":        "string",
						"description": "Start of the segment to keep, as HH:MM:SS, MM:SS or SS.",
					},
					"end_time": map[string]any{
						"type":        "string",
						"description": "End of the segment to keep; must be after start_time.",
					},
					"output_file_name": map[string]any{
						"type":        "string",
						"description": "File name for the saved clip. '.mp4' is appended when the extension is not a known video container.",
					},
				},
				"required": []string{"source_file_name", "start_time", "end_time", "output_file_name"},
			},
		},
	}
}
