package blender

import (
	"context"

	"mimic/internal/api"
)

func (s *Simulator) GetTools() []api.ToolMetadata {
	bboxSchema := map[string]interface{}{
		"type":     "array",
		"items":    map[string]interface{}{"type": "number"},
		"minItems": 3,
		"maxItems": 3,
	}
	stringListSchema := map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	}

	return []api.ToolMetadata{
		{
			Name:        "get_hyper3d_status",
			Description: "Return whether the Hyper3D Rodin integration is enabled and which mode it runs in.",
		},
		{
			Name:        "generate_hyper3d_model_via_text",
			Description: "Submit a text-to-3D generation job to Hyper3D Rodin.",
			Args: []api.ArgMetadata{
				{Name: "text_prompt", Type: "string", Required: true, Description: "Natural-language description of the model to generate"},
				{Name: "bbox_condition", Type: "array", Description: "Optional [width, height, depth] ratio constraining the model bounding box", Schema: bboxSchema},
			},
		},
		{
			Name:        "generate_hyper3d_model_via_images",
			Description: "Submit an image-to-3D generation job to Hyper3D Rodin. Use local file paths in MAIN_SITE mode and URLs in FAL_AI mode.",
			Args: []api.ArgMetadata{
				{Name: "input_image_paths", Type: "array", Description: "Local image file paths (MAIN_SITE mode only)", Schema: stringListSchema},
				{Name: "input_image_urls", Type: "array", Description: "Image URLs (FAL_AI mode only)", Schema: stringListSchema},
				{Name: "bbox_condition", Type: "array", Description: "Optional [width, height, depth] integer ratio constraining the model bounding box", Schema: bboxSchema},
			},
		},
		{
			Name:        "poll_hyper3d_rodin_job_status",
			Description: "Check the status of a previously submitted generation job. Provide subscription_key for MAIN_SITE jobs or request_id for FAL_AI jobs.",
			Args: []api.ArgMetadata{
				{Name: "subscription_key", Type: "string", Description: "Subscription key returned when the job was submitted in MAIN_SITE mode"},
				{Name: "request_id", Type: "string", Description: "Request id returned when the job was submitted in FAL_AI mode"},
			},
		},
		{
			Name:        "import_hyper3d_generated_asset",
			Description: "Import a completed generation job's asset into the current scene as a mesh object.",
			Args: []api.ArgMetadata{
				{Name: "name", Type: "string", Required: true, Description: "Object name to use in the scene"},
				{Name: "task_uuid", Type: "string", Description: "Task uuid of a MAIN_SITE job", Default: unsetIdentifier},
				{Name: "request_id", Type: "string", Description: "Request id of a FAL_AI job", Default: unsetIdentifier},
			},
		},
	}
}

func (s *Simulator) ExecuteTool(ctx context.Context, name string, arguments map[string]interface{}) (*api.CallToolResult, error) {
	var (
		result interface{}
		err    error
	)
	switch name {
	case "get_hyper3d_status":
		result, err = s.getStatus(arguments)
	case "generate_hyper3d_model_via_text":
		result, err = s.generateViaText(arguments)
	case "generate_hyper3d_model_via_images":
		result, err = s.generateViaImages(arguments)
	case "poll_hyper3d_rodin_job_status":
		result, err = s.pollJobStatus(arguments)
	case "import_hyper3d_generated_asset":
		result, err = s.importGeneratedAsset(arguments)
	default:
		return nil, api.NewInvalidInputError("unknown blender tool: %s", name)
	}
	if err != nil {
		return nil, err
	}
	return api.NewResult(result), nil
}
