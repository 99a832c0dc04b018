package blender

// Operational modes of the Hyper3D Rodin integration.
const (
	ModeMainSite = "MAIN_SITE"
	ModeFalAI    = "FAL_AI"
)

// Overall job statuses.
const (
	StatusSuccessQueued = "success_queued"
	StatusPending       = "PENDING"
	StatusInProgress    = "IN_PROGRESS"
	StatusCompleted     = "COMPLETED"
	StatusFailed        = "FAILED"
	StatusCanceled      = "CANCELED"
)

// ServiceStatus is the Hyper3D integration configuration.
type ServiceStatus struct {
	IsEnabled bool   `json:"is_enabled"`
	Mode      string `json:"mode"`
	Message   string `json:"message"`
}

// Job tracks one Hyper3D generation task from submission through import.
// PollDetails is mode-specific: a list of component statuses ("Done",
// "Failed", "Canceled", ...) in MAIN_SITE mode, a single status string
// (COMPLETED, IN_PROGRESS, IN_QUEUE, ...) in FAL_AI mode.
type Job struct {
	InternalJobID      string      `json:"internal_job_id"`
	ModeAtCreation     string      `json:"mode_at_creation"`
	TextPrompt         *string     `json:"text_prompt"`
	InputImagePaths    []string    `json:"input_image_paths"`
	InputImageURLs     []string    `json:"input_image_urls"`
	BBoxCondition      []float64   `json:"bbox_condition"`
	SubmissionStatus   string      `json:"submission_status"`
	SubmissionMessage  string      `json:"submission_message"`
	TaskUUID           *string     `json:"task_uuid"`
	RequestID          *string     `json:"request_id"`
	SubscriptionKey    *string     `json:"subscription_key"`
	PollOverallStatus  string      `json:"poll_overall_status"`
	PollMessage        string      `json:"poll_message"`
	PollDetails        interface{} `json:"poll_details_specific"`
	AssetNameForImport *string     `json:"asset_name_for_import"`
	ImportStatus       *string     `json:"import_status"`
	ImportMessage      *string     `json:"import_message"`
	ImportedObjectID   *string     `json:"imported_blender_object_id"`
	ImportedObjectName *string     `json:"imported_blender_object_name"`
	ImportedObjectType *string     `json:"imported_blender_object_type"`
}

// SceneObject is an object placed in the Blender scene.
type SceneObject struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Location      []float64 `json:"location"`
	RotationEuler []float64 `json:"rotation_euler"`
	Scale         []float64 `json:"scale"`
	Dimensions    []float64 `json:"dimensions"`
	MaterialNames []string  `json:"material_names"`
	IsVisible     bool      `json:"is_visible"`
	IsRenderable  bool      `json:"is_renderable"`
	ParentName    *string   `json:"parent_name"`
}

// Scene is the active Blender scene assets get imported into.
type Scene struct {
	Name    string                  `json:"name"`
	Objects map[string]*SceneObject `json:"objects"`
}

// State is the blender simulator database.
type State struct {
	ServiceStatus *ServiceStatus  `json:"hyper3d_service_status"`
	Jobs          map[string]*Job `json:"hyper3d_jobs"`
	CurrentScene  *Scene          `json:"current_scene"`
}

func strPtr(s string) *string { return &s }

// seedState enables MAIN_SITE mode with one completed job per mode so
// the import path can be exercised without external state.
func seedState() *State {
	return &State{
		ServiceStatus: &ServiceStatus{
			IsEnabled: true,
			Mode:      ModeMainSite,
			Message:   "Hyper3D Rodin integration is enabled in MAIN_SITE mode.",
		},
		Jobs: map[string]*Job{
			"6e0d2f1c-9d4a-4c7e-8c2b-5b7f3a1e9d01": {
				InternalJobID:      "6e0d2f1c-9d4a-4c7e-8c2b-5b7f3a1e9d01",
				ModeAtCreation:     ModeMainSite,
				TextPrompt:         strPtr("a weathered bronze statue of a fox"),
				SubmissionStatus:   StatusSuccessQueued,
				SubmissionMessage:  "Hyper3D model generation task successfully submitted.",
				TaskUUID:           strPtr("task_done_0001"),
				SubscriptionKey:    strPtr("sub_done_0001"),
				PollOverallStatus:  StatusCompleted,
				PollMessage:        "Job completed.",
				PollDetails:        []interface{}{"Done", "Done", "Done"},
				AssetNameForImport: strPtr("fox_statue"),
			},
			"9a1b4c3d-2e5f-4a6b-9c8d-7e0f1a2b3c04": {
				InternalJobID:      "9a1b4c3d-2e5f-4a6b-9c8d-7e0f1a2b3c04",
				ModeAtCreation:     ModeFalAI,
				TextPrompt:         strPtr("a low-poly sailing ship"),
				SubmissionStatus:   StatusSuccessQueued,
				SubmissionMessage:  "Hyper3D model generation task successfully submitted.",
				RequestID:          strPtr("fal_done_0002"),
				PollOverallStatus:  StatusCompleted,
				PollMessage:        "Job completed.",
				PollDetails:        "COMPLETED",
				AssetNameForImport: strPtr("sailing_ship"),
			},
		},
		CurrentScene: &Scene{
			Name:    "Scene",
			Objects: map[string]*SceneObject{},
		},
	}
}
