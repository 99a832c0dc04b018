package blender

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"mimic/internal/api"
	"mimic/internal/sim/args"
	"mimic/internal/store"
)

// Simulator emulates the Blender Hyper3D Rodin text/image-to-3D
// workflow: submitting generation jobs, polling their status and
// importing finished assets into the active scene.
type Simulator struct {
	store *store.Store[State]
}

func New() *Simulator {
	return &Simulator{store: store.New(seedState)}
}

func (s *Simulator) Name() string { return "blender" }

func (s *Simulator) SaveState(path string) error  { return s.store.SaveState(path) }
func (s *Simulator) LoadState(path string) error  { return s.store.LoadState(path) }
func (s *Simulator) ResetState()                  { s.store.Reset() }

func (s *Simulator) WatchState(ctx context.Context, path string) error {
	return s.store.Watch(ctx, path)
}

func (s *Simulator) Store() *store.Store[State] { return s.store }

func newHexSuffix(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

func (s *Simulator) getStatus(arguments map[string]interface{}) (interface{}, error) {
	var status ServiceStatus
	err := s.store.View(func(st *State) error {
		if st.ServiceStatus == nil {
			return api.NewNotFoundErrorf("Hyper3D service status is not configured")
		}
		status = *st.ServiceStatus
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"is_enabled": status.IsEnabled,
		"mode":       status.Mode,
		"message":    status.Message,
	}, nil
}

// enabledMode returns the active mode or an error when the Hyper3D
// integration is disabled or unconfigured.
func enabledMode(st *State) (string, error) {
	if st.ServiceStatus == nil || !st.ServiceStatus.IsEnabled {
		return "", api.NewNotFoundErrorf("Hyper3D Rodin integration is not enabled in Blender")
	}
	return st.ServiceStatus.Mode, nil
}

func parseBBox(arguments map[string]interface{}, integersOnly bool) ([]float64, error) {
	raw, ok := arguments["bbox_condition"]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, api.NewFieldValidationError("bbox_condition", "must be a list of 3 numbers")
	}
	if len(list) != 3 {
		return nil, api.NewFieldValidationError("bbox_condition", "must contain exactly 3 elements, got %d", len(list))
	}
	out := make([]float64, 0, 3)
	for i, v := range list {
		f, ok := v.(float64)
		if !ok {
			return nil, api.NewFieldValidationError("bbox_condition", "element %d must be a number", i)
		}
		if integersOnly && f != float64(int64(f)) {
			return nil, api.NewFieldValidationError("bbox_condition", "element %d must be an integer", i)
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *Simulator) generateViaText(arguments map[string]interface{}) (interface{}, error) {
	prompt, err := args.RequiredString(arguments, "text_prompt")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, api.NewFieldValidationError("text_prompt", "must not be empty")
	}
	bbox, err := parseBBox(arguments, false)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	err = s.store.Update(func(st *State) error {
		mode, err := enabledMode(st)
		if err != nil {
			return err
		}
		job := &Job{
			InternalJobID:     uuid.NewString(),
			ModeAtCreation:    mode,
			TextPrompt:        &prompt,
			BBoxCondition:     bbox,
			SubmissionStatus:  StatusSuccessQueued,
			SubmissionMessage: "Hyper3D model generation task successfully submitted.",
			PollOverallStatus: StatusPending,
		}
		result = map[string]interface{}{
			"status":  job.SubmissionStatus,
			"message": job.SubmissionMessage,
		}
		switch mode {
		case ModeMainSite:
			job.TaskUUID = strPtr("task_" + uuid.NewString())
			job.SubscriptionKey = strPtr("sub_" + newHexSuffix(12))
			result["task_uuid"] = *job.TaskUUID
			result["subscription_key"] = *job.SubscriptionKey
		case ModeFalAI:
			job.RequestID = strPtr("fal_" + uuid.NewString())
			result["request_id"] = *job.RequestID
		default:
			return api.NewInvalidStateError("unsupported Hyper3D mode %q", mode)
		}
		if st.Jobs == nil {
			st.Jobs = map[string]*Job{}
		}
		st.Jobs[job.InternalJobID] = job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Simulator) generateViaImages(arguments map[string]interface{}) (interface{}, error) {
	paths, _, err := args.StringSlice(arguments, "input_image_paths")
	if err != nil {
		return nil, err
	}
	urls, _, err := args.StringSlice(arguments, "input_image_urls")
	if err != nil {
		return nil, err
	}
	if len(paths) > 0 && len(urls) > 0 {
		return nil, api.NewInvalidInputError("provide either input_image_paths or input_image_urls, not both")
	}
	bbox, err := parseBBox(arguments, true)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	err = s.store.Update(func(st *State) error {
		mode, err := enabledMode(st)
		if err != nil {
			return err
		}
		switch mode {
		case ModeMainSite:
			if len(urls) > 0 {
				return api.NewInvalidInputError("input_image_urls is only supported in FAL_AI mode")
			}
			if len(paths) == 0 {
				return api.NewFieldValidationError("input_image_paths", "is required in MAIN_SITE mode")
			}
		case ModeFalAI:
			if len(paths) > 0 {
				return api.NewInvalidInputError("input_image_paths is only supported in MAIN_SITE mode")
			}
			if len(urls) == 0 {
				return api.NewFieldValidationError("input_image_urls", "is required in FAL_AI mode")
			}
		default:
			return api.NewInvalidStateError("unsupported Hyper3D mode %q", mode)
		}

		job := &Job{
			InternalJobID:     uuid.NewString(),
			ModeAtCreation:    mode,
			InputImagePaths:   paths,
			InputImageURLs:    urls,
			BBoxCondition:     bbox,
			SubmissionStatus:  StatusSuccessQueued,
			SubmissionMessage: "Hyper3D model generation task successfully submitted.",
			PollOverallStatus: StatusPending,
		}
		result = map[string]interface{}{
			"status":  job.SubmissionStatus,
			"message": job.SubmissionMessage,
		}
		if mode == ModeMainSite {
			job.TaskUUID = strPtr(uuid.NewString())
			job.SubscriptionKey = strPtr(uuid.NewString())
			result["task_uuid"] = *job.TaskUUID
			result["subscription_key"] = *job.SubscriptionKey
		} else {
			job.RequestID = strPtr(uuid.NewString())
			result["request_id"] = *job.RequestID
		}
		if st.Jobs == nil {
			st.Jobs = map[string]*Job{}
		}
		st.Jobs[job.InternalJobID] = job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// pollOutcome derives the overall status view from a job's
// mode-specific poll details.
type pollOutcome struct {
	overall   string
	completed bool
	// nil until the job reaches a terminal state
	successful *bool
	message    string
}

func boolPtr(b bool) *bool { return &b }

func derivePoll(job *Job) pollOutcome {
	switch job.ModeAtCreation {
	case ModeMainSite:
		return deriveMainSitePoll(job.PollDetails)
	case ModeFalAI:
		return deriveFalPoll(job.PollDetails)
	}
	return pollOutcome{overall: StatusPending, message: "Job status is unknown."}
}

func deriveMainSitePoll(details interface{}) pollOutcome {
	statuses := asStringSlice(details)
	if len(statuses) == 0 {
		return pollOutcome{overall: StatusPending, message: "Job is queued and has not started yet."}
	}
	allDone := true
	for _, st := range statuses {
		switch st {
		case "Failed":
			return pollOutcome{overall: StatusFailed, completed: true, successful: boolPtr(false), message: "Job failed during generation."}
		case "Canceled":
			return pollOutcome{overall: StatusCanceled, completed: true, successful: boolPtr(false), message: "Job was canceled."}
		case "Done":
		default:
			allDone = false
		}
	}
	if allDone {
		return pollOutcome{overall: StatusCompleted, completed: true, successful: boolPtr(true), message: "Job completed successfully."}
	}
	return pollOutcome{overall: StatusInProgress, message: "Job is still in progress."}
}

func deriveFalPoll(details interface{}) pollOutcome {
	status, _ := details.(string)
	switch status {
	case "COMPLETED":
		return pollOutcome{overall: StatusCompleted, completed: true, successful: boolPtr(true), message: "Job completed successfully."}
	case "IN_PROGRESS":
		return pollOutcome{overall: StatusInProgress, message: "Job is still in progress."}
	case "IN_QUEUE", "":
		return pollOutcome{overall: StatusPending, message: "Job is queued and has not started yet."}
	}
	return pollOutcome{overall: StatusFailed, completed: true, successful: boolPtr(false), message: fmt.Sprintf("Job ended with unexpected status %q.", status)}
}

func asStringSlice(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, e := range list {
			s, _ := e.(string)
			out = append(out, s)
		}
		return out
	}
	return nil
}

func findJobByKey(st *State, field func(*Job) *string, value string) *Job {
	for _, job := range st.Jobs {
		if k := field(job); k != nil && *k == value {
			return job
		}
	}
	return nil
}

func (s *Simulator) pollJobStatus(arguments map[string]interface{}) (interface{}, error) {
	subKey, _, err := args.String(arguments, "subscription_key")
	if err != nil {
		return nil, err
	}
	reqID, _, err := args.String(arguments, "request_id")
	if err != nil {
		return nil, err
	}
	if (subKey == "") == (reqID == "") {
		return nil, api.NewInvalidInputError("provide exactly one of subscription_key or request_id")
	}

	var result map[string]interface{}
	err = s.store.Update(func(st *State) error {
		var job *Job
		var modeQueried string
		if subKey != "" {
			modeQueried = ModeMainSite
			job = findJobByKey(st, func(j *Job) *string { return j.SubscriptionKey }, subKey)
		} else {
			modeQueried = ModeFalAI
			job = findJobByKey(st, func(j *Job) *string { return j.RequestID }, reqID)
		}
		if job == nil || job.ModeAtCreation != modeQueried {
			return api.NewNotFoundErrorf("no Hyper3D job found for the given %s identifier", modeQueried)
		}

		outcome := derivePoll(job)
		job.PollOverallStatus = outcome.overall
		job.PollMessage = outcome.message

		result = map[string]interface{}{
			"mode_queried":   modeQueried,
			"overall_status": outcome.overall,
			"is_completed":   outcome.completed,
			"is_successful":  outcome.successful,
			"message":        outcome.message,
			"details":        job.PollDetails,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// sentinel the import tool uses for "identifier not provided"
const unsetIdentifier = "null"

// uniqueSceneName appends numeric suffixes until the name does not
// collide with an existing scene object. Suffixes run out at .999.
func uniqueSceneName(scene *Scene, base string) (string, error) {
	if _, taken := scene.Objects[base]; !taken {
		return base, nil
	}
	for i := 1; i <= 999; i++ {
		candidate := fmt.Sprintf("%s.%03d", base, i)
		if _, taken := scene.Objects[candidate]; !taken {
			return candidate, nil
		}
	}
	return "", api.NewInvalidStateError("failed to generate a unique name for %q after 999 attempts", base)
}

func (s *Simulator) importGeneratedAsset(arguments map[string]interface{}) (interface{}, error) {
	name, err := args.RequiredString(arguments, "name")
	if err != nil {
		return nil, err
	}
	taskUUID, err := args.StringOr(arguments, "task_uuid", unsetIdentifier)
	if err != nil {
		return nil, err
	}
	reqID, err := args.StringOr(arguments, "request_id", unsetIdentifier)
	if err != nil {
		return nil, err
	}
	hasTask := taskUUID != unsetIdentifier && taskUUID != ""
	hasReq := reqID != unsetIdentifier && reqID != ""
	if hasTask == hasReq {
		return nil, api.NewInvalidInputError("provide exactly one of task_uuid or request_id")
	}

	var result map[string]interface{}
	err = s.store.Update(func(st *State) error {
		var job *Job
		var modeQueried string
		if hasTask {
			modeQueried = ModeMainSite
			job = findJobByKey(st, func(j *Job) *string { return j.TaskUUID }, taskUUID)
		} else {
			modeQueried = ModeFalAI
			job = findJobByKey(st, func(j *Job) *string { return j.RequestID }, reqID)
		}
		if job == nil || job.ModeAtCreation != modeQueried {
			return api.NewNotFoundErrorf("no Hyper3D job found for the given %s identifier", modeQueried)
		}

		outcome := derivePoll(job)
		if !outcome.completed || outcome.successful == nil || !*outcome.successful {
			return api.NewInvalidStateError("asset is not ready for import: job status is %s", outcome.overall)
		}
		if job.AssetNameForImport == nil || *job.AssetNameForImport == "" {
			return api.NewInvalidStateError("job completed but no generated asset is available for import")
		}
		if st.CurrentScene == nil {
			return api.NewInvalidStateError("no active scene to import the asset into")
		}
		if st.CurrentScene.Objects == nil {
			st.CurrentScene.Objects = map[string]*SceneObject{}
		}

		objectName, err := uniqueSceneName(st.CurrentScene, name)
		if err != nil {
			return err
		}
		object := &SceneObject{
			ID:            uuid.NewString(),
			Name:          objectName,
			Type:          "MESH",
			Location:      []float64{0, 0, 0},
			RotationEuler: []float64{0, 0, 0},
			Scale:         []float64{1, 1, 1},
			Dimensions:    []float64{2, 2, 2},
			MaterialNames: []string{},
			IsVisible:     true,
			IsRenderable:  true,
		}
		st.CurrentScene.Objects[objectName] = object

		message := fmt.Sprintf("Asset %q imported into scene %q as %q.", *job.AssetNameForImport, st.CurrentScene.Name, objectName)
		job.ImportStatus = strPtr("success")
		job.ImportMessage = &message
		job.ImportedObjectID = &object.ID
		job.ImportedObjectName = &object.Name
		job.ImportedObjectType = &object.Type

		result = map[string]interface{}{
			"status":                "success",
			"message":               message,
			"asset_name_in_blender": objectName,
			"blender_object_type":   object.Type,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
