package blender

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimic/internal/api"
)

func call(t *testing.T, s *Simulator, tool string, arguments map[string]interface{}) map[string]interface{} {
	t.Helper()
	result, err := s.ExecuteTool(context.Background(), tool, arguments)
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	payload, ok := result.Content[0].(map[string]interface{})
	require.True(t, ok, "payload should be an object, got %T", result.Content[0])
	return payload
}

func callErr(t *testing.T, s *Simulator, tool string, arguments map[string]interface{}) error {
	t.Helper()
	_, err := s.ExecuteTool(context.Background(), tool, arguments)
	require.Error(t, err)
	return err
}

func setMode(t *testing.T, s *Simulator, mode string) {
	t.Helper()
	require.NoError(t, s.Store().Update(func(st *State) error {
		st.ServiceStatus.Mode = mode
		return nil
	}))
}

func TestGetHyper3DStatus(t *testing.T) {
	s := New()
	payload := call(t, s, "get_hyper3d_status", nil)
	assert.Equal(t, true, payload["is_enabled"])
	assert.Equal(t, ModeMainSite, payload["mode"])
	assert.NotEmpty(t, payload["message"])
}

func TestGenerateViaTextMainSite(t *testing.T) {
	s := New()
	payload := call(t, s, "generate_hyper3d_model_via_text", map[string]interface{}{
		"text_prompt":    "a ceramic teapot",
		"bbox_condition": []interface{}{1.0, 0.5, 0.5},
	})
	assert.Equal(t, StatusSuccessQueued, payload["status"])

	taskUUID, _ := payload["task_uuid"].(string)
	subKey, _ := payload["subscription_key"].(string)
	assert.True(t, strings.HasPrefix(taskUUID, "task_"))
	assert.True(t, strings.HasPrefix(subKey, "sub_"))

	require.NoError(t, s.Store().View(func(st *State) error {
		var found *Job
		for _, job := range st.Jobs {
			if job.SubscriptionKey != nil && *job.SubscriptionKey == subKey {
				found = job
			}
		}
		require.NotNil(t, found)
		assert.Equal(t, ModeMainSite, found.ModeAtCreation)
		assert.Equal(t, "a ceramic teapot", *found.TextPrompt)
		assert.Equal(t, []float64{1, 0.5, 0.5}, found.BBoxCondition)
		assert.Equal(t, StatusPending, found.PollOverallStatus)
		return nil
	}))
}

func TestGenerateViaTextFalAI(t *testing.T) {
	s := New()
	setMode(t, s, ModeFalAI)

	payload := call(t, s, "generate_hyper3d_model_via_text", map[string]interface{}{
		"text_prompt": "a ceramic teapot",
	})
	requestID, _ := payload["request_id"].(string)
	assert.True(t, strings.HasPrefix(requestID, "fal_"))
	assert.NotContains(t, payload, "subscription_key")
}

func TestGenerateViaTextValidation(t *testing.T) {
	s := New()

	err := callErr(t, s, "generate_hyper3d_model_via_text", map[string]interface{}{"text_prompt": "   "})
	assert.True(t, api.IsValidation(err))

	err = callErr(t, s, "generate_hyper3d_model_via_text", map[string]interface{}{
		"text_prompt":    "a chair",
		"bbox_condition": []interface{}{1.0, 2.0},
	})
	assert.True(t, api.IsValidation(err))

	err = callErr(t, s, "generate_hyper3d_model_via_text", map[string]interface{}{
		"text_prompt":    "a chair",
		"bbox_condition": []interface{}{1.0, "tall", 1.0},
	})
	assert.True(t, api.IsValidation(err))
}

func TestGenerateViaTextServiceDisabled(t *testing.T) {
	s := New()
	require.NoError(t, s.Store().Update(func(st *State) error {
		st.ServiceStatus.IsEnabled = false
		return nil
	}))

	err := callErr(t, s, "generate_hyper3d_model_via_text", map[string]interface{}{"text_prompt": "a chair"})
	assert.True(t, api.IsNotFound(err))
}

func TestGenerateViaImagesModeRules(t *testing.T) {
	s := New()

	// MAIN_SITE requires paths and rejects URLs.
	payload := call(t, s, "generate_hyper3d_model_via_images", map[string]interface{}{
		"input_image_paths": []interface{}{"/tmp/front.png", "/tmp/side.png"},
	})
	assert.Equal(t, StatusSuccessQueued, payload["status"])
	assert.Contains(t, payload, "task_uuid")

	err := callErr(t, s, "generate_hyper3d_model_via_images", map[string]interface{}{
		"input_image_urls": []interface{}{"https://example.com/front.png"},
	})
	assert.True(t, api.IsInvalidInput(err))

	err = callErr(t, s, "generate_hyper3d_model_via_images", nil)
	assert.True(t, api.IsValidation(err))

	err = callErr(t, s, "generate_hyper3d_model_via_images", map[string]interface{}{
		"input_image_paths": []interface{}{"/tmp/front.png"},
		"input_image_urls":  []interface{}{"https://example.com/front.png"},
	})
	assert.True(t, api.IsInvalidInput(err))

	// FAL_AI flips the rule.
	setMode(t, s, ModeFalAI)
	payload = call(t, s, "generate_hyper3d_model_via_images", map[string]interface{}{
		"input_image_urls": []interface{}{"https://example.com/front.png"},
	})
	assert.Contains(t, payload, "request_id")

	err = callErr(t, s, "generate_hyper3d_model_via_images", map[string]interface{}{
		"input_image_paths": []interface{}{"/tmp/front.png"},
	})
	assert.True(t, api.IsInvalidInput(err))
}

func TestGenerateViaImagesBBoxMustBeIntegers(t *testing.T) {
	s := New()
	err := callErr(t, s, "generate_hyper3d_model_via_images", map[string]interface{}{
		"input_image_paths": []interface{}{"/tmp/front.png"},
		"bbox_condition":    []interface{}{1.0, 2.5, 1.0},
	})
	assert.True(t, api.IsValidation(err))
}

func TestPollJobStatus(t *testing.T) {
	s := New()

	payload := call(t, s, "poll_hyper3d_rodin_job_status", map[string]interface{}{
		"subscription_key": "sub_done_0001",
	})
	assert.Equal(t, ModeMainSite, payload["mode_queried"])
	assert.Equal(t, StatusCompleted, payload["overall_status"])
	assert.Equal(t, true, payload["is_completed"])
	require.NotNil(t, payload["is_successful"])

	payload = call(t, s, "poll_hyper3d_rodin_job_status", map[string]interface{}{
		"request_id": "fal_done_0002",
	})
	assert.Equal(t, ModeFalAI, payload["mode_queried"])
	assert.Equal(t, StatusCompleted, payload["overall_status"])
}

func TestPollJobStatusProgression(t *testing.T) {
	s := New()
	require.NoError(t, s.Store().Update(func(st *State) error {
		st.Jobs["j1"] = &Job{
			InternalJobID:   "j1",
			ModeAtCreation:  ModeMainSite,
			SubscriptionKey: strPtr("sub_progress"),
			PollDetails:     []interface{}{"Done", "Generating", "Done"},
		}
		st.Jobs["j2"] = &Job{
			InternalJobID:   "j2",
			ModeAtCreation:  ModeMainSite,
			SubscriptionKey: strPtr("sub_failed"),
			PollDetails:     []interface{}{"Done", "Failed"},
		}
		st.Jobs["j3"] = &Job{
			InternalJobID:  "j3",
			ModeAtCreation: ModeFalAI,
			RequestID:      strPtr("fal_queued"),
			PollDetails:    "IN_QUEUE",
		}
		return nil
	}))

	payload := call(t, s, "poll_hyper3d_rodin_job_status", map[string]interface{}{"subscription_key": "sub_progress"})
	assert.Equal(t, StatusInProgress, payload["overall_status"])
	assert.Equal(t, false, payload["is_completed"])
	assert.Nil(t, payload["is_successful"].(*bool))

	payload = call(t, s, "poll_hyper3d_rodin_job_status", map[string]interface{}{"subscription_key": "sub_failed"})
	assert.Equal(t, StatusFailed, payload["overall_status"])
	assert.Equal(t, true, payload["is_completed"])

	payload = call(t, s, "poll_hyper3d_rodin_job_status", map[string]interface{}{"request_id": "fal_queued"})
	assert.Equal(t, StatusPending, payload["overall_status"])
}

func TestPollJobStatusIdentifierRules(t *testing.T) {
	s := New()

	err := callErr(t, s, "poll_hyper3d_rodin_job_status", nil)
	assert.True(t, api.IsInvalidInput(err))

	err = callErr(t, s, "poll_hyper3d_rodin_job_status", map[string]interface{}{
		"subscription_key": "sub_done_0001",
		"request_id":       "fal_done_0002",
	})
	assert.True(t, api.IsInvalidInput(err))

	err = callErr(t, s, "poll_hyper3d_rodin_job_status", map[string]interface{}{"subscription_key": "sub_missing"})
	assert.True(t, api.IsNotFound(err))

	// A FAL_AI identifier queried through the MAIN_SITE field is not found.
	err = callErr(t, s, "poll_hyper3d_rodin_job_status", map[string]interface{}{"subscription_key": "fal_done_0002"})
	assert.True(t, api.IsNotFound(err))
}

func TestImportGeneratedAsset(t *testing.T) {
	s := New()

	payload := call(t, s, "import_hyper3d_generated_asset", map[string]interface{}{
		"name":      "FoxStatue",
		"task_uuid": "task_done_0001",
	})
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, "FoxStatue", payload["asset_name_in_blender"])
	assert.Equal(t, "MESH", payload["blender_object_type"])

	require.NoError(t, s.Store().View(func(st *State) error {
		object, ok := st.CurrentScene.Objects["FoxStatue"]
		require.True(t, ok)
		assert.Equal(t, []float64{2, 2, 2}, object.Dimensions)

		job := st.Jobs["6e0d2f1c-9d4a-4c7e-8c2b-5b7f3a1e9d01"]
		require.NotNil(t, job.ImportStatus)
		assert.Equal(t, "success", *job.ImportStatus)
		assert.Equal(t, "FoxStatue", *job.ImportedObjectName)
		return nil
	}))
}

func TestImportGeneratedAssetNameCollision(t *testing.T) {
	s := New()

	first := call(t, s, "import_hyper3d_generated_asset", map[string]interface{}{
		"name": "Ship", "request_id": "fal_done_0002",
	})
	assert.Equal(t, "Ship", first["asset_name_in_blender"])

	second := call(t, s, "import_hyper3d_generated_asset", map[string]interface{}{
		"name": "Ship", "request_id": "fal_done_0002",
	})
	assert.Equal(t, "Ship.001", second["asset_name_in_blender"])
}

func TestImportGeneratedAssetNameSuffixesExhausted(t *testing.T) {
	s := New()

	require.NoError(t, s.Store().Update(func(st *State) error {
		st.CurrentScene.Objects["Ship"] = &SceneObject{Name: "Ship"}
		for i := 1; i <= 999; i++ {
			name := fmt.Sprintf("Ship.%03d", i)
			st.CurrentScene.Objects[name] = &SceneObject{Name: name}
		}
		return nil
	}))

	err := callErr(t, s, "import_hyper3d_generated_asset", map[string]interface{}{
		"name": "Ship", "request_id": "fal_done_0002",
	})
	assert.True(t, api.IsInvalidState(err))
	assert.Contains(t, err.Error(), "999 attempts")
}

func TestImportGeneratedAssetErrors(t *testing.T) {
	s := New()

	err := callErr(t, s, "import_hyper3d_generated_asset", map[string]interface{}{"name": "Thing"})
	assert.True(t, api.IsInvalidInput(err))

	err = callErr(t, s, "import_hyper3d_generated_asset", map[string]interface{}{
		"name": "Thing", "task_uuid": "task_done_0001", "request_id": "fal_done_0002",
	})
	assert.True(t, api.IsInvalidInput(err))

	err = callErr(t, s, "import_hyper3d_generated_asset", map[string]interface{}{
		"name": "Thing", "task_uuid": "task_missing",
	})
	assert.True(t, api.IsNotFound(err))

	// Incomplete jobs cannot be imported.
	require.NoError(t, s.Store().Update(func(st *State) error {
		st.Jobs["j1"] = &Job{
			InternalJobID:  "j1",
			ModeAtCreation: ModeMainSite,
			TaskUUID:       strPtr("task_pending"),
		}
		return nil
	}))
	err = callErr(t, s, "import_hyper3d_generated_asset", map[string]interface{}{
		"name": "Thing", "task_uuid": "task_pending",
	})
	assert.True(t, api.IsInvalidState(err))
}

func TestBlenderStatePersistence(t *testing.T) {
	s := New()
	call(t, s, "import_hyper3d_generated_asset", map[string]interface{}{
		"name": "FoxStatue", "task_uuid": "task_done_0001",
	})

	path := filepath.Join(t.TempDir(), "blender.json")
	require.NoError(t, s.SaveState(path))

	restored := New()
	require.NoError(t, restored.LoadState(path))
	require.NoError(t, restored.Store().View(func(st *State) error {
		assert.Contains(t, st.CurrentScene.Objects, "FoxStatue")
		return nil
	}))

	// Polling still works on state that went through JSON, where the
	// MAIN_SITE details list comes back as []interface{}.
	payload := call(t, restored, "poll_hyper3d_rodin_job_status", map[string]interface{}{
		"subscription_key": "sub_done_0001",
	})
	assert.Equal(t, StatusCompleted, payload["overall_status"])

	restored.ResetState()
	require.NoError(t, restored.Store().View(func(st *State) error {
		assert.NotContains(t, st.CurrentScene.Objects, "FoxStatue")
		return nil
	}))
}

func TestUnknownBlenderTool(t *testing.T) {
	s := New()
	err := callErr(t, s, "does_not_exist", nil)
	assert.True(t, api.IsInvalidInput(err))
}
