// Package args decodes tool-call argument maps. MCP arguments arrive as
// map[string]interface{} straight from JSON, so numbers are float64 and
// nested structures are generic maps and slices; the helpers here convert
// them into the types handlers expect and return api.ValidationError on
// mismatch so the caller can surface it as a tool error unchanged.
package args

import (
	"encoding/json"
	"math"

	"mimic/internal/api"
)

// String returns the string value for key. The second return reports
// whether the key was present (a JSON null counts as absent).
func String(m map[string]interface{}, key string) (string, bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", true, api.NewFieldValidationError(key, "must be a string, got %T", raw)
	}
	return s, true, nil
}

// RequiredString returns the string value for key, failing if the key is
// absent or empty.
func RequiredString(m map[string]interface{}, key string) (string, error) {
	s, ok, err := String(m, key)
	if err != nil {
		return "", err
	}
	if !ok || s == "" {
		return "", api.NewFieldValidationError(key, "is required")
	}
	return s, nil
}

// StringOr returns the string value for key, or def when absent.
func StringOr(m map[string]interface{}, key, def string) (string, error) {
	s, ok, err := String(m, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return s, nil
}

// Int returns the integer value for key. JSON numbers decode as float64;
// only integral values are accepted.
func Int(m map[string]interface{}, key string) (int, bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, true, api.NewFieldValidationError(key, "must be an integer, got %v", v)
		}
		return int(v), true, nil
	default:
		return 0, true, api.NewFieldValidationError(key, "must be an integer, got %T", raw)
	}
}

// IntOr returns the integer value for key, or def when absent.
func IntOr(m map[string]interface{}, key string, def int) (int, error) {
	n, ok, err := Int(m, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	return n, nil
}

// PositiveIntOr is IntOr with a positivity check, the common shape for
// max_results style arguments.
func PositiveIntOr(m map[string]interface{}, key string, def int) (int, error) {
	n, err := IntOr(m, key, def)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, api.NewFieldValidationError(key, "must be a positive integer")
	}
	return n, nil
}

// Float returns the numeric value for key.
func Float(m map[string]interface{}, key string) (float64, bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	default:
		return 0, true, api.NewFieldValidationError(key, "must be a number, got %T", raw)
	}
}

// Bool returns the boolean value for key.
func Bool(m map[string]interface{}, key string) (bool, bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return false, false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, true, api.NewFieldValidationError(key, "must be a boolean, got %T", raw)
	}
	return b, true, nil
}

// BoolOr returns the boolean value for key, or def when absent.
func BoolOr(m map[string]interface{}, key string, def bool) (bool, error) {
	b, ok, err := Bool(m, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return b, nil
}

// StringSlice returns the []string value for key, converting each element
// of the generic JSON array.
func StringSlice(m map[string]interface{}, key string) ([]string, bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, true, api.NewFieldValidationError(key, "must be an array of strings, got %T", raw)
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, true, api.NewFieldValidationError(key, "element %d must be a string, got %T", i, item)
		}
		out = append(out, s)
	}
	return out, true, nil
}

// Object returns the nested object value for key.
func Object(m map[string]interface{}, key string) (map[string]interface{}, bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, true, api.NewFieldValidationError(key, "must be an object, got %T", raw)
	}
	return obj, true, nil
}

// ObjectSlice returns the []object value for key.
func ObjectSlice(m map[string]interface{}, key string) ([]map[string]interface{}, bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, true, api.NewFieldValidationError(key, "must be an array of objects, got %T", raw)
	}
	out := make([]map[string]interface{}, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, true, api.NewFieldValidationError(key, "element %d must be an object, got %T", i, item)
		}
		out = append(out, obj)
	}
	return out, true, nil
}

// Enum returns the string value for key after checking it against the
// allowed set. Absent keys return def.
func Enum(m map[string]interface{}, key, def string, allowed ...string) (string, error) {
	s, err := StringOr(m, key, def)
	if err != nil {
		return "", err
	}
	for _, a := range allowed {
		if s == a {
			return s, nil
		}
	}
	return "", api.NewFieldValidationError(key, "must be one of %v, got %q", allowed, s)
}

// Decode remarshals a generic JSON value into dst via encoding/json. Used
// where a handler wants a typed struct out of a nested argument.
func Decode(key string, raw, dst interface{}) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return api.NewFieldValidationError(key, "has invalid structure: %v", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return api.NewFieldValidationError(key, "has invalid structure: %v", err)
	}
	return nil
}
