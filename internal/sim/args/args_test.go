package args

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimic/internal/api"
)

func TestString(t *testing.T) {
	m := map[string]interface{}{"name": "ada", "count": float64(3), "none": nil}

	s, ok, err := String(m, "name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ada", s)

	_, ok, err = String(m, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = String(m, "none")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = String(m, "count")
	assert.True(t, api.IsValidation(err))
}

func TestRequiredString(t *testing.T) {
	_, err := RequiredString(map[string]interface{}{}, "name")
	assert.True(t, api.IsValidation(err))

	_, err = RequiredString(map[string]interface{}{"name": ""}, "name")
	assert.True(t, api.IsValidation(err))

	s, err := RequiredString(map[string]interface{}{"name": "x"}, "name")
	require.NoError(t, err)
	assert.Equal(t, "x", s)
}

func TestInt(t *testing.T) {
	m := map[string]interface{}{"n": float64(42), "frac": 1.5, "s": "7"}

	n, ok, err := Int(m, "n")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, _, err = Int(m, "frac")
	assert.True(t, api.IsValidation(err))

	_, _, err = Int(m, "s")
	assert.True(t, api.IsValidation(err))

	got, err := IntOr(m, "missing", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, got)
}

func TestPositiveIntOr(t *testing.T) {
	_, err := PositiveIntOr(map[string]interface{}{"max": float64(0)}, "max", 10)
	assert.True(t, api.IsValidation(err))

	n, err := PositiveIntOr(map[string]interface{}{}, "max", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestStringSlice(t *testing.T) {
	m := map[string]interface{}{
		"tags": []interface{}{"a", "b"},
		"bad":  []interface{}{"a", float64(1)},
	}

	tags, ok, err := StringSlice(m, "tags")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, tags)

	_, _, err = StringSlice(m, "bad")
	assert.True(t, api.IsValidation(err))
}

func TestObjectSlice(t *testing.T) {
	m := map[string]interface{}{
		"items": []interface{}{map[string]interface{}{"k": "v"}},
	}
	items, ok, err := ObjectSlice(m, "items")
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "v", items[0]["k"])
}

func TestEnum(t *testing.T) {
	s, err := Enum(map[string]interface{}{}, "vis", "PUBLIC", "PUBLIC", "CONNECTIONS")
	require.NoError(t, err)
	assert.Equal(t, "PUBLIC", s)

	_, err = Enum(map[string]interface{}{"vis": "SECRET"}, "vis", "PUBLIC", "PUBLIC", "CONNECTIONS")
	assert.True(t, api.IsValidation(err))
}

func TestDecode(t *testing.T) {
	type endpoint struct {
		Type  string `json:"endpoint_type"`
		Value string `json:"endpoint_value"`
	}
	raw := map[string]interface{}{"endpoint_type": "PHONE_NUMBER", "endpoint_value": "+14155552671"}

	var ep endpoint
	require.NoError(t, Decode("endpoint", raw, &ep))
	assert.Equal(t, "PHONE_NUMBER", ep.Type)
	assert.Equal(t, "+14155552671", ep.Value)
}
