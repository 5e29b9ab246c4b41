package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brickops/pkg/errors"
)

func TestDecodeArgsEmptyIsEmptyObject(t *testing.T) {
	var in struct {
		Scope string `json:"scope"`
	}
	require.NoError(t, decodeArgs("", &in))
	assert.Empty(t, in.Scope)

	require.NoError(t, decodeArgs("   ", &in))
}

func TestDecodeArgsRejectsGarbage(t *testing.T) {
	var in struct{}
	assert.Error(t, decodeArgs("{broken", &in))
}

func TestErrorPayloadShape(t *testing.T) {
	result := ErrorPayload("list_clusters", errors.New("boom"))

	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(result), &out))
	assert.Equal(t, "Databricks API Error: boom", out["error"])
	assert.Equal(t, "list_clusters", out["tool"])
}

func TestSuccessMessageShape(t *testing.T) {
	result := successMessage("Cluster %s started successfully.", "abc")

	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(result), &out))
	assert.Equal(t, "Success", out["status"])
	assert.Equal(t, "Cluster abc started successfully.", out["message"])
}

func TestStringIDAcceptsBothForms(t *testing.T) {
	var in struct {
		ID stringID `json:"id"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"id": "abc-123"}`), &in))
	assert.Equal(t, stringID("abc-123"), in.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": 42}`), &in))
	assert.Equal(t, stringID("42"), in.ID)

	if err := json.Unmarshal([]byte(`{"id": true}`), &in); err == nil {
		t.Errorf("expected error for boolean id")
	}
}

func TestObjectSchemaRequired(t *testing.T) {
	schema := objectSchema(map[string]any{
		"scope": prop("string", "scope name"),
	}, "scope")

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"scope"}, schema["required"])

	noRequired := objectSchema(map[string]any{})
	_, ok := noRequired["required"]
	assert.False(t, ok)
}
