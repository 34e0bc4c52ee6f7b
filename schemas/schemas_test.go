package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationPayloadSchema_ValidJSON(t *testing.T) {
	var v interface{}
	err := json.Unmarshal(GenerationPayload, &v)
	assert.NoError(t, err, "embedded schema should be valid JSON")
}

func TestGenerationPayloadSchema_DeclaresExpectedShape(t *testing.T) {
	var schemaObj map[string]interface{}
	err := json.Unmarshal(GenerationPayload, &schemaObj)
	require.NoError(t, err)

	assert.Equal(t, "object", schemaObj["type"])
	assert.Contains(t, schemaObj, "$schema")

	props, ok := schemaObj["properties"].(map[string]interface{})
	require.True(t, ok, "schema should have properties")
	for _, key := range []string{"doc_type", "use_ai", "ai_context", "fields", "return_docx"} {
		assert.Contains(t, props, key)
	}

	// additionalProperties is closed so accidental payload keys fail fast.
	assert.Equal(t, false, schemaObj["additionalProperties"])
}
