package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rootschemas "github.com/jonathan/report-engine/schemas"
)

const miniSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["name"],
	"properties": {"name": {"type": "string", "minLength": 1}}
}`

func TestValidateJSONStringValid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(miniSchema, `{"name": "ok"}`))
}

func TestValidateJSONStringInvalidDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing required field", `{}`},
		{"extra field", `{"name": "ok", "other": 1}`},
		{"wrong type", `{"name": 7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(miniSchema, tt.doc)
			require.Error(t, err)
			var ve *ValidationError
			assert.True(t, errors.As(err, &ve))
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidateJSONStringBadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": ["broken"`, `{}`)
	require.Error(t, err)
	var le *SchemaLoadError
	assert.True(t, errors.As(err, &le))
}

func TestNarrativeRecordSchemaEnforcesArity(t *testing.T) {
	entry := `{"title": "T", "paragraph": "P"}`
	doc := `{
		"personal_profile": "profile",
		"strengths": [` + entry + `,` + entry + `,` + entry + `],
		"development_areas": [` + entry + `,` + entry + `,` + entry + `],
		"future_considerations": "future",
		"personal_development": [` + entry + `,` + entry + `],
		"org_support": [` + entry + `,` + entry + `]
	}`
	require.NoError(t, ValidateJSONString(rootschemas.NarrativeRecord, doc))

	short := `{
		"personal_profile": "profile",
		"strengths": [` + entry + `,` + entry + `],
		"development_areas": [` + entry + `,` + entry + `,` + entry + `],
		"future_considerations": "future",
		"personal_development": [` + entry + `,` + entry + `],
		"org_support": [` + entry + `,` + entry + `]
	}`
	err := ValidateJSONString(rootschemas.NarrativeRecord, short)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
}
