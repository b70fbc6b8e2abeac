package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingUnmarshalNumber(t *testing.T) {
	var r Rating
	require.NoError(t, json.Unmarshal([]byte(`4`), &r))
	require.NotNil(t, r.Number)
	assert.Equal(t, 4.0, *r.Number)
	assert.Empty(t, r.Label)
}

func TestRatingUnmarshalFractionalNumberIsCarried(t *testing.T) {
	// The boundary carries the exact value; rejection of non-integers is the
	// normalizer's job so the error names the offending value.
	var r Rating
	require.NoError(t, json.Unmarshal([]byte(`2.5`), &r))
	require.NotNil(t, r.Number)
	assert.Equal(t, 2.5, *r.Number)
}

func TestRatingUnmarshalLabel(t *testing.T) {
	var r Rating
	require.NoError(t, json.Unmarshal([]byte(`"Strong"`), &r))
	assert.Nil(t, r.Number)
	assert.Equal(t, "Strong", r.Label)
}

func TestRatingUnmarshalRejectsOtherShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"null", `null`},
		{"object", `{"value": 3}`},
		{"array", `[3]`},
		{"bool", `true`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Rating
			assert.Error(t, json.Unmarshal([]byte(tt.input), &r))
		})
	}
}

func TestRatingMarshalRoundTrip(t *testing.T) {
	in := map[string]Rating{
		"drive":   IntRating(3),
		"mission": LabelRating("Good"),
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out map[string]Rating
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotNil(t, out["drive"].Number)
	assert.Equal(t, 3.0, *out["drive"].Number)
	assert.Equal(t, "Good", out["mission"].Label)
}
