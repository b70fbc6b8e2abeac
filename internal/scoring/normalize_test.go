package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/report-engine/internal/types"
)

func TestNormalizeIntegers(t *testing.T) {
	for v := 1; v <= 5; v++ {
		got, err := Normalize(types.IntRating(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestNormalizeLabels(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"Below maps to 1", "Below", 1},
		{"Developing maps to 2", "Developing", 2},
		{"Hits maps to 3", "Hits", 3},
		{"Good maps to 4", "Good", 4},
		{"Strong maps to 5", "Strong", 5},
		{"Lower case accepted", "strong", 5},
		{"Upper case accepted", "BELOW", 1},
		{"Surrounding whitespace trimmed", "  hits  ", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(types.LabelRating(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		input types.Rating
	}{
		{"Zero", types.IntRating(0)},
		{"Six", types.IntRating(6)},
		{"Negative", types.IntRating(-1)},
		{"Fractional value 2.5", types.Rating{Number: floatPtr(2.5)}},
		{"Fractional value 5.9 not truncated", types.Rating{Number: floatPtr(5.9)}},
		{"Empty string", types.LabelRating("")},
		{"Unrecognized label", types.LabelRating("excellent")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			require.Error(t, err)
			var invalidErr *InvalidRatingError
			assert.True(t, errors.As(err, &invalidErr), "expected InvalidRatingError, got %T", err)
		})
	}
}

func TestNormalizeLabelOrderIsBijective(t *testing.T) {
	seen := make(map[int]string)
	for i, label := range ScaleLabels {
		got, err := Normalize(types.LabelRating(label))
		require.NoError(t, err)
		assert.Equal(t, i+1, got, "label %q should map to its ordinal position", label)
		prev, dup := seen[got]
		assert.False(t, dup, "value %d mapped from both %q and %q", got, prev, label)
		seen[got] = label
	}
	assert.Len(t, seen, 5)
}

func TestNormalizeSetCanonicalizesNames(t *testing.T) {
	norm, err := NormalizeSet(map[string]types.Rating{
		"  Growth Mindset ": types.LabelRating("Good"),
		"DRIVE":             types.IntRating(2),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"growth mindset": 4, "drive": 2}, norm)
}

func floatPtr(f float64) *float64 { return &f }
