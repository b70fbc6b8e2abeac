package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRequestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRequest(t *testing.T) {
	path := writeRequestFile(t, `{
		"candidate_name": "Jane Doe",
		"role_company": "VP Engineering, Acme",
		"raw_notes": "Strong systems thinker.",
		"summary_ratings": {"fit_for_role": 4, "capabilities": 3, "potential": 5, "future_considerations": 3},
		"trait_ratings": {"mission": 4, "drive": "Strong"}
	}`)

	req, err := loadRequest(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", req.CandidateName)
	assert.Equal(t, 4, req.SummaryRatings.FitForRole)
	assert.Len(t, req.TraitRatings, 2)
	assert.Equal(t, "Executive_Report_Jane_Doe.pptx", req.OutputFileName())
}

func TestLoadRequestRejectsUnknownFields(t *testing.T) {
	path := writeRequestFile(t, `{"candidate_name": "Jane", "trait_rating": {}}`)

	_, err := loadRequest(path)
	assert.Error(t, err)
}

func TestLoadRequestMissingFile(t *testing.T) {
	_, err := loadRequest(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadRequestInvalidRatingShape(t *testing.T) {
	path := writeRequestFile(t, `{
		"candidate_name": "Jane",
		"role_company": "x",
		"raw_notes": "n",
		"trait_ratings": {"mission": {"nested": true}}
	}`)

	_, err := loadRequest(path)
	assert.Error(t, err, "ratings must be numbers or labels, never objects")
}

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{true, false} {
		logger, err := newLogger(verbose)
		require.NoError(t, err)
		require.NotNil(t, logger)
		_ = logger.Sync()
	}
}
