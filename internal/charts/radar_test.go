package charts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/report-engine/internal/scoring"
	"github.com/jonathan/report-engine/internal/types"
)

func testGroups(t *testing.T) (scoring.RadarGroup, scoring.RadarGroup) {
	t.Helper()
	set := make(map[string]types.Rating, len(scoring.Traits))
	for i, trait := range scoring.Traits {
		set[trait] = types.IntRating(i%5 + 1)
	}
	personal, capability, err := scoring.SplitDisplayGroups(set)
	require.NoError(t, err)
	return personal, capability
}

// pngMagic is the fixed 8-byte PNG file signature.
var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderRadarWritesPNG(t *testing.T) {
	personal, _ := testGroups(t)
	path := filepath.Join(t.TempDir(), "radar.png")

	require.NoError(t, RenderRadar(personal, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), len(pngMagic))
	assert.Equal(t, pngMagic, data[:len(pngMagic)])
}

func TestRenderBoth(t *testing.T) {
	personal, capability := testGroups(t)
	dir := t.TempDir()

	p1, p2, err := RenderBoth(personal, capability, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "radar_1.png"), p1)
	assert.Equal(t, filepath.Join(dir, "radar_2.png"), p2)

	for _, p := range []string{p1, p2} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRenderRadarRejectsTinyGroups(t *testing.T) {
	group := scoring.RadarGroup{
		Name: "too small",
		Entries: []scoring.RadarEntry{
			{Trait: "a", Value: 1},
			{Trait: "b", Value: 2},
		},
	}
	err := RenderRadar(group, filepath.Join(t.TempDir(), "bad.png"))
	assert.Error(t, err)
}

func TestRenderRadarDeterministic(t *testing.T) {
	personal, _ := testGroups(t)
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.png")
	pathB := filepath.Join(dir, "b.png")

	require.NoError(t, RenderRadar(personal, pathA))
	require.NoError(t, RenderRadar(personal, pathB))

	a, err := os.ReadFile(pathA)
	require.NoError(t, err)
	b, err := os.ReadFile(pathB)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
