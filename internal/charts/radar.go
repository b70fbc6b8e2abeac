// Package charts renders the two radar chart images placed on slide six.
// The renderer is a boundary component: given a label→value mapping it
// produces a PNG artifact, and nothing downstream depends on how.
package charts

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/jonathan/report-engine/internal/scoring"
)

const (
	imageSize   = 600
	chartRadius = 210.0
	ringCount   = scoring.MaxRating
	labelOffset = 26.0
)

// RenderRadar draws a closed-polygon radar chart for one display group and
// writes it as a PNG. Spokes appear in the group's display order, starting
// at twelve o'clock and proceeding clockwise.
func RenderRadar(group scoring.RadarGroup, path string) error {
	n := len(group.Entries)
	if n < 3 {
		return fmt.Errorf("radar chart needs at least 3 traits, got %d", n)
	}

	dc := gg.NewContext(imageSize, imageSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	cx := float64(imageSize) / 2
	cy := float64(imageSize) / 2

	// angle returns the spoke angle for index i: top of the chart first,
	// then clockwise.
	angle := func(i int) float64 {
		return -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	}

	// Concentric grid rings, one per scale step.
	dc.SetRGBA(0.6, 0.6, 0.6, 0.8)
	dc.SetLineWidth(1)
	for ring := 1; ring <= ringCount; ring++ {
		r := chartRadius * float64(ring) / float64(ringCount)
		for i := 0; i <= n; i++ {
			x := cx + r*math.Cos(angle(i%n))
			y := cy + r*math.Sin(angle(i%n))
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}

	// Spokes and labels.
	for i, entry := range group.Entries {
		a := angle(i)
		dc.SetRGBA(0.6, 0.6, 0.6, 0.8)
		dc.DrawLine(cx, cy, cx+chartRadius*math.Cos(a), cy+chartRadius*math.Sin(a))
		dc.Stroke()

		lx := cx + (chartRadius+labelOffset)*math.Cos(a)
		ly := cy + (chartRadius+labelOffset)*math.Sin(a)
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(entry.Trait, lx, ly, anchorX(a), 0.5)
	}

	// Value polygon, closed back to the first spoke.
	for i, entry := range group.Entries {
		a := angle(i)
		r := chartRadius * float64(entry.Value) / float64(ringCount)
		x := cx + r*math.Cos(a)
		y := cy + r*math.Sin(a)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.SetRGBA(0.16, 0.35, 0.66, 0.25)
	dc.FillPreserve()
	dc.SetRGBA(0.16, 0.35, 0.66, 1)
	dc.SetLineWidth(2)
	dc.Stroke()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save radar chart %s: %w", path, err)
	}
	return nil
}

// anchorX picks the horizontal text anchor so labels extend away from the
// chart instead of across it.
func anchorX(angle float64) float64 {
	c := math.Cos(angle)
	switch {
	case c > 0.1:
		return 0 // right side: left-align
	case c < -0.1:
		return 1 // left side: right-align
	default:
		return 0.5
	}
}

// RenderBoth draws the two display-group charts into dir and returns their
// paths, mirroring the slide-six placeholder pair.
func RenderBoth(personal, capability scoring.RadarGroup, dir string) (string, string, error) {
	p1 := filepath.Join(dir, "radar_1.png")
	p2 := filepath.Join(dir, "radar_2.png")
	if err := RenderRadar(personal, p1); err != nil {
		return "", "", err
	}
	if err := RenderRadar(capability, p2); err != nil {
		return "", "", err
	}
	return p1, p2, nil
}
