package deck

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Populator writes report content into a deck copy. The original-width
// cache is populator-scoped, never process-global, so concurrent report
// builds cannot cross-contaminate geometry.
type Populator struct {
	deck       *Deck
	log        *zap.Logger
	origWidths map[string]int64
}

// NewPopulator wraps a deck after checking its top-level structure against
// the layout contract. Too few slides is fatal before any mutation.
func NewPopulator(d *Deck, logger *zap.Logger) (*Populator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if d.SlideCount() < RequiredSlideCount {
		return nil, &TemplateStructureError{
			Message: fmt.Sprintf("template has %d slides, layout requires %d", d.SlideCount(), RequiredSlideCount),
		}
	}
	return &Populator{
		deck:       d,
		log:        logger,
		origWidths: make(map[string]int64),
	}, nil
}

// slideAndShape resolves a shape, logging and reporting absence. Missing
// shapes are the non-fatal class of template drift.
func (p *Populator) slideAndShape(slideIdx int, name string) (*Slide, *etree.Element, bool) {
	slide, err := p.deck.Slide(slideIdx)
	if err != nil {
		// Structure was checked at construction; an out-of-range index here
		// is a programming error in the layout tables.
		p.log.Error("slide index out of range", zap.Int("slide", slideIdx+1), zap.String("shape", name))
		return nil, nil, false
	}
	sp, err := slide.Shape(name)
	if err != nil {
		var notFound *ShapeNotFoundError
		if errors.As(err, &notFound) {
			p.log.Warn("shape missing from template, skipping",
				zap.Int("slide", slideIdx+1),
				zap.String("shape", name))
		}
		return nil, nil, false
	}
	return slide, sp, true
}

// SetText replaces the text of a named shape. The font properties of the
// first styled run are re-applied to every inserted line so the output
// keeps the template's design system. Missing shapes and shapes without a
// text body are skipped.
func (p *Populator) SetText(slideIdx int, name, text string) {
	_, sp, ok := p.slideAndShape(slideIdx, name)
	if !ok {
		return
	}
	txBody := childByTag(sp, "txBody")
	if txBody == nil {
		p.log.Warn("shape has no text body, skipping",
			zap.Int("slide", slideIdx+1), zap.String("shape", name))
		return
	}

	// Capture the first styled run's properties and the first paragraph's
	// properties before any paragraph is removed. Templates often open a
	// paragraph with a bare whitespace run, so unstyled runs are passed over.
	var runProps, paraProps *etree.Element
	for _, para := range childrenByTag(txBody, "p") {
		if paraProps == nil {
			if pPr := childByTag(para, "pPr"); pPr != nil {
				paraProps = pPr.Copy()
			}
		}
		if runProps == nil {
			for _, run := range childrenByTag(para, "r") {
				if rPr := childByTag(run, "rPr"); rPr != nil {
					runProps = rPr.Copy()
					break
				}
			}
		}
	}

	for _, para := range childrenByTag(txBody, "p") {
		txBody.RemoveChild(para)
	}

	for _, line := range strings.Split(text, "\n") {
		para := txBody.CreateElement("a:p")
		if paraProps != nil {
			para.AddChild(paraProps.Copy())
		}
		run := para.CreateElement("a:r")
		if runProps != nil {
			run.AddChild(runProps.Copy())
		}
		t := run.CreateElement("a:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(line)
	}
}

// ScaleBar resizes a bar shape horizontally: width = reference * score/max,
// left edge fixed. The reference width is the shape's width as first seen
// by this populator, so touching the same bar twice cannot compound.
func (p *Populator) ScaleBar(slideIdx int, name string, score, maxScore float64) {
	_, sp, ok := p.slideAndShape(slideIdx, name)
	if !ok {
		return
	}
	_, ext := shapeGeometry(sp)
	if ext == nil {
		p.log.Warn("bar shape has no geometry, skipping",
			zap.Int("slide", slideIdx+1), zap.String("shape", name))
		return
	}
	if maxScore <= 0 {
		p.log.Warn("invalid max score for bar, skipping",
			zap.String("shape", name), zap.Float64("max", maxScore))
		return
	}

	cacheKey := fmt.Sprintf("%d/%s", slideIdx, name)
	ref, cached := p.origWidths[cacheKey]
	if !cached {
		ref = emuAttr(ext, "cx")
		p.origWidths[cacheKey] = ref
	}

	frac := score / maxScore
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	setEMUAttr(ext, "cx", int64(math.Round(float64(ref)*frac)))
}

// PlaceMarker moves an indicator marker along its horizontal track
// according to a 1-5 rating. The track bounds come from a sibling shape
// named track_<suffix> when the template provides one, else from the fixed
// defaults. rating=1 lands exactly on the left bound, rating=5 exactly on
// the right.
func (p *Populator) PlaceMarker(slideIdx int, name string, rating int, maxRating int) {
	slide, sp, ok := p.slideAndShape(slideIdx, name)
	if !ok {
		return
	}
	off, _ := shapeGeometry(sp)
	if off == nil {
		p.log.Warn("marker shape has no geometry, skipping",
			zap.Int("slide", slideIdx+1), zap.String("shape", name))
		return
	}
	if maxRating < 2 {
		p.log.Warn("invalid max rating for marker, skipping",
			zap.String("shape", name), zap.Int("max", maxRating))
		return
	}

	left, right := defaultTrackLeft, defaultTrackRight
	if trackName := markerTrackName(name); trackName != "" && slide.HasShape(trackName) {
		track, _ := slide.Shape(trackName)
		if tOff, tExt := shapeGeometry(track); tOff != nil && tExt != nil {
			left = emuAttr(tOff, "x")
			right = left + emuAttr(tExt, "cx")
		}
	}

	if rating < 1 {
		rating = 1
	} else if rating > maxRating {
		rating = maxRating
	}
	frac := float64(rating-1) / float64(maxRating-1)
	setEMUAttr(off, "x", left+int64(math.Round(float64(right-left)*frac)))
}

// InsertImage places a PNG where the named placeholder sits, adopting its
// geometry (enlarged to the configured floor when the placeholder is
// smaller), then removes the placeholder so the two never double up.
func (p *Populator) InsertImage(slideIdx int, name, imagePath string) error {
	slide, sp, ok := p.slideAndShape(slideIdx, name)
	if !ok {
		return nil
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}

	off, ext := shapeGeometry(sp)
	var x, y, cx, cy int64
	if off != nil {
		x, y = emuAttr(off, "x"), emuAttr(off, "y")
	}
	if ext != nil {
		cx, cy = emuAttr(ext, "cx"), emuAttr(ext, "cy")
	}
	if cx < minChartExtent {
		cx = minChartExtent
	}
	if cy < minChartExtent {
		cy = minChartExtent
	}

	if err := p.deck.ensureContentType("png", "image/png"); err != nil {
		return err
	}
	mediaPart := p.deck.nextMediaPart("png")
	p.deck.setPart(mediaPart, data)
	rid := slide.addImageRelationship(mediaPart)

	pic := etree.NewElement("p:pic")
	nvPicPr := pic.CreateElement("p:nvPicPr")
	cNvPr := nvPicPr.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", fmt.Sprintf("%d", slide.nextShapeID()))
	cNvPr.CreateAttr("name", name)
	nvPicPr.CreateElement("p:cNvPicPr")
	nvPicPr.CreateElement("p:nvPr")

	blipFill := pic.CreateElement("p:blipFill")
	blip := blipFill.CreateElement("a:blip")
	blip.CreateAttr("r:embed", rid)
	blipFill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := pic.CreateElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	offEl := xfrm.CreateElement("a:off")
	setEMUAttr(offEl, "x", x)
	setEMUAttr(offEl, "y", y)
	extEl := xfrm.CreateElement("a:ext")
	setEMUAttr(extEl, "cx", cx)
	setEMUAttr(extEl, "cy", cy)
	prstGeom := spPr.CreateElement("a:prstGeom")
	prstGeom.CreateAttr("prst", "rect")
	prstGeom.CreateElement("a:avLst")

	slide.spTree.AddChild(pic)
	slide.removeShape(name)
	slide.shapes[name] = pic
	return nil
}

// markerTrackName derives the optional track shape name for a marker,
// e.g. ball_fit -> track_fit.
func markerTrackName(markerName string) string {
	if suffix, ok := strings.CutPrefix(markerName, "ball_"); ok {
		return "track_" + suffix
	}
	return ""
}
