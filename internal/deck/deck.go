// Package deck populates a fixed slide-deck template (a pptx package) with
// report text, scaled score bars, repositioned indicator markers, and chart
// images. All elements are addressed by the stable shape names set in the
// template; the template file itself is never mutated.
package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

const (
	presentationPart     = "ppt/presentation.xml"
	presentationRelsPart = "ppt/_rels/presentation.xml.rels"
	contentTypesPart     = "[Content_Types].xml"
)

// Deck is an in-memory copy of a pptx package with its slides parsed and
// indexed. Mutations accumulate in memory until Save.
type Deck struct {
	parts        map[string][]byte
	partOrder    []string
	slides       []*Slide
	contentTypes *etree.Document
}

// Open reads a pptx template into memory. The file on disk receives no
// writes, ever; Save serializes the mutated copy elsewhere.
func Open(templatePath string) (*Deck, error) {
	reader, err := zip.OpenReader(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template %s: %w", templatePath, err)
	}
	defer func() { _ = reader.Close() }()

	d := &Deck{parts: make(map[string][]byte, len(reader.File))}
	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to read template part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read template part %s: %w", f.Name, err)
		}
		d.parts[f.Name] = data
		d.partOrder = append(d.partOrder, f.Name)
	}

	if err := d.loadSlides(); err != nil {
		return nil, err
	}
	return d, nil
}

// SlideCount returns the number of slides in presentation order.
func (d *Deck) SlideCount() int {
	return len(d.slides)
}

// Slide returns the slide at the given zero-based presentation index.
func (d *Deck) Slide(idx int) (*Slide, error) {
	if idx < 0 || idx >= len(d.slides) {
		return nil, &TemplateStructureError{
			Message: fmt.Sprintf("slide %d requested but template has %d slides", idx+1, len(d.slides)),
		}
	}
	return d.slides[idx], nil
}

// loadSlides resolves the ordered slide part paths from the presentation
// part and its relationships, then parses each slide's shape tree.
func (d *Deck) loadSlides() error {
	presData, ok := d.parts[presentationPart]
	if !ok {
		return &TemplateStructureError{Message: "missing " + presentationPart}
	}
	relsData, ok := d.parts[presentationRelsPart]
	if !ok {
		return &TemplateStructureError{Message: "missing " + presentationRelsPart}
	}

	presDoc := etree.NewDocument()
	if err := presDoc.ReadFromBytes(presData); err != nil {
		return fmt.Errorf("failed to parse %s: %w", presentationPart, err)
	}
	relsDoc := etree.NewDocument()
	if err := relsDoc.ReadFromBytes(relsData); err != nil {
		return fmt.Errorf("failed to parse %s: %w", presentationRelsPart, err)
	}

	targets := make(map[string]string)
	if root := relsDoc.Root(); root != nil {
		for _, rel := range childrenByTag(root, "Relationship") {
			targets[rel.SelectAttrValue("Id", "")] = rel.SelectAttrValue("Target", "")
		}
	}

	presRoot := presDoc.Root()
	if presRoot == nil {
		return &TemplateStructureError{Message: presentationPart + " has no root element"}
	}
	sldIDList := childByTag(presRoot, "sldIdLst")
	if sldIDList == nil {
		return &TemplateStructureError{Message: "presentation has no slide id list"}
	}

	for _, sldID := range childrenByTag(sldIDList, "sldId") {
		rid := sldID.SelectAttrValue("r:id", "")
		target, ok := targets[rid]
		if !ok || target == "" {
			return &TemplateStructureError{Message: fmt.Sprintf("slide relationship %q unresolved", rid)}
		}
		partPath := resolvePartPath("ppt", target)
		slideData, ok := d.parts[partPath]
		if !ok {
			return &TemplateStructureError{Message: "missing slide part " + partPath}
		}

		slide, err := parseSlide(len(d.slides), partPath, slideData)
		if err != nil {
			return err
		}
		if relsData, ok := d.parts[slide.relsPath]; ok {
			slide.rels = etree.NewDocument()
			if err := slide.rels.ReadFromBytes(relsData); err != nil {
				return fmt.Errorf("failed to parse %s: %w", slide.relsPath, err)
			}
		}
		d.slides = append(d.slides, slide)
	}
	return nil
}

// Save serializes the mutated copy as a new pptx. The destination only
// appears once the whole archive has been written: output goes to a
// temporary file in the same directory first, then renames into place.
func (d *Deck) Save(outputPath string) error {
	for _, slide := range d.slides {
		data, err := serialize(slide.doc)
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", slide.path, err)
		}
		d.setPart(slide.path, data)

		if slide.rels != nil {
			relsData, err := serialize(slide.rels)
			if err != nil {
				return fmt.Errorf("failed to serialize %s: %w", slide.relsPath, err)
			}
			d.setPart(slide.relsPath, relsData)
		}
	}
	if d.contentTypes != nil {
		data, err := serialize(d.contentTypes)
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", contentTypesPart, err)
		}
		d.setPart(contentTypesPart, data)
	}

	tmp, err := os.CreateTemp(path.Dir(outputPath), ".report-*.pptx")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	zw := zip.NewWriter(tmp)
	for _, name := range d.partOrder {
		w, err := zw.Create(name)
		if err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to write part %s: %w", name, err)
		}
		if _, err := w.Write(d.parts[name]); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to write part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to finalize output archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	if err := os.Rename(tmpName, outputPath); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// setPart replaces or appends a package part, keeping archive order stable.
func (d *Deck) setPart(name string, data []byte) {
	if _, exists := d.parts[name]; !exists {
		d.partOrder = append(d.partOrder, name)
	}
	d.parts[name] = data
}

// nextMediaPart allocates an unused ppt/media image part name.
func (d *Deck) nextMediaPart(ext string) string {
	n := 1
	for {
		candidate := fmt.Sprintf("ppt/media/image%d.%s", n, ext)
		if _, exists := d.parts[candidate]; !exists {
			return candidate
		}
		n++
	}
}

// ensureContentType registers a Default content type for the extension if
// the package does not declare one yet.
func (d *Deck) ensureContentType(ext, contentType string) error {
	if d.contentTypes == nil {
		data, ok := d.parts[contentTypesPart]
		if !ok {
			return &TemplateStructureError{Message: "missing " + contentTypesPart}
		}
		d.contentTypes = etree.NewDocument()
		if err := d.contentTypes.ReadFromBytes(data); err != nil {
			return fmt.Errorf("failed to parse %s: %w", contentTypesPart, err)
		}
	}
	root := d.contentTypes.Root()
	if root == nil {
		return &TemplateStructureError{Message: contentTypesPart + " has no root element"}
	}
	for _, def := range childrenByTag(root, "Default") {
		if strings.EqualFold(def.SelectAttrValue("Extension", ""), ext) {
			return nil
		}
	}
	def := root.CreateElement("Default")
	def.CreateAttr("Extension", ext)
	def.CreateAttr("ContentType", contentType)
	return nil
}

// resolvePartPath resolves a relationship target (which may be relative,
// e.g. "../media/image1.png") against the directory of the source part.
func resolvePartPath(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

func serialize(doc *etree.Document) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// childByTag returns the first direct child whose local tag matches,
// regardless of namespace prefix.
func childByTag(e *etree.Element, tag string) *etree.Element {
	for _, child := range e.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// childrenByTag returns all direct children whose local tag matches.
func childrenByTag(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range e.ChildElements() {
		if child.Tag == tag {
			out = append(out, child)
		}
	}
	return out
}

// sortedPartNames is used by tests to compare archives content-wise.
func sortedPartNames(parts map[string][]byte) []string {
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
