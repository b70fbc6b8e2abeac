package deck

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Slide is one parsed slide part with a name-addressed shape table built
// once at load time. Every mutation goes through this table, so renaming a
// template element only ever touches the layout constants, not call sites.
type Slide struct {
	index  int
	path   string
	doc    *etree.Document
	spTree *etree.Element
	shapes map[string]*etree.Element

	relsPath string
	rels     *etree.Document
}

func parseSlide(index int, partPath string, data []byte) (*Slide, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse slide %s: %w", partPath, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, &TemplateStructureError{Message: "slide " + partPath + " has no root element"}
	}
	cSld := childByTag(root, "cSld")
	if cSld == nil {
		return nil, &TemplateStructureError{Message: "slide " + partPath + " has no cSld element"}
	}
	spTree := childByTag(cSld, "spTree")
	if spTree == nil {
		return nil, &TemplateStructureError{Message: "slide " + partPath + " has no shape tree"}
	}

	s := &Slide{
		index:    index,
		path:     partPath,
		doc:      doc,
		spTree:   spTree,
		shapes:   make(map[string]*etree.Element),
		relsPath: path.Join(path.Dir(partPath), "_rels", path.Base(partPath)+".rels"),
	}
	s.indexShapes(spTree)
	return s, nil
}

// indexShapes walks the shape tree (including group shapes) and records
// every named drawable element.
func (s *Slide) indexShapes(tree *etree.Element) {
	for _, child := range tree.ChildElements() {
		switch child.Tag {
		case "sp", "pic", "cxnSp", "graphicFrame":
			if name := shapeName(child); name != "" {
				s.shapes[name] = child
			}
		case "grpSp":
			s.indexShapes(child)
		}
	}
}

// Shape returns the element with the given stable name, or a
// ShapeNotFoundError when the template has drifted.
func (s *Slide) Shape(name string) (*etree.Element, error) {
	if sp, ok := s.shapes[name]; ok {
		return sp, nil
	}
	return nil, &ShapeNotFoundError{Slide: s.index, Name: name}
}

// HasShape reports whether a named element exists on the slide.
func (s *Slide) HasShape(name string) bool {
	_, ok := s.shapes[name]
	return ok
}

// ShapeNames returns the slide's shape names in document order.
func (s *Slide) ShapeNames() []string {
	var names []string
	var walk func(tree *etree.Element)
	walk = func(tree *etree.Element) {
		for _, child := range tree.ChildElements() {
			switch child.Tag {
			case "sp", "pic", "cxnSp", "graphicFrame":
				if name := shapeName(child); name != "" {
					names = append(names, name)
				}
			case "grpSp":
				walk(child)
			}
		}
	}
	walk(s.spTree)
	return names
}

// ShapeBounds returns a named shape's position and size in EMU. ok is false
// when the shape is absent or carries no explicit transform.
func (s *Slide) ShapeBounds(name string) (x, y, cx, cy int64, ok bool) {
	sp, found := s.shapes[name]
	if !found {
		return 0, 0, 0, 0, false
	}
	off, ext := shapeGeometry(sp)
	if off == nil || ext == nil {
		return 0, 0, 0, 0, false
	}
	return emuAttr(off, "x"), emuAttr(off, "y"), emuAttr(ext, "cx"), emuAttr(ext, "cy"), true
}

// removeShape detaches a shape element from the tree and the lookup table.
func (s *Slide) removeShape(name string) {
	sp, ok := s.shapes[name]
	if !ok {
		return
	}
	if parent := sp.Parent(); parent != nil {
		parent.RemoveChild(sp)
	}
	delete(s.shapes, name)
}

// nextShapeID returns an unused numeric shape id for this slide.
func (s *Slide) nextShapeID() int {
	maxID := 1
	for _, el := range s.doc.Root().FindElements("//cNvPr") {
		if id, err := strconv.Atoi(el.SelectAttrValue("id", "")); err == nil && id > maxID {
			maxID = id
		}
	}
	// FindElements matches on full tags; cover the prefixed form too.
	for _, el := range s.doc.Root().FindElements("//p:cNvPr") {
		if id, err := strconv.Atoi(el.SelectAttrValue("id", "")); err == nil && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// nextRelID returns an unused relationship id for this slide, creating the
// relationships document when the slide has none yet.
func (s *Slide) nextRelID() string {
	if s.rels == nil {
		s.rels = etree.NewDocument()
		s.rels.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
		root := s.rels.CreateElement("Relationships")
		root.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
	}
	maxID := 0
	for _, rel := range childrenByTag(s.rels.Root(), "Relationship") {
		id := rel.SelectAttrValue("Id", "")
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	return fmt.Sprintf("rId%d", maxID+1)
}

// addImageRelationship registers an image relationship on the slide and
// returns its id.
func (s *Slide) addImageRelationship(mediaPart string) string {
	rid := s.nextRelID()
	rel := s.rels.Root().CreateElement("Relationship")
	rel.CreateAttr("Id", rid)
	rel.CreateAttr("Type", "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image")
	rel.CreateAttr("Target", relativeTarget(s.path, mediaPart))
	return rid
}

// relativeTarget expresses a part path relative to the referencing part's
// directory, e.g. slides/slide6.xml -> ../media/image1.png.
func relativeTarget(fromPart, toPart string) string {
	fromDir := path.Dir(fromPart)
	prefix := path.Dir(fromDir) + "/"
	if strings.HasPrefix(toPart, prefix) {
		return "../" + strings.TrimPrefix(toPart, prefix)
	}
	return "/" + toPart
}

// shapeName extracts the stable name from a drawable element's
// non-visual properties.
func shapeName(sp *etree.Element) string {
	for _, child := range sp.ChildElements() {
		if strings.HasPrefix(child.Tag, "nv") && strings.HasSuffix(child.Tag, "Pr") {
			if cNvPr := childByTag(child, "cNvPr"); cNvPr != nil {
				return cNvPr.SelectAttrValue("name", "")
			}
		}
	}
	return ""
}

// shapeGeometry returns the offset and extent elements of a shape's
// transform, or nil when the shape has no explicit geometry.
func shapeGeometry(sp *etree.Element) (off, ext *etree.Element) {
	spPr := childByTag(sp, "spPr")
	if spPr == nil {
		return nil, nil
	}
	xfrm := childByTag(spPr, "xfrm")
	if xfrm == nil {
		return nil, nil
	}
	return childByTag(xfrm, "off"), childByTag(xfrm, "ext")
}

func emuAttr(el *etree.Element, key string) int64 {
	v, err := strconv.ParseInt(el.SelectAttrValue(key, ""), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func setEMUAttr(el *etree.Element, key string, value int64) {
	el.RemoveAttr(key)
	el.CreateAttr(key, strconv.FormatInt(value, 10))
}
