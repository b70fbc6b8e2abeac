package deck

import "fmt"

// TemplateStructureError reports a template whose top-level structure does
// not match the layout contract (e.g. too few slides). Structural problems
// are fatal: no output document is produced.
type TemplateStructureError struct {
	Message string
}

func (e *TemplateStructureError) Error() string {
	return fmt.Sprintf("template structure error: %s", e.Message)
}

// ShapeNotFoundError reports a named element absent from a slide. Individual
// missing shapes are non-fatal: callers log the skip and keep populating so
// template drift cannot abort an otherwise-successful report.
type ShapeNotFoundError struct {
	Slide int
	Name  string
}

func (e *ShapeNotFoundError) Error() string {
	return fmt.Sprintf("shape %q not found on slide %d", e.Name, e.Slide+1)
}
