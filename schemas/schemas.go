// Package schemas embeds the JSON Schema contracts shared between this code
// and external collaborators. Keeping the schema files at the repository root
// lets non-Go tooling (and the expansion service's maintainers) read them
// without digging through internal packages.
package schemas

import _ "embed"

// NarrativeRecord is the JSON Schema for the narrative expansion contract.
//
//go:embed narrative_record.schema.json
var NarrativeRecord string
