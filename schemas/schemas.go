// Package schemas embeds the JSON Schemas shipped with coverank.
package schemas

import _ "embed"

// BatchSchemaJSON is the JSON Schema for batch spec YAML files.
//
//go:embed batch.schema.json
var BatchSchemaJSON string
