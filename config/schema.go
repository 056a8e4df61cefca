package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// inputSchema validates the per-run input before decoding. It is the union
// of the search parameter field set and the actor control flags, with
// additionalProperties disabled: a misspelled or unknown field fails the run
// up front instead of being silently dropped.
const inputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "q": {"type": "string"},
    "user": {"type": "string"},
    "tags": {"type": "array", "items": {"type": "string"}},
    "categories": {"type": "array", "items": {"type": "string"}},
    "downloadable": {"type": "boolean"},
    "animated": {"type": "boolean"},
    "rigged": {"type": "boolean"},
    "staffpicked": {"type": "boolean"},
    "sound": {"type": "boolean"},
    "pbr_type": {"type": "string"},
    "file_format": {"type": "string"},
    "license": {"type": "string"},
    "min_face_count": {"type": "integer", "minimum": 0},
    "max_face_count": {"type": "integer", "minimum": 0},
    "max_uv_layer_count": {"type": "integer", "minimum": 0},
    "available_archive_type": {"type": "string"},
    "archives_max_size": {"type": "integer", "minimum": 0},
    "archives_max_face_count": {"type": "integer", "minimum": 0},
    "archives_max_vertex_count": {"type": "integer", "minimum": 0},
    "archives_max_texture_count": {"type": "integer", "minimum": 0},
    "archives_texture_max_resolution": {"type": "integer", "minimum": 0},
    "archives_flavours": {"type": "boolean"},
    "sort_by": {"type": "string"},
    "date": {"type": "integer", "minimum": 0},
    "collection": {"type": "string"},
    "count": {"type": "integer", "minimum": 1, "maximum": 24},
    "cursor": {"type": "string"},

    "useAI": {"type": "boolean"},
    "naturalQuery": {"type": "string"},
    "fallbackToQuery": {"type": "boolean"},
    "googleApiKey": {"type": "string"},
    "sketchfabApiToken": {"type": "string"}
  }
}`

// ValidateInput checks raw input JSON against the embedded schema. Returns a
// single error listing every violation, or nil when valid.
func ValidateInput(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(inputSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}

	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, fmt.Sprintf("  - %s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("invalid input:\n%s", strings.Join(messages, "\n"))
}
