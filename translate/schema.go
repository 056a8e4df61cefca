package translate

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// responseSchema is sent to Gemini as generationConfig.responseSchema so the
// model emits structured JSON directly instead of prose-wrapped JSON. It uses
// the OpenAPI-style subset the generateContent endpoint accepts.
const responseSchema = `{
  "type": "object",
  "properties": {
    "q": {"type": "string", "description": "Main search keywords (2-6 words)"},
    "user": {"type": "string", "description": "Sketchfab username slug"},
    "tags": {"type": "array", "items": {"type": "string"}, "description": "Tag slugs"},
    "categories": {"type": "array", "items": {"type": "string"}, "description": "Category slugs"},
    "downloadable": {"type": "boolean"},
    "animated": {"type": "boolean"},
    "rigged": {"type": "boolean"},
    "staffpicked": {"type": "boolean"},
    "sound": {"type": "boolean"},
    "pbr_type": {"type": "string"},
    "file_format": {"type": "string"},
    "license": {"type": "string"},
    "min_face_count": {"type": "integer"},
    "max_face_count": {"type": "integer"},
    "max_uv_layer_count": {"type": "integer"},
    "available_archive_type": {"type": "string"},
    "archives_max_size": {"type": "integer"},
    "archives_max_face_count": {"type": "integer"},
    "archives_max_vertex_count": {"type": "integer"},
    "archives_max_texture_count": {"type": "integer"},
    "archives_texture_max_resolution": {"type": "integer"},
    "archives_flavours": {"type": "boolean"},
    "sort_by": {"type": "string"},
    "date": {"type": "integer"},
    "collection": {"type": "string"}
  },
  "required": ["q"]
}`

// validationSchema re-checks the model output before it is trusted. Unlike
// responseSchema it forbids unknown fields, so a model that hallucinates a
// parameter name fails validation instead of silently leaking it into the
// search request.
const validationSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": ["q"],
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
    "collection": {"type": "string"}
  }
}`

// validateOutput checks raw model output against the validation schema.
// Returns a single error listing every violation.
func validateOutput(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(validationSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidOutput, strings.Join(messages, "; "))
}
