package sketchfab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchParams holds the full set of filters accepted by the Sketchfab search
// endpoint. Every field is optional: pointer booleans and integers distinguish
// "unset" (no constraint) from an explicit false or zero. The zero value means
// an unconstrained search.
//
// JSON tags match the wire names of the search API, which are also the keys
// used in actor input and in Gemini's structured output.
type SearchParams struct {
	// Core search
	Q          string   `json:"q,omitempty"`
	User       string   `json:"user,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Categories []string `json:"categories,omitempty"`

	// Quality and type filters
	Downloadable *bool `json:"downloadable,omitempty"`
	Animated     *bool `json:"animated,omitempty"`
	Rigged       *bool `json:"rigged,omitempty"`
	StaffPicked  *bool `json:"staffpicked,omitempty"`
	Sound        *bool `json:"sound,omitempty"`

	// Technical specs
	PBRType    string `json:"pbr_type,omitempty"`
	FileFormat string `json:"file_format,omitempty"`
	License    string `json:"license,omitempty"`

	// Geometry constraints
	MinFaceCount    *int `json:"min_face_count,omitempty"`
	MaxFaceCount    *int `json:"max_face_count,omitempty"`
	MaxUVLayerCount *int `json:"max_uv_layer_count,omitempty"`

	// Archive constraints
	AvailableArchiveType         string `json:"available_archive_type,omitempty"`
	ArchivesMaxSize              *int   `json:"archives_max_size,omitempty"`
	ArchivesMaxFaceCount         *int   `json:"archives_max_face_count,omitempty"`
	ArchivesMaxVertexCount       *int   `json:"archives_max_vertex_count,omitempty"`
	ArchivesMaxTextureCount      *int   `json:"archives_max_texture_count,omitempty"`
	ArchivesTextureMaxResolution *int   `json:"archives_texture_max_resolution,omitempty"`
	ArchivesFlavours             *bool  `json:"archives_flavours,omitempty"`

	// Sorting and scoping
	SortBy     string `json:"sort_by,omitempty"`
	Date       *int   `json:"date,omitempty"`
	Collection string `json:"collection,omitempty"`

	// Pagination
	Count  *int   `json:"count,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// Defaults captures policy values injected into a search when the caller left
// the corresponding field unset. Injecting a default narrows results in a way
// the caller may not expect, so every default is opt-in configuration rather
// than hard-coded behavior.
type Defaults struct {
	// Downloadable, when non-nil, is applied to searches that did not
	// constrain downloadability either way.
	Downloadable *bool
}

// Apply returns a copy of p with unset fields filled from d.
// Fields the caller set explicitly are never overridden.
func (p SearchParams) Apply(d Defaults) SearchParams {
	if p.Downloadable == nil && d.Downloadable != nil {
		v := *d.Downloadable
		p.Downloadable = &v
	}
	return p
}

// Query converts the params to transport query parameters.
//
// Absent, empty-string, and empty-slice fields are excluded; string slices are
// serialized as comma-joined, order-preserving values. The result never
// contains a key with an empty value. The operation is total and idempotent:
// calling it twice on the same params yields identical output.
func (p SearchParams) Query() url.Values {
	v := url.Values{}

	setString(v, "q", p.Q)
	setString(v, "user", p.User)
	setCSV(v, "tags", p.Tags)
	setCSV(v, "categories", p.Categories)

	setBool(v, "downloadable", p.Downloadable)
	setBool(v, "animated", p.Animated)
	setBool(v, "rigged", p.Rigged)
	setBool(v, "staffpicked", p.StaffPicked)
	setBool(v, "sound", p.Sound)

	setString(v, "pbr_type", p.PBRType)
	setString(v, "file_format", p.FileFormat)
	setString(v, "license", p.License)

	setInt(v, "min_face_count", p.MinFaceCount)
	setInt(v, "max_face_count", p.MaxFaceCount)
	setInt(v, "max_uv_layer_count", p.MaxUVLayerCount)

	setString(v, "available_archive_type", p.AvailableArchiveType)
	setInt(v, "archives_max_size", p.ArchivesMaxSize)
	setInt(v, "archives_max_face_count", p.ArchivesMaxFaceCount)
	setInt(v, "archives_max_vertex_count", p.ArchivesMaxVertexCount)
	setInt(v, "archives_max_texture_count", p.ArchivesMaxTextureCount)
	setInt(v, "archives_texture_max_resolution", p.ArchivesTextureMaxResolution)
	setBool(v, "archives_flavours", p.ArchivesFlavours)

	setString(v, "sort_by", p.SortBy)
	setInt(v, "date", p.Date)
	setString(v, "collection", p.Collection)

	setInt(v, "count", p.Count)
	setString(v, "cursor", p.Cursor)

	return v
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// setCSV joins non-empty elements with commas, preserving their order.
// A slice that is nil, empty, or contains only empty strings is dropped.
func setCSV(v url.Values, key string, values []string) {
	parts := make([]string, 0, len(values))
	for _, s := range values {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		v.Set(key, strings.Join(parts, ","))
	}
}

func setBool(v url.Values, key string, value *bool) {
	if value != nil {
		v.Set(key, strconv.FormatBool(*value))
	}
}

func setInt(v url.Values, key string, value *int) {
	if value != nil {
		v.Set(key, strconv.Itoa(*value))
	}
}

// ParseParams decodes an externally produced JSON object into SearchParams.
// Unknown fields are rejected so a misspelled or invented field surfaces as
// an error instead of silently dropping a filter.
func ParseParams(raw []byte) (SearchParams, error) {
	var p SearchParams

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&p); err != nil {
		return p, fmt.Errorf("failed to decode search params: %w", err)
	}

	return p, nil
}

// Bool returns a pointer to b, for building params literals.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i, for building params literals.
func Int(i int) *int { return &i }
