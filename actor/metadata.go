package actor

import (
	"time"

	"github.com/Amon20044/SketchFab-Apify-Actor/sketchfab"
)

// Metadata is the first record of every successful run. It describes the
// search that produced the result records that follow it in the dataset.
type Metadata struct {
	// IsMetadata marks this record so consumers can separate it from
	// model results. Always true.
	IsMetadata bool `json:"_metadata"`

	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`

	// SearchParams is the parameter set the search actually used, after
	// routing and normalization.
	SearchParams sketchfab.SearchParams `json:"search_params"`

	// AIPowered is true when the parameters came from a successful
	// Gemini translation.
	AIPowered bool `json:"ai_powered"`

	// OriginalQuery is the natural-language query, set on AI-path runs.
	OriginalQuery string `json:"original_query,omitempty"`

	// Fallback is true when the AI path failed and the run degraded to a
	// plain keyword search. TranslationError carries the cause.
	Fallback         bool   `json:"fallback,omitempty"`
	TranslationError string `json:"translation_error,omitempty"`

	ResultCount int                      `json:"result_count"`
	Pagination  sketchfab.PaginationInfo `json:"pagination"`
}

// RunSummary reports the outcome of one Run call.
type RunSummary struct {
	RunID          string
	Mode           string
	Fallback       bool
	ResultCount    int
	RecordsWritten int
	Pagination     sketchfab.PaginationInfo
}
