package sketchfab

import "encoding/json"

// SearchResponse is the envelope returned by the search endpoint.
//
// Results are kept as raw JSON: the actor forwards each model object to the
// dataset unchanged and never interprets its internal structure. Next and
// Previous are pagination URLs; null in the upstream JSON maps to nil.
type SearchResponse struct {
	Results  []json.RawMessage `json:"results"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
}

// Pagination derives the cursor info for this response.
func (r *SearchResponse) Pagination() PaginationInfo {
	return ExtractPagination(r.Next, r.Previous)
}
