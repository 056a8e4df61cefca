package sketchfab

import "net/url"

// PaginationInfo describes the page boundaries of one search response. It is
// derived purely from the optional next/previous URLs in the response envelope
// and is forwarded into the run's metadata record; it is never persisted or
// reused internally.
//
// HasNext is true whenever the envelope carried a non-null next URL, even if
// no cursor token could be extracted from it. The upstream API can report
// "more pages exist" without a cursor at the first page boundary, so the
// booleans track URL presence, not cursor presence. Same for previous.
type PaginationInfo struct {
	HasNext        bool   `json:"has_next"`
	HasPrevious    bool   `json:"has_previous"`
	NextCursor     string `json:"next_cursor,omitempty"`
	PreviousCursor string `json:"previous_cursor,omitempty"`
}

// ExtractPagination parses the next/previous pagination URLs of a response
// envelope into cursor tokens. Pure string parsing, no network access.
func ExtractPagination(next, previous *string) PaginationInfo {
	info := PaginationInfo{}

	if next != nil {
		info.HasNext = true
		info.NextCursor = cursorFromURL(*next)
	}
	if previous != nil {
		info.HasPrevious = true
		info.PreviousCursor = cursorFromURL(*previous)
	}

	return info
}

// cursorFromURL extracts the opaque cursor token from a pagination URL's
// query string. Returns "" when the URL has no cursor parameter or cannot
// be parsed.
func cursorFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("cursor")
}
