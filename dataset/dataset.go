// Package dataset provides append-only record writers for run output.
//
// A run writes one metadata record followed by one record per search result.
// Writers never interpret record contents; they serialize to JSON and append.
// Three backends exist: a JSONL file (default, Apify-style local dataset),
// an in-memory buffer (tests and dry runs), and a Redis list.
package dataset

import (
	"context"
	"errors"
)

// Writer appends records to a dataset. Implementations must preserve push
// order; none of them support updates or deletes.
type Writer interface {
	// Push serializes the record to JSON and appends it.
	Push(ctx context.Context, record any) error

	// Close releases resources held by the writer. Push must not be
	// called after Close.
	Close() error
}

// ErrClosed is returned by Push after the writer has been closed.
var ErrClosed = errors.New("dataset writer is closed")
