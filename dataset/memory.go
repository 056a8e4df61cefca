package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryWriter buffers records in memory. Intended for tests and dry runs.
// Safe for concurrent use.
type MemoryWriter struct {
	mu      sync.Mutex
	records []json.RawMessage
	closed  bool
}

// NewMemoryWriter creates an empty in-memory writer.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{}
}

// Push appends the record to the buffer.
func (w *MemoryWriter) Push(_ context.Context, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	w.records = append(w.records, data)
	return nil
}

// Close marks the writer closed. Buffered records remain readable.
func (w *MemoryWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

// Records returns a copy of all pushed records in push order.
func (w *MemoryWriter) Records() []json.RawMessage {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]json.RawMessage, len(w.records))
	copy(out, w.records)
	return out
}

// Len returns the number of pushed records.
func (w *MemoryWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.records)
}
