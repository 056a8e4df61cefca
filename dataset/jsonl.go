package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	datasetDirPerm  = 0o755
	datasetFilePerm = 0o644
)

// JSONLWriter appends records to a local JSONL file, one JSON object per
// line. The file is opened in append mode so successive runs against the
// same dataset path accumulate records.
type JSONLWriter struct {
	mu     sync.Mutex
	file   *os.File
	enc    *json.Encoder
	closed bool
}

// NewJSONLWriter opens (or creates) the JSONL file at path, creating parent
// directories as needed.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, datasetDirPerm); err != nil {
			return nil, fmt.Errorf("failed to create dataset directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, datasetFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}

	return &JSONLWriter{
		file: file,
		enc:  json.NewEncoder(file),
	}, nil
}

// Push appends one record as a single JSON line.
func (w *JSONLWriter) Push(_ context.Context, record any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	// json.Encoder terminates every value with a newline, giving the
	// one-object-per-line format for free.
	if err := w.enc.Encode(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *JSONLWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.file.Sync(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to sync dataset file: %w", err)
	}
	return w.file.Close()
}
