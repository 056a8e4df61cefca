package errors_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	pkgerrors "github.com/Amon20044/SketchFab-Apify-Actor/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := pkgerrors.New(pkgerrors.ComponentSketchfab, "Search", cause)

	assert.Equal(t, "sketchfab", err.Component)
	assert.Equal(t, "Search", err.Operation)
	assert.Equal(t, 0, err.StatusCode)
	assert.Nil(t, err.Details)
	assert.Equal(t, cause, err.Cause)
}

func TestNew_NilCause(t *testing.T) {
	err := pkgerrors.New(pkgerrors.ComponentConfig, "LoadInput", nil)

	assert.Equal(t, "config", err.Component)
	assert.Equal(t, "LoadInput", err.Operation)
	assert.Nil(t, err.Cause)
}

func TestError_BasicMessage(t *testing.T) {
	cause := fmt.Errorf("file not found")
	err := pkgerrors.New(pkgerrors.ComponentConfig, "LoadConfig", cause)

	assert.Equal(t, "[config] LoadConfig: file not found", err.Error())
}

func TestError_WithStatusCode(t *testing.T) {
	cause := fmt.Errorf("rate limited")
	err := pkgerrors.New(pkgerrors.ComponentTranslate, "Translate", cause).WithStatusCode(429)

	assert.Equal(t, "[translate] Translate (status 429): rate limited", err.Error())
}

func TestWithStatusCode(t *testing.T) {
	err := pkgerrors.New(pkgerrors.ComponentSketchfab, "Search", fmt.Errorf("timeout"))
	result := err.WithStatusCode(504)

	// Builder returns same pointer for chaining.
	assert.Same(t, err, result)
	assert.Equal(t, 504, err.StatusCode)
}

func TestWithDetails(t *testing.T) {
	details := map[string]any{
		"model":   "gemini-2.0-flash",
		"retries": 3,
	}
	err := pkgerrors.New(pkgerrors.ComponentTranslate, "Translate", fmt.Errorf("failed"))
	result := err.WithDetails(details)

	assert.Same(t, err, result)
	assert.Equal(t, details, err.Details)
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := pkgerrors.New(pkgerrors.ComponentDataset, "Push", cause)

	assert.Equal(t, cause, err.Unwrap())
}

func TestErrorsIs(t *testing.T) {
	sentinel := fmt.Errorf("sentinel error")
	wrapped := fmt.Errorf("mid-layer: %w", sentinel)
	err := pkgerrors.New(pkgerrors.ComponentActor, "Run", wrapped)

	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, wrapped))
}

func TestErrorsAs(t *testing.T) {
	cause := fmt.Errorf("something failed")
	err := pkgerrors.New(pkgerrors.ComponentActor, "Run", cause)

	// Wrap in another error layer to test errors.As unwrapping.
	outer := fmt.Errorf("outer: %w", err)

	var ctxErr *pkgerrors.ContextualError
	require.True(t, errors.As(outer, &ctxErr))
	assert.Equal(t, "actor", ctxErr.Component)
	assert.Equal(t, "Run", ctxErr.Operation)
}

func TestNestedContextualErrors(t *testing.T) {
	inner := pkgerrors.New(pkgerrors.ComponentSketchfab, "Search", io.ErrUnexpectedEOF).WithStatusCode(500)
	outer := pkgerrors.New(pkgerrors.ComponentActor, "Run", inner)

	assert.Equal(t, "[actor] Run: [sketchfab] Search (status 500): unexpected EOF", outer.Error())
	assert.True(t, errors.Is(outer, io.ErrUnexpectedEOF))
}

func TestDetailsDoNotAffectErrorString(t *testing.T) {
	err := pkgerrors.New(pkgerrors.ComponentDataset, "Push", nil).
		WithDetails(map[string]any{"backend": "jsonl"})

	// Details are metadata only; they should not appear in the error string.
	assert.Equal(t, "[dataset] Push", err.Error())
}
