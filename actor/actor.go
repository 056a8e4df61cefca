// Package actor orchestrates one search run: route the input to the manual
// or AI translation path, resolve a single set of search parameters, issue
// the search, and append the metadata record plus each result to the dataset.
package actor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Amon20044/SketchFab-Apify-Actor/config"
	"github.com/Amon20044/SketchFab-Apify-Actor/dataset"
	"github.com/Amon20044/SketchFab-Apify-Actor/logger"
	"github.com/Amon20044/SketchFab-Apify-Actor/metrics"
	pkgerrors "github.com/Amon20044/SketchFab-Apify-Actor/pkg/errors"
	"github.com/Amon20044/SketchFab-Apify-Actor/sketchfab"
	"github.com/Amon20044/SketchFab-Apify-Actor/telemetry"
)

// Run modes, used in logs, metrics labels, and the metadata record.
const (
	ModeManual = "manual"
	ModeAI     = "ai"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// ErrAIModeNotConfigured reports an AI-mode run with no translator wired in.
var ErrAIModeNotConfigured = errors.New("AI mode requested but no translator is configured")

// Translator converts a natural-language query into search parameters.
// Satisfied by translate.Translator.
type Translator interface {
	Translate(ctx context.Context, query string) (sketchfab.SearchParams, error)
}

// Searcher issues one search request. Satisfied by sketchfab.Client.
type Searcher interface {
	Search(ctx context.Context, params sketchfab.SearchParams) (*sketchfab.SearchResponse, error)
}

// Actor runs one search invocation end to end.
type Actor struct {
	client     Searcher
	translator Translator
	writer     dataset.Writer
	backend    string
	defaults   sketchfab.Defaults
}

// Option configures an Actor.
type Option func(*Actor)

// WithTranslator wires in the AI translation path. Without one, AI-mode
// inputs fail unless fallback is enabled.
func WithTranslator(t Translator) Option {
	return func(a *Actor) {
		a.translator = t
	}
}

// WithBackendName sets the dataset backend label used in logs and metrics.
func WithBackendName(name string) Option {
	return func(a *Actor) {
		a.backend = name
	}
}

// WithDefaults sets policy defaults applied during parameter resolution to
// fields the input left unset. Applied before the search and before the
// metadata record is built, so both see the same parameter set.
func WithDefaults(d sketchfab.Defaults) Option {
	return func(a *Actor) {
		a.defaults = d
	}
}

// New creates an Actor writing to the given dataset sink.
func New(client Searcher, writer dataset.Writer, opts ...Option) *Actor {
	a := &Actor{
		client:  client,
		writer:  writer,
		backend: config.BackendMemory,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Run executes one search invocation: resolve parameters from the input,
// search, and push the metadata record followed by each result unchanged.
// A failed search writes nothing.
func (a *Actor) Run(ctx context.Context, input *config.Input) (*RunSummary, error) {
	ctx, span := telemetry.Tracer(nil).Start(ctx, "actor.run")
	defer span.End()

	runID := uuid.New().String()
	logger.Info("Starting search run", "run_id", runID, "use_ai", input.UseAI)

	resolution, err := a.resolveParams(ctx, input)
	if err != nil {
		return nil, err
	}
	resolution.params = resolution.params.Apply(a.defaults)

	start := time.Now()
	resp, err := a.client.Search(ctx, resolution.params)
	if err != nil {
		metrics.RecordSearch(resolution.mode, statusError, time.Since(start).Seconds())
		return nil, err
	}
	metrics.RecordSearch(resolution.mode, statusSuccess, time.Since(start).Seconds())
	metrics.RecordResults(len(resp.Results))

	page := resp.Pagination()

	meta := Metadata{
		IsMetadata:       true,
		RunID:            runID,
		Timestamp:        time.Now().UTC(),
		SearchParams:     resolution.params,
		AIPowered:        resolution.mode == ModeAI && !resolution.fallback,
		OriginalQuery:    resolution.originalQuery,
		Fallback:         resolution.fallback,
		TranslationError: resolution.translationError,
		ResultCount:      len(resp.Results),
		Pagination:       page,
	}
	if err := a.push(ctx, meta); err != nil {
		return nil, err
	}

	written := 1
	for _, result := range resp.Results {
		if err := a.push(ctx, result); err != nil {
			return nil, err
		}
		written++
	}

	logger.SearchSummary(resolution.mode, len(resp.Results), page.HasNext, "run_id", runID)
	logger.DatasetPush(a.backend, written)

	return &RunSummary{
		RunID:          runID,
		Mode:           resolution.mode,
		Fallback:       resolution.fallback,
		ResultCount:    len(resp.Results),
		RecordsWritten: written,
		Pagination:     page,
	}, nil
}

func (a *Actor) push(ctx context.Context, record any) error {
	if err := a.writer.Push(ctx, record); err != nil {
		return pkgerrors.New(pkgerrors.ComponentDataset, "Push", err)
	}
	metrics.RecordDatasetPush(a.backend)
	return nil
}

// resolution is the outcome of routing the input to a single parameter set.
type resolution struct {
	params           sketchfab.SearchParams
	mode             string
	originalQuery    string
	fallback         bool
	translationError string
}

// resolveParams routes the input: the AI path runs when UseAI is set and a
// natural query is present, otherwise the input's filter fields are used
// directly. An unconfigured or failed translation fails the run unless the
// input explicitly opts into falling back to a plain keyword search.
func (a *Actor) resolveParams(ctx context.Context, input *config.Input) (resolution, error) {
	if !input.UseAI || input.NaturalQuery == "" {
		return resolution{params: input.SearchParams, mode: ModeManual}, nil
	}

	res := resolution{mode: ModeAI, originalQuery: input.NaturalQuery}

	if a.translator == nil {
		if !input.FallbackToQuery {
			return res, pkgerrors.New(pkgerrors.ComponentActor, "Run", ErrAIModeNotConfigured)
		}
		return a.fallback(res, ErrAIModeNotConfigured, input.NaturalQuery), nil
	}

	start := time.Now()
	params, err := a.translator.Translate(ctx, input.NaturalQuery)
	if err != nil {
		metrics.RecordTranslation(statusError, time.Since(start).Seconds())
		if !input.FallbackToQuery {
			return res, err
		}
		return a.fallback(res, err, input.NaturalQuery), nil
	}
	metrics.RecordTranslation(statusSuccess, time.Since(start).Seconds())

	res.params = params
	return res, nil
}

// fallback degrades a failed AI path to a plain keyword search on the
// natural query, restricted to downloadable models.
func (a *Actor) fallback(res resolution, cause error, query string) resolution {
	logger.Warn("Translation unavailable, falling back to keyword search",
		"query", query, "error", fmt.Sprintf("%v", cause))

	res.fallback = true
	res.translationError = cause.Error()
	res.params = sketchfab.SearchParams{
		Q:            query,
		Downloadable: sketchfab.Bool(true),
	}
	return res
}
