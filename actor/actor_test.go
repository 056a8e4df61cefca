package actor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amon20044/SketchFab-Apify-Actor/config"
	"github.com/Amon20044/SketchFab-Apify-Actor/dataset"
	"github.com/Amon20044/SketchFab-Apify-Actor/sketchfab"
	"github.com/Amon20044/SketchFab-Apify-Actor/translate"
)

type fakeSearcher struct {
	calls      int
	lastParams sketchfab.SearchParams
	resp       *sketchfab.SearchResponse
	err        error
}

func (f *fakeSearcher) Search(_ context.Context, params sketchfab.SearchParams) (*sketchfab.SearchResponse, error) {
	f.calls++
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeTranslator struct {
	calls  int
	params sketchfab.SearchParams
	err    error
}

func (f *fakeTranslator) Translate(_ context.Context, _ string) (sketchfab.SearchParams, error) {
	f.calls++
	return f.params, f.err
}

func searchResponse(results ...string) *sketchfab.SearchResponse {
	resp := &sketchfab.SearchResponse{}
	for _, r := range results {
		resp.Results = append(resp.Results, json.RawMessage(r))
	}
	return resp
}

func decodeMetadata(t *testing.T, raw json.RawMessage) Metadata {
	t.Helper()
	var meta Metadata
	require.NoError(t, json.Unmarshal(raw, &meta))
	return meta
}

func TestRun_ManualMode(t *testing.T) {
	next := "https://api.sketchfab.com/v3/search?cursor=cD0yNA==&count=24"
	searcher := &fakeSearcher{resp: searchResponse(`{"uid":"abc"}`, `{"uid":"def"}`)}
	searcher.resp.Next = &next
	writer := dataset.NewMemoryWriter()

	a := New(searcher, writer)
	summary, err := a.Run(context.Background(), &config.Input{
		SearchParams: sketchfab.SearchParams{Q: "robot", Tags: []string{"sci-fi"}},
	})
	require.NoError(t, err)

	assert.Equal(t, ModeManual, summary.Mode)
	assert.Equal(t, 2, summary.ResultCount)
	assert.Equal(t, 3, summary.RecordsWritten)
	assert.True(t, summary.Pagination.HasNext)
	assert.Equal(t, "cD0yNA==", summary.Pagination.NextCursor)
	assert.NotEmpty(t, summary.RunID)

	assert.Equal(t, "robot", searcher.lastParams.Q)

	records := writer.Records()
	require.Len(t, records, 3)

	meta := decodeMetadata(t, records[0])
	assert.True(t, meta.IsMetadata, "metadata record must come first")
	assert.False(t, meta.AIPowered)
	assert.Equal(t, 2, meta.ResultCount)
	assert.Equal(t, summary.RunID, meta.RunID)

	var result map[string]any
	require.NoError(t, json.Unmarshal(records[1], &result))
	assert.Equal(t, "abc", result["uid"], "results must pass through unchanged, in order")
}

func TestRun_ConfiguredDefaultRecordedInMetadata(t *testing.T) {
	searcher := &fakeSearcher{resp: searchResponse(`{"uid":"abc"}`)}
	writer := dataset.NewMemoryWriter()

	a := New(searcher, writer, WithDefaults(sketchfab.Defaults{Downloadable: sketchfab.Bool(true)}))
	_, err := a.Run(context.Background(), &config.Input{
		SearchParams: sketchfab.SearchParams{Q: "tree"},
	})
	require.NoError(t, err)

	require.NotNil(t, searcher.lastParams.Downloadable)
	assert.True(t, *searcher.lastParams.Downloadable)

	meta := decodeMetadata(t, writer.Records()[0])
	require.NotNil(t, meta.SearchParams.Downloadable,
		"metadata must report the parameters the search actually used")
	assert.True(t, *meta.SearchParams.Downloadable)
}

func TestRun_ExplicitInputWinsOverDefault(t *testing.T) {
	searcher := &fakeSearcher{resp: searchResponse()}
	writer := dataset.NewMemoryWriter()

	a := New(searcher, writer, WithDefaults(sketchfab.Defaults{Downloadable: sketchfab.Bool(true)}))
	_, err := a.Run(context.Background(), &config.Input{
		SearchParams: sketchfab.SearchParams{Q: "tree", Downloadable: sketchfab.Bool(false)},
	})
	require.NoError(t, err)

	require.NotNil(t, searcher.lastParams.Downloadable)
	assert.False(t, *searcher.lastParams.Downloadable)

	meta := decodeMetadata(t, writer.Records()[0])
	require.NotNil(t, meta.SearchParams.Downloadable)
	assert.False(t, *meta.SearchParams.Downloadable)
}

func TestRun_AIModeSuccess(t *testing.T) {
	searcher := &fakeSearcher{resp: searchResponse(`{"uid":"abc"}`)}
	translator := &fakeTranslator{
		params: sketchfab.SearchParams{Q: "dragon", Animated: sketchfab.Bool(true)},
	}
	writer := dataset.NewMemoryWriter()

	a := New(searcher, writer, WithTranslator(translator))
	summary, err := a.Run(context.Background(), &config.Input{
		UseAI:        true,
		NaturalQuery: "free animated dragons",
	})
	require.NoError(t, err)

	assert.Equal(t, ModeAI, summary.Mode)
	assert.Equal(t, 1, translator.calls)
	assert.Equal(t, "dragon", searcher.lastParams.Q)

	meta := decodeMetadata(t, writer.Records()[0])
	assert.True(t, meta.AIPowered)
	assert.Equal(t, "free animated dragons", meta.OriginalQuery)
	assert.False(t, meta.Fallback)
}

func TestRun_AIModeWithoutTranslatorFails(t *testing.T) {
	searcher := &fakeSearcher{resp: searchResponse()}
	writer := dataset.NewMemoryWriter()

	a := New(searcher, writer)
	_, err := a.Run(context.Background(), &config.Input{UseAI: true, NaturalQuery: "dragons"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAIModeNotConfigured)

	assert.Zero(t, searcher.calls, "no search without a resolved parameter set")
	assert.Zero(t, writer.Len(), "nothing written on a failed run")
}

func TestRun_AIModeMissingKeyFailsBeforeSearch(t *testing.T) {
	searcher := &fakeSearcher{resp: searchResponse()}
	writer := dataset.NewMemoryWriter()

	a := New(searcher, writer, WithTranslator(translate.NewTranslator("")))
	_, err := a.Run(context.Background(), &config.Input{UseAI: true, NaturalQuery: "dragons"})
	require.Error(t, err)
	assert.ErrorIs(t, err, translate.ErrMissingAPIKey)

	assert.Zero(t, searcher.calls)
	assert.Zero(t, writer.Len())
}

func TestRun_UseAIWithoutQueryTakesManualPath(t *testing.T) {
	searcher := &fakeSearcher{resp: searchResponse()}
	translator := &fakeTranslator{}
	writer := dataset.NewMemoryWriter()

	a := New(searcher, writer, WithTranslator(translator))
	summary, err := a.Run(context.Background(), &config.Input{
		SearchParams: sketchfab.SearchParams{Q: "robot"},
		UseAI:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, ModeManual, summary.Mode)
	assert.Zero(t, translator.calls)
	assert.Equal(t, "robot", searcher.lastParams.Q)
}

func TestRun_TranslationFailureFailsWithoutFallback(t *testing.T) {
	searcher := &fakeSearcher{resp: searchResponse()}
	translator := &fakeTranslator{err: errors.New("model unavailable")}
	writer := dataset.NewMemoryWriter()

	a := New(searcher, writer, WithTranslator(translator))
	_, err := a.Run(context.Background(), &config.Input{UseAI: true, NaturalQuery: "dragons"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")

	assert.Zero(t, searcher.calls)
	assert.Zero(t, writer.Len())
}

func TestRun_TranslationFailureFallsBackWhenEnabled(t *testing.T) {
	searcher := &fakeSearcher{resp: searchResponse(`{"uid":"abc"}`)}
	translator := &fakeTranslator{err: errors.New("model unavailable")}
	writer := dataset.NewMemoryWriter()

	a := New(searcher, writer, WithTranslator(translator))
	summary, err := a.Run(context.Background(), &config.Input{
		UseAI:           true,
		NaturalQuery:    "free animated dragons",
		FallbackToQuery: true,
	})
	require.NoError(t, err)

	assert.True(t, summary.Fallback)
	assert.Equal(t, "free animated dragons", searcher.lastParams.Q)
	require.NotNil(t, searcher.lastParams.Downloadable)
	assert.True(t, *searcher.lastParams.Downloadable)

	meta := decodeMetadata(t, writer.Records()[0])
	assert.False(t, meta.AIPowered, "fallback results are not AI powered")
	assert.True(t, meta.Fallback)
	assert.Contains(t, meta.TranslationError, "model unavailable")
}

func TestRun_UpstreamErrorWritesNothing(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("502 bad gateway")}
	writer := dataset.NewMemoryWriter()

	a := New(searcher, writer)
	_, err := a.Run(context.Background(), &config.Input{
		SearchParams: sketchfab.SearchParams{Q: "robot"},
	})
	require.Error(t, err)
	assert.Zero(t, writer.Len(), "failed search must not leave partial output")
}

func TestRun_EmptyResultsIsSuccess(t *testing.T) {
	searcher := &fakeSearcher{resp: searchResponse()}
	writer := dataset.NewMemoryWriter()

	a := New(searcher, writer)
	summary, err := a.Run(context.Background(), &config.Input{
		SearchParams: sketchfab.SearchParams{Q: "nonexistent-model-xyz"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.ResultCount)
	assert.Equal(t, 1, summary.RecordsWritten, "metadata record is still written")

	meta := decodeMetadata(t, writer.Records()[0])
	assert.Equal(t, 0, meta.ResultCount)
	assert.False(t, meta.Pagination.HasNext)
}

func TestRun_WriterFailureFailsRun(t *testing.T) {
	searcher := &fakeSearcher{resp: searchResponse(`{"uid":"abc"}`)}
	writer := dataset.NewMemoryWriter()
	require.NoError(t, writer.Close())

	a := New(searcher, writer)
	_, err := a.Run(context.Background(), &config.Input{
		SearchParams: sketchfab.SearchParams{Q: "robot"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrClosed)
}
