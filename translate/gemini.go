// Package translate converts natural-language queries into Sketchfab search
// parameters using Google Gemini structured output.
//
// The translator is a black-box function from a query string to a validated
// SearchParams value. It owns no retries and no fallback policy; callers
// decide what a failed translation means for the run.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Amon20044/SketchFab-Apify-Actor/logger"
	pkgerrors "github.com/Amon20044/SketchFab-Apify-Actor/pkg/errors"
	"github.com/Amon20044/SketchFab-Apify-Actor/pkg/httputil"
	"github.com/Amon20044/SketchFab-Apify-Actor/sketchfab"
)

const (
	// DefaultModel is the Gemini model used for translation. Flash keeps
	// latency and cost low for a single structured-output call.
	DefaultModel = "gemini-2.0-flash"

	// DefaultBaseURL is the Gemini generateContent API base URL.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// defaultTemperature keeps translations close to deterministic.
	defaultTemperature = 0.1

	contentTypeHeader = "Content-Type"
	applicationJSON   = "application/json"
)

// Translator converts natural-language queries to search parameters via the
// Gemini generateContent endpoint.
type Translator struct {
	model      string
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Translator.
type Option func(*Translator)

// WithModel overrides the Gemini model name.
func WithModel(model string) Option {
	return func(t *Translator) {
		if model != "" {
			t.model = model
		}
	}
}

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(t *Translator) {
		if baseURL != "" {
			t.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Translator) {
		t.httpClient = client
	}
}

// NewTranslator creates a Gemini-backed translator. An empty apiKey is
// allowed at construction time; Translate fails fast without issuing a
// network call when the key is missing.
func NewTranslator(apiKey string, opts ...Option) *Translator {
	t := &Translator{
		model:      DefaultModel,
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: httputil.NewHTTPClient(httputil.DefaultTranslateTimeout),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Model returns the model name used by this translator.
func (t *Translator) Model() string {
	return t.model
}

// Gemini API request/response structures
type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenConfig struct {
	Temperature      float32         `json:"temperature"`
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type geminiResponse struct {
	Candidates     []geminiCandidate     `json:"candidates"`
	UsageMetadata  *geminiUsage          `json:"usageMetadata,omitempty"`
	PromptFeedback *geminiPromptFeedback `json:"promptFeedback,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
}

type geminiPromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// Translate converts a natural-language query into validated search
// parameters. The model output is schema-validated before decoding, so a
// structurally invalid translation surfaces as ErrInvalidOutput rather than
// leaking malformed fields into the search request.
func (t *Translator) Translate(ctx context.Context, query string) (sketchfab.SearchParams, error) {
	var params sketchfab.SearchParams

	if t.apiKey == "" {
		return params, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate", ErrMissingAPIKey)
	}

	logger.TranslationCall(t.model, query)
	start := time.Now()

	respBody, err := t.generateContent(ctx, query)
	if err != nil {
		logger.TranslationError(t.model, err)
		return params, err
	}

	raw, usage, err := t.extractOutput(respBody)
	if err != nil {
		logger.TranslationError(t.model, err)
		return params, err
	}

	if err := validateOutput(raw); err != nil {
		logger.TranslationError(t.model, err)
		return params, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate", err)
	}

	params, err = sketchfab.ParseParams(raw)
	if err != nil {
		return params, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate", err)
	}

	tokensIn, tokensOut := 0, 0
	if usage != nil {
		tokensIn = usage.PromptTokenCount
		tokensOut = usage.CandidatesTokenCount
	}
	logger.TranslationResponse(t.model, tokensIn, tokensOut, time.Since(start))

	return params, nil
}

// generateContent sends the HTTP request to the Gemini API and returns the
// raw response body.
func (t *Translator) generateContent(ctx context.Context, query string) ([]byte, error) {
	geminiReq := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: userPromptPrefix + fmt.Sprintf("%q", query)}},
			},
		},
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:      defaultTemperature,
			ResponseMimeType: applicationJSON,
			ResponseSchema:   json.RawMessage(responseSchema),
		},
	}

	reqBody, err := json.Marshal(geminiReq)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate",
			fmt.Errorf("failed to marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", t.baseURL, t.model, t.apiKey)
	logger.APIRequest("Gemini", http.MethodPost, url, map[string]string{contentTypeHeader: applicationJSON}, nil)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate",
			fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set(contentTypeHeader, applicationJSON)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		logger.APIResponse("Gemini", 0, "", err)
		return nil, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate",
			fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.APIResponse("Gemini", resp.StatusCode, "", err)
		return nil, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate",
			fmt.Errorf("failed to read response: %w", err))
	}

	logger.APIResponse("Gemini", resp.StatusCode, string(respBody), nil)

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate",
			fmt.Errorf("API request failed: %s", string(respBody))).
			WithStatusCode(resp.StatusCode)
	}

	return respBody, nil
}

// extractOutput pulls the structured JSON text out of the first candidate.
func (t *Translator) extractOutput(respBody []byte) ([]byte, *geminiUsage, error) {
	var geminiResp geminiResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return nil, nil, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate",
			fmt.Errorf("failed to unmarshal response: %w", err))
	}

	if len(geminiResp.Candidates) == 0 {
		err := ErrNoCandidates
		if geminiResp.PromptFeedback != nil && geminiResp.PromptFeedback.BlockReason != "" {
			err = fmt.Errorf("%w (prompt blocked: %s)", ErrNoCandidates, geminiResp.PromptFeedback.BlockReason)
		}
		return nil, nil, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate", err)
	}

	candidate := geminiResp.Candidates[0]
	if candidate.FinishReason == "SAFETY" {
		return nil, nil, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate",
			fmt.Errorf("response blocked by safety filters"))
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return nil, nil, pkgerrors.New(pkgerrors.ComponentTranslate, "Translate",
			fmt.Errorf("no content parts in response (finish reason: %s)", candidate.FinishReason))
	}

	return []byte(text.String()), geminiResp.UsageMetadata, nil
}
