// Package config loads and validates the actor's two configuration surfaces:
// the per-run input (JSON, Apify-style INPUT.json) and the optional actor
// configuration file (YAML).
//
// Input is validated against an embedded JSON schema before decoding, so
// unrecognized fields and wrong types are rejected with field-level messages
// rather than silently ignored.
package config

import (
	"time"

	"github.com/Amon20044/SketchFab-Apify-Actor/sketchfab"
)

// Input is the structured object read once at the start of an invocation.
// Filter fields are embedded so the input JSON carries them at the top level,
// exactly as the search API names them.
type Input struct {
	sketchfab.SearchParams

	// UseAI selects the AI translation path when true.
	UseAI bool `json:"useAI,omitempty"`

	// NaturalQuery is the natural-language search string translated by
	// Gemini when UseAI is set.
	NaturalQuery string `json:"naturalQuery,omitempty"`

	// FallbackToQuery opts into degrading a failed or unconfigured AI
	// translation to a plain keyword search on NaturalQuery. Off by
	// default: a failed translation fails the run. This mirrors a product
	// decision, not a technical one, so it is never implied.
	FallbackToQuery bool `json:"fallbackToQuery,omitempty"`

	// Credential overrides. Environment variables are consulted when
	// these are empty.
	GoogleAPIKey      string `json:"googleApiKey,omitempty"`
	SketchfabAPIToken string `json:"sketchfabApiToken,omitempty"`
}

// SketchfabConfig configures the search client.
type SketchfabConfig struct {
	BaseURL string `yaml:"baseUrl"`

	// DefaultDownloadable, when set, is injected into searches that did
	// not constrain downloadability. Policy choice, off unless configured.
	DefaultDownloadable *bool `yaml:"defaultDownloadable"`

	// RateLimit caps outbound searches per second; zero disables the
	// client-side limiter.
	RateLimit float64 `yaml:"rateLimit"`
	RateBurst int     `yaml:"rateBurst"`
}

// GeminiConfig configures the translator.
type GeminiConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseUrl"`
}

// DatasetConfig selects and configures the output sink backend.
type DatasetConfig struct {
	// Backend is one of "jsonl", "redis", or "memory".
	Backend string `yaml:"backend"`

	// Path is the JSONL file location for the jsonl backend.
	Path string `yaml:"path"`

	// Redis settings for the redis backend.
	RedisAddr string        `yaml:"redisAddr"`
	RedisKey  string        `yaml:"redisKey"`
	RedisTTL  time.Duration `yaml:"redisTTL"`
}

// MetricsConfig configures the optional Prometheus exporter.
type MetricsConfig struct {
	// Addr is the listen address for /metrics; empty disables the exporter.
	Addr string `yaml:"addr"`
}

// Config is the actor-level configuration, loaded from an optional YAML file
// over built-in defaults.
type Config struct {
	Sketchfab SketchfabConfig `yaml:"sketchfab"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// Dataset backend names.
const (
	BackendJSONL  = "jsonl"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DefaultDatasetPath is where the jsonl backend writes when unconfigured,
// following the Apify local storage layout.
const DefaultDatasetPath = "storage/datasets/default/results.jsonl"
