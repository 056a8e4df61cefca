package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	pkgerrors "github.com/Amon20044/SketchFab-Apify-Actor/pkg/errors"
	"github.com/Amon20044/SketchFab-Apify-Actor/sketchfab"
	"github.com/Amon20044/SketchFab-Apify-Actor/translate"
)

// LoadInput reads and validates the per-run input from a JSON file.
func LoadInput(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.ComponentConfig, "LoadInput",
			fmt.Errorf("failed to read input file: %w", err))
	}
	return ParseInput(data)
}

// ParseInput validates raw input JSON against the embedded schema and decodes
// it. Schema validation runs first so unknown fields and wrong types are
// reported with field-level messages.
func ParseInput(data []byte) (*Input, error) {
	if err := ValidateInput(data); err != nil {
		return nil, pkgerrors.New(pkgerrors.ComponentConfig, "ParseInput", err)
	}

	var input Input
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, pkgerrors.New(pkgerrors.ComponentConfig, "ParseInput",
			fmt.Errorf("failed to parse input: %w", err))
	}

	return &input, nil
}

// DefaultConfig returns the built-in actor configuration.
func DefaultConfig() *Config {
	return &Config{
		Sketchfab: SketchfabConfig{
			BaseURL: sketchfab.DefaultBaseURL,
		},
		Gemini: GeminiConfig{
			Model:   translate.DefaultModel,
			BaseURL: translate.DefaultBaseURL,
		},
		Dataset: DatasetConfig{
			Backend: BackendJSONL,
			Path:    DefaultDatasetPath,
		},
	}
}

// LoadConfig loads the actor configuration from a YAML file, layered over
// the built-in defaults. An empty path returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.ComponentConfig, "LoadConfig",
			fmt.Errorf("failed to read config file: %w", err))
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, pkgerrors.New(pkgerrors.ComponentConfig, "LoadConfig",
			fmt.Errorf("failed to parse config file: %w", err))
	}

	if err := cfg.validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.ComponentConfig, "LoadConfig", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Dataset.Backend {
	case BackendJSONL, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown dataset backend %q (want jsonl, redis, or memory)", c.Dataset.Backend)
	}

	if c.Dataset.Backend == BackendRedis && c.Dataset.RedisAddr == "" {
		return fmt.Errorf("dataset backend is redis but redisAddr is empty")
	}

	return nil
}

// ResolveGeminiKey returns the Gemini API key for this run: the input
// override wins, then GEMINI_API_KEY, then GOOGLE_API_KEY. Empty when no
// key is configured anywhere.
func ResolveGeminiKey(input *Input) string {
	if input != nil && input.GoogleAPIKey != "" {
		return input.GoogleAPIKey
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GOOGLE_API_KEY")
}

// ResolveSketchfabToken returns the Sketchfab API token for this run: the
// input override wins, then SKETCHFAB_API_TOKEN. Empty is valid; search
// works unauthenticated.
func ResolveSketchfabToken(input *Input) string {
	if input != nil && input.SketchfabAPIToken != "" {
		return input.SketchfabAPIToken
	}
	return os.Getenv("SKETCHFAB_API_TOKEN")
}
