// Command actor runs one Sketchfab model search: it reads the run input,
// resolves search parameters manually or via Gemini translation, issues the
// search, and appends the results to the configured dataset backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Amon20044/SketchFab-Apify-Actor/actor"
	"github.com/Amon20044/SketchFab-Apify-Actor/config"
	"github.com/Amon20044/SketchFab-Apify-Actor/dataset"
	"github.com/Amon20044/SketchFab-Apify-Actor/logger"
	"github.com/Amon20044/SketchFab-Apify-Actor/metrics"
	"github.com/Amon20044/SketchFab-Apify-Actor/sketchfab"
	"github.com/Amon20044/SketchFab-Apify-Actor/telemetry"
	"github.com/Amon20044/SketchFab-Apify-Actor/translate"
	"github.com/Amon20044/SketchFab-Apify-Actor/version"
)

// defaultInputPath follows the Apify local storage layout.
const defaultInputPath = "storage/key_value_stores/default/INPUT.json"

const shutdownTimeout = 5 * time.Second

func main() {
	inputPath := flag.String("input", defaultInputPath, "path to the run input JSON file")
	configPath := flag.String("config", "", "path to the actor config YAML file (optional)")
	datasetPath := flag.String("dataset", "", "override the JSONL dataset output path")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetVersionInfo())
		return
	}

	logger.SetVerbose(*verbose)
	logger.Debug("Starting sketchfab-actor", version.GetBuildInfo()...)

	if err := run(*inputPath, *configPath, *datasetPath); err != nil {
		logger.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

func run(inputPath, configPath, datasetPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if datasetPath != "" {
		cfg.Dataset.Backend = config.BackendJSONL
		cfg.Dataset.Path = datasetPath
	}

	input, err := config.LoadInput(inputPath)
	if err != nil {
		return err
	}

	shutdownTracing, err := telemetry.Init(ctx, "sketchfab-actor")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Trace export shutdown failed", "error", err)
		}
	}()

	if cfg.Metrics.Addr != "" {
		exporter := metrics.NewExporter(cfg.Metrics.Addr)
		go func() {
			if err := exporter.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("Metrics exporter failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = exporter.Shutdown(shutdownCtx)
		}()
	}

	writer, err := newWriter(cfg.Dataset)
	if err != nil {
		return err
	}
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Warn("Dataset writer close failed", "error", err)
		}
	}()

	client := sketchfab.NewClient(
		sketchfab.WithBaseURL(cfg.Sketchfab.BaseURL),
		sketchfab.WithAPIToken(config.ResolveSketchfabToken(input)),
		sketchfab.WithRateLimit(cfg.Sketchfab.RateLimit, cfg.Sketchfab.RateBurst),
	)

	translator := translate.NewTranslator(config.ResolveGeminiKey(input),
		translate.WithModel(cfg.Gemini.Model),
		translate.WithBaseURL(cfg.Gemini.BaseURL),
	)

	a := actor.New(client, writer,
		actor.WithTranslator(translator),
		actor.WithBackendName(cfg.Dataset.Backend),
		actor.WithDefaults(sketchfab.Defaults{Downloadable: cfg.Sketchfab.DefaultDownloadable}),
	)

	summary, err := a.Run(ctx, input)
	if err != nil {
		return err
	}

	logger.Info("Run complete",
		"run_id", summary.RunID,
		"mode", summary.Mode,
		"results", summary.ResultCount,
		"records_written", summary.RecordsWritten,
		"has_next", summary.Pagination.HasNext,
	)
	return nil
}

// newWriter builds the dataset sink for the configured backend.
func newWriter(cfg config.DatasetConfig) (dataset.Writer, error) {
	switch cfg.Backend {
	case config.BackendJSONL:
		return dataset.NewJSONLWriter(cfg.Path)
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		opts := []dataset.RedisOption{}
		if cfg.RedisKey != "" {
			opts = append(opts, dataset.WithKey(cfg.RedisKey))
		}
		if cfg.RedisTTL > 0 {
			opts = append(opts, dataset.WithTTL(cfg.RedisTTL))
		}
		return dataset.NewRedisWriter(client, opts...), nil
	case config.BackendMemory:
		return dataset.NewMemoryWriter(), nil
	default:
		return nil, fmt.Errorf("unknown dataset backend %q", cfg.Backend)
	}
}
