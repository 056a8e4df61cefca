package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSearch(t *testing.T) {
	searchDuration.Reset()
	searchesTotal.Reset()

	RecordSearch("manual", "success", 0.3)
	RecordSearch("ai", "success", 1.2)
	RecordSearch("ai", "error", 0.1)

	successManual := testutil.ToFloat64(searchesTotal.WithLabelValues("manual", "success"))
	successAI := testutil.ToFloat64(searchesTotal.WithLabelValues("ai", "success"))
	errorAI := testutil.ToFloat64(searchesTotal.WithLabelValues("ai", "error"))

	if successManual != 1 {
		t.Errorf("Expected 1 manual success, got %f", successManual)
	}
	if successAI != 1 {
		t.Errorf("Expected 1 ai success, got %f", successAI)
	}
	if errorAI != 1 {
		t.Errorf("Expected 1 ai error, got %f", errorAI)
	}

	if count := testutil.CollectAndCount(searchDuration); count == 0 {
		t.Error("Expected non-zero histogram observations")
	}
}

func TestRecordResults(t *testing.T) {
	before := testutil.ToFloat64(resultsTotal)

	RecordResults(24)
	RecordResults(0)
	RecordResults(3)

	after := testutil.ToFloat64(resultsTotal)
	if after-before != 27 {
		t.Errorf("Expected 27 results recorded, got %f", after-before)
	}
}

func TestRecordTranslation(t *testing.T) {
	translationsTotal.Reset()

	RecordTranslation("success", 2.1)
	RecordTranslation("error", 0.5)

	successCount := testutil.ToFloat64(translationsTotal.WithLabelValues("success"))
	errorCount := testutil.ToFloat64(translationsTotal.WithLabelValues("error"))

	if successCount != 1 {
		t.Errorf("Expected 1 success translation, got %f", successCount)
	}
	if errorCount != 1 {
		t.Errorf("Expected 1 error translation, got %f", errorCount)
	}
}

func TestRecordDatasetPush(t *testing.T) {
	datasetRecordsTotal.Reset()

	RecordDatasetPush("jsonl")
	RecordDatasetPush("jsonl")
	RecordDatasetPush("redis")

	jsonlCount := testutil.ToFloat64(datasetRecordsTotal.WithLabelValues("jsonl"))
	redisCount := testutil.ToFloat64(datasetRecordsTotal.WithLabelValues("redis"))

	if jsonlCount != 2 {
		t.Errorf("Expected 2 jsonl pushes, got %f", jsonlCount)
	}
	if redisCount != 1 {
		t.Errorf("Expected 1 redis push, got %f", redisCount)
	}
}

func TestExporterHandler(t *testing.T) {
	searchesTotal.Reset()
	RecordSearch("manual", "success", 0.1)

	reg := prometheus.NewRegistry()
	reg.MustRegister(allMetrics...)
	exporter := NewExporterWithRegistry(":0", reg)

	server := httptest.NewServer(exporter.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("Failed to fetch metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	if !strings.Contains(string(body), "sketchfab_actor_searches_total") {
		t.Error("Expected searches_total in metrics output")
	}
}

func TestExporterShutdownBeforeStart(t *testing.T) {
	exporter := NewExporter(":0")
	if err := exporter.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown before Start should be a no-op, got: %v", err)
	}
}
