// Package metrics provides Prometheus instrumentation for actor runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sketchfab_actor"

var (
	// searchDuration is a histogram of Sketchfab search request duration.
	searchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of Sketchfab search requests in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"mode"}, // mode: manual, ai
	)

	// searchesTotal is a counter of search requests by mode and outcome.
	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of Sketchfab search requests",
		},
		[]string{"mode", "status"}, // status: success, error
	)

	// resultsTotal is a counter of model results returned by searches.
	resultsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_total",
			Help:      "Total number of model results returned by searches",
		},
	)

	// translationDuration is a histogram of Gemini translation call duration.
	translationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "translation_duration_seconds",
			Help:      "Duration of Gemini translation calls in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// translationsTotal is a counter of translation calls.
	translationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_total",
			Help:      "Total number of Gemini translation calls",
		},
		[]string{"status"}, // status: success, error
	)

	// datasetRecordsTotal is a counter of records pushed to the dataset.
	datasetRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_records_total",
			Help:      "Total number of records pushed to the dataset",
		},
		[]string{"backend"},
	)

	// allMetrics is a list of all metrics for registration.
	allMetrics = []prometheus.Collector{
		searchDuration,
		searchesTotal,
		resultsTotal,
		translationDuration,
		translationsTotal,
		datasetRecordsTotal,
	}
)

// RecordSearch records a completed search request.
func RecordSearch(mode, status string, durationSeconds float64) {
	searchDuration.WithLabelValues(mode).Observe(durationSeconds)
	searchesTotal.WithLabelValues(mode, status).Inc()
}

// RecordResults records the number of results a search returned.
func RecordResults(count int) {
	if count > 0 {
		resultsTotal.Add(float64(count))
	}
}

// RecordTranslation records a Gemini translation call.
func RecordTranslation(status string, durationSeconds float64) {
	translationDuration.Observe(durationSeconds)
	translationsTotal.WithLabelValues(status).Inc()
}

// RecordDatasetPush records a record pushed to the dataset.
func RecordDatasetPush(backend string) {
	datasetRecordsTotal.WithLabelValues(backend).Inc()
}
