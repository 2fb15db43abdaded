// Package metrics exposes Prometheus collectors for the HTTP surface and
// the document processing pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	documentsTotal     *prometheus.CounterVec
	pipelineDuration   *prometheus.HistogramVec
	pagesExtracted     prometheus.Counter
	extractionFailures prometheus.Counter
	topConfidence      prometheus.Histogram
	categoriesReturned prometheus.Histogram
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docscan",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docscan",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docscan",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docscan",
			Subsystem: "pipeline",
			Name:      "documents_total",
			Help:      "Total processed document requests by status.",
		},
		[]string{"service", "status"},
	)
	pipelineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docscan",
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "End-to-end pipeline duration in seconds by status.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"service", "status"},
	)
	pagesExtracted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docscan",
			Subsystem: "pipeline",
			Name:      "pages_extracted_total",
			Help:      "Total pages extracted across all files.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	extractionFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docscan",
			Subsystem: "pipeline",
			Name:      "extraction_failures_total",
			Help:      "Total per-file extraction failures (file skipped).",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	topConfidence := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docscan",
			Subsystem: "pipeline",
			Name:      "top_confidence",
			Help:      "Distribution of the top classification confidence per document.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.5, 0.7, 0.9, 1.0},
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	categoriesReturned := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docscan",
			Subsystem: "pipeline",
			Name:      "categories_returned",
			Help:      "Distribution of returned categories per classified document.",
			Buckets:   []float64{1, 2, 3, 4, 5},
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		documentsTotal,
		pipelineDuration,
		pagesExtracted,
		extractionFailures,
		topConfidence,
		categoriesReturned,
	)

	return &Metrics{
		registry:           registry,
		service:            service,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		documentsTotal:     documentsTotal,
		pipelineDuration:   pipelineDuration,
		pagesExtracted:     pagesExtracted,
		extractionFailures: extractionFailures,
		topConfidence:      topConfidence,
		categoriesReturned: categoriesReturned,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			m.service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(m.service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "/api/download/") {
		return "/api/download/{data_type}"
	}
	return path
}

// RecordPipeline records one finished pipeline run.
func (m *Metrics) RecordPipeline(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.documentsTotal.WithLabelValues(m.service, status).Inc()
	m.pipelineDuration.WithLabelValues(m.service, status).Observe(duration.Seconds())
}

// ObserveExtraction implements the pipeline observer for per-file extraction.
func (m *Metrics) ObserveExtraction(_ string, pages int, err error) {
	if err != nil {
		m.extractionFailures.Inc()
		return
	}
	m.pagesExtracted.Add(float64(pages))
}

// ObserveClassification implements the pipeline observer for classification.
func (m *Metrics) ObserveClassification(topConfidence float64, resultCount int) {
	m.topConfidence.Observe(topConfidence)
	m.categoriesReturned.Observe(float64(resultCount))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
