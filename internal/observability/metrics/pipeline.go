package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

type PipelineMetrics struct {
	registry *prometheus.Registry

	filesTotal      *prometheus.CounterVec
	fileDuration    *prometheus.HistogramVec
	filesInFlight   prometheus.Gauge
	sectionOutcomes *prometheus.CounterVec
	rowsLoaded      prometheus.Counter
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	filesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nightaudit",
			Subsystem: "etl",
			Name:      "files_total",
			Help:      "Total processed report files by final status.",
		},
		[]string{"service", "status"},
	)
	fileDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nightaudit",
			Subsystem: "etl",
			Name:      "file_duration_seconds",
			Help:      "Report file processing duration in seconds by final status.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"service", "status"},
	)
	filesInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "nightaudit",
			Subsystem: "etl",
			Name:      "files_in_flight",
			Help:      "Number of report files currently being processed.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	sectionOutcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nightaudit",
			Subsystem: "etl",
			Name:      "section_outcomes_total",
			Help:      "Section extraction outcomes by section and outcome kind.",
		},
		[]string{"service", "section", "outcome"},
	)
	rowsLoaded := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nightaudit",
			Subsystem: "etl",
			Name:      "rows_loaded_total",
			Help:      "Total rows inserted across all section tables.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(filesTotal, fileDuration, filesInFlight, sectionOutcomes, rowsLoaded)

	return &PipelineMetrics{
		registry:        registry,
		filesTotal:      filesTotal,
		fileDuration:    fileDuration,
		filesInFlight:   filesInFlight,
		sectionOutcomes: sectionOutcomes,
		rowsLoaded:      rowsLoaded,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) StartFile() {
	m.filesInFlight.Inc()
}

func (m *PipelineMetrics) FinishFile(service string, outcome domain.FileOutcome, duration time.Duration) {
	m.filesInFlight.Dec()
	m.filesTotal.WithLabelValues(service, string(outcome.Status)).Inc()
	m.fileDuration.WithLabelValues(service, string(outcome.Status)).Observe(duration.Seconds())
	if outcome.RowsLoaded > 0 {
		m.rowsLoaded.Add(float64(outcome.RowsLoaded))
	}
}

func (m *PipelineMetrics) ObserveSection(service, section string, outcome domain.SectionOutcome) {
	m.sectionOutcomes.WithLabelValues(service, section, outcome.Kind.String()).Inc()
}
