// Package observability backs ports.Observability with Prometheus collectors
// and the standard logger.
package observability

import (
	"fmt"
	"log"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
)

type PromObs struct {
	reg      *prometheus.Registry
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

// NewPromObs registers the pipeline collectors on reg. A nil reg gets a
// private registry so several runs in one process do not collide.
func NewPromObs(reg *prometheus.Registry) *PromObs {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	ingested := prometheus.NewCounter(prometheus.CounterOpts{
		Name: ports.MetricRowsIngested,
		Help: "Rows fetched from the source and written to the feature store.",
	})
	drifted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: ports.MetricDriftedColumns,
		Help: "Columns whose train/test distributions differ.",
	})
	imputed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: ports.MetricValuesImputed,
		Help: "Missing cells filled by the KNN imputer.",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: ports.MetricStageFailures,
		Help: "Stages that ended with an error.",
	})
	trainRows := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: ports.MetricTrainRows,
		Help: "Rows in the train split of the last run.",
	})
	testRows := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: ports.MetricTestRows,
		Help: "Rows in the test split of the last run.",
	})
	status := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: ports.MetricValidationState,
		Help: "1 when the last validation found no drift, else 0.",
	})

	histos := map[string]prometheus.Observer{}
	collectors := []prometheus.Collector{ingested, drifted, imputed, failures, trainRows, testRows, status}
	for _, stage := range []string{domain.StageIngestion, domain.StageValidation, domain.StageTransformation} {
		name := ports.StageDurationMetric(stage)
		h := prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    name,
			Help:    "Wall time of the " + strings.ReplaceAll(stage, "_", " ") + " stage.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		})
		histos[name] = h
		collectors = append(collectors, h)
	}
	reg.MustRegister(collectors...)

	return &PromObs{
		reg: reg,
		counters: map[string]prometheus.Counter{
			ports.MetricRowsIngested:   ingested,
			ports.MetricDriftedColumns: drifted,
			ports.MetricValuesImputed:  imputed,
			ports.MetricStageFailures:  failures,
		},
		gauges: map[string]prometheus.Gauge{
			ports.MetricTrainRows:       trainRows,
			ports.MetricTestRows:        testRows,
			ports.MetricValidationState: status,
		},
		histos: histos,
	}
}

// Registry exposes the registry the collectors live on.
func (p *PromObs) Registry() *prometheus.Registry { return p.reg }

// WriteTextfile dumps the current metric values in the node_exporter
// textfile format.
func (p *PromObs) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.reg)
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	log.Printf("INFO: %s%s", msg, formatFields(fields))
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	if err != nil {
		log.Printf("ERROR: %s: %v%s", msg, err, formatFields(fields))
	}
}

func (p *PromObs) LogCritical(msg string, err error, fields ...ports.Field) {
	if err != nil {
		log.Printf("CRITICAL: %s: %v%s", msg, err, formatFields(fields))
	}
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

func formatFields(fields []ports.Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

var _ ports.Observability = (*PromObs)(nil)
