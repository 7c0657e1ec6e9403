package ports

type Observability interface {
	LogInfo(msg string, fields ...Field)
	LogError(msg string, err error, fields ...Field)
	LogCritical(msg string, err error, fields ...Field)

	IncCounter(name string, v float64)
	ObserveLatency(name string, seconds float64)

	SetGauge(name string, v float64)
}

type Field struct {
	Key   string
	Value any
}

// Metric names shared by the stages and the Prometheus adapter.
const (
	MetricRowsIngested    = "netsec_rows_ingested_total"
	MetricDriftedColumns  = "netsec_drifted_columns_total"
	MetricValuesImputed   = "netsec_values_imputed_total"
	MetricStageFailures   = "netsec_stage_failures_total"
	MetricTrainRows       = "netsec_train_rows"
	MetricTestRows        = "netsec_test_rows"
	MetricValidationState = "netsec_validation_status"
	MetricDurationPrefix  = "netsec_"
)

// StageDurationMetric names the latency histogram of a stage, e.g.
// netsec_data_ingestion_duration_seconds.
func StageDurationMetric(stage string) string {
	return MetricDurationPrefix + stage + "_duration_seconds"
}
