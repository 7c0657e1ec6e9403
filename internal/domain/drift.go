package domain

// ColumnDrift is the per-column KS outcome stored in the drift report.
type ColumnDrift struct {
	PValue        float64 `yaml:"p_value"`
	DriftDetected bool    `yaml:"drift_detected"`
}

// DriftReport is keyed by column name, never by position.
type DriftReport map[string]ColumnDrift

// Drifted returns the number of columns flagged as drifted.
func (r DriftReport) Drifted() int {
	n := 0
	for _, c := range r {
		if c.DriftDetected {
			n++
		}
	}
	return n
}
