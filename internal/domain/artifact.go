package domain

import "fmt"

// IngestionArtifact points at the raw train/test split.
type IngestionArtifact struct {
	TrainFilePath string `json:"train_file_path"`
	TestFilePath  string `json:"test_file_path"`
}

func (a IngestionArtifact) String() string {
	return fmt.Sprintf("IngestionArtifact(train_file_path=%s, test_file_path=%s)", a.TrainFilePath, a.TestFilePath)
}

// ValidationArtifact is the outcome of schema checks and drift detection.
// ValidationStatus is true only when no column drifted.
type ValidationArtifact struct {
	ValidationStatus     bool     `json:"validation_status"`
	ValidTrainFilePath   string   `json:"valid_train_file_path"`
	ValidTestFilePath    string   `json:"valid_test_file_path"`
	InvalidTrainFilePath *string  `json:"invalid_train_file_path"`
	InvalidTestFilePath  *string  `json:"invalid_test_file_path"`
	DriftReportFilePath  string   `json:"drift_report_file_path"`
	SchemaErrors         []string `json:"schema_errors,omitempty"`
}

func (a ValidationArtifact) String() string {
	return fmt.Sprintf("ValidationArtifact(validation_status=%t, valid_train_file_path=%s, valid_test_file_path=%s, invalid_train_file_path=%s, invalid_test_file_path=%s, drift_report_file_path=%s, schema_errors=%d)",
		a.ValidationStatus, a.ValidTrainFilePath, a.ValidTestFilePath,
		optional(a.InvalidTrainFilePath), optional(a.InvalidTestFilePath),
		a.DriftReportFilePath, len(a.SchemaErrors))
}

// TransformationArtifact points at the training-ready arrays and the fitted imputer.
type TransformationArtifact struct {
	TransformedTrainFilePath  string `json:"transformed_train_file_path"`
	TransformedTestFilePath   string `json:"transformed_test_file_path"`
	TransformedObjectFilePath string `json:"transformed_object_file_path"`
}

func (a TransformationArtifact) String() string {
	return fmt.Sprintf("TransformationArtifact(transformed_train_file_path=%s, transformed_test_file_path=%s, transformed_object_file_path=%s)",
		a.TransformedTrainFilePath, a.TransformedTestFilePath, a.TransformedObjectFilePath)
}

func optional(s *string) string {
	if s == nil {
		return "None"
	}
	return *s
}
