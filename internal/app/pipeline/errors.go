package pipeline

import "errors"

var (
	ErrEmptySource    = errors.New("source returned no rows")
	ErrSchemaMismatch = errors.New("dataset does not match schema")
	ErrColumnMissing  = errors.New("column missing from test data")
	ErrMissingTarget  = errors.New("target column missing")
	ErrShapeMismatch  = errors.New("train and test features differ")
	ErrNonNumeric     = errors.New("column is not numeric")
)
