// Package failure defines the single tagged error returned by every pipeline
// stage. It carries the failing stage and the source location where the
// failure was caught.
package failure

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Error wraps any stage failure with its origin.
type Error struct {
	Stage string
	File  string
	Line  int
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("error occurred in [%s] at line [%d] in stage [%s]: %v",
		e.File, e.Line, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap tags err with the stage name and the caller's file and line.
// A nil err stays nil and an already tagged error is returned unchanged, so
// the location always points at the first boundary that caught it.
func Wrap(stage string, err error) error {
	if err == nil {
		return nil
	}
	var tagged *Error
	if errors.As(err, &tagged) {
		return err
	}
	file, line := "unknown", 0
	if _, f, l, ok := runtime.Caller(1); ok {
		file, line = filepath.Base(f), l
	}
	return &Error{Stage: stage, File: file, Line: line, Err: err}
}

// StageOf reports the stage recorded in a tagged error, if any.
func StageOf(err error) (string, bool) {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Stage, true
	}
	return "", false
}
