package loxerrors

import (
	"fmt"
	"io"
)

type ErrReporter interface {
	ReportPanic(err error)
	ReportError(err error)
}

type errReporter struct {
	w io.Writer
}

func NewErrReporter(w io.Writer) *errReporter {
	return &errReporter{w: w}
}

// ReportPanic implements ErrReporter.
func (e *errReporter) ReportPanic(err error) {
	DefaultReportPanic(e.w, err)
}

// ReportError implements ErrReporter.
func (e *errReporter) ReportError(err error) {
	DefaultReportError(e.w, err)
}

// DefaultReportPanic is the default implementation of ErrReporter.ReportPanic.
func DefaultReportPanic(w io.Writer, err error) {
	fmt.Fprintf(w, "FATAL %v\n", err)
}

// DefaultReportError is the default implementation of ErrReporter.ReportError.
// Joined errors are reported one per line.
func DefaultReportError(w io.Writer, err error) {
	for _, e := range Flatten(err) {
		fmt.Fprintf(w, "%v\n", e)
	}
}

// Flatten expands errors.Join aggregates into their leaf errors.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}

	joined, ok := err.(joinInterface)
	if !ok {
		return []error{err}
	}

	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, Flatten(e)...)
	}
	return out
}

var _ ErrReporter = (*errReporter)(nil)
