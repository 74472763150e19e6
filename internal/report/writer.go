package report

import (
	"io"

	"github.com/initstring/pwnreport/internal/model"
)

// Writer defines the interface for report output.
// Implementations serialize a completed check run in a specific format.
//
// Design decision: An interface keeps the pipeline's write stage ignorant
// of the format. New formats are added by implementing Writer, without
// touching the data structures or the pipeline.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.CheckReport) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
