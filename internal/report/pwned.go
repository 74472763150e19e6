package report

import (
	"fmt"
	"io"

	"github.com/initstring/pwnreport/internal/model"
)

// PwnedWriter outputs the classic pwnreport text format: one block per
// breach, ready to paste into a pentest report.
//
//	**BreachName**
//	* email1@example.com
//	* email2@example.com
//
// Breach blocks appear in first-seen order and addresses in the order they
// were checked, because reviewers diff these reports between engagements
// and a stable order keeps the diffs meaningful.
type PwnedWriter struct {
	baseWriter
}

// NewPwnedWriter creates a PwnedWriter that outputs to the given writer.
func NewPwnedWriter(output io.Writer) *PwnedWriter {
	return &PwnedWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs one block per breach, each followed by a blank line.
func (w *PwnedWriter) Write(report *model.CheckReport) (int, error) {
	total := 0
	for _, name := range report.Breaches.Names() {
		n, err := fmt.Fprintf(w.output, "**%s**\n", name)
		total += n
		if err != nil {
			return total, err
		}

		for _, address := range report.Breaches.Addresses(name) {
			n, err := fmt.Fprintf(w.output, "* %s\n", address)
			total += n
			if err != nil {
				return total, err
			}
		}

		n, err = fmt.Fprintln(w.output)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
