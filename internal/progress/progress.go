package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives progress updates while accounts are being checked.
// The collector calls Step once per completed request with the HTTP status
// of that request, and Finish once when the run ends.
//
// Design decision: The collector depends on this interface rather than on a
// concrete bar so tests can run without terminal output and so the display
// can be swapped (for example, for structured logging in CI) without
// touching collection logic.
type Reporter interface {
	// SetTotal reinitializes the display for a run of total items.
	// The collector calls this once, before the first request, because
	// the address count is only known after extraction.
	SetTotal(total int)

	// Step records one completed request. status is the HTTP status text
	// of the request just performed (e.g. "200"), shown beside the bar.
	Step(status string)

	// Finish completes the progress display.
	Finish()
}

// BarReporter renders a single in-place progress line using progressbar.
type BarReporter struct {
	bar         *progressbar.ProgressBar
	out         io.Writer
	description string
}

// BarReporterOption configures a BarReporter.
type BarReporterOption func(*BarReporter)

// WithOutput redirects the progress line to the given writer.
// Defaults to os.Stdout; tests pass a buffer.
func WithOutput(out io.Writer) BarReporterOption {
	return func(b *BarReporter) {
		b.out = out
	}
}

// NewBarReporter creates a progress line for total items with the given
// description prefix.
func NewBarReporter(total int, description string, opts ...BarReporterOption) *BarReporter {
	b := &BarReporter{
		out:         os.Stdout,
		description: description,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.bar = b.newBar(total)

	return b
}

// newBar builds the underlying progress bar for the given total.
func (b *BarReporter) newBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription(b.description),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(0), // every request matters, no update throttling
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionUseANSICodes(true),
	)
}

// SetTotal reinitializes the bar with the new total count.
func (b *BarReporter) SetTotal(total int) {
	b.bar = b.newBar(total)
}

// Step advances the bar by one and annotates it with the last HTTP status.
func (b *BarReporter) Step(status string) {
	if status != "" {
		b.bar.Describe(fmt.Sprintf("%s (last status: %s)", b.description, status))
	}
	_ = b.bar.Add(1) //nolint:errcheck // Display only; collection must not fail on render errors
}

// Finish completes the bar and terminates the in-place line.
func (b *BarReporter) Finish() {
	_ = b.bar.Finish() //nolint:errcheck // Display only
	fmt.Fprintln(b.out)
}

// NopReporter discards all progress updates. Used in tests and when the
// output is not a terminal.
type NopReporter struct{}

// SetTotal implements Reporter.
func (NopReporter) SetTotal(int) {}

// Step implements Reporter.
func (NopReporter) Step(string) {}

// Finish implements Reporter.
func (NopReporter) Finish() {}
