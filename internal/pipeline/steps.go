package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/initstring/pwnreport/internal/extract"
	"github.com/initstring/pwnreport/internal/hibp"
	"github.com/initstring/pwnreport/internal/model"
	"github.com/initstring/pwnreport/internal/report"
)

// ExtractStep reads the input file and extracts email addresses into the
// report. Zero extracted addresses is a fatal error: the run ends before
// any network activity.
type ExtractStep struct {
	// extractor performs the regex extraction.
	extractor *extract.Extractor

	// unique pre-deduplicates the extracted addresses, preserving
	// first-appearance order. Off by default; the extractor contract is
	// to return every occurrence.
	unique bool

	// out receives user-facing status messages.
	out io.Writer
}

// ExtractStepOption configures an ExtractStep.
type ExtractStepOption func(*ExtractStep)

// WithUnique enables caller-side deduplication of extracted addresses.
func WithUnique(unique bool) ExtractStepOption {
	return func(s *ExtractStep) {
		s.unique = unique
	}
}

// WithExtractOutput redirects status messages. Defaults to os.Stdout.
func WithExtractOutput(out io.Writer) ExtractStepOption {
	return func(s *ExtractStep) {
		s.out = out
	}
}

// NewExtractStep creates the extraction step.
func NewExtractStep(opts ...ExtractStepOption) *ExtractStep {
	s := &ExtractStep{
		extractor: extract.New(),
		out:       os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do reads the report's input file and fills in the email list.
func (s *ExtractStep) Do(_ context.Context, r *model.CheckReport) error {
	fmt.Fprintf(s.out, "Processing %s\n", r.InputFile)

	data, err := os.ReadFile(r.InputFile) //nolint:gosec // User-provided input path is the point
	if err != nil {
		return fmt.Errorf("cannot read input file %s: %w", r.InputFile, err)
	}

	emails, err := s.extractor.Extract(string(data))
	if err != nil {
		return fmt.Errorf("extraction from %s failed: %w", r.InputFile, err)
	}

	if s.unique {
		emails = extract.Unique(emails)
	}

	r.Emails = emails
	fmt.Fprintf(s.out, "Found %d valid email addresses in %s\n", len(emails), r.InputFile)
	return nil
}

// CollectStep queries the breach API for every extracted address.
type CollectStep struct {
	// collector runs the sequential query loop.
	collector *hibp.Collector

	// out receives user-facing status messages.
	out io.Writer
}

// CollectStepOption configures a CollectStep.
type CollectStepOption func(*CollectStep)

// WithCollectOutput redirects status messages. Defaults to os.Stdout.
func WithCollectOutput(out io.Writer) CollectStepOption {
	return func(s *CollectStep) {
		s.out = out
	}
}

// NewCollectStep creates the collection step around a configured collector.
func NewCollectStep(collector *hibp.Collector, opts ...CollectStepOption) *CollectStep {
	s := &CollectStep{
		collector: collector,
		out:       os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CollectStep) Name() string {
	return "collect"
}

// Do runs the collector and stores the raw results on the report.
// On abort nothing is stored: partial results are discarded by contract.
func (s *CollectStep) Do(ctx context.Context, r *model.CheckReport) error {
	results, err := s.collector.Run(ctx, r.Emails)
	if err != nil {
		return err
	}

	r.RawResults = results
	fmt.Fprintf(s.out, "Found %d accounts with breach data\n", results.Len())
	return nil
}

// FormatStep re-indexes the raw per-address results by breach name.
// It runs entirely after collection; there is no partial or interleaved
// state to worry about.
type FormatStep struct{}

// NewFormatStep creates the formatting step.
func NewFormatStep() *FormatStep {
	return &FormatStep{}
}

// Name returns the step name.
func (s *FormatStep) Name() string {
	return "format"
}

// Do builds the breach index from the raw results.
func (s *FormatStep) Do(_ context.Context, r *model.CheckReport) error {
	r.Breaches = hibp.BuildIndex(r.RawResults)
	return nil
}

// WriteStep serializes the breach index to the output file.
type WriteStep struct {
	// outPath is the report file path. Overwritten if it exists.
	outPath string

	// newWriter builds the report writer for the chosen format.
	newWriter func(io.Writer) report.Writer

	// out receives user-facing status messages.
	out io.Writer
}

// WriteStepOption configures a WriteStep.
type WriteStepOption func(*WriteStep)

// WithWriterFactory selects the report format by supplying a writer
// constructor. Defaults to the classic pwned text format.
func WithWriterFactory(factory func(io.Writer) report.Writer) WriteStepOption {
	return func(s *WriteStep) {
		s.newWriter = factory
	}
}

// WithWriteOutput redirects status messages. Defaults to os.Stdout.
func WithWriteOutput(out io.Writer) WriteStepOption {
	return func(s *WriteStep) {
		s.out = out
	}
}

// NewWriteStep creates the write step targeting the given path.
func NewWriteStep(outPath string, opts ...WriteStepOption) *WriteStep {
	s := &WriteStep{
		outPath: outPath,
		newWriter: func(w io.Writer) report.Writer {
			return report.NewPwnedWriter(w)
		},
		out: os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write"
}

// Do writes the report file, overwriting any previous content.
// Reports contain breached addresses, so the file is owner-readable only.
func (s *WriteStep) Do(_ context.Context, r *model.CheckReport) error {
	fmt.Fprintf(s.out, "Writing results to %s\n", s.outPath)

	f, err := os.OpenFile(s.outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", s.outPath, err)
	}
	defer f.Close()

	if _, err := s.newWriter(f).Write(r); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintln(s.out, "All done, enjoy!")
	return nil
}
