package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/initstring/pwnreport/internal/model"
)

// MarkdownWriter outputs reports as GitHub Flavored Markdown with a summary
// table, suitable for dropping into engagement documentation.
//
// Design decision: The nao1215/markdown library gives type-safe fluent
// generation with tables and lists, which beats hand-concatenated strings
// once the report grows past the plain block format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.CheckReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeBreaches(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the run summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.CheckReport) {
	md.H1("Compromised Account Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Input File", "`" + report.InputFile + "`"},
			{"Date Checked", report.DateChecked.Format("2006-01-02 15:04:05 MST")},
			{"Addresses Checked", strconv.Itoa(len(report.Emails))},
			{"Accounts With Breach Data", strconv.Itoa(report.PwnedAccountCount())},
			{"Distinct Breaches", strconv.Itoa(report.BreachCount())},
		},
	})
	md.PlainText("")
}

// writeBreaches writes one section per breach with its affected addresses.
func (w *MarkdownWriter) writeBreaches(md *markdown.Markdown, report *model.CheckReport) {
	if report.BreachCount() == 0 {
		md.H2("Breaches")
		md.PlainText("")
		md.Tip("No breached accounts found.")
		md.PlainText("")
		return
	}

	md.H2("Breaches")
	md.PlainText("")

	for _, name := range report.Breaches.Names() {
		md.H3(name)
		md.PlainText("")
		md.BulletList(report.Breaches.Addresses(name)...)
		md.PlainText("")
	}
}
