// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - PwnedWriter: the classic paste-into-a-report text blocks (default)
//   - MarkdownWriter: GitHub Flavored Markdown with a summary table
//   - JSONWriter: structured output for tool integration
//
// Writers implement the Writer interface, so the pipeline's write stage
// can be pointed at any of them without caring which.
package report
