package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestMarkdownWriter checks the structural elements of the markdown output.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("contains title and summary table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "# Compromised Account Report") {
			t.Error("expected report title")
		}
		if !strings.Contains(out, "emails.txt") {
			t.Error("expected input file in summary table")
		}
	})

	t.Run("one section per breach with affected addresses", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "### BreachA") || !strings.Contains(out, "### BreachB") {
			t.Errorf("expected breach sections, got:\n%s", out)
		}
		if !strings.Contains(out, "a@x.com") || !strings.Contains(out, "b@x.com") {
			t.Errorf("expected addresses listed, got:\n%s", out)
		}
	})

	t.Run("breach sections appear in first-seen order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if strings.Index(out, "BreachA") > strings.Index(out, "### BreachB") {
			t.Error("expected BreachA section before BreachB")
		}
	})
}

// TestJSONWriter checks JSON structure and breach ordering.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("output is valid JSON with ordered breaches", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded struct {
			InputFile string `json:"input_file"`
			Breaches  []struct {
				Name      string   `json:"name"`
				Addresses []string `json:"addresses"`
			} `json:"breaches"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}

		if decoded.InputFile != "emails.txt" {
			t.Errorf("expected input_file emails.txt, got %q", decoded.InputFile)
		}
		if len(decoded.Breaches) != 2 || decoded.Breaches[0].Name != "BreachA" {
			t.Errorf("unexpected breaches: %+v", decoded.Breaches)
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})
}
