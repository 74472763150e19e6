package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/initstring/pwnreport/internal/model"
)

// createTestReport creates a report with sample breach data for testing.
func createTestReport() *model.CheckReport {
	r := model.NewCheckReport("emails.txt")
	r.Emails = []string{"a@x.com", "b@x.com", "c@x.com"}
	r.RawResults.Set("a@x.com", `[{"Name":"BreachA"},{"Name":"BreachB"}]`)
	r.RawResults.Set("b@x.com", `[{"Name":"BreachA"}]`)
	r.Breaches.Add("BreachA", "a@x.com")
	r.Breaches.Add("BreachB", "a@x.com")
	r.Breaches.Add("BreachA", "b@x.com")
	return r
}

// TestPwnedWriter verifies the exact block format, byte for byte.
func TestPwnedWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes bold name, bullets, and blank separator", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewPwnedWriter(&buf)

		n, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "**BreachA**\n* a@x.com\n* b@x.com\n\n**BreachB**\n* a@x.com\n\n"
		if got := buf.String(); got != want {
			t.Errorf("expected:\n%q\ngot:\n%q", want, got)
		}
		if n != len(want) {
			t.Errorf("expected %d bytes reported, got %d", len(want), n)
		}
	})

	t.Run("empty report writes nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewPwnedWriter(&buf)

		n, err := w.Write(model.NewCheckReport("emails.txt"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 0 || buf.Len() != 0 {
			t.Errorf("expected empty output, got %q", buf.String())
		}
	})

	t.Run("round trip preserves block structure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewPwnedWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Re-read the output and confirm each breach block contains the
		// bold name line followed by exactly its bullet lines, in order.
		blocks := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n\n")
		if len(blocks) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(blocks))
		}

		first := strings.Split(blocks[0], "\n")
		if first[0] != "**BreachA**" || first[1] != "* a@x.com" || first[2] != "* b@x.com" {
			t.Errorf("unexpected first block: %v", first)
		}

		second := strings.Split(blocks[1], "\n")
		if second[0] != "**BreachB**" || second[1] != "* a@x.com" {
			t.Errorf("unexpected second block: %v", second)
		}
	})
}
