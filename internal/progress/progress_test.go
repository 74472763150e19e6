package progress

import (
	"bytes"
	"strings"
	"testing"
)

// TestBarReporter verifies the progress line renders counts and status.
func TestBarReporter(t *testing.T) {
	t.Parallel()

	t.Run("shows status annotation after a step", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := NewBarReporter(3, "Checking accounts", WithOutput(&buf))
		r.Step("200")
		r.Finish()

		out := buf.String()
		if !strings.Contains(out, "last status: 200") {
			t.Errorf("expected status annotation in output, got %q", out)
		}
	})

	t.Run("shows progress count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := NewBarReporter(2, "Checking accounts", WithOutput(&buf))
		r.Step("404")
		r.Step("200")
		r.Finish()

		out := buf.String()
		if !strings.Contains(out, "2/2") {
			t.Errorf("expected 2/2 count in output, got %q", out)
		}
	})

	t.Run("set total resets the count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := NewBarReporter(0, "Checking accounts", WithOutput(&buf))
		r.SetTotal(5)
		r.Step("200")
		r.Finish()

		out := buf.String()
		if !strings.Contains(out, "1/5") {
			t.Errorf("expected 1/5 count in output, got %q", out)
		}
	})

	t.Run("empty status leaves description unchanged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := NewBarReporter(1, "Checking accounts", WithOutput(&buf))
		r.Step("")
		r.Finish()

		out := buf.String()
		if strings.Contains(out, "last status") {
			t.Errorf("expected no status annotation, got %q", out)
		}
	})
}

// TestNopReporter verifies the no-op reporter is safe to call.
func TestNopReporter(t *testing.T) {
	t.Parallel()

	var r Reporter = NopReporter{}
	r.SetTotal(10)
	r.Step("200")
	r.Finish()
}
