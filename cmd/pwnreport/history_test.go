package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/initstring/pwnreport/internal/database"
	"github.com/initstring/pwnreport/internal/model"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history" {
			t.Errorf("expected use 'history', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has run-id flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("run-id")
		if flag == nil {
			t.Fatal("expected run-id flag")
		}
		if flag.Shorthand != "i" {
			t.Errorf("expected shorthand 'i', got %q", flag.Shorthand)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})
}

// openHistoryTestDB creates a history database in a temp directory.
func openHistoryTestDB(t *testing.T) *database.HistoryDB {
	t.Helper()

	db, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db
}

// saveHistoryTestRun stores a sample run and returns its ID.
func saveHistoryTestRun(t *testing.T, db *database.HistoryDB) int64 {
	t.Helper()

	r := model.NewCheckReport("emails.txt")
	r.Emails = []string{"a@x.com", "b@x.com"}
	r.RawResults.Set("a@x.com", `[{"Name":"Adobe"}]`)
	r.Breaches.Add("Adobe", "a@x.com")

	runID, err := db.SaveRun(context.Background(), r)
	if err != nil {
		t.Fatalf("failed to save run: %v", err)
	}
	return runID
}

// captureStdout runs fn and returns everything it printed to stdout.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	_ = r.Close()

	if fnErr != nil {
		t.Fatalf("unexpected error: %v", fnErr)
	}
	return buf.String()
}

// TestListRuns tests the run listing output.
func TestListRuns(t *testing.T) {
	t.Run("empty database prints hint", func(t *testing.T) {
		db := openHistoryTestDB(t)

		output := captureStdout(t, func() error {
			return listRuns(context.Background(), db, false)
		})

		if !bytes.Contains([]byte(output), []byte("No check runs recorded yet.")) {
			t.Errorf("expected empty-history hint, got %q", output)
		}
	})

	t.Run("lists recorded runs", func(t *testing.T) {
		db := openHistoryTestDB(t)
		saveHistoryTestRun(t, db)

		output := captureStdout(t, func() error {
			return listRuns(context.Background(), db, false)
		})

		if !bytes.Contains([]byte(output), []byte("emails.txt")) {
			t.Errorf("expected input file in listing, got %q", output)
		}
		if !bytes.Contains([]byte(output), []byte("Recorded runs (1):")) {
			t.Errorf("expected run count in listing, got %q", output)
		}
	})

	t.Run("json output is machine readable", func(t *testing.T) {
		db := openHistoryTestDB(t)
		saveHistoryTestRun(t, db)

		output := captureStdout(t, func() error {
			return listRuns(context.Background(), db, true)
		})

		var runs []database.RunSummary
		if err := json.Unmarshal([]byte(output), &runs); err != nil {
			t.Fatalf("expected valid JSON, got error: %v", err)
		}
		if len(runs) != 1 || runs[0].InputFile != "emails.txt" {
			t.Errorf("unexpected runs: %+v", runs)
		}
	})
}

// TestShowRun tests single-run report output.
func TestShowRun(t *testing.T) {
	t.Run("prints the stored breach report", func(t *testing.T) {
		db := openHistoryTestDB(t)
		runID := saveHistoryTestRun(t, db)

		output := captureStdout(t, func() error {
			return showRun(context.Background(), db, runID, false)
		})

		if !bytes.Contains([]byte(output), []byte("**Adobe**")) {
			t.Errorf("expected breach block, got %q", output)
		}
		if !bytes.Contains([]byte(output), []byte("* a@x.com")) {
			t.Errorf("expected affected address, got %q", output)
		}
	})

	t.Run("unknown run prints notice", func(t *testing.T) {
		db := openHistoryTestDB(t)

		output := captureStdout(t, func() error {
			return showRun(context.Background(), db, 9999, false)
		})

		if !bytes.Contains([]byte(output), []byte("No breach data recorded")) {
			t.Errorf("expected no-data notice, got %q", output)
		}
	})
}

// TestTruncate tests the listing column truncation.
func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{name: "short string unchanged", input: "emails.txt", n: 30, want: "emails.txt"},
		{name: "exact length unchanged", input: "abcde", n: 5, want: "abcde"},
		{name: "long string marked", input: "abcdefghij", n: 8, want: "abcde..."},
		{name: "tiny limit hard cut", input: "abcdefghij", n: 2, want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := truncate(tt.input, tt.n); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}
