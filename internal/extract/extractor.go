package extract

import (
	"errors"
	"regexp"
)

// ErrNoEmailsFound is returned when the input text contains no extractable
// email addresses. This is a hard stop: without addresses there is nothing
// to check, so the whole run terminates before any network activity.
var ErrNoEmailsFound = errors.New("no valid email addresses found in input")

// Extractor scans raw text for syntactically valid email addresses.
//
// Design decision: We keep extraction permissive on purpose. The input file
// can be anything (a scraped page, a dump, meeting notes), so a strict
// RFC 5322 parser would reject addresses that the breach API happily
// accepts. The character-class boundaries of the pattern already exclude
// surrounding punctuation.
type Extractor struct {
	// emailRegex matches email addresses in text, case-insensitively.
	emailRegex *regexp.Regexp
}

// New creates an Extractor with the standard permissive email pattern:
// local part, @, domain, and a TLD of at least two letters.
func New() *Extractor {
	return &Extractor{
		emailRegex: regexp.MustCompile(`(?i)[A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,}`),
	}
}

// Extract returns every email address found in the text, in order of first
// appearance. Duplicates are NOT removed: each occurrence is returned so the
// caller decides whether to deduplicate before querying the API.
//
// Returns ErrNoEmailsFound if the text contains no matches.
func (e *Extractor) Extract(text string) ([]string, error) {
	emails := e.emailRegex.FindAllString(text, -1)
	if len(emails) == 0 {
		return nil, ErrNoEmailsFound
	}
	return emails, nil
}

// Unique returns the addresses with duplicates removed, preserving the
// order of first appearance. This is a caller-side convenience; Extract
// itself never deduplicates.
func Unique(emails []string) []string {
	seen := make(map[string]bool, len(emails))
	out := make([]string, 0, len(emails))
	for _, email := range emails {
		if seen[email] {
			continue
		}
		seen[email] = true
		out = append(out, email)
	}
	return out
}
