package model

import (
	"encoding/json"
	"time"
)

// CheckReport is the accumulated state of a single pwnreport run.
// It is created empty by the check command and filled in by the pipeline
// steps in order: extraction, collection, formatting, writing.
//
// Design decision: We use a single struct passed through the pipeline rather
// than returning values between stages because each stage consumes the prior
// stage's full output, and a shared report keeps the stages uniform and easy
// to test in isolation.
type CheckReport struct {
	// InputFile is the path of the text file emails were extracted from.
	InputFile string `json:"input_file"`

	// DateChecked is the timestamp when the run started.
	DateChecked time.Time `json:"date_checked"`

	// Emails holds every extracted address in order of first appearance.
	// Duplicates are retained; the extractor does not deduplicate.
	Emails []string `json:"emails"`

	// RawResults maps each address to its raw truncated API response body.
	// Only addresses with a non-empty body are present.
	// Excluded from JSON output because bodies are opaque API payloads.
	RawResults *RawResults `json:"-"`

	// Breaches indexes affected addresses by breach name.
	// Populated by the format stage after all collection has finished.
	Breaches *BreachIndex `json:"breaches,omitempty"`
}

// NewCheckReport creates an empty report for the given input file.
func NewCheckReport(inputFile string) *CheckReport {
	return &CheckReport{
		InputFile:   inputFile,
		DateChecked: time.Now(),
		Emails:      []string{},
		RawResults:  NewRawResults(),
		Breaches:    NewBreachIndex(),
	}
}

// PwnedAccountCount returns the number of addresses with breach data.
func (r *CheckReport) PwnedAccountCount() int {
	if r.RawResults == nil {
		return 0
	}
	return r.RawResults.Len()
}

// BreachCount returns the number of distinct breach names found.
func (r *CheckReport) BreachCount() int {
	if r.Breaches == nil {
		return 0
	}
	return r.Breaches.Len()
}

// RawResults is an insertion-ordered mapping from email address to the raw
// response body returned by the breach API.
//
// Design decision: Go maps do not preserve iteration order, but the report
// must index breaches in the order addresses were processed. We keep a
// parallel key slice to preserve that order, matching the collection order
// guarantee of the collector.
type RawResults struct {
	// addresses holds the keys in first-insertion order.
	addresses []string

	// bodies maps each address to its raw response body.
	bodies map[string]string
}

// NewRawResults creates an empty RawResults.
func NewRawResults() *RawResults {
	return &RawResults{
		addresses: []string{},
		bodies:    make(map[string]string),
	}
}

// Set stores the body for an address. If the address was already stored,
// its body is replaced but its original position is kept.
func (r *RawResults) Set(address, body string) {
	if _, ok := r.bodies[address]; !ok {
		r.addresses = append(r.addresses, address)
	}
	r.bodies[address] = body
}

// Get returns the stored body for an address.
func (r *RawResults) Get(address string) (string, bool) {
	body, ok := r.bodies[address]
	return body, ok
}

// Addresses returns the stored addresses in insertion order.
// The returned slice is a copy; mutating it does not affect the results.
func (r *RawResults) Addresses() []string {
	out := make([]string, len(r.addresses))
	copy(out, r.addresses)
	return out
}

// Len returns the number of stored addresses.
func (r *RawResults) Len() int {
	return len(r.addresses)
}

// BreachIndex is an insertion-ordered mapping from breach name to the list
// of affected email addresses.
//
// Breach names iterate in the order they were first seen, and each breach's
// address list preserves the order addresses were appended. An address whose
// response names N breaches appears in N lists.
type BreachIndex struct {
	// names holds breach names in first-seen order.
	names []string

	// affected maps each breach name to its ordered address list.
	affected map[string][]string
}

// NewBreachIndex creates an empty BreachIndex.
func NewBreachIndex() *BreachIndex {
	return &BreachIndex{
		names:    []string{},
		affected: make(map[string][]string),
	}
}

// Add appends an address to the given breach's list, registering the breach
// name on first sight.
func (b *BreachIndex) Add(name, address string) {
	if _, ok := b.affected[name]; !ok {
		b.names = append(b.names, name)
	}
	b.affected[name] = append(b.affected[name], address)
}

// Names returns the breach names in first-seen order.
// The returned slice is a copy; mutating it does not affect the index.
func (b *BreachIndex) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Addresses returns the ordered address list for a breach name.
// Returns nil if the breach name is unknown.
func (b *BreachIndex) Addresses(name string) []string {
	addrs, ok := b.affected[name]
	if !ok {
		return nil
	}
	out := make([]string, len(addrs))
	copy(out, addrs)
	return out
}

// Len returns the number of distinct breach names.
func (b *BreachIndex) Len() int {
	return len(b.names)
}

// breachEntry is the JSON shape for a single breach and its addresses.
type breachEntry struct {
	Name      string   `json:"name"`
	Addresses []string `json:"addresses"`
}

// MarshalJSON serializes the index as an ordered array of breach entries.
// A JSON object would lose the first-seen ordering, so we use an array.
func (b *BreachIndex) MarshalJSON() ([]byte, error) {
	entries := make([]breachEntry, 0, len(b.names))
	for _, name := range b.names {
		entries = append(entries, breachEntry{
			Name:      name,
			Addresses: b.affected[name],
		})
	}
	return json.Marshal(entries)
}
