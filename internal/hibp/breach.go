package hibp

import (
	"regexp"

	"github.com/initstring/pwnreport/internal/model"
)

// breachNameRegex locates "Name":"<value>" fields in a raw response body.
//
// Design decision: Pattern matching instead of JSON decoding is deliberate.
// Truncated responses are not guaranteed to be well-formed documents, and
// the contract is to silently yield nothing on malformed bodies rather than
// fail the run. Swapping in a structured parser would change behavior on
// exactly those bodies, so it stays a regex.
var breachNameRegex = regexp.MustCompile(`(?i)"Name":"(.*?)"`)

// ParseBreachNames extracts every breach name from a raw response body, in
// order of appearance. A body with no matches yields an empty slice.
func ParseBreachNames(body string) []string {
	matches := breachNameRegex.FindAllStringSubmatch(body, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// BuildIndex re-indexes the raw per-address results by breach name.
//
// Addresses are visited in collection order, so each breach's list keeps
// that order and breach names register in first-seen order. An address
// whose body names N breaches lands in N lists.
func BuildIndex(raw *model.RawResults) *model.BreachIndex {
	index := model.NewBreachIndex()
	for _, address := range raw.Addresses() {
		body, _ := raw.Get(address)
		for _, name := range ParseBreachNames(body) {
			index.Add(name, address)
		}
	}
	return index
}
