package lookup

import (
	"strings"

	"stockroom/inventory"
)

// MaxResults bounds how many picker rows are returned per query.
const MaxResults = 50

// MatchTokens reports whether every whitespace-separated token of
// query is a case-insensitive substring of name. An empty query
// matches everything; token order never affects the outcome.
func MatchTokens(query, name string) bool {
	lowered := strings.ToLower(name)
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if !strings.Contains(lowered, token) {
			return false
		}
	}
	return true
}

// Filter returns the entries matching query, in input order, capped at
// MaxResults.
func Filter(entries []inventory.Entry, query string) []inventory.Entry {
	out := make([]inventory.Entry, 0, MaxResults)
	for _, e := range entries {
		if !MatchTokens(query, e.Name) {
			continue
		}
		out = append(out, e)
		if len(out) == MaxResults {
			break
		}
	}
	return out
}
