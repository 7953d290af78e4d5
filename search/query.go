package search

import (
	"regexp"
	"strings"
)

// tagQueryPattern recognizes the "@tag:" shorthand. The name part allows
// word characters, spaces, and hyphens.
var tagQueryPattern = regexp.MustCompile(`^@tag:([\w -]+)$`)

// Query is a compiled user query: either a tag substring filter or a
// regular expression, never both.
type Query struct {
	// TagFilter is the tag substring to match case-insensitively.
	// Non-empty only for "@tag:" queries.
	TagFilter string

	// Matcher is the compiled regular expression for general queries.
	// Nil for tag queries, blank queries, and failed compilations.
	Matcher *regexp.Regexp

	// Err describes a failed compilation. Callers treat a query with a
	// non-empty Err as matching everything (fail-open).
	Err string
}

// Empty reports whether the query filters nothing.
func (q Query) Empty() bool {
	return q.TagFilter == "" && q.Matcher == nil
}

// Compile turns a raw query string into a Query. It never returns an
// error: a malformed pattern is reported in Query.Err so the caller can
// surface it while continuing with unfiltered results.
func Compile(raw string, caseSensitive bool) Query {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Query{}
	}

	if m := tagQueryPattern.FindStringSubmatch(trimmed); m != nil {
		return Query{TagFilter: m[1]}
	}

	pattern := trimmed
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Query{Err: "invalid search pattern: " + err.Error()}
	}
	return Query{Matcher: re}
}
