package search

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/plankit/plankit/store"
)

// FilterResult is the outcome of filtering a collection.
type FilterResult struct {
	// Filtered holds the records that matched. On a failed compilation
	// it is the input collection unchanged.
	Filtered []store.Task

	// Matcher is the compiled expression used, for reuse by Highlight.
	// Nil for blank and tag queries and for failed compilations.
	Matcher *regexp.Regexp

	// Err is the compilation failure message, empty on success.
	Err string
}

// Filter applies a raw user query to a collection. Blank queries pass
// everything through; "@tag:" queries do a case-insensitive substring
// match on each record's tag; anything else is evaluated as a regular
// expression against the record's searchable text. A malformed pattern
// fails open: the input is returned unfiltered with Err set.
func Filter(tasks []store.Task, rawQuery string, caseSensitive bool) FilterResult {
	q := Compile(rawQuery, caseSensitive)

	if q.Err != "" {
		return FilterResult{Filtered: tasks, Err: q.Err}
	}
	if q.Empty() {
		return FilterResult{Filtered: tasks}
	}

	if q.TagFilter != "" {
		want := strings.ToLower(q.TagFilter)
		filtered := make([]store.Task, 0, len(tasks))
		for _, t := range tasks {
			if strings.Contains(strings.ToLower(t.Tag), want) {
				filtered = append(filtered, t)
			}
		}
		return FilterResult{Filtered: filtered}
	}

	// Each record is tested independently; the matcher carries no
	// position state between calls, so match results cannot depend on
	// scan order.
	filtered := make([]store.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Matcher.MatchString(Haystack(t)) {
			filtered = append(filtered, t)
		}
	}
	return FilterResult{Filtered: filtered, Matcher: q.Matcher}
}

// Haystack is the text a general query is matched against: title, tag,
// notes, due date, and the decimal form of the duration, joined by
// single spaces.
func Haystack(t store.Task) string {
	return strings.Join([]string{
		t.Title,
		t.Tag,
		t.Notes,
		t.DueDate,
		strconv.FormatFloat(t.Duration, 'f', -1, 64),
	}, " ")
}
