package search

import (
	"html"
	"regexp"
	"strings"
)

// Markers wrapped around each match by Highlight.
const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Highlight escapes text for HTML and wraps every non-overlapping match
// of matcher in <mark> markers. Escaping happens first and the matcher
// runs on the escaped string, so record text can never inject markup and
// the inserted markers are never themselves escaped. A nil matcher just
// escapes. Zero-length matches are skipped so no empty markers appear;
// termination on such patterns is guaranteed by FindAllStringIndex, which
// always advances past an empty match.
func Highlight(text string, matcher *regexp.Regexp) string {
	escaped := html.EscapeString(text)
	if matcher == nil {
		return escaped
	}

	locs := matcher.FindAllStringIndex(escaped, -1)
	if len(locs) == 0 {
		return escaped
	}

	var b strings.Builder
	b.Grow(len(escaped) + len(locs)*(len(markOpen)+len(markClose)))

	prev := 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		b.WriteString(escaped[prev:loc[0]])
		b.WriteString(markOpen)
		b.WriteString(escaped[loc[0]:loc[1]])
		b.WriteString(markClose)
		prev = loc[1]
	}
	b.WriteString(escaped[prev:])

	return b.String()
}
