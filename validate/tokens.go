package validate

import (
	"regexp"
	"strings"
)

var (
	wordPattern = regexp.MustCompile(`\w+`)

	// Hour 1-2 digits, colon, minute 00-59.
	clockPattern = regexp.MustCompile(`\d{1,2}:[0-5]\d`)
)

// TimeToken is one clock token found in free text. Start and End bound the
// clock digits only; a trailing meridiem is reported in Meridiem but never
// included in the [Start, End) range, so callers that slice the text get
// "9:30" even when the source reads "9:30pm".
type TimeToken struct {
	Start    int
	End      int
	Text     string
	Meridiem string // "am" or "pm" (lowercased), empty when absent
}

// DuplicateWord scans text for two identical word tokens separated only by
// whitespace, comparing case-insensitively. It returns the first duplicated
// word as it appears at its first occurrence. RE2 has no back-references,
// so this is the explicit equivalent of matching `\b(\w+)\s+\1\b` with the
// case-insensitive flag.
func DuplicateWord(text string) (string, bool) {
	locs := wordPattern.FindAllStringIndex(text, -1)
	for i := 0; i+1 < len(locs); i++ {
		gap := text[locs[i][1]:locs[i+1][0]]
		if gap == "" || strings.TrimSpace(gap) != "" {
			continue
		}
		cur := text[locs[i][0]:locs[i][1]]
		next := text[locs[i+1][0]:locs[i+1][1]]
		if strings.EqualFold(cur, next) {
			return cur, true
		}
	}
	return "", false
}

// TimeTokens locates clock-shaped substrings (1-2 digit hour, colon, two
// digit minute). A directly following "am"/"pm" in any case is detected
// without being consumed: the lookahead the original pattern expressed is
// done by inspecting the suffix after the match. Tokens glued to a word
// character on either side (e.g. "x9:30") are skipped.
func TimeTokens(text string) []TimeToken {
	var tokens []TimeToken
	for _, loc := range clockPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isWordByte(text[start-1]) {
			continue
		}
		tok := TimeToken{Start: start, End: end, Text: text[start:end]}
		rest := text[end:]
		if len(rest) >= 2 {
			suffix := strings.ToLower(rest[:2])
			if suffix == "am" || suffix == "pm" {
				tok.Meridiem = suffix
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
