package validate

import (
	"strings"
	"testing"
)

// ============================================================================
// Title
// ============================================================================

func TestField_Title_Valid(t *testing.T) {
	for _, v := range []string{"Study", "Study for exam", "a", "x y z"} {
		res := Field(FieldTitle, v)
		if !res.Valid {
			t.Errorf("title %q: expected valid, got error %q", v, res.Error)
		}
	}
}

func TestField_Title_WhitespaceEdges(t *testing.T) {
	for _, v := range []string{"", " Study", "Study ", " Study ", "\tStudy", "Study\n", " "} {
		res := Field(FieldTitle, v)
		if res.Valid {
			t.Errorf("title %q: expected invalid", v)
		}
		if res.Error == "" {
			t.Errorf("title %q: expected error message", v)
		}
	}
}

// ============================================================================
// Duration
// ============================================================================

func TestField_Duration_Valid(t *testing.T) {
	for _, v := range []string{"0", "5", "90", "1440", "0.5", "12.34", "999.9"} {
		res := Field(FieldDuration, v)
		if !res.Valid {
			t.Errorf("duration %q: expected valid, got error %q", v, res.Error)
		}
		if res.Warning != "" {
			t.Errorf("duration %q: unexpected warning %q", v, res.Warning)
		}
	}
}

func TestField_Duration_Invalid(t *testing.T) {
	for _, v := range []string{"", "00", ".5", "12.345", "-1", "1.", "abc", "1e3", "+5", "05"} {
		if res := Field(FieldDuration, v); res.Valid {
			t.Errorf("duration %q: expected invalid", v)
		}
	}
}

func TestField_Duration_Over24hWarns(t *testing.T) {
	res := Field(FieldDuration, "1441")
	if !res.Valid {
		t.Fatalf("1441 should be valid (warning is advisory), got error %q", res.Error)
	}
	if res.Warning == "" {
		t.Error("expected over-24h warning")
	}
}

// ============================================================================
// Date
// ============================================================================

func TestField_Date_Valid(t *testing.T) {
	for _, v := range []string{"2025-09-29", "2024-02-29", "2025-12-31", "2025-01-01"} {
		if res := Field(FieldDate, v); !res.Valid {
			t.Errorf("date %q: expected valid, got error %q", v, res.Error)
		}
	}
}

func TestField_Date_Invalid(t *testing.T) {
	cases := []string{
		"",
		"2025-13-01", // month out of range
		"2025-00-10",
		"2025-01-32",
		"2025-1-05",   // month not zero-padded
		"25-01-05",    // short year
		"2025/01/05",  // wrong separator
		"2025-02-30",  // passes the pattern, not the calendar
		"2025-04-31",  // thirty days hath April
		"2025-02-29",  // not a leap year
	}
	for _, v := range cases {
		if res := Field(FieldDate, v); res.Valid {
			t.Errorf("date %q: expected invalid", v)
		}
	}
}

// ============================================================================
// Tag
// ============================================================================

func TestField_Tag(t *testing.T) {
	valid := []string{"Study", "Side Project", "Work-Life", "a-b c"}
	for _, v := range valid {
		if res := Field(FieldTag, v); !res.Valid {
			t.Errorf("tag %q: expected valid, got error %q", v, res.Error)
		}
	}

	invalid := []string{"", "Study!", "tag_1", " Study", "Study ", "a--b", "a  b", "-Study", "Study-", "étude"}
	for _, v := range invalid {
		if res := Field(FieldTag, v); res.Valid {
			t.Errorf("tag %q: expected invalid", v)
		}
	}
}

// ============================================================================
// Notes and duplicate-word detection
// ============================================================================

func TestField_Notes_AlwaysValid(t *testing.T) {
	for _, v := range []string{"", "anything goes here!", "the the cat"} {
		if res := Field(FieldNotes, v); !res.Valid {
			t.Errorf("notes %q: expected valid", v)
		}
	}
}

func TestField_Notes_DuplicateWordWarning(t *testing.T) {
	res := Field(FieldNotes, "the the cat sat")
	if !res.Valid {
		t.Fatal("notes must never be invalid")
	}
	if !strings.Contains(res.Warning, `"the"`) {
		t.Errorf("warning should name the duplicated word, got %q", res.Warning)
	}
}

func TestDuplicateWord(t *testing.T) {
	cases := []struct {
		text  string
		word  string
		found bool
	}{
		{"the the cat", "the", true},
		{"The the cat", "The", true}, // case-insensitive, first occurrence reported
		{"cat sat on the mat", "", false},
		{"go  go", "go", true}, // multiple spaces between
		{"go\tgo", "go", true},
		{"go, go", "", false},  // punctuation between tokens breaks adjacency
		{"gogo go", "", false}, // distinct tokens
		{"", "", false},
		{"word", "", false},
	}
	for _, c := range cases {
		word, found := DuplicateWord(c.text)
		if found != c.found || word != c.word {
			t.Errorf("DuplicateWord(%q) = (%q, %v), want (%q, %v)", c.text, word, found, c.word, c.found)
		}
	}
}

// ============================================================================
// Time tokens
// ============================================================================

func TestTimeTokens(t *testing.T) {
	toks := TimeTokens("meet at 9:30pm, then 11:45 and 23:59AM")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %+v", len(toks), toks)
	}

	if toks[0].Text != "9:30" || toks[0].Meridiem != "pm" {
		t.Errorf("token 0: got %+v", toks[0])
	}
	if toks[1].Text != "11:45" || toks[1].Meridiem != "" {
		t.Errorf("token 1: got %+v", toks[1])
	}
	if toks[2].Text != "23:59" || toks[2].Meridiem != "am" {
		t.Errorf("token 2: got %+v", toks[2])
	}
}

func TestTimeTokens_MeridiemNotConsumed(t *testing.T) {
	text := "9:30pm"
	toks := TimeTokens(text)
	if len(toks) != 1 {
		t.Fatalf("expected 1 token, got %d", len(toks))
	}
	if got := text[toks[0].Start:toks[0].End]; got != "9:30" {
		t.Errorf("match range should exclude the meridiem, got %q", got)
	}
}

func TestTimeTokens_NoMatchInsideWords(t *testing.T) {
	if toks := TimeTokens("x9:30 and 1:99"); len(toks) != 0 {
		t.Errorf("expected no tokens, got %+v", toks)
	}
}

// ============================================================================
// Form aggregation
// ============================================================================

func TestForm_AllValid(t *testing.T) {
	form := Form(map[string]string{
		FieldTitle:    "Study for exam",
		FieldDate:     "2025-09-29",
		FieldDuration: "90",
		FieldTag:      "Study",
		FieldNotes:    "",
	})
	if !form.Valid {
		t.Fatalf("expected valid form, errors: %v", form.Errors)
	}
	if len(form.Errors) != 0 || len(form.Warnings) != 0 {
		t.Errorf("expected clean result, got errors=%v warnings=%v", form.Errors, form.Warnings)
	}
}

func TestForm_CollectsErrorsAndWarnings(t *testing.T) {
	form := Form(map[string]string{
		FieldTitle:    " bad title ",
		FieldDate:     "2025-02-30",
		FieldDuration: "2000",
		FieldTag:      "Study",
		FieldNotes:    "the the cat",
	})
	if form.Valid {
		t.Fatal("expected invalid form")
	}
	if _, ok := form.Errors[FieldTitle]; !ok {
		t.Error("missing title error")
	}
	if _, ok := form.Errors[FieldDate]; !ok {
		t.Error("missing date error")
	}
	if _, ok := form.Warnings[FieldDuration]; !ok {
		t.Error("missing duration warning")
	}
	if _, ok := form.Warnings[FieldNotes]; !ok {
		t.Error("missing notes warning")
	}
}

func TestForm_MissingKeysAreEmpty(t *testing.T) {
	form := Form(map[string]string{})
	if form.Valid {
		t.Fatal("empty form should fail required fields")
	}
	for _, f := range []string{FieldTitle, FieldDate, FieldDuration, FieldTag} {
		if _, ok := form.Errors[f]; !ok {
			t.Errorf("expected error for missing %s", f)
		}
	}
	if _, ok := form.Errors[FieldNotes]; ok {
		t.Error("notes must not error when absent")
	}
}
