package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Field names understood by Field and Form.
const (
	FieldTitle    = "title"
	FieldDate     = "date"
	FieldDuration = "duration"
	FieldTag      = "tag"
	FieldNotes    = "notes"
)

// WarnDurationMinutes is the advisory threshold for a single task's
// duration: anything above 24 hours draws a warning.
const WarnDurationMinutes = 1440

// Rule patterns. All are fully anchored; a value either matches the whole
// pattern or the field is rejected.
var (
	// Title must start and end with a non-whitespace character.
	titlePattern = regexp.MustCompile(`^\S(.*\S)?$`)

	// Duration is zero or an integer with no leading zero, optionally
	// followed by a decimal point and one or two digits.
	durationPattern = regexp.MustCompile(`^(0|[1-9]\d*)(\.\d{1,2})?$`)

	// Date is YYYY-MM-DD with month 01-12 and day 01-31. Whether the day
	// exists in that month is checked separately against the calendar.
	datePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)

	// Tag is runs of letters joined by single spaces or hyphens.
	tagPattern = regexp.MustCompile(`^[A-Za-z]+([ -][A-Za-z]+)*$`)
)

// Result is the outcome of validating one field value.
type Result struct {
	// Valid is false iff Error is non-empty.
	Valid bool

	// Error is the blocking problem, empty when the value is acceptable.
	Error string

	// Warning is advisory and never blocks.
	Warning string
}

// FormResult aggregates Field results for a whole record.
type FormResult struct {
	// Valid is true iff no field produced an error.
	Valid bool

	// Errors maps field name to its blocking message.
	Errors map[string]string

	// Warnings maps field name to its advisory message.
	Warnings map[string]string
}

func ok() Result             { return Result{Valid: true} }
func fail(msg string) Result { return Result{Error: msg} }
func warn(msg string) Result { return Result{Valid: true, Warning: msg} }

// Field validates a single raw value against the rule for the named field.
// It is total: any string input yields a Result, never a panic. Fields
// without a rule are reported valid.
func Field(field, raw string) Result {
	switch field {
	case FieldTitle:
		return checkTitle(raw)
	case FieldDate:
		return checkDate(raw)
	case FieldDuration:
		return checkDuration(raw)
	case FieldTag:
		return checkTag(raw)
	case FieldNotes:
		return checkNotes(raw)
	default:
		return ok()
	}
}

// Form validates all five record fields and aggregates the outcome.
// Missing keys are validated as empty strings, so required fields still
// surface their errors.
func Form(data map[string]string) FormResult {
	fields := []string{FieldTitle, FieldDate, FieldDuration, FieldTag, FieldNotes}

	out := FormResult{
		Valid:    true,
		Errors:   make(map[string]string),
		Warnings: make(map[string]string),
	}

	for _, f := range fields {
		res := Field(f, data[f])
		if res.Error != "" {
			out.Errors[f] = res.Error
			out.Valid = false
		}
		if res.Warning != "" {
			out.Warnings[f] = res.Warning
		}
	}

	return out
}

func checkTitle(raw string) Result {
	if raw == "" {
		return fail("title is required")
	}
	if !titlePattern.MatchString(raw) {
		return fail("title must not start or end with whitespace")
	}
	return ok()
}

func checkDate(raw string) Result {
	if raw == "" {
		return fail("due date is required")
	}
	if !datePattern.MatchString(raw) {
		return fail("due date must be in YYYY-MM-DD format")
	}
	// The pattern admits days 29-31 in every month; the calendar does not.
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return fail("due date is not a real calendar date")
	}
	return ok()
}

func checkDuration(raw string) Result {
	if raw == "" {
		return fail("duration is required")
	}
	if !durationPattern.MatchString(raw) {
		return fail("duration must be a non-negative number with at most two decimal places")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return fail("duration must be a non-negative number")
	}
	if v > WarnDurationMinutes {
		return warn("duration exceeds 24 hours")
	}
	return ok()
}

func checkTag(raw string) Result {
	if raw == "" {
		return fail("tag is required")
	}
	if !tagPattern.MatchString(raw) {
		return fail("tag may only contain letters, single spaces, and hyphens")
	}
	return ok()
}

func checkNotes(raw string) Result {
	// Notes are always valid; duplicated adjacent words draw a warning.
	if word, found := DuplicateWord(raw); found {
		return warn(fmt.Sprintf("repeated word %q in notes", word))
	}
	return ok()
}
