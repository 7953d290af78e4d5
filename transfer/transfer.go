// Package transfer validates bulk-import payloads and serializes the
// collection for export.
//
// Import is deliberately forgiving: malformed elements are skipped and
// reported per index while the rest of the payload still imports.
// Partial success is a first-class outcome, and nothing here ever
// panics on untrusted input.
package transfer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/plankit/plankit/store"
	"github.com/plankit/plankit/validate"
)

// ImportResult is the outcome of validating an import payload.
type ImportResult struct {
	// Valid is true iff every element was accepted.
	Valid bool

	// Data holds the accepted, normalized records.
	Data []store.Task

	// Errors lists one message per rejected element and field.
	Errors []string
}

// Clock is the time source for defaulted timestamps, replaceable in
// tests.
var Clock = time.Now

// ValidateImport parses raw JSON and validates each element
// independently. The top-level value must be an array; each element must
// be an object carrying a non-empty id, a non-empty title, a numeric
// non-negative duration, a non-empty tag, and a well-formed due date.
// Rejected elements are skipped with a per-index message; accepted ones
// are normalized (trimmed strings, coerced duration, defaulted notes and
// timestamps).
func ValidateImport(raw []byte) ImportResult {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ImportResult{Errors: []string{"invalid JSON: " + err.Error()}}
	}

	elements, ok := parsed.([]any)
	if !ok {
		return ImportResult{Errors: []string{"import data must be a JSON array of tasks"}}
	}

	result := ImportResult{Data: make([]store.Task, 0, len(elements))}
	for i, element := range elements {
		task, errs := validateElement(element)
		if len(errs) > 0 {
			for _, msg := range errs {
				result.Errors = append(result.Errors, fmt.Sprintf("task %d: %s", i, msg))
			}
			continue
		}
		result.Data = append(result.Data, task)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// validateElement checks one array element and returns the normalized
// record or the list of field problems.
func validateElement(element any) (store.Task, []string) {
	obj, ok := element.(map[string]any)
	if !ok {
		return store.Task{}, []string{"not an object"}
	}

	var errs []string

	id := stringField(obj, "id")
	if id == "" {
		errs = append(errs, "missing or empty id")
	}

	title := stringField(obj, "title")
	if title == "" {
		errs = append(errs, "missing or empty title")
	}

	duration, ok := numericField(obj, "duration")
	if !ok || duration < 0 {
		errs = append(errs, "duration must be a non-negative number")
	}

	tag := stringField(obj, "tag")
	if tag == "" {
		errs = append(errs, "missing or empty tag")
	}

	dueDate := stringField(obj, "dueDate")
	if res := validate.Field(validate.FieldDate, dueDate); !res.Valid {
		errs = append(errs, "invalid dueDate: "+res.Error)
	}

	if len(errs) > 0 {
		return store.Task{}, errs
	}

	now := Clock()
	return store.Task{
		ID:        id,
		Title:     title,
		DueDate:   dueDate,
		Duration:  duration,
		Tag:       tag,
		Notes:     stringField(obj, "notes"),
		CreatedAt: timeField(obj, "createdAt", now),
		UpdatedAt: timeField(obj, "updatedAt", now),
	}, nil
}

// stringField returns the trimmed string at key, or "" when absent or
// not a string.
func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// numericField coerces the value at key to a float64. JSON numbers come
// through directly; numeric strings are converted.
func numericField(obj map[string]any, key string) (float64, bool) {
	switch v := obj[key].(type) {
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// timeField parses an RFC 3339 timestamp at key, defaulting when absent
// or unparseable.
func timeField(obj map[string]any, key string, fallback time.Time) time.Time {
	if v, ok := obj[key].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return ts
		}
	}
	return fallback
}

// ExportJSON serializes the collection as indented, human-readable JSON
// suitable for round-tripping through ValidateImport.
func ExportJSON(tasks []store.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []store.Task{}
	}
	return json.MarshalIndent(tasks, "", "  ")
}
