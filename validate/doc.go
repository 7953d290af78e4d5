// Package validate provides field-level validation for task records.
//
// # Overview
//
// Validation is pure and total: every function accepts any string input,
// never panics, and reports outcomes as data. A field check yields a
// Result with a blocking Error and/or an advisory Warning; Form aggregates
// the per-field results for a whole record.
//
// # Errors vs Warnings
//
// Errors block a mutation and must be corrected by the caller. Warnings
// never block: an over-24h duration or a duplicated word in the notes is
// surfaced but the record is still accepted.
//
// # Basic Usage
//
//	res := validate.Field(validate.FieldDuration, "90")
//	if !res.Valid {
//	    // res.Error explains what to fix
//	}
//
//	form := validate.Form(map[string]string{
//	    "title":    "Study for exam",
//	    "date":     "2025-09-29",
//	    "duration": "90",
//	    "tag":      "Study",
//	    "notes":    "",
//	})
//	// form.Valid is true iff no field produced an error.
//
// # Token Scanners
//
// The package also exposes the two scanners shared with search:
// DuplicateWord reports adjacent repeated words in free text, and
// TimeTokens locates clock tokens (e.g. "9:30", "11:45pm") without
// consuming a trailing meridiem into the match.
package validate
