// Package search filters task records with user-supplied queries and
// highlights matches for display.
//
// # Query forms
//
// A query is one of three things:
//
//   - blank: no filtering, every record passes
//   - "@tag:<name>": a case-insensitive substring filter on the tag field;
//     no regular expression is compiled
//   - anything else: a regular expression, case-insensitive unless the
//     caller asks for case-sensitive matching
//
// # Fail-open
//
// A malformed pattern must never blank the caller's view. Compilation
// failure is reported in FilterResult.Err and the input collection is
// returned unfiltered. Patterns are evaluated by RE2, so matching is
// linear-time by construction; no user pattern can hang the engine.
//
// # Highlighting
//
// Highlight HTML-escapes the raw text first and only then wraps matches
// in <mark> markers, so untrusted record text can never smuggle markup
// past the escaper.
package search
