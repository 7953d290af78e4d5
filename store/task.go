package store

import "time"

// Task is one record in the collection. Identity (ID) is assigned at
// creation and never reassigned; everything else is mutable through the
// store's update operation.
type Task struct {
	// ID uniquely identifies the task across the collection.
	ID string `json:"id"`

	// Title is the non-empty display name, free of edge whitespace.
	Title string `json:"title"`

	// DueDate is the canonical YYYY-MM-DD calendar date.
	DueDate string `json:"dueDate"`

	// Duration is the task length in minutes, never negative.
	Duration float64 `json:"duration"`

	// Tag is drawn from (or added to) the tag vocabulary.
	Tag string `json:"tag"`

	// Notes is optional free text.
	Notes string `json:"notes"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is refreshed on every mutation. Never before CreatedAt.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskInput carries the caller-supplied fields for a new task. The store
// assigns ID and timestamps and trims the string fields. Callers are
// expected to have validated the raw values first.
type TaskInput struct {
	Title    string
	DueDate  string
	Duration float64
	Tag      string
	Notes    string
}

// TaskUpdate carries a partial mutation. Nil fields are left untouched.
type TaskUpdate struct {
	Title    *string
	DueDate  *string
	Duration *float64
	Tag      *string
	Notes    *string
}

// Settings holds the user-tunable knobs the store owns.
type Settings struct {
	// DurationUnit is "minutes" or "hours" and affects display only.
	DurationUnit string `json:"durationUnit"`

	// WeeklyCap is the advisory weekly budget in minutes. Zero disables it.
	WeeklyCap int `json:"weeklyCap"`
}

// SettingsUpdate carries a partial settings mutation.
type SettingsUpdate struct {
	DurationUnit *string
	WeeklyCap    *int
}

// DefaultSettings returns the settings used before the user changes
// anything and after ClearAll.
func DefaultSettings() Settings {
	return Settings{DurationUnit: "minutes", WeeklyCap: 0}
}

// DefaultTags returns the seed tag vocabulary.
func DefaultTags() []string {
	return []string{"Study", "Assignment", "Exam", "Lab", "Club", "Personal", "Errands"}
}
