package store

import (
	"sort"
	"strings"
)

// SortField selects the key SortTasks orders by.
type SortField string

const (
	SortByDate     SortField = "date"
	SortByTitle    SortField = "title"
	SortByDuration SortField = "duration"
)

// SortDirection selects ascending or descending order.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortTasks returns a freshly ordered view of the collection without
// mutating the stored order. The sort is stable, so records with equal
// keys keep their collection order. Title comparison is
// case-insensitive; date comparison is lexical on the canonical
// YYYY-MM-DD form, which is also chronological; duration is numeric.
// An unknown field returns the collection order unchanged.
func (s *Store) SortTasks(field SortField, dir SortDirection) []Task {
	tasks := s.Tasks()

	var less func(a, b Task) bool
	switch field {
	case SortByDate:
		less = func(a, b Task) bool { return a.DueDate < b.DueDate }
	case SortByTitle:
		less = func(a, b Task) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortByDuration:
		less = func(a, b Task) bool { return a.Duration < b.Duration }
	default:
		return tasks
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if dir == Descending {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})

	return tasks
}
