package store

import "time"

// NoTopTag is the Stats.TopTag sentinel for an empty collection.
const NoTopTag = "-"

// DayStat is one entry of the 7-day rollup.
type DayStat struct {
	// Date is the calendar date in canonical YYYY-MM-DD form.
	Date string

	// Label is the short weekday name ("Mon", "Tue", ...).
	Label string

	// Duration is the summed duration of tasks due that date.
	Duration float64

	// Count is the number of tasks due that date.
	Count int
}

// Stats are the derived aggregations over the current collection.
type Stats struct {
	// Total is the record count.
	Total int

	// TotalDuration is the sum of all durations.
	TotalDuration float64

	// TopTag is the most frequent tag. Ties go to the lexically
	// smaller tag so the result is deterministic; NoTopTag when the
	// collection is empty.
	TopTag string

	// TagDurations maps each tag in use to its summed duration.
	TagDurations map[string]float64

	// Last7 covers the 7 calendar days ending today, oldest first.
	Last7 []DayStat

	// WeeklyDuration sums durations of tasks due on or after the most
	// recent week start, for comparison against Settings.WeeklyCap.
	WeeklyDuration float64
}

// Stats computes the derived aggregations from the current collection.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		TopTag:       NoTopTag,
		TagDurations: make(map[string]float64),
	}

	counts := make(map[string]int)
	for _, t := range s.tasks {
		stats.Total++
		stats.TotalDuration += t.Duration
		stats.TagDurations[t.Tag] += t.Duration
		counts[t.Tag]++
	}

	for tag, n := range counts {
		top, best := stats.TopTag, counts[stats.TopTag]
		if n > best || (n == best && (top == NoTopTag || tag < top)) {
			stats.TopTag = tag
		}
	}

	today := s.today()
	stats.Last7 = s.lastDaysLocked(today, 7)
	stats.WeeklyDuration = s.weeklyDurationLocked(today)

	return stats
}

// today is the current calendar date at midnight local time.
func (s *Store) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// lastDaysLocked builds the n-day rollup ending at (and including) today,
// oldest first.
func (s *Store) lastDaysLocked(today time.Time, n int) []DayStat {
	out := make([]DayStat, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		stat := DayStat{
			Date:  day.Format("2006-01-02"),
			Label: day.Format("Mon"),
		}
		for _, t := range s.tasks {
			if t.DueDate == stat.Date {
				stat.Duration += t.Duration
				stat.Count++
			}
		}
		out = append(out, stat)
	}
	return out
}

// weeklyDurationLocked sums durations for tasks due on or after the most
// recent week-start day. The canonical date form compares lexically in
// chronological order, so a string compare suffices.
func (s *Store) weeklyDurationLocked(today time.Time) float64 {
	offset := (int(today.Weekday()) - int(s.weekStart) + 7) % 7
	weekStart := today.AddDate(0, 0, -offset).Format("2006-01-02")

	var total float64
	for _, t := range s.tasks {
		if t.DueDate >= weekStart {
			total += t.Duration
		}
	}
	return total
}
