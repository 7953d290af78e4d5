package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Common errors.
var (
	// ErrLastTag indicates a refusal to remove the final remaining tag:
	// the vocabulary never becomes empty.
	ErrLastTag = errors.New("cannot remove the last remaining tag")
)

// Persistence is the external collaborator the store writes through to.
// Implementations live outside this package (see the persist package).
// Loads happen once at construction; every mutation saves the affected
// piece. Save failures are logged and otherwise ignored: persistence is
// fire-and-forget from the caller's perspective.
type Persistence interface {
	LoadRecords() ([]Task, error)
	SaveRecords(tasks []Task) error

	LoadSettings() (Settings, error)
	SaveSettings(s Settings) error

	LoadTags() ([]string, error)
	SaveTags(tags []string) error
}

// Store owns the authoritative in-memory task collection, the tag
// vocabulary, and the settings. All mutations go through its methods,
// which serialize behind one mutex, write through to persistence, and
// then notify subscribers.
type Store struct {
	mu    sync.RWMutex
	tasks []Task
	tags  []string
	sets  Settings
	subs  []*Subscription

	persistence Persistence
	now         func() time.Time
	newID       func() string
	weekStart   time.Weekday
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for timestamps and stats.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets a custom task ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithWeekStart sets the first day of the week for the weekly rollup.
// Default is Sunday.
func WithWeekStart(day time.Weekday) Option {
	return func(s *Store) { s.weekStart = day }
}

// New constructs the store and loads records, settings, and tags from p.
// A nil p runs the store memory-only with defaults. Load failures fall
// back to defaults so a corrupt blob never prevents startup.
func New(p Persistence, opts ...Option) *Store {
	s := &Store{
		persistence: p,
		now:         time.Now,
		newID:       uuid.NewString,
		weekStart:   time.Sunday,
		tags:        DefaultTags(),
		sets:        DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if p != nil {
		if tasks, err := p.LoadRecords(); err != nil {
			log.WithError(err).Warn("loading records failed, starting empty")
		} else {
			s.tasks = tasks
		}
		if sets, err := p.LoadSettings(); err != nil {
			log.WithError(err).Warn("loading settings failed, using defaults")
		} else {
			s.sets = sets
		}
		tags, err := p.LoadTags()
		switch {
		case err != nil:
			log.WithError(err).Warn("loading tags failed, using default vocabulary")
		case len(tags) > 0:
			s.tags = tags
		}
	}

	return s
}

// AddTask creates a record from input, inserts it at the front of the
// collection, persists, and notifies taskAdded. String fields are
// trimmed; ID and both timestamps are assigned here.
func (s *Store) AddTask(input TaskInput) Task {
	s.mu.Lock()
	now := s.now()
	task := Task{
		ID:        s.uniqueID(),
		Title:     strings.TrimSpace(input.Title),
		DueDate:   strings.TrimSpace(input.DueDate),
		Duration:  input.Duration,
		Tag:       strings.TrimSpace(input.Tag),
		Notes:     strings.TrimSpace(input.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks = append([]Task{task}, s.tasks...)
	s.saveRecordsLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventTaskAdded, Task: &task})
	return task
}

// UpdateTask merges upd over the record with the given id, refreshes
// UpdatedAt, persists, and notifies taskUpdated. It returns nil without
// side effects when the id is unknown: a missing record is an expected
// condition, not an error.
func (s *Store) UpdateTask(id string, upd TaskUpdate) *Task {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	task := &s.tasks[idx]
	if upd.Title != nil {
		task.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.DueDate != nil {
		task.DueDate = strings.TrimSpace(*upd.DueDate)
	}
	if upd.Duration != nil {
		task.Duration = *upd.Duration
	}
	if upd.Tag != nil {
		task.Tag = strings.TrimSpace(*upd.Tag)
	}
	if upd.Notes != nil {
		task.Notes = strings.TrimSpace(*upd.Notes)
	}
	task.UpdatedAt = s.now()

	updated := *task
	s.saveRecordsLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventTaskUpdated, Task: &updated})
	return &updated
}

// DeleteTask removes the record if present and reports whether it did.
// Deleting an unknown id is an idempotent no-op.
func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.saveRecordsLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventTaskDeleted, Task: &removed})
	return true
}

// ReplaceTasks atomically swaps the whole collection, persists, and
// notifies tasksReplaced. No per-record validation happens here; bulk
// import validates before calling.
func (s *Store) ReplaceTasks(tasks []Task) {
	replacement := make([]Task, len(tasks))
	copy(replacement, tasks)

	s.mu.Lock()
	s.tasks = replacement
	s.saveRecordsLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventTasksReplaced, Tasks: replacement})
}

// GetTask returns a copy of the record with the given id, or nil.
func (s *Store) GetTask(id string) *Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOfLocked(id); idx >= 0 {
		task := s.tasks[idx]
		return &task
	}
	return nil
}

// Tasks returns a snapshot of the collection in authoritative order
// (most recently added first).
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets
}

// UpdateSettings merges upd over the current settings, persists, and
// notifies settingsUpdated. The merged settings are returned.
func (s *Store) UpdateSettings(upd SettingsUpdate) Settings {
	s.mu.Lock()
	if upd.DurationUnit != nil {
		s.sets.DurationUnit = *upd.DurationUnit
	}
	if upd.WeeklyCap != nil {
		s.sets.WeeklyCap = *upd.WeeklyCap
	}
	merged := s.sets
	if s.persistence != nil {
		if err := s.persistence.SaveSettings(merged); err != nil {
			log.WithError(err).Error("saving settings failed")
		}
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventSettingsUpdated, Settings: &merged})
	return merged
}

// Tags returns a copy of the tag vocabulary in insertion order.
func (s *Store) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

// AddTag appends tag to the vocabulary. Duplicates are rejected and
// reported false without persisting or notifying.
func (s *Store) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)

	s.mu.Lock()
	for _, existing := range s.tags {
		if existing == tag {
			s.mu.Unlock()
			return false
		}
	}
	s.tags = append(s.tags, tag)
	tags := make([]string, len(s.tags))
	copy(tags, s.tags)
	s.saveTagsLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventTagsUpdated, Tags: tags})
	return true
}

// RemoveTag drops tag from the vocabulary. Removing the final remaining
// tag is refused with ErrLastTag; removing an unknown tag is a no-op.
// Records already using a removed tag keep it.
func (s *Store) RemoveTag(tag string) error {
	s.mu.Lock()
	idx := -1
	for i, existing := range s.tags {
		if existing == tag {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	if len(s.tags) == 1 {
		s.mu.Unlock()
		return ErrLastTag
	}
	s.tags = append(s.tags[:idx], s.tags[idx+1:]...)
	tags := make([]string, len(s.tags))
	copy(tags, s.tags)
	s.saveTagsLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventTagsUpdated, Tags: tags})
	return nil
}

// ClearAll resets the collection, settings, and vocabulary to their
// defaults, persists everything, and notifies cleared.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.tasks = nil
	s.tags = DefaultTags()
	s.sets = DefaultSettings()
	s.saveRecordsLocked()
	s.saveTagsLocked()
	if s.persistence != nil {
		if err := s.persistence.SaveSettings(s.sets); err != nil {
			log.WithError(err).Error("saving settings failed")
		}
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventCleared})
}

// uniqueID draws IDs until one does not collide with the collection.
// With UUIDs the loop body runs once; custom generators get the same
// uniqueness guarantee.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOfLocked(id) < 0 {
			return id
		}
	}
}

func (s *Store) indexOfLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) saveRecordsLocked() {
	if s.persistence == nil {
		return
	}
	tasks := make([]Task, len(s.tasks))
	copy(tasks, s.tasks)
	if err := s.persistence.SaveRecords(tasks); err != nil {
		log.WithError(err).Error("saving records failed")
	}
}

func (s *Store) saveTagsLocked() {
	if s.persistence == nil {
		return
	}
	tags := make([]string, len(s.tags))
	copy(tags, s.tags)
	if err := s.persistence.SaveTags(tags); err != nil {
		log.WithError(err).Error("saving tags failed")
	}
}
