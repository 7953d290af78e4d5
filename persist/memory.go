package persist

import (
	"encoding/json"
	"sync"

	"github.com/plankit/plankit/store"
)

// Memory keeps the persisted blobs in process memory. It round-trips
// through JSON like the durable implementation so the two are
// interchangeable in tests.
type Memory struct {
	mu       sync.Mutex
	records  []byte
	settings []byte
	tags     []byte
}

var _ store.Persistence = (*Memory)(nil)

// NewMemory creates an empty in-memory collaborator.
func NewMemory() *Memory {
	return &Memory{}
}

// LoadRecords returns the stored collection, empty when nothing was
// saved yet.
func (m *Memory) LoadRecords() ([]store.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeRecords(m.records), nil
}

// SaveRecords stores the collection.
func (m *Memory) SaveRecords(tasks []store.Task) error {
	blob, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.records = blob
	m.mu.Unlock()
	return nil
}

// LoadSettings returns the stored settings with defaults applied for
// missing keys.
func (m *Memory) LoadSettings() (store.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeSettings(m.settings), nil
}

// SaveSettings stores the settings.
func (m *Memory) SaveSettings(s store.Settings) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.settings = blob
	m.mu.Unlock()
	return nil
}

// LoadTags returns the stored vocabulary, falling back to the default
// set when absent or corrupt.
func (m *Memory) LoadTags() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeTags(m.tags), nil
}

// SaveTags stores the vocabulary.
func (m *Memory) SaveTags(tags []string) error {
	blob, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.tags = blob
	m.mu.Unlock()
	return nil
}

// decodeRecords is shared with Bolt: a nil or unreadable blob means an
// empty collection.
func decodeRecords(blob []byte) []store.Task {
	if len(blob) == 0 {
		return nil
	}
	var tasks []store.Task
	if err := json.Unmarshal(blob, &tasks); err != nil {
		return nil
	}
	return tasks
}

// decodeSettings fills missing keys with defaults so a partial blob
// still yields complete settings.
func decodeSettings(blob []byte) store.Settings {
	defaults := store.DefaultSettings()
	if len(blob) == 0 {
		return defaults
	}
	sets := defaults
	if err := json.Unmarshal(blob, &sets); err != nil {
		return defaults
	}
	if sets.DurationUnit != "minutes" && sets.DurationUnit != "hours" {
		sets.DurationUnit = defaults.DurationUnit
	}
	if sets.WeeklyCap < 0 {
		sets.WeeklyCap = 0
	}
	return sets
}

// decodeTags falls back to the default vocabulary on absent, corrupt,
// or empty data.
func decodeTags(blob []byte) []string {
	if len(blob) == 0 {
		return store.DefaultTags()
	}
	var tags []string
	if err := json.Unmarshal(blob, &tags); err != nil || len(tags) == 0 {
		return store.DefaultTags()
	}
	return tags
}
