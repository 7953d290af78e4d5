package persist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/plankit/plankit/store"
)

func sampleTasks() []store.Task {
	now := time.Date(2025, 9, 29, 12, 0, 0, 0, time.UTC)
	return []store.Task{
		{ID: "t1", Title: "Study for exam", DueDate: "2025-09-29", Duration: 90, Tag: "Study", CreatedAt: now, UpdatedAt: now},
		{ID: "t2", Title: "Lab report", DueDate: "2025-09-30", Duration: 45.5, Tag: "Lab", Notes: "bring data", CreatedAt: now, UpdatedAt: now},
	}
}

// exerciseRoundTrip runs the shared collaborator contract against any
// implementation.
func exerciseRoundTrip(t *testing.T, p store.Persistence) {
	t.Helper()

	// Fresh state: empty records, defaults elsewhere.
	records, err := p.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("fresh store should have no records, got %d", len(records))
	}

	sets, err := p.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if sets != store.DefaultSettings() {
		t.Errorf("fresh settings should be defaults, got %+v", sets)
	}

	tags, err := p.LoadTags()
	if err != nil {
		t.Fatalf("LoadTags: %v", err)
	}
	if len(tags) != len(store.DefaultTags()) {
		t.Errorf("fresh tags should be the default vocabulary, got %v", tags)
	}

	// Round trips.
	want := sampleTasks()
	if err := p.SaveRecords(want); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}
	records, err = p.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(records) != 2 || records[0].ID != "t1" || records[1].Duration != 45.5 {
		t.Errorf("records round trip failed: %+v", records)
	}

	if err := p.SaveSettings(store.Settings{DurationUnit: "hours", WeeklyCap: 600}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	sets, err = p.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if sets.DurationUnit != "hours" || sets.WeeklyCap != 600 {
		t.Errorf("settings round trip failed: %+v", sets)
	}

	if err := p.SaveTags([]string{"Study", "Gym"}); err != nil {
		t.Fatalf("SaveTags: %v", err)
	}
	tags, err = p.LoadTags()
	if err != nil {
		t.Fatalf("LoadTags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "Study" || tags[1] != "Gym" {
		t.Errorf("tags round trip failed: %v", tags)
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	exerciseRoundTrip(t, NewMemory())
}

func TestBolt_RoundTrip(t *testing.T) {
	b, err := OpenBolt(filepath.Join(t.TempDir(), "plankit.db"))
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	defer b.Close()

	exerciseRoundTrip(t, b)
}

func TestBolt_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plankit.db")

	b, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	if err := b.SaveRecords(sampleTasks()); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}
	if err := b.SaveTags([]string{"Only"}); err != nil {
		t.Fatalf("SaveTags: %v", err)
	}
	b.Close()

	b, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()

	records, err := b.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(records) != 2 || records[1].Notes != "bring data" {
		t.Errorf("records lost across reopen: %+v", records)
	}

	tags, err := b.LoadTags()
	if err != nil {
		t.Fatalf("LoadTags: %v", err)
	}
	if len(tags) != 1 || tags[0] != "Only" {
		t.Errorf("tags lost across reopen: %v", tags)
	}
}

func TestDecode_CorruptBlobsFallBack(t *testing.T) {
	if got := decodeRecords([]byte("{not json")); got != nil {
		t.Errorf("corrupt records should decode to empty, got %+v", got)
	}
	if got := decodeSettings([]byte("{not json")); got != store.DefaultSettings() {
		t.Errorf("corrupt settings should decode to defaults, got %+v", got)
	}
	if got := decodeSettings([]byte(`{"durationUnit":"days","weeklyCap":-5}`)); got != store.DefaultSettings() {
		t.Errorf("out-of-range settings should fall back per key, got %+v", got)
	}
	if got := decodeTags([]byte("[]")); len(got) != len(store.DefaultTags()) {
		t.Errorf("empty tags should fall back to defaults, got %v", got)
	}
}

func TestDecode_PartialSettingsKeepDefaults(t *testing.T) {
	got := decodeSettings([]byte(`{"weeklyCap":300}`))
	if got.DurationUnit != "minutes" {
		t.Errorf("missing durationUnit should default, got %q", got.DurationUnit)
	}
	if got.WeeklyCap != 300 {
		t.Errorf("weeklyCap lost: %+v", got)
	}
}

func TestStoreWithPersistence_WriteThrough(t *testing.T) {
	p := NewMemory()

	s := store.New(p)
	task := s.AddTask(store.TaskInput{Title: "persisted", DueDate: "2025-09-29", Duration: 5, Tag: "Study"})
	s.AddTag("Gym")

	// A second store over the same collaborator sees the writes.
	reloaded := store.New(p)
	if got := reloaded.GetTask(task.ID); got == nil || got.Title != "persisted" {
		t.Errorf("records not written through: %+v", got)
	}
	found := false
	for _, tag := range reloaded.Tags() {
		if tag == "Gym" {
			found = true
		}
	}
	if !found {
		t.Errorf("tags not written through: %v", reloaded.Tags())
	}
}
