// Package index maintains an optional full-text search index over the
// task collection.
//
// The regex engine in the search package implements the exact query
// contract; this package supplements it with ranked BM25 lookup backed
// by Bleve. Follow subscribes the index to a store's change feed so it
// stays current without any caller bookkeeping.
package index

import (
	"fmt"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	log "github.com/sirupsen/logrus"

	"github.com/plankit/plankit/store"
)

// Document is the indexed shape of one task.
type Document struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Tag      string  `json:"tag"`
	Notes    string  `json:"notes"`
	DueDate  string  `json:"dueDate"`
	Duration float64 `json:"duration"`
}

// Index is a full-text index over task records.
type Index struct {
	mu  sync.RWMutex
	idx bleve.Index

	// ids tracks every indexed document so Rebuild can clear the index.
	ids map[string]struct{}

	sub *store.Subscription
}

// Open opens (or creates) a disk-backed index at path.
func Open(path string) (*Index, error) {
	var idx bleve.Index
	var err error

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		idx, err = bleve.New(path, buildIndexMapping())
	} else {
		idx, err = bleve.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening index at %s: %w", path, err)
	}

	return wrap(idx)
}

// NewMemOnly creates an in-memory index, useful for tests and small
// collections.
func NewMemOnly() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating in-memory index: %w", err)
	}
	return wrap(idx)
}

func wrap(idx bleve.Index) (*Index, error) {
	x := &Index{idx: idx, ids: make(map[string]struct{})}

	// Recover the id set from an existing index.
	count, err := idx.DocCount()
	if err != nil {
		idx.Close()
		return nil, err
	}
	if count > 0 {
		req := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
		req.Size = int(count)
		res, err := idx.Search(req)
		if err != nil {
			idx.Close()
			return nil, err
		}
		for _, hit := range res.Hits {
			x.ids[hit.ID] = struct{}{}
		}
	}

	return x, nil
}

// buildIndexMapping analyzes title and notes as full text and keeps tag
// and due date as exact keywords.
func buildIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name

	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	numericFieldMapping := bleve.NewNumericFieldMapping()

	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("notes", textFieldMapping)
	docMapping.AddFieldMappingsAt("tag", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("dueDate", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("duration", numericFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping
}

// Add indexes (or reindexes) one task.
func (x *Index) Add(t store.Task) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	doc := Document{
		ID:       t.ID,
		Title:    t.Title,
		Tag:      t.Tag,
		Notes:    t.Notes,
		DueDate:  t.DueDate,
		Duration: t.Duration,
	}
	if err := x.idx.Index(t.ID, doc); err != nil {
		return fmt.Errorf("indexing task %s: %w", t.ID, err)
	}
	x.ids[t.ID] = struct{}{}
	return nil
}

// Remove drops one task from the index. Removing an unknown id is a
// no-op.
func (x *Index) Remove(id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.idx.Delete(id); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	delete(x.ids, id)
	return nil
}

// Rebuild replaces the index contents with exactly the given tasks.
func (x *Index) Rebuild(tasks []store.Task) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.idx.NewBatch()
	for id := range x.ids {
		batch.Delete(id)
	}
	for _, t := range tasks {
		doc := Document{
			ID:       t.ID,
			Title:    t.Title,
			Tag:      t.Tag,
			Notes:    t.Notes,
			DueDate:  t.DueDate,
			Duration: t.Duration,
		}
		if err := batch.Index(t.ID, doc); err != nil {
			return fmt.Errorf("indexing task %s: %w", t.ID, err)
		}
	}
	if err := x.idx.Batch(batch); err != nil {
		return fmt.Errorf("applying rebuild batch: %w", err)
	}

	x.ids = make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		x.ids[t.ID] = struct{}{}
	}
	return nil
}

// Search runs a ranked free-text query and returns matching task IDs,
// best first. A non-positive limit means 10.
func (x *Index) Search(query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit

	res, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// Follow keeps the index in sync with s by subscribing to its change
// feed. The index seeds itself from the store's current collection
// first. Call Close (or the subscription's Unsubscribe) to stop.
func (x *Index) Follow(s *store.Store) error {
	if err := x.Rebuild(s.Tasks()); err != nil {
		return err
	}

	x.sub = s.Subscribe(func(ev store.Event) {
		var err error
		switch ev.Kind {
		case store.EventTaskAdded, store.EventTaskUpdated:
			err = x.Add(*ev.Task)
		case store.EventTaskDeleted:
			err = x.Remove(ev.Task.ID)
		case store.EventTasksReplaced:
			err = x.Rebuild(ev.Tasks)
		case store.EventCleared:
			err = x.Rebuild(nil)
		}
		if err != nil {
			log.WithError(err).WithField("event", ev.Kind).Error("index update failed")
		}
	})
	return nil
}

// Close stops following the store, if Follow was called, and releases
// the index.
func (x *Index) Close() error {
	if x.sub != nil {
		x.sub.Unsubscribe()
		x.sub = nil
	}
	return x.idx.Close()
}
