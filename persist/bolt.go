package persist

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/plankit/plankit/store"
)

// Bucket and key names in the bbolt file.
var (
	bucketBlobs = []byte("blobs")

	keyRecords  = []byte("records")
	keySettings = []byte("settings")
	keyTags     = []byte("tags")
)

// Bolt persists the store's blobs in a bbolt key-value file.
type Bolt struct {
	db *bolt.DB
}

var _ store.Persistence = (*Bolt)(nil)

// OpenBolt opens (creating if needed) the bbolt file at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBlobs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing %s: %w", path, err)
	}

	return &Bolt{db: db}, nil
}

// Close releases the underlying file.
func (b *Bolt) Close() error {
	return b.db.Close()
}

// LoadRecords reads the stored collection. A missing or unreadable blob
// yields an empty collection.
func (b *Bolt) LoadRecords() ([]store.Task, error) {
	blob, err := b.get(keyRecords)
	if err != nil {
		return nil, err
	}
	return decodeRecords(blob), nil
}

// SaveRecords writes the collection blob.
func (b *Bolt) SaveRecords(tasks []store.Task) error {
	blob, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return b.put(keyRecords, blob)
}

// LoadSettings reads the settings with defaults for missing keys.
func (b *Bolt) LoadSettings() (store.Settings, error) {
	blob, err := b.get(keySettings)
	if err != nil {
		return store.DefaultSettings(), err
	}
	return decodeSettings(blob), nil
}

// SaveSettings writes the settings blob.
func (b *Bolt) SaveSettings(s store.Settings) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return b.put(keySettings, blob)
}

// LoadTags reads the vocabulary, falling back to the default set.
func (b *Bolt) LoadTags() ([]string, error) {
	blob, err := b.get(keyTags)
	if err != nil {
		return store.DefaultTags(), err
	}
	return decodeTags(blob), nil
}

// SaveTags writes the vocabulary blob.
func (b *Bolt) SaveTags(tags []string) error {
	blob, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	return b.put(keyTags, blob)
}

func (b *Bolt) get(key []byte) ([]byte, error) {
	var blob []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketBlobs).Get(key); v != nil {
			blob = make([]byte, len(v))
			copy(blob, v)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).WithField("key", string(key)).Error("bolt read failed")
		return nil, err
	}
	return blob, nil
}

func (b *Bolt) put(key, blob []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlobs).Put(key, blob)
	})
	if err != nil {
		log.WithError(err).WithField("key", string(key)).Error("bolt write failed")
	}
	return err
}
