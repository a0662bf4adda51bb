package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tasksure/client/domain"
)

var latestKey = []byte("latest")

// Snapshot is the last good cache contents, persisted as one unit so a
// restore can never install tasks without their matching stats.
type Snapshot struct {
	Tasks   []domain.Task `json:"tasks"`
	Stats   domain.Stats  `json:"stats"`
	SavedAt time.Time     `json:"saved_at"`
}

// Store wraps BoltDB to persist the last-good snapshot across restarts.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "snapshot"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Save replaces the stored snapshot.
func (s *Store) Save(snap Snapshot) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now()
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(latestKey, payload)
	})
}

// Load returns the stored snapshot, or nil when none has been saved.
func (s *Store) Load() (*Snapshot, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}

	var snap *Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get(latestKey)
		if raw == nil {
			return nil
		}
		var decoded Snapshot
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return err
		}
		snap = &decoded
		return nil
	})
	return snap, err
}

// Clear drops the stored snapshot.
func (s *Store) Clear() error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(latestKey)
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
