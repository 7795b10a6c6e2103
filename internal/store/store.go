package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huffmanks/movie-picker/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketMovies     = []byte("movies")
	bucketShows      = []byte("shows")
	bucketSelections = []byte("selections")
)

// Each catalog bucket holds its full item list as one JSON array under this
// key, preserving load order.
var keyItems = []byte("items")

// PickerStore implements domain.Store using BoltDB.
//
// Selections are keyed by a big-endian NextSequence value, so bucket
// iteration order is insertion order and the key doubles as the surrogate id.
type PickerStore struct {
	db *bolt.DB
}

// Open opens (or creates) the picker database under dataDir.
func Open(dataDir string) (*PickerStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "picker.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketMovies, bucketShows, bucketSelections} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PickerStore{db: db}, nil
}

func (s *PickerStore) Close() error {
	return s.db.Close()
}

func catalogBucket(ct domain.ContentType) ([]byte, error) {
	switch ct {
	case domain.ContentTypeMovies:
		return bucketMovies, nil
	case domain.ContentTypeShows:
		return bucketShows, nil
	default:
		return nil, domain.ErrUnknownContentType
	}
}

// === Catalogs ===

func (s *PickerStore) CountItems(ct domain.ContentType) (int, error) {
	items, err := s.GetItems(ct)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *PickerStore) BulkInsertItems(ct domain.ContentType, items []*domain.MediaItem) error {
	bucket, err := catalogBucket(ct)
	if err != nil {
		return err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(keyItems, data)
	})
}

func (s *PickerStore) GetItems(ct domain.ContentType) ([]*domain.MediaItem, error) {
	bucket, err := catalogBucket(ct)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get(keyItems); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var items []*domain.MediaItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("corrupt catalog data: %w", err)
	}
	return items, nil
}

// === Selections ===

func (s *PickerStore) AddSelection(sel *domain.Selection) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSelections)

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		sel.ID = seq

		data, err := json.Marshal(sel)
		if err != nil {
			return err
		}
		return b.Put(itob(seq), data)
	})
}

func (s *PickerStore) FindSelectionByRef(refID string) (*domain.Selection, bool, error) {
	var found *domain.Selection
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketSelections).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var sel domain.Selection
			if err := json.Unmarshal(v, &sel); err != nil {
				return fmt.Errorf("corrupt selection data: %w", err)
			}
			if sel.RefID == refID {
				found = &sel
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return found, found != nil, nil
}

func (s *PickerStore) DeleteSelectionByRef(refID string) (bool, error) {
	removed := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSelections)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var sel domain.Selection
			if err := json.Unmarshal(v, &sel); err != nil {
				return fmt.Errorf("corrupt selection data: %w", err)
			}
			if sel.RefID != refID {
				continue
			}
			if err := c.Delete(); err != nil {
				return err
			}
			removed = true
		}
		return nil
	})
	return removed, err
}

func (s *PickerStore) GetSelections() ([]*domain.Selection, error) {
	var selections []*domain.Selection
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketSelections).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var sel domain.Selection
			if err := json.Unmarshal(v, &sel); err != nil {
				return fmt.Errorf("corrupt selection data: %w", err)
			}
			selections = append(selections, &sel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return selections, nil
}

func (s *PickerStore) DeleteAllSelections() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketSelections).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}

// itob encodes a sequence number as a sortable big-endian key
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
