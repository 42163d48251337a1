package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/OtaviOuu/shopee-monitor/internal/models"
)

var (
	confirmedBucket = []byte("confirmed")
	pendingBucket   = []byte("pending")
)

// BoltStore is the embedded key-value seen-set. Unlike the file backend
// it creates its database on first use; bbolt gives crash-safe writes
// without the whole-document rewrite.
type BoltStore struct {
	db *bolt.DB
}

func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{confirmedBucket, pendingBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Seen(_ context.Context, key string) (bool, error) {
	var seen bool
	err := s.db.View(func(tx *bolt.Tx) error {
		k := []byte(key)
		seen = tx.Bucket(confirmedBucket).Get(k) != nil ||
			tx.Bucket(pendingBucket).Get(k) != nil
		return nil
	})
	return seen, err
}

func (s *BoltStore) MarkPending(_ context.Context, item models.Item) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		k := []byte(item.Key())
		if tx.Bucket(confirmedBucket).Get(k) != nil {
			return nil
		}
		pending := tx.Bucket(pendingBucket)
		if pending.Get(k) != nil {
			return nil
		}
		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		return pending.Put(k, data)
	})
}

func (s *BoltStore) Confirm(_ context.Context, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		k := []byte(key)
		pending := tx.Bucket(pendingBucket)
		data := pending.Get(k)
		if data == nil {
			data = []byte("{}")
		}
		if err := tx.Bucket(confirmedBucket).Put(k, data); err != nil {
			return err
		}
		return pending.Delete(k)
	})
}

func (s *BoltStore) Pending(_ context.Context) ([]models.Item, error) {
	var items []models.Item
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(pendingBucket).ForEach(func(_, v []byte) error {
			var item models.Item
			if err := json.Unmarshal(v, &item); err != nil {
				return err
			}
			items = append(items, item)
			return nil
		})
	})
	return items, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
