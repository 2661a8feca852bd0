package reconcile

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

var deviceIDKey = []byte("device_id")

func likedKey(bucket, id string) []byte {
	return []byte("liked/" + bucket + "/" + id)
}

func likedPrefix(bucket string) []byte {
	return []byte("liked/" + bucket + "/")
}

// BadgerStore keeps reconciler state in a local Badger database. An empty
// path opens an in-memory store.
type BadgerStore struct {
	db *badger.DB
}

func OpenBadgerStore(path string) (*BadgerStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", path, err)
		}
		opts = badger.DefaultOptions(path).WithSyncWrites(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// DeviceID returns the stored device id, generating and saving one on first use.
func (s *BadgerStore) DeviceID() (string, error) {
	var id string
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(deviceIDKey)
		switch {
		case err == nil:
			return item.Value(func(val []byte) error {
				id = string(val)
				return nil
			})
		case errors.Is(err, badger.ErrKeyNotFound):
			id = uuid.NewString()
			return txn.Set(deviceIDKey, []byte(id))
		default:
			return err
		}
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *BadgerStore) IsLiked(bucket, id string) (bool, error) {
	var liked bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(likedKey(bucket, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

func (s *BadgerStore) SetLiked(bucket, id string, liked bool) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if liked {
			return txn.Set(likedKey(bucket, id), nil)
		}
		return txn.Delete(likedKey(bucket, id))
	})
}

// Liked lists the ids in a bucket's liked set.
func (s *BadgerStore) Liked(bucket string) ([]string, error) {
	prefix := likedPrefix(bucket)
	ids := []string{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
