package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BboltBackend implements Backend on a single bbolt file.
type BboltBackend struct {
	db   *bolt.DB
	path string
}

// NewBboltBackend opens (or creates) the database at dbPath, creating its
// directory when needed.
func NewBboltBackend(dbPath string) (*BboltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// A second process holding the lock makes Open fail after the timeout
	// instead of blocking forever.
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt database: %w", err)
	}

	return &BboltBackend{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (b *BboltBackend) Path() string {
	return b.path
}

func (b *BboltBackend) EnsureBucket(name []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	})
}

func (b *BboltBackend) Put(bucket, key, value []byte) error {
	return b.Update(bucket, func(bkt Bucket) error {
		return bkt.Put(key, value)
	})
}

func (b *BboltBackend) Get(bucket, key []byte) ([]byte, error) {
	var value []byte

	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
		}
		// bbolt values are only valid for the life of the transaction
		if v := bkt.Get(key); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})

	return value, err
}

func (b *BboltBackend) Delete(bucket, key []byte) error {
	return b.Update(bucket, func(bkt Bucket) error {
		return bkt.Delete(key)
	})
}

func (b *BboltBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
		}
		return bkt.ForEach(fn)
	})
}

func (b *BboltBackend) Update(bucket []byte, fn func(b Bucket) error) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
		}
		return fn(bboltBucket{bkt})
	})
}

func (b *BboltBackend) Close() error {
	return b.db.Close()
}

type bboltBucket struct {
	*bolt.Bucket
}

// ForEach collects the keys first: bbolt forbids deleting from a bucket while
// its cursor is iterating.
func (b bboltBucket) ForEach(fn func(k, v []byte) error) error {
	type kv struct{ k, v []byte }

	var pairs []kv
	err := b.Bucket.ForEach(func(k, v []byte) error {
		pairs = append(pairs, kv{append([]byte(nil), k...), append([]byte(nil), v...)})
		return nil
	})
	if err != nil {
		return err
	}

	for _, p := range pairs {
		if err := fn(p.k, p.v); err != nil {
			return err
		}
	}
	return nil
}
