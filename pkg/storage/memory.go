package storage

import (
	"fmt"
	"slices"
	"sync"
)

// MemoryBackend implements Backend with in-memory maps. Nothing survives
// Close; it backs tests and runs without a database path.
type MemoryBackend struct {
	buckets map[string]memoryBucket
	mu      sync.RWMutex
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		buckets: make(map[string]memoryBucket),
	}
}

func (m *MemoryBackend) EnsureBucket(name []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.buckets[string(name)]; !exists {
		m.buckets[string(name)] = make(memoryBucket)
	}

	return nil
}

func (m *MemoryBackend) Put(bucket, key, value []byte) error {
	return m.Update(bucket, func(b Bucket) error {
		return b.Put(key, value)
	})
}

func (m *MemoryBackend) Get(bucket, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return nil, err
	}

	return bkt.Get(key), nil
}

func (m *MemoryBackend) Delete(bucket, key []byte) error {
	return m.Update(bucket, func(b Bucket) error {
		return b.Delete(key)
	})
}

func (m *MemoryBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return err
	}

	return bkt.ForEach(fn)
}

// Update holds the write lock for the whole of fn.
func (m *MemoryBackend) Update(bucket []byte, fn func(b Bucket) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, err := m.bucket(bucket)
	if err != nil {
		return err
	}

	return fn(bkt)
}

func (m *MemoryBackend) Close() error {
	return nil
}

func (m *MemoryBackend) bucket(name []byte) (memoryBucket, error) {
	bkt, exists := m.buckets[string(name)]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, name)
	}
	return bkt, nil
}

// memoryBucket copies values in and out so callers never share memory with
// the store.
type memoryBucket map[string][]byte

func (b memoryBucket) Put(key, value []byte) error {
	b[string(key)] = append([]byte(nil), value...)
	return nil
}

func (b memoryBucket) Get(key []byte) []byte {
	v, exists := b[string(key)]
	if !exists {
		return nil
	}
	return append([]byte(nil), v...)
}

func (b memoryBucket) Delete(key []byte) error {
	delete(b, string(key))
	return nil
}

func (b memoryBucket) ForEach(fn func(k, v []byte) error) error {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if err := fn([]byte(k), b[k]); err != nil {
			return err
		}
	}
	return nil
}
