// Package storage provides the bucketed key/value backends used to persist
// scan runs.
package storage

import "errors"

// ErrBucketNotFound is returned when an operation names a bucket that was
// never created.
var ErrBucketNotFound = errors.New("bucket not found")

// Backend is a bucketed key/value store working on raw bytes.
type Backend interface {
	// EnsureBucket creates the bucket if it does not exist yet.
	EnsureBucket(name []byte) error

	Put(bucket, key, value []byte) error
	// Get returns nil, nil for a missing key.
	Get(bucket, key []byte) ([]byte, error)
	Delete(bucket, key []byte) error

	// ForEach visits the bucket in ascending key order.
	ForEach(bucket []byte, fn func(k, v []byte) error) error

	// Update runs fn against one bucket atomically. The bucket must not be
	// used after fn returns.
	Update(bucket []byte, fn func(b Bucket) error) error

	Close() error
}

// Bucket is a single bucket inside an Update.
type Bucket interface {
	Put(key, value []byte) error
	Get(key []byte) []byte
	Delete(key []byte) error
	ForEach(fn func(k, v []byte) error) error
}
