// Package storage provides key-value storage for wallet records.
package storage

import "errors"

var (
	// ErrNotFound is returned by Get when a key does not exist.
	ErrNotFound  = errors.New("key not found")
	// ErrKeyExists is returned by Insert when the key is already present.
	ErrKeyExists = errors.New("key already exists")
)

// DB is the interface for key-value storage.
type DB interface {
	// Get returns a copy of the value, or ErrNotFound.
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	// Insert stores value only if key is absent, atomically.
	Insert(key, value []byte) error
	Delete(key []byte) error
	Has(key []byte) (bool, error)
	// ForEach iterates over all keys with the given prefix in key order.
	// The callback receives a copy of the key and value.
	// Return a non-nil error from fn to stop iteration early.
	ForEach(prefix []byte, fn func(key, value []byte) error) error
	Close() error
}
