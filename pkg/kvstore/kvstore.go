package kvstore

import "errors"

// ErrNotFound is returned by every implementation when a key or hash
// field does not exist.
var ErrNotFound = errors.New("kvstore: key not found")

type KVStore interface {
	Get(key string) (string, error)
	Set(key string, value interface{}) error
	Delete(key string) error
	Keys(pattern string) ([]string, error)
	RPush(key string, values ...interface{}) error
	LRange(key string, start, stop int64) ([]string, error)
	HGet(key, field string) (string, error)
	HSet(key, field string, value interface{}) error
	HGetAll(key string) (map[string]string, error)
	HDel(key string, fields ...string) error
}
