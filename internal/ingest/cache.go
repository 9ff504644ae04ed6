package ingest

import "time"

// PayloadCache stores raw upstream responses by key. Implemented by
// cache.Files and store.Store.
type PayloadCache interface {
	Get(key string, maxAge time.Duration) ([]byte, bool)
	Set(key string, payload []byte) error
}
