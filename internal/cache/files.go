// Package cache stores fetched payloads as files, one per key.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/egset/waybar-weather/internal/metrics"
)

// Files is a directory of cached payloads. Staleness is judged by file
// modification time, so entries survive restarts and can be shared by
// several bar instances.
type Files struct {
	dir string
}

// NewFiles creates the cache in dir, or in the OS temp directory when dir is empty.
func NewFiles(dir string) (*Files, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Files{dir: dir}, nil
}

// Path returns the file backing key, e.g. /tmp/waybar-weather-location.json.
func (c *Files) Path(key string) string {
	key = strings.ReplaceAll(key, string(filepath.Separator), "_")
	return filepath.Join(c.dir, fmt.Sprintf("waybar-weather-%s.json", key))
}

// Get returns the cached payload if it exists and is younger than maxAge.
func (c *Files) Get(key string, maxAge time.Duration) ([]byte, bool) {
	path := c.Path(key)
	info, err := os.Stat(path)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("file", "miss").Inc()
		return nil, false
	}

	if time.Since(info.ModTime()) >= maxAge {
		metrics.CacheLookups.WithLabelValues("file", "stale").Inc()
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("file", "miss").Inc()
		return nil, false
	}

	metrics.CacheLookups.WithLabelValues("file", "hit").Inc()
	return data, true
}

// Set writes the payload for key. The file is written next to its final
// name and renamed so concurrent readers never see a partial payload.
func (c *Files) Set(key string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, ".waybar-weather-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path(key)); err != nil {
		return fmt.Errorf("rename cache: %w", err)
	}
	return nil
}
