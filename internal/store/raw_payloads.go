package store

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/egset/waybar-weather/internal/metrics"
)

// Get returns the payload cached under key if it is younger than maxAge.
// Read errors are logged and reported as a miss.
func (s *Store) Get(key string, maxAge time.Duration) ([]byte, bool) {
	var fetchedAt int64
	var compressed []byte
	err := s.db.QueryRow(`SELECT fetched_at, payload_compressed FROM payload_cache WHERE key = ?`, key).
		Scan(&fetchedAt, &compressed)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.CacheLookups.WithLabelValues("sqlite", "miss").Inc()
		return nil, false
	}
	if err != nil {
		s.logger.Warn("read cached payload", zap.String("key", key), zap.Error(err))
		metrics.CacheLookups.WithLabelValues("sqlite", "miss").Inc()
		return nil, false
	}

	if s.now().Sub(time.Unix(fetchedAt, 0)) >= maxAge {
		metrics.CacheLookups.WithLabelValues("sqlite", "stale").Inc()
		return nil, false
	}

	payload, err := decompress(compressed)
	if err != nil {
		s.logger.Warn("decompress cached payload", zap.String("key", key), zap.Error(err))
		metrics.CacheLookups.WithLabelValues("sqlite", "miss").Inc()
		return nil, false
	}

	metrics.CacheLookups.WithLabelValues("sqlite", "hit").Inc()
	return payload, true
}

// Set stores a gzip-compressed copy of payload under key, replacing any
// previous entry. An identical payload only has its fetch time refreshed.
func (s *Store) Set(key string, payload []byte) error {
	sum := sha256.Sum256(payload)
	hash := hex.EncodeToString(sum[:])

	existing, err := s.PayloadHash(key)
	if err != nil {
		s.logger.Warn("read payload hash", zap.String("key", key), zap.Error(err))
	} else if existing == hash {
		if _, err := s.db.Exec(`UPDATE payload_cache SET fetched_at = ? WHERE key = ?`, s.now().Unix(), key); err != nil {
			return fmt.Errorf("refresh payload: %w", err)
		}
		s.logger.Debug("payload unchanged", zap.String("key", key), zap.String("hash", hash))
		return nil
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(payload); err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO payload_cache (key, fetched_at, payload_compressed, payload_hash)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			payload_compressed = excluded.payload_compressed,
			payload_hash = excluded.payload_hash
	`, key, s.now().Unix(), buf.Bytes(), hash)
	if err != nil {
		return fmt.Errorf("upsert payload: %w", err)
	}
	s.logger.Debug("cached payload", zap.String("key", key), zap.String("hash", hash), zap.Int("bytes", len(payload)))
	return nil
}

// PayloadHash returns the sha256 of the payload cached under key, or "".
func (s *Store) PayloadHash(key string) (string, error) {
	var hash string
	err := s.db.QueryRow(`SELECT payload_hash FROM payload_cache WHERE key = ?`, key).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return hash, err
}

// Prune deletes payloads older than maxAge and returns how many were removed.
func (s *Store) Prune(maxAge time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxAge).Unix()
	result, err := s.db.Exec(`DELETE FROM payload_cache WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune payloads: %w", err)
	}
	return result.RowsAffected()
}

func decompress(compressed []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("create gzip reader: %w", err)
	}
	defer gz.Close()

	return io.ReadAll(gz)
}
