package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store := New(db, nil)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestMigrate_Idempotent(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	version, err := store.MigrationVersion()
	if err != nil {
		t.Fatalf("MigrationVersion: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("MigrationVersion = %d, want %d", version, len(migrations))
	}
}

func TestSetGet(t *testing.T) {
	store := setupTestStore(t)

	if _, ok := store.Get("59.9-10.7", time.Hour); ok {
		t.Fatal("Get on empty store returned ok")
	}

	payload := []byte(`{"properties":{"timeseries":[]}}`)
	if err := store.Set("59.9-10.7", payload); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := store.Get("59.9-10.7", time.Hour)
	if !ok {
		t.Fatal("Get after Set returned !ok")
	}
	if string(got) != string(payload) {
		t.Errorf("Get = %s, want %s", got, payload)
	}

	hash, err := store.PayloadHash("59.9-10.7")
	if err != nil {
		t.Fatalf("PayloadHash: %v", err)
	}
	sum := sha256.Sum256(payload)
	if want := hex.EncodeToString(sum[:]); hash != want {
		t.Errorf("PayloadHash = %s, want %s", hash, want)
	}
}

func TestSet_Replaces(t *testing.T) {
	store := setupTestStore(t)

	for _, v := range []string{`{"v":1}`, `{"v":2}`} {
		if err := store.Set("location", []byte(v)); err != nil {
			t.Fatalf("Set(%s): %v", v, err)
		}
	}

	got, ok := store.Get("location", time.Hour)
	if !ok || string(got) != `{"v":2}` {
		t.Errorf("Get = %s, %v, want {\"v\":2}, true", got, ok)
	}
}

func TestGet_Stale(t *testing.T) {
	store := setupTestStore(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Set("k", []byte(`{}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	now = now.Add(20 * time.Minute)
	if _, ok := store.Get("k", 15*time.Minute); ok {
		t.Error("Get returned a payload older than maxAge")
	}
	if _, ok := store.Get("k", time.Hour); !ok {
		t.Error("Get rejected a payload younger than maxAge")
	}
}

func TestPrune(t *testing.T) {
	store := setupTestStore(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Set("old", []byte(`{}`)); err != nil {
		t.Fatalf("Set old: %v", err)
	}
	now = now.Add(3 * time.Hour)
	if err := store.Set("new", []byte(`{}`)); err != nil {
		t.Fatalf("Set new: %v", err)
	}

	n, err := store.Prune(time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Errorf("Prune removed %d rows, want 1", n)
	}
	if _, ok := store.Get("new", time.Hour); !ok {
		t.Error("Prune removed the fresh payload")
	}
	if hash, _ := store.PayloadHash("old"); hash != "" {
		t.Error("Prune kept the stale payload")
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Set("k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	store.Close()

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if got, ok := reopened.Get("k", time.Hour); !ok || string(got) != `{"a":1}` {
		t.Errorf("Get after reopen = %s, %v", got, ok)
	}
}

func TestSet_UnchangedPayloadRefreshesFetchTime(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := setupTestStore(t)
	store.logger = zap.New(core)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Set("k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	now = now.Add(50 * time.Minute)
	if err := store.Set("k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("second Set: %v", err)
	}
	now = now.Add(20 * time.Minute)

	if got, ok := store.Get("k", time.Hour); !ok || string(got) != `{"a":1}` {
		t.Errorf("Get = %s, %v, want refreshed payload", got, ok)
	}
	if n := logs.FilterMessage("payload unchanged").Len(); n != 1 {
		t.Errorf("logged %d unchanged payloads, want 1", n)
	}
}

func TestOpen_LogsSchemaVersion(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	store, err := Open(filepath.Join(t.TempDir(), "cache.db"), zap.New(core))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	entries := logs.FilterMessage("opened cache database").All()
	if len(entries) != 1 {
		t.Fatalf("got %d open log entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["schema_version"]; got != int64(len(migrations)) {
		t.Errorf("schema_version = %v, want %d", got, len(migrations))
	}
}
