package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFiles_SetGet(t *testing.T) {
	c, err := NewFiles(t.TempDir())
	if err != nil {
		t.Fatalf("NewFiles: %v", err)
	}

	if _, ok := c.Get("59.9-10.7", time.Hour); ok {
		t.Fatal("Get on empty cache returned ok")
	}

	payload := []byte(`{"properties":{}}`)
	if err := c.Set("59.9-10.7", payload); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := c.Get("59.9-10.7", time.Hour)
	if !ok {
		t.Fatal("Get after Set returned !ok")
	}
	if string(got) != string(payload) {
		t.Errorf("Get = %s, want %s", got, payload)
	}
}

func TestFiles_Stale(t *testing.T) {
	c, err := NewFiles(t.TempDir())
	if err != nil {
		t.Fatalf("NewFiles: %v", err)
	}
	if err := c.Set("location", []byte(`{}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(c.Path("location"), old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	if _, ok := c.Get("location", time.Hour); ok {
		t.Error("Get returned a payload older than maxAge")
	}
	if _, ok := c.Get("location", 3*time.Hour); !ok {
		t.Error("Get rejected a payload younger than maxAge")
	}
}

func TestFiles_Path(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFiles(dir)
	if err != nil {
		t.Fatalf("NewFiles: %v", err)
	}

	want := filepath.Join(dir, "waybar-weather-59.911491-10.757933.json")
	if got := c.Path("59.911491-10.757933"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestFiles_Overwrite(t *testing.T) {
	c, err := NewFiles(t.TempDir())
	if err != nil {
		t.Fatalf("NewFiles: %v", err)
	}
	for _, v := range []string{"first", "second"} {
		if err := c.Set("k", []byte(v)); err != nil {
			t.Fatalf("Set(%s): %v", v, err)
		}
	}

	got, ok := c.Get("k", time.Hour)
	if !ok || string(got) != "second" {
		t.Errorf("Get = %q, %v, want second, true", got, ok)
	}
}
