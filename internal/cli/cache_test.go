package cli

import (
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := cacheDir("")
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirOverride(t *testing.T) {
	dir, err := cacheDir("custom/cache")
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "custom/cache" {
		t.Errorf("cacheDir() = %q, want %q", dir, "custom/cache")
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	c := New(&syncBuffer{}, LogInfo)

	// Render once so the cache has something to clear.
	out := filepath.Join(t.TempDir(), "scene.json")
	if err := c.Execute(t.Context(), []string{"render", "-f", "json", "-o", out, "--cache-dir", dir}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := countFiles(t, dir); n == 0 {
		t.Fatal("expected cached artifacts after render")
	}

	if err := c.Execute(t.Context(), []string{"cache", "clear", "--cache-dir", dir}); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := countFiles(t, dir); n != 0 {
		t.Errorf("cache holds %d files after clear, want 0", n)
	}
}
