package speech

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hammamikhairi/redchef/internal/logger"
)

func TestAudioCacheMemory(t *testing.T) {
	c := NewAudioCache("voice-a", "", false, logger.New(logger.LevelOff, nil))

	if _, ok := c.Get("Step 1. Whisk"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Put("Step 1. Whisk", []byte("wav"))
	got, ok := c.Get("Step 1. Whisk")
	if !ok || string(got) != "wav" {
		t.Fatalf("expected hit with stored audio, got %q %v", got, ok)
	}
	if !c.Has("Step 1. Whisk") {
		t.Fatal("Has should report cached text")
	}

	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 {
		t.Fatalf("expected 1 hit 1 miss, got %+v", s)
	}
}

func TestAudioCacheKeyIncludesVoice(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	a := NewAudioCache("voice-a", "", false, log)
	b := NewAudioCache("voice-b", "", false, log)
	if a.key("hello") == b.key("hello") {
		t.Fatal("different voices must produce different keys")
	}
	if a.key("hello") != a.key("hello") {
		t.Fatal("key must be stable")
	}
}

func TestAudioCacheDiskRoundTrip(t *testing.T) {
	dir := t.TempDir()
	log := logger.New(logger.LevelOff, nil)

	writer := NewAudioCache("voice-a", dir, true, log)
	writer.Put("Your recipe is ready", []byte("audio-bytes"))

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(files) != 1 || filepath.Ext(files[0].Name()) != ".wav" {
		t.Fatalf("expected one .wav file, got %v", files)
	}

	// A fresh read-only cache still finds the entry from disk.
	reader := NewAudioCache("voice-a", dir, false, log)
	if !reader.Has("Your recipe is ready") {
		t.Fatal("Has should see the disk entry")
	}
	got, ok := reader.Get("Your recipe is ready")
	if !ok || string(got) != "audio-bytes" {
		t.Fatalf("expected disk hit, got %q %v", got, ok)
	}

	// Read-only caches never write.
	reader.Put("new line", []byte("x"))
	files, _ = os.ReadDir(dir)
	if len(files) != 1 {
		t.Fatalf("read-only cache wrote to disk: %d files", len(files))
	}
}
