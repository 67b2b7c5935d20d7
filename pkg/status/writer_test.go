package status

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fixedStats implements StatsProvider for testing
type fixedStats struct {
	users int
	posts int
}

func (f *fixedStats) UserCount() int { return f.users }
func (f *fixedStats) PostCount() int { return f.posts }

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(tmpDir, 10*time.Second, "v1.0.0")
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}

	if w.dir != tmpDir {
		t.Errorf("Expected dir %s, got %s", tmpDir, w.dir)
	}
	if w.version != "v1.0.0" {
		t.Errorf("Expected version v1.0.0, got %s", w.version)
	}
}

func TestWriteStartFile(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(tmpDir, 10*time.Second, "v1.0.0")
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}

	if err := w.WriteStartFile(); err != nil {
		t.Fatalf("Failed to write start file: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "last_start"))
	if err != nil {
		t.Fatalf("Failed to read last_start: %v", err)
	}

	content := string(data)
	for _, want := range []string{"timestamp_unix:", "pid:", "version: v1.0.0"} {
		if !strings.Contains(content, want) {
			t.Errorf("last_start missing %q, got:\n%s", want, content)
		}
	}
}

func TestWriteStopFile(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(tmpDir, 10*time.Second, "v1.0.0")
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}

	if err := w.WriteStopFile("shutdown"); err != nil {
		t.Fatalf("Failed to write stop file: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "last_stop"))
	if err != nil {
		t.Fatalf("Failed to read last_stop: %v", err)
	}

	content := string(data)
	for _, want := range []string{"reason: shutdown", "uptime_seconds:"} {
		if !strings.Contains(content, want) {
			t.Errorf("last_stop missing %q, got:\n%s", want, content)
		}
	}
}

func TestRunningFileIncludesStats(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(tmpDir, 10*time.Second, "v1.0.0")
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	w.SetStatsProvider(&fixedStats{users: 3, posts: 7})

	if err := w.writeRunningFile(); err != nil {
		t.Fatalf("Failed to write running file: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "running"))
	if err != nil {
		t.Fatalf("Failed to read running: %v", err)
	}

	content := string(data)
	for _, want := range []string{"users: 3", "posts: 7", "goroutines:"} {
		if !strings.Contains(content, want) {
			t.Errorf("running missing %q, got:\n%s", want, content)
		}
	}
}
