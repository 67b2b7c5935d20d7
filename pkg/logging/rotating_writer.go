package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultMaxLogSize is used when no rotation size is configured
const DefaultMaxLogSize = 10 * 1024 * 1024

// RotatingWriter is a file writer that rotates the log file once it
// exceeds maxSize, archiving the old file under old/ with a timestamp.
type RotatingWriter struct {
	mu         sync.Mutex
	f          *os.File
	path       string
	dir        string
	base       string
	maxSize    int64
	approxSize int64
}

// NewRotatingWriter creates a rotating writer for path. A maxSize of zero
// falls back to DefaultMaxLogSize. If the existing file already exceeds
// the limit it is rotated immediately so we start clean.
func NewRotatingWriter(path string, maxSize int64) (*RotatingWriter, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxLogSize
	}

	w := &RotatingWriter{
		path:    path,
		dir:     filepath.Dir(path),
		base:    filepath.Base(path),
		maxSize: maxSize,
	}

	if err := w.openForAppendLocked(); err != nil {
		return nil, err
	}

	if w.approxSize >= w.maxSize {
		if err := w.rotateLocked(); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Write implements io.Writer
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.approxSize+int64(len(p)) >= w.maxSize {
		if err := w.rotateLocked(); err != nil {
			return 0, err
		}
	}

	n, err := w.f.Write(p)
	w.approxSize += int64(n)
	return n, err
}

// Close closes the underlying file
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f != nil {
		return w.f.Close()
	}
	return nil
}

func (w *RotatingWriter) openForAppendLocked() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}

	w.f = f
	w.approxSize = fi.Size()
	return nil
}

// rotateLocked archives the current log as old/<basename>.YYYYMMDD-HHMMSS
// and starts a fresh file.
func (w *RotatingWriter) rotateLocked() error {
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}

	oldDir := filepath.Join(w.dir, "old")
	if err := os.MkdirAll(oldDir, 0755); err != nil {
		return fmt.Errorf("creating old/ directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(oldDir, fmt.Sprintf("%s.%s", w.base, timestamp))

	// Best effort, the file might not exist
	_ = os.Rename(w.path, archivePath)

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating new log file: %w", err)
	}

	w.f = f
	w.approxSize = 0
	return nil
}
