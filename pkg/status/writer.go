// Package status writes daemon health files so external monitoring can
// watch a running store without any network surface.
package status

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/forerunnerhq/forerunner-store/pkg/logging"
)

// StatsProvider supplies store counts for the running file
type StatsProvider interface {
	UserCount() int
	PostCount() int
}

// Writer manages status files for daemon health monitoring
type Writer struct {
	dir            string
	updateInterval time.Duration
	pid            int
	version        string
	startTime      time.Time
	stats          StatsProvider

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a new status Writer
func New(dir string, updateInterval time.Duration, version string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create status directory: %w", err)
	}

	return &Writer{
		dir:            dir,
		updateInterval: updateInterval,
		pid:            os.Getpid(),
		version:        version,
		startTime:      time.Now(),
		stopCh:         make(chan struct{}),
	}, nil
}

// SetStatsProvider sets the provider for store counts
func (w *Writer) SetStatsProvider(stats StatsProvider) {
	w.stats = stats
}

// WriteStartFile writes the last_start file with startup information
func (w *Writer) WriteStartFile() error {
	now := time.Now()
	content := fmt.Sprintf(`timestamp_unix: %d
timestamp_human: %s
pid: %d
version: %s
`,
		now.Unix(),
		now.Format("Mon Jan 02 15:04:05 2006"),
		w.pid,
		w.version,
	)

	path := filepath.Join(w.dir, "last_start")
	if err := w.atomicWrite(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write last_start: %w", err)
	}

	logging.App.Info("Wrote status file", "file", "last_start")
	return nil
}

// WriteStopFile writes the last_stop file with shutdown information
func (w *Writer) WriteStopFile(reason string) error {
	now := time.Now()
	content := fmt.Sprintf(`timestamp_unix: %d
timestamp_human: %s
reason: %s
uptime_seconds: %d
`,
		now.Unix(),
		now.Format("Mon Jan 02 15:04:05 2006"),
		reason,
		int64(now.Sub(w.startTime).Seconds()),
	)

	path := filepath.Join(w.dir, "last_stop")
	if err := w.atomicWrite(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write last_stop: %w", err)
	}

	logging.App.Info("Wrote status file", "file", "last_stop", "reason", reason)
	return nil
}

// StartHeartbeat starts a goroutine that periodically updates the running file
func (w *Writer) StartHeartbeat() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.updateInterval)
		defer ticker.Stop()

		// Write immediately on start
		if err := w.writeRunningFile(); err != nil {
			logging.App.Error("Failed to write running file", "error", err)
		}

		for {
			select {
			case <-ticker.C:
				if err := w.writeRunningFile(); err != nil {
					logging.App.Error("Failed to write running file", "error", err)
				}
			case <-w.stopCh:
				return
			}
		}
	}()

	logging.App.Info("Started status heartbeat", "interval", w.updateInterval)
}

// Stop stops the heartbeat goroutine
func (w *Writer) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	logging.App.Info("Stopped status heartbeat")
}

// writeRunningFile writes the current runtime status to the running file
func (w *Writer) writeRunningFile() error {
	now := time.Now()

	users, posts := 0, 0
	if w.stats != nil {
		users = w.stats.UserCount()
		posts = w.stats.PostCount()
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	content := fmt.Sprintf(`timestamp_unix: %d
uptime_seconds: %d
users: %d
posts: %d
memory_alloc_mb: %d
goroutines: %d
`,
		now.Unix(),
		int64(now.Sub(w.startTime).Seconds()),
		users,
		posts,
		memStats.Alloc/1024/1024,
		runtime.NumGoroutine(),
	)

	path := filepath.Join(w.dir, "running")
	if err := w.atomicWrite(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write running: %w", err)
	}

	logging.App.Debug("Updated running file", "users", users, "posts", posts)
	return nil
}

// atomicWrite writes content to a temp file and renames it into place so
// readers never see a partial write
func (w *Writer) atomicWrite(path string, content []byte) error {
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, content, 0644); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}
