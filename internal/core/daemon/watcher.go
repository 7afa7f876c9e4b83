// Package daemon keeps the SQLite catalog in step with a JSON lead file by
// re-importing it whenever it changes on disk. Sessions already running are
// unaffected; the next session reads the new catalog.
package daemon

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/neilberkman/leaddesk/internal/core/importer"
)

// DefaultSettle is how long to wait after a write before reading the file
const DefaultSettle = 100 * time.Millisecond

// WatchStats tracks watcher activity
type WatchStats struct {
	StartTime  time.Time
	Imports    int
	LastImport time.Time
	LastCount  int
	Errors     int
}

// CatalogWatcher re-imports one JSON file into the catalog on change
type CatalogWatcher struct {
	importer *importer.Importer
	watcher  *fsnotify.Watcher
	path     string
	settle   time.Duration

	mu    sync.Mutex
	stats WatchStats
}

// NewCatalogWatcher watches path, which must exist
func NewCatalogWatcher(imp *importer.Importer, path string) (*CatalogWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("lead file does not exist: %s", abs)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &CatalogWatcher{
		importer: imp,
		watcher:  watcher,
		path:     abs,
		settle:   DefaultSettle,
		stats:    WatchStats{StartTime: time.Now()},
	}, nil
}

// Start imports once, then re-imports on every change until ctx is done
func (w *CatalogWatcher) Start(ctx context.Context) error {
	defer w.watcher.Close()

	log.Printf("Catalog watcher starting...")
	log.Printf("  Watching: %s", w.path)

	// Editors often replace the file by rename, so watch its directory
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	log.Printf("Performing initial import...")
	w.reimport()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Watcher shutting down gracefully...")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}

			if w.shouldProcessEvent(event) {
				log.Printf("File event: %s %s", event.Op, event.Name)
				// Give the writer a moment to finish
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(w.settle):
				}
				w.drain()
				w.reimport()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			log.Printf("Watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		}
	}
}

// Stats returns a snapshot of the counters
func (w *CatalogWatcher) Stats() WatchStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// shouldProcessEvent keeps writes, creates and renames onto the watched file
func (w *CatalogWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// drain drops events queued while settling; one import covers them all
func (w *CatalogWatcher) drain() {
	for {
		select {
		case <-w.watcher.Events:
		default:
			return
		}
	}
}

func (w *CatalogWatcher) reimport() {
	n, err := w.importer.ImportFile(w.path, nil)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		// The previous catalog stays in place
		log.Printf("Import of %s failed: %v", w.path, err)
		w.stats.Errors++
		return
	}
	w.stats.Imports++
	w.stats.LastImport = time.Now()
	w.stats.LastCount = n
	log.Printf("✓ Imported %d leads from %s", n, filepath.Base(w.path))
}
