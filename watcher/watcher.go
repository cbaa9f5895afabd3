// Package watcher implements recursive root watching, event debouncing,
// and dispatch to the indexer. fsnotify only watches the
// directories it is explicitly told to, so a root is subscribed by
// walking it once up front and adding every subdirectory found; new
// subdirectories created later are picked up from the CREATE event
// itself (see handleEvent).
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/worksentry/worksentry/indexer"
	"go.uber.org/zap"
)

// DebounceWindow is the per-path coalescing window.
const DebounceWindow = 400 * time.Millisecond

// Watcher subscribes to the union of configured roots and routes
// debounced, coalesced events to the indexer. Construction does not
// start watching anything; call AddRoot for each configured root.
type Watcher struct {
	fsw *fsnotify.Watcher
	idx *indexer.Indexer
	log *zap.Logger

	mu    sync.Mutex
	roots map[string]struct{} // top-level roots registered via AddRoot
	dirs  map[string]struct{} // every directory currently subscribed (roots + their subdirectories)

	deb  *debouncer
	stop chan struct{}
	done chan struct{}
}

// New creates a Watcher backed by idx. log may be nil. The returned
// Watcher must be closed with Close when no longer needed.
func New(idx *indexer.Indexer, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:   fsw,
		idx:   idx,
		log:   log.Named("watcher"),
		roots: make(map[string]struct{}),
		dirs:  make(map[string]struct{}),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	w.deb = newDebouncer(DebounceWindow, w.dispatch)
	go w.run()
	return w, nil
}

// AddRoot subscribes to root recursively and triggers a bulk index of
// it. The bulk index runs synchronously so the caller observes its
// outcome; callers that want this off the calling goroutine should run
// AddRoot in their own goroutine.
func (w *Watcher) AddRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.roots[abs] = struct{}{}
	w.mu.Unlock()

	if err := w.watchRecursive(abs); err != nil {
		return err
	}

	_, err = w.idx.BulkIndex(context.Background(), abs)
	return err
}

// RemoveRoot unsubscribes root and purges every FILE record rooted at
// it.
func (w *Watcher) RemoveRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	w.mu.Lock()
	delete(w.roots, abs)
	for d := range w.dirs {
		if d == abs || len(d) > len(abs) && d[:len(abs)+1] == abs+string(os.PathSeparator) {
			w.fsw.Remove(d)
			delete(w.dirs, d)
		}
	}
	w.mu.Unlock()

	_, err = w.idx.PurgeRoot(abs)
	return err
}

// Close stops the event loop and the debouncer, then closes the
// underlying fsnotify watcher.
func (w *Watcher) Close() error {
	close(w.stop)
	<-w.done
	w.deb.Close()
	return w.fsw.Close()
}

// watchRecursive adds fsw watches for dir and every subdirectory.
func (w *Watcher) watchRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.log.Debug("walk error while registering watch", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		w.addWatch(path)
		return nil
	})
}

func (w *Watcher) addWatch(dir string) {
	w.mu.Lock()
	if _, ok := w.dirs[dir]; ok {
		w.mu.Unlock()
		return
	}
	w.dirs[dir] = struct{}{}
	w.mu.Unlock()

	if err := w.fsw.Add(dir); err != nil {
		w.log.Debug("failed to watch directory", zap.String("path", dir), zap.Error(err))
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Debug("watcher reported an error", zap.Error(err))
		}
	}
}

// handleEvent classifies one OS event and feeds the debouncer. RENAME
// is decomposed into REMOVE (old path, handled here) and CREATE (new
// path, delivered by fsnotify as its own event on the platforms this
// targets).
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	switch {
	case ev.Op&fsnotify.Create == fsnotify.Create:
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.watchRecursive(ev.Name); err != nil {
				w.log.Debug("failed to watch new directory", zap.String("path", ev.Name), zap.Error(err))
			}
			return
		}
		w.deb.mark(ev.Name, actionUpsert)
	case ev.Op&fsnotify.Write == fsnotify.Write:
		w.deb.mark(ev.Name, actionUpsert)
	case ev.Op&fsnotify.Remove == fsnotify.Remove, ev.Op&fsnotify.Rename == fsnotify.Rename:
		w.mu.Lock()
		delete(w.dirs, ev.Name)
		w.mu.Unlock()
		w.deb.mark(ev.Name, actionRemove)
	}
}

// dispatch runs the composite action for one path after its debounce
// window elapses. Failures are logged but never propagated; the
// watcher must remain live.
func (w *Watcher) dispatch(path string, act action) {
	switch act {
	case actionRemove:
		if err := w.idx.DeleteFile(path); err != nil {
			w.log.Debug("dispatch delete failed", zap.String("path", path), zap.Error(err))
		}
	case actionUpsert:
		if err := w.idx.IndexFile(path); err != nil {
			w.log.Debug("dispatch index failed", zap.String("path", path), zap.Error(err))
		}
	}
}
