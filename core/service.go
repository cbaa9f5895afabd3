// Package core implements the facade the UI (or the CLI in
// cmd/worksentry) drives. It wires configuration, the index store, the
// indexer, the watcher, and browser extraction together and owns the
// shared zap.Logger: the one object that owns every handle, lock, and
// piece of state the application needs.
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/worksentry/worksentry/browser"
	"github.com/worksentry/worksentry/config"
	"github.com/worksentry/worksentry/errs"
	"github.com/worksentry/worksentry/indexer"
	"github.com/worksentry/worksentry/indexstore"
	"github.com/worksentry/worksentry/query"
	"github.com/worksentry/worksentry/watcher"
	"go.uber.org/zap"
)

const indexDirName = "index"
const indexLogName = "worksentry.log"

// Service is the process-wide facade: one config manager, one index
// store, one indexer, one watcher, one browser extractor. Configuration
// and the index writer are process singletons with explicit
// init/teardown via Open/Close.
type Service struct {
	log *zap.Logger

	cfgMgr  *config.Manager
	store   *indexstore.Store
	idx     *indexer.Indexer
	watch   *watcher.Watcher
	browser *browser.Extractor

	mu          sync.Mutex
	reindexStop context.CancelFunc // cancels any in-flight Reindex pass
}

// Open resolves the platform config directory, opens (or recovers) the
// configuration document, opens the index store, and brings the
// watcher up to date with every currently configured root. log may be
// nil.
func Open(log *zap.Logger) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}

	cfgPath, err := config.Path()
	if err != nil {
		return nil, fmt.Errorf("core: resolve config path: %w", err)
	}
	cfgMgr, err := config.Open(cfgPath, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrConfig, err)
	}

	indexDir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("core: resolve index dir: %w", err)
	}
	store, err := indexstore.Open(filepath.Join(indexDir, indexDirName), indexLogName, indexstore.Config{}, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIndexUnavailable, err)
	}

	idx := indexer.New(store, log)
	w, err := watcher.New(idx, log)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("%w: %v", errs.ErrIndexUnavailable, err)
	}

	svc := &Service{
		log:     log.Named("core"),
		cfgMgr:  cfgMgr,
		store:   store,
		idx:     idx,
		watch:   w,
		browser: browser.New(store, log),
	}

	cfg := cfgMgr.Get()
	for _, root := range cfg.Roots {
		if err := w.AddRoot(root); err != nil {
			svc.log.Warn("failed to resume watching a configured root", zap.String("root", root), zap.Error(err))
		}
	}
	if cfg.EnableBookmarks || cfg.EnableHistory {
		svc.extractBrowserData(cfg)
	}

	return svc, nil
}

// Close stops the watcher, then flushes and releases the index store.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.reindexStop != nil {
		s.reindexStop()
	}
	s.mu.Unlock()

	if err := s.watch.Close(); err != nil {
		s.log.Warn("watcher close failed", zap.Error(err))
	}
	return s.store.Close()
}

// Search runs a query against the index. opts.Extensions are ANDed with
// any ext:/type: filter embedded in raw.
func (s *Service) Search(raw string, limit int, opts query.Options) ([]query.Result, error) {
	results, err := query.Search(s.store, raw, limit, opts, s.cfgMgr.Get().Roots)
	if err != nil {
		s.log.Debug("query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", errs.ErrQueryInvalid, err)
	}
	return results, nil
}

// AddFolder validates path is a directory, registers it, and triggers a
// bulk index and watch.
func (s *Service) AddFolder(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", errs.ErrSourceRead, path)
	}

	cfg := s.cfgMgr.Get()
	if _, err := s.cfgMgr.Save(cfg.WithRoot(path)); err != nil {
		return fmt.Errorf("core: save config: %w", err)
	}

	return s.watch.AddRoot(path)
}

// RemoveFolder unwatches path and purges every record rooted at it.
func (s *Service) RemoveFolder(path string) error {
	cfg := s.cfgMgr.Get()
	if _, err := s.cfgMgr.Save(cfg.WithoutRoot(path)); err != nil {
		return fmt.Errorf("core: save config: %w", err)
	}
	return s.watch.RemoveRoot(path)
}

// GetFolders returns every currently registered root directory.
func (s *Service) GetFolders() []string {
	return s.cfgMgr.Get().Roots
}

// Reindex runs a full pass over every configured root, cancelling any
// prior in-flight pass first.
func (s *Service) Reindex(ctx context.Context) (indexer.BulkStats, error) {
	s.mu.Lock()
	if s.reindexStop != nil {
		s.reindexStop()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.reindexStop = cancel
	s.mu.Unlock()
	defer cancel()

	var total indexer.BulkStats
	for _, root := range s.cfgMgr.Get().Roots {
		st, err := s.idx.BulkIndex(runCtx, root)
		total.Processed += st.Processed
		total.Written += st.Written
		total.Skipped += st.Skipped
		total.Orphaned += st.Orphaned
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// GetIndexStats reports the index's current size and record counts.
func (s *Service) GetIndexStats() (indexstore.Stats, error) {
	return s.store.Stats()
}

// GetBrowserStatus reports which supported browsers were detected on
// this machine.
func (s *Service) GetBrowserStatus() []string {
	return browser.Status()
}

// SetBookmarksEnabled toggles bookmark indexing: false purges every
// BOOKMARK record; true triggers an immediate extraction.
func (s *Service) SetBookmarksEnabled(enabled bool) error {
	cfg := s.cfgMgr.Get()
	cfg.EnableBookmarks = enabled
	if _, err := s.cfgMgr.Save(cfg); err != nil {
		return fmt.Errorf("core: save config: %w", err)
	}

	if !enabled {
		_, err := s.store.DeleteByRecordType(indexstore.RecordBookmark)
		return err
	}
	s.extractBrowserData(cfg)
	return nil
}

// SetHistoryEnabled toggles browser history indexing the same way
// SetBookmarksEnabled toggles bookmarks.
func (s *Service) SetHistoryEnabled(enabled bool) error {
	cfg := s.cfgMgr.Get()
	cfg.EnableHistory = enabled
	if _, err := s.cfgMgr.Save(cfg); err != nil {
		return fmt.Errorf("core: save config: %w", err)
	}

	if !enabled {
		_, err := s.store.DeleteByRecordType(indexstore.RecordHistory)
		return err
	}
	s.extractBrowserData(cfg)
	return nil
}

// GetConfig returns the current configuration document.
func (s *Service) GetConfig() config.Config {
	return s.cfgMgr.Get()
}

// SaveConfig persists cfg as the new configuration document.
func (s *Service) SaveConfig(cfg config.Config) error {
	_, err := s.cfgMgr.Save(cfg)
	return err
}

// extractBrowserData runs bookmark/history extraction for whichever
// sources cfg currently enables, across every detected profile.
func (s *Service) extractBrowserData(cfg config.Config) {
	profiles := browser.DetectProfiles()
	for _, p := range profiles {
		if cfg.EnableBookmarks {
			if err := s.browser.ExtractBookmarks(p.Browser, p.Path); err != nil {
				s.log.Debug("bookmarks extraction failed", zap.String("browser", p.Browser), zap.Error(err))
			}
		}
		if cfg.EnableHistory {
			if err := s.browser.ExtractHistory(p.Browser, p.Path); err != nil {
				s.log.Debug("history extraction failed", zap.String("browser", p.Browser), zap.Error(err))
			}
		}
	}
}
