// Extractor drives idempotent extraction passes against the index
// store: delete the prior (source, record_type) set, insert the fresh
// one, commit once.
package browser

import (
	"fmt"

	"github.com/worksentry/worksentry/indexstore"
	"go.uber.org/zap"
)

// Extractor wires bookmark/history extraction into a Store.
type Extractor struct {
	store *indexstore.Store
	log   *zap.Logger
}

// New returns an Extractor backed by store. log may be nil.
func New(store *indexstore.Store, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{store: store, log: log.Named("browser")}
}

// ExtractBookmarks reads profile's Bookmarks file and replaces every
// BOOKMARK record previously extracted from source with the fresh set,
// in one commit.
func (e *Extractor) ExtractBookmarks(source, profilePath string) error {
	entries, err := ReadBookmarks(profilePath)
	if err != nil {
		return fmt.Errorf("browser: read bookmarks: %w", err)
	}
	return e.replace(source, indexstore.RecordBookmark, entries)
}

// ExtractHistory reads profile's History file (via a temp copy) and
// replaces every HISTORY record previously extracted from source with
// the fresh set, in one commit.
func (e *Extractor) ExtractHistory(source, profilePath string) error {
	entries, err := ReadHistory(profilePath)
	if err != nil {
		return fmt.Errorf("browser: read history: %w", err)
	}
	return e.replace(source, indexstore.RecordHistory, entries)
}

func (e *Extractor) replace(source string, rt indexstore.RecordType, entries []Entry) error {
	if _, err := e.store.DeleteBySourceAndType(source, rt); err != nil {
		return fmt.Errorf("browser: purge prior %s/%s: %w", source, rt, err)
	}

	for _, entry := range entries {
		if _, err := e.store.Upsert(indexstore.UpsertInput{
			Path:       entry.URL,
			Name:       entry.Title,
			Content:    entry.Title,
			Extension:  "",
			Size:       0,
			MTime:      entry.MTime,
			RecordType: rt,
			Source:     source,
		}); err != nil {
			e.log.Debug("skipping unindexable entry", zap.String("url", entry.URL), zap.Error(err))
			continue
		}
	}

	return e.store.Commit()
}

// ExtractAll runs both bookmark and history extraction for every
// currently detected profile. Per-browser failures are logged and
// skipped rather than aborting the whole pass.
func (e *Extractor) ExtractAll(profiles []Profile) {
	for _, p := range profiles {
		if err := e.ExtractBookmarks(p.Browser, p.Path); err != nil {
			e.log.Debug("bookmarks extraction failed", zap.String("browser", p.Browser), zap.Error(err))
		}
		if err := e.ExtractHistory(p.Browser, p.Path); err != nil {
			e.log.Debug("history extraction failed", zap.String("browser", p.Browser), zap.Error(err))
		}
	}
}
