// Package indexer implements directory enumeration, per-path idempotent
// upsert with mtime-based change detection, and orphan sweeps, on top
// of the durable store in indexstore.
package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/worksentry/worksentry/indexstore"
	"go.uber.org/zap"
)

// Indexer drives bulk and single-file indexing against a Store.
type Indexer struct {
	store *indexstore.Store
	log   *zap.Logger
	bloom *contentBloom
}

// New returns an Indexer backed by store. log may be nil.
func New(store *indexstore.Store, log *zap.Logger) *Indexer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Indexer{store: store, log: log.Named("indexer"), bloom: newContentBloom()}
}

// BulkStats reports what a bulk pass did. A repeat pass over an
// unchanged tree should report Processed equal to the file count and
// Written/Orphaned both zero.
type BulkStats struct {
	Processed int
	Written   int
	Skipped   int
	Orphaned  int
}

// BulkIndex walks root recursively, upserting every candidate file and
// then sweeping any previously indexed path under root that was not
// revisited. Cooperatively cancellable: ctx is checked once per walk
// entry, and cancellation leaves already-committed work in place while
// discarding nothing already upserted (those upserts are already
// durable; only the final commit and orphan sweep are skipped).
func (idx *Indexer) BulkIndex(ctx context.Context, root string) (BulkStats, error) {
	var stats BulkStats

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return stats, fmt.Errorf("indexer: abs root: %w", err)
	}

	visited := make(map[string]struct{})

	walkErr := filepath.WalkDir(rootAbs, func(path string, d os.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			idx.log.Debug("walk error, skipping entry", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if path != rootAbs && hasDotSegment(rootAbs, path) {
				return filepath.SkipDir
			}
			return nil
		}

		resolved, inRoot, err := canonicalize(rootAbs, path)
		if err != nil {
			idx.log.Debug("cannot resolve path, skipping", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !inRoot {
			idx.log.Debug("symlink escapes root, skipping", zap.String("path", path))
			return nil
		}
		if hasDotSegment(rootAbs, path) {
			return nil
		}

		ext := extensionOf(resolved)
		if !Supported(ext) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			idx.log.Debug("stat failed, skipping", zap.String("path", resolved), zap.Error(err))
			return nil
		}
		if info.Size() > MaxFileSize {
			idx.log.Debug("file exceeds size cap, skipping", zap.String("path", resolved), zap.Int64("size", info.Size()))
			return nil
		}

		visited[resolved] = struct{}{}
		stats.Processed++

		written, err := idx.indexOne(resolved, info, ext, "fs")
		if err != nil {
			idx.log.Debug("index failed, skipping document", zap.String("path", resolved), zap.Error(err))
			return nil
		}
		if written {
			stats.Written++
		} else {
			stats.Skipped++
		}
		return nil
	})
	if walkErr != nil {
		return stats, fmt.Errorf("indexer: bulk index %s: %w", rootAbs, walkErr)
	}

	existing, err := idx.store.PathsWithPrefix(rootAbs, os.PathSeparator)
	if err != nil {
		return stats, fmt.Errorf("indexer: orphan sweep: %w", err)
	}
	for _, p := range existing {
		if _, ok := visited[p]; ok {
			continue
		}
		rec, err := idx.store.Get(p)
		if err != nil || rec.RecordType != int(indexstore.RecordFile) {
			continue
		}
		if err := idx.store.DeleteByPath(p); err != nil {
			idx.log.Warn("orphan delete failed", zap.String("path", p), zap.Error(err))
			continue
		}
		stats.Orphaned++
	}

	if err := idx.store.Commit(); err != nil {
		return stats, fmt.Errorf("indexer: commit: %w", err)
	}
	return stats, nil
}

// IndexFile indexes a single path without enumeration or an orphan
// sweep, committing immediately.
func (idx *Indexer) IndexFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("indexer: abs path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("indexer: stat: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("indexer: %s is a directory", abs)
	}

	ext := extensionOf(abs)
	if !Supported(ext) {
		return nil
	}
	if info.Size() > MaxFileSize {
		return nil
	}

	if _, err := idx.indexOne(abs, info, ext, "fs"); err != nil {
		return err
	}
	return idx.store.Commit()
}

// DeleteFile removes path from the index, committing immediately.
func (idx *Indexer) DeleteFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("indexer: abs path: %w", err)
	}
	if err := idx.store.DeleteByPath(abs); err != nil {
		return fmt.Errorf("indexer: delete: %w", err)
	}
	return idx.store.Commit()
}

// PurgeRoot deletes every FILE record rooted at root and commits once.
// Used when a root is unregistered from configuration.
func (idx *Indexer) PurgeRoot(root string) (int, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return 0, fmt.Errorf("indexer: abs root: %w", err)
	}
	n, err := idx.store.DeleteByPathPrefix(abs, os.PathSeparator)
	if err != nil {
		return 0, fmt.Errorf("indexer: purge root: %w", err)
	}
	if err := idx.store.Commit(); err != nil {
		return n, fmt.Errorf("indexer: commit: %w", err)
	}
	return n, nil
}

// indexOne reads, fingerprints, and upserts one file. Returns whether
// the store actually wrote a new record, as opposed to skipping an
// unchanged one.
func (idx *Indexer) indexOne(path string, info os.FileInfo, ext, source string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("indexer: read: %w", err)
	}
	content := strings.ToValidUTF8(string(raw), "�")

	hash := indexstore.ContentHash(raw)
	if idx.bloom.Contains(hash) {
		idx.log.Debug("content hash seen under another path", zap.String("path", path))
	}
	idx.bloom.Add(hash)

	written, err := idx.store.Upsert(indexstore.UpsertInput{
		Path:       path,
		Name:       filepath.Base(path),
		Content:    content,
		Extension:  ext,
		Size:       info.Size(),
		MTime:      info.ModTime().Unix(),
		RecordType: indexstore.RecordFile,
		Source:     source,
	})
	if err != nil {
		return false, fmt.Errorf("indexer: upsert: %w", err)
	}
	return written, nil
}
