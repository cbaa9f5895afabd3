package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/worksentry/worksentry/indexstore"
	"github.com/worksentry/worksentry/query"
	"go.uber.org/zap"
)

func openTestService(t *testing.T) *Service {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	svc, err := Open(zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestOpenCreatesDefaultConfigAndIndex(t *testing.T) {
	svc := openTestService(t)
	cfg := svc.GetConfig()
	if len(cfg.Roots) != 0 {
		t.Errorf("Roots = %v, want empty on first Open", cfg.Roots)
	}
	if cfg.MaxResults == 0 {
		t.Errorf("MaxResults = 0, want a default")
	}
}

func TestAddFolderBulkIndexesAndSearchFindsFile(t *testing.T) {
	svc := openTestService(t)
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.md"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := svc.AddFolder(root); err != nil {
		t.Fatalf("AddFolder: %v", err)
	}

	results, err := svc.Search("notes", 10, query.Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	found := false
	for _, r := range results {
		if r.Name == "notes.md" {
			found = true
		}
	}
	if !found {
		t.Errorf("Search did not find notes.md after AddFolder: %+v", results)
	}

	folders := svc.GetFolders()
	if len(folders) != 1 {
		t.Errorf("GetFolders = %v, want 1 entry", folders)
	}
}

func TestAddFolderRejectsNonDirectory(t *testing.T) {
	svc := openTestService(t)
	file := filepath.Join(t.TempDir(), "not_a_dir.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := svc.AddFolder(file); err == nil {
		t.Errorf("AddFolder(%s) succeeded, want an error for a non-directory", file)
	}
}

func TestRemoveFolderPurgesRecordsAndUnregisters(t *testing.T) {
	svc := openTestService(t)
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.md"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := svc.AddFolder(root); err != nil {
		t.Fatalf("AddFolder: %v", err)
	}

	if err := svc.RemoveFolder(root); err != nil {
		t.Fatalf("RemoveFolder: %v", err)
	}

	if len(svc.GetFolders()) != 0 {
		t.Errorf("GetFolders = %v, want empty after RemoveFolder", svc.GetFolders())
	}
	results, err := svc.Search("notes", 10, query.Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %+v, want none after RemoveFolder purged the root", results)
	}
}

func TestReindexReportsStats(t *testing.T) {
	svc := openTestService(t)
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.md"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("content "+name), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	cfg := svc.GetConfig()
	if err := svc.SaveConfig(cfg.WithRoot(root)); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	stats, err := svc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if stats.Processed != 2 || stats.Written != 2 {
		t.Errorf("stats = %+v, want Processed=2 Written=2", stats)
	}
}

func TestGetIndexStatsReflectsAddedFolder(t *testing.T) {
	svc := openTestService(t)
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := svc.AddFolder(root); err != nil {
		t.Fatalf("AddFolder: %v", err)
	}

	stats, err := svc.GetIndexStats()
	if err != nil {
		t.Fatalf("GetIndexStats: %v", err)
	}
	if stats.FileCount != 1 {
		t.Errorf("FileCount = %d, want 1", stats.FileCount)
	}
}

func TestSetBookmarksEnabledFalsePurgesBookmarkRecords(t *testing.T) {
	svc := openTestService(t)
	if _, err := svc.store.Upsert(indexstore.UpsertInput{
		Path: "https://example.com", Name: "Example", MTime: time.Now().UnixMilli(),
		RecordType: indexstore.RecordBookmark, Source: "chrome",
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := svc.SetBookmarksEnabled(false); err != nil {
		t.Fatalf("SetBookmarksEnabled: %v", err)
	}

	stats, err := svc.GetIndexStats()
	if err != nil {
		t.Fatalf("GetIndexStats: %v", err)
	}
	if stats.BookmarkCount != 0 {
		t.Errorf("BookmarkCount = %d, want 0 after disabling bookmarks", stats.BookmarkCount)
	}
	if svc.GetConfig().EnableBookmarks {
		t.Errorf("EnableBookmarks still true after SetBookmarksEnabled(false)")
	}
}

func TestGetBrowserStatusReturnsSlice(t *testing.T) {
	svc := openTestService(t)
	// Never fails; on a CI box with no browsers installed this is empty.
	_ = svc.GetBrowserStatus()
}
