// Bookmarks JSON walk and WebKit timestamp conversion tests.
package browser

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleBookmarks = `{
	"roots": {
		"bookmark_bar": {
			"type": "folder",
			"name": "Bookmarks bar",
			"children": [
				{"type": "url", "name": "Example", "url": "https://example.com", "date_added": "13285878000000000"},
				{
					"type": "folder",
					"name": "Work",
					"children": [
						{"type": "url", "name": "Docs", "url": "https://docs.example.com", "date_added": ""}
					]
				}
			]
		},
		"other": {"type": "folder", "name": "Other", "children": []}
	}
}`

func TestReadBookmarksWalksNestedFolders(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Bookmarks"), []byte(sampleBookmarks), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := ReadBookmarks(dir)
	if err != nil {
		t.Fatalf("ReadBookmarks: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	byURL := make(map[string]Entry)
	for _, e := range entries {
		byURL[e.URL] = e
	}

	example, ok := byURL["https://example.com"]
	if !ok {
		t.Fatalf("missing entry for https://example.com")
	}
	if example.Title != "Example" {
		t.Errorf("Title = %q, want %q", example.Title, "Example")
	}
	if example.MTime <= 0 {
		t.Errorf("MTime = %d, want a positive unix timestamp", example.MTime)
	}

	docs, ok := byURL["https://docs.example.com"]
	if !ok {
		t.Fatalf("missing nested entry for https://docs.example.com")
	}
	if docs.MTime != -1 {
		t.Errorf("MTime for absent date_added = %d, want -1 sentinel", docs.MTime)
	}
}

func TestWebkitTimestampConversion(t *testing.T) {
	// 13285878000000000 microseconds since 1601-01-01 is unix 1641404400,
	// early January 2022.
	got := webkitMicrosToUnixSeconds(13285878000000000)
	if got <= 1_600_000_000 || got >= 1_700_000_000 {
		t.Errorf("webkitMicrosToUnixSeconds = %d, want a unix timestamp somewhere in 2021-2022", got)
	}
}

func TestWebkitTimestampZeroIsSentinel(t *testing.T) {
	if got := webkitMicrosToUnixSeconds(0); got != -1 {
		t.Errorf("webkitMicrosToUnixSeconds(0) = %d, want -1", got)
	}
}
