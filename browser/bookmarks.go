// Bookmarks extraction: walks the JSON document's folder tree and emits
// one Entry per "url" leaf.
package browser

import (
	"os"
	"strconv"

	json "github.com/goccy/go-json"
)

// Entry is one extracted bookmark or history row, prior to becoming an
// indexstore.UpsertInput.
type Entry struct {
	URL   string
	Title string
	MTime int64 // unix seconds; -1 when the source has no usable timestamp
}

// webkitEpochOffsetSeconds converts a Chromium/WebKit timestamp (in
// microseconds since 1601-01-01 00:00:00 UTC) into a unix timestamp.
// 11644473600 is the number of seconds between the WebKit epoch and the
// unix epoch (1970-01-01).
const webkitEpochOffsetSeconds = 11644473600

func webkitMicrosToUnixSeconds(microseconds int64) int64 {
	if microseconds == 0 {
		return -1
	}
	return microseconds/1_000_000 - webkitEpochOffsetSeconds
}

type bookmarkNode struct {
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	URL        string         `json:"url"`
	DateAdded  string         `json:"date_added"`
	Children   []bookmarkNode `json:"children"`
}

type bookmarksDocument struct {
	Roots map[string]bookmarkNode `json:"roots"`
}

// ReadBookmarks parses <profilePath>/Bookmarks and returns one Entry per
// "url" leaf found anywhere in the folder tree. mtime is the sentinel
// -1 when date_added is absent or unparseable, never 0, so a missing
// timestamp can't be mistaken for the unix epoch.
func ReadBookmarks(profilePath string) ([]Entry, error) {
	data, err := os.ReadFile(profilePath + string(os.PathSeparator) + "Bookmarks")
	if err != nil {
		return nil, err
	}

	var doc bookmarksDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var entries []Entry
	for _, root := range doc.Roots {
		walkBookmarkNode(root, &entries)
	}
	return entries, nil
}

func walkBookmarkNode(n bookmarkNode, out *[]Entry) {
	if n.Type == "url" && n.URL != "" {
		*out = append(*out, Entry{
			URL:   n.URL,
			Title: n.Name,
			MTime: parseWebkitTimestamp(n.DateAdded),
		})
		return
	}
	for _, child := range n.Children {
		walkBookmarkNode(child, out)
	}
}

func parseWebkitTimestamp(s string) int64 {
	if s == "" {
		return -1
	}
	microseconds, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return -1
	}
	return webkitMicrosToUnixSeconds(microseconds)
}
