// History extraction: the live History file is typically locked while
// the browser runs, so it is copied to a temp file first and read
// read-only from there, mirroring indexstore's own temp-then-replace
// staging pattern but applied to a read instead of a write.
package browser

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "modernc.org/sqlite"
)

// MaxHistoryRows caps the emitted rows per browser.
const MaxHistoryRows = 1000

// ReadHistory copies <profilePath>/History to a temp file, opens it
// read-only, and returns up to MaxHistoryRows entries ordered by
// visit_count descending, ties broken by last_visit_time descending for
// a deterministic result set.
func ReadHistory(profilePath string) ([]Entry, error) {
	tmpPath, err := copyToTemp(profilePath + string(os.PathSeparator) + "History")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	db, err := sql.Open("sqlite", tmpPath+"?mode=ro&_pragma=query_only(1)")
	if err != nil {
		return nil, fmt.Errorf("browser: open history copy: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(
		`SELECT url, title, visit_count, last_visit_time FROM urls
		 ORDER BY visit_count DESC, last_visit_time DESC LIMIT ?`,
		MaxHistoryRows,
	)
	if err != nil {
		return nil, fmt.Errorf("browser: query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var url, title string
		var visitCount int
		var lastVisitTime int64
		if err := rows.Scan(&url, &title, &visitCount, &lastVisitTime); err != nil {
			return nil, fmt.Errorf("browser: scan history row: %w", err)
		}
		entries = append(entries, Entry{
			URL:   url,
			Title: title,
			MTime: webkitMicrosToUnixSeconds(lastVisitTime),
		})
	}
	return entries, rows.Err()
}

func copyToTemp(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "worksentry-history-*.sqlite")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
