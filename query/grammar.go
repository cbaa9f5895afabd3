// Query grammar parsing: a raw query string is split into filter
// prefixes and a free-text remainder. An unrecognized prefix is left in
// the free text untouched rather than rejected.
package query

import "strings"

// typeExtensions expands a type: tag to its fixed extension list.
var typeExtensions = map[string][]string{
	"doc":     {"pdf", "docx", "doc", "odt", "rtf", "txt", "md", "epub", "mobi"},
	"app":     {"exe", "lnk", "app", "bat", "cmd", "sh", "appimage"},
	"image":   {"png", "jpg", "jpeg", "gif", "bmp", "svg", "webp"},
	"video":   {"mp4", "mkv", "avi", "mov", "webm"},
	"audio":   {"mp3", "wav", "flac", "ogg", "m4a"},
	"code":    {"rs", "py", "js", "ts", "tsx", "html", "css", "go", "c", "cpp", "java", "json", "yaml", "yml", "toml", "xml"},
	"archive": {"zip", "tar", "gz", "rar", "7z"},
	"ppt":     {"ppt", "pptx", "odp"},
	"excel":   {"xls", "xlsx", "ods", "csv"},
}

// inTags expands an in: tag to the record-type set it restricts to.
var inTags = map[string][]RecordKind{
	"files":     {KindFile},
	"bookmarks": {KindBookmark},
	"history":   {KindHistory},
	"web":       {KindBookmark, KindHistory},
}

// RecordKind mirrors indexstore.RecordType without importing it, so the
// grammar stays independent of the store's internal representation.
type RecordKind int

const (
	KindFile RecordKind = iota + 1
	KindBookmark
	KindHistory
)

// Parsed is the result of parsing a raw query string.
type Parsed struct {
	FreeText    string
	Extensions  []string // empty means "no extension filter"
	RecordKinds []RecordKind
}

// Parse splits raw into filters and a free-text remainder. A bare
// leading ".ext" token is shorthand for ext:<ext> and contributes no
// free text itself — e.g. a query of exactly ".pdf" means "every pdf",
// not "files whose name starts with a dot". Later words are parsed as
// usual, so ".pdf report" has the free text "report".
func Parse(raw string) Parsed {
	fields := strings.Fields(raw)
	var p Parsed
	var freeWords []string

	for i, f := range fields {
		lower := strings.ToLower(f)
		switch {
		case strings.HasPrefix(lower, "ext:"):
			p.Extensions = append(p.Extensions, splitCSV(lower[len("ext:"):])...)
		case strings.HasPrefix(lower, "type:"):
			for _, tag := range splitCSV(lower[len("type:"):]) {
				p.Extensions = append(p.Extensions, typeExtensions[tag]...)
			}
		case strings.HasPrefix(lower, "in:"):
			for _, tag := range splitCSV(lower[len("in:"):]) {
				p.RecordKinds = append(p.RecordKinds, inTags[tag]...)
			}
		case i == 0 && len(f) > 1 && f[0] == '.' && isExtensionToken(f[1:]):
			p.Extensions = append(p.Extensions, strings.ToLower(f[1:]))
		default:
			freeWords = append(freeWords, f)
		}
	}

	p.FreeText = strings.Join(freeWords, " ")
	return p
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isExtensionToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
