// Supported file extensions, grouped so the query package's scoring
// multiplier table can reuse the same category names.
package indexer

// Category names a supported-extension group.
type Category string

const (
	CategoryText Category = "text"
	CategoryData Category = "data"
	CategoryCode Category = "code"
)

var supportedExtensions = map[string]Category{
	"txt": CategoryText, "md": CategoryText, "log": CategoryText,

	"json": CategoryData, "yaml": CategoryData, "yml": CategoryData,
	"toml": CategoryData, "xml": CategoryData, "csv": CategoryData, "ini": CategoryData, "conf": CategoryData,

	"rs": CategoryCode, "py": CategoryCode, "js": CategoryCode,
	"ts": CategoryCode, "tsx": CategoryCode, "html": CategoryCode, "css": CategoryCode,
}

// Supported reports whether ext (lowercased, without a leading dot) is in
// the indexer's supported-extension set.
func Supported(ext string) bool {
	_, ok := supportedExtensions[ext]
	return ok
}
