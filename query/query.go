// Package query implements query grammar parsing, candidate retrieval
// against the indexstore postings, tiered relevance scoring, and a
// deterministic tie-break sort (score, then mtime, then path) using the
// standard slices/cmp combination.
package query

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/worksentry/worksentry/indexstore"
	"github.com/worksentry/worksentry/tokenize"
)

// candidateFanout is the multiplier the retrieval stage over-fetches by,
// so scoring and filtering have enough candidates to trim down to limit
// without a second round-trip to the store.
const candidateFanout = 5

// Options carries the caller-supplied retrieval flags.
type Options struct {
	Prefix     bool
	Fuzzy      bool
	Extensions []string // ANDed with any ext:/type: filter parsed from the query string
}

// Result is one scored, ready-to-display match.
type Result struct {
	Path       string
	Name       string
	Extension  string
	Size       int64
	MTime      int64
	RecordType indexstore.RecordType
	Source     string
	Score      float64
}

// Search parses raw, retrieves candidates from store, scores them, and
// returns at most limit results in deterministic order. An empty (or
// whitespace-only) raw query never errors, returning nil rather than
// every record.
func Search(store *indexstore.Store, raw string, limit int, opts Options, roots []string) ([]Result, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	parsed := Parse(raw)
	extFilter := mergeExtensions(parsed.Extensions, opts.Extensions)
	if len(parsed.Extensions) > 0 && len(opts.Extensions) > 0 && len(extFilter) == 0 {
		return nil, nil // the two extension filters share no extension, so nothing can match
	}
	kindFilter := parsed.RecordKinds

	paths, err := retrieve(store, parsed.FreeText, limit*candidateFanout, opts)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		rec, err := store.Get(p)
		if err != nil {
			continue // removed between retrieval and scoring; skip rather than fail the whole query
		}
		rt := indexstore.RecordType(rec.RecordType)
		if !passesFilters(rt, rec.Extension, kindFilter, extFilter) {
			continue
		}

		base := baseScore(nameStem(rec.Name, rec.Extension), parsed.FreeText)
		if parsed.FreeText != "" && base <= 0 {
			continue // disqualified: characters of q not found in order
		}

		depth := pathDepth(rec.Path, roots, rt)
		final := base*extMult(rec.Extension, false)*depthPenalty(depth) + lengthBonus(rec.Name)

		results = append(results, Result{
			Path:       rec.Path,
			Name:       rec.Name,
			Extension:  rec.Extension,
			Size:       rec.Size,
			MTime:      rec.MTime,
			RecordType: rt,
			Source:     rec.Source,
			Score:      final,
		})
	}

	slices.SortFunc(results, func(a, b Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.MTime, a.MTime); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// retrieve tokenizes the free-text remainder and unions postings for
// every term, optionally widened by prefix/fuzzy matching. An empty
// free text (a filters-only query) has no term to look up, so it falls
// back to every indexed path; filtering narrows it downstream.
func retrieve(store *indexstore.Store, freeText string, maxOut int, opts Options) ([]string, error) {
	terms := tokenize.Tokenize(freeText)
	if len(terms) == 0 {
		return store.AllPaths()
	}

	vocab, err := store.Terms()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(paths []string) {
		for _, p := range paths {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				out = append(out, p)
			}
		}
	}

	for _, term := range terms {
		direct, err := store.Lookup(term)
		if err != nil {
			return nil, err
		}
		add(direct)

		if opts.Prefix {
			pref, err := store.LookupPrefix(term)
			if err != nil {
				return nil, err
			}
			add(pref)
		}

		if opts.Fuzzy {
			budget := fuzzyBudget(len([]rune(term)))
			for _, v := range vocab {
				if v == term {
					continue
				}
				if levenshtein(term, v) <= budget {
					fuzzyPaths, err := store.Lookup(v)
					if err != nil {
						return nil, err
					}
					add(fuzzyPaths)
				}
			}
		}

		if len(out) >= maxOut {
			break
		}
	}

	if len(out) > maxOut {
		out = out[:maxOut]
	}
	return out, nil
}

func passesFilters(rt indexstore.RecordType, ext string, kinds []RecordKind, extFilter []string) bool {
	if len(kinds) > 0 && !kindMatches(rt, kinds) {
		return false
	}
	if len(extFilter) > 0 {
		extLower := strings.ToLower(ext)
		if !slices.Contains(extFilter, extLower) {
			return false
		}
	}
	return true
}

func kindMatches(rt indexstore.RecordType, kinds []RecordKind) bool {
	want := RecordKind(rt)
	return slices.Contains(kinds, want)
}

// mergeExtensions ANDs the grammar-parsed extension filter with the
// caller-supplied Options.Extensions: when both are present, only
// extensions named by both apply; when only one is present, it alone
// applies.
func mergeExtensions(fromGrammar, fromOptions []string) []string {
	if len(fromGrammar) == 0 {
		return fromOptions
	}
	if len(fromOptions) == 0 {
		return fromGrammar
	}
	var out []string
	for _, e := range fromGrammar {
		if slices.Contains(fromOptions, e) {
			out = append(out, e)
		}
	}
	return out
}

// pathDepth computes the depth penalty's input: path separators in path
// beyond the depth of whichever configured root contains it. URL
// records (bookmarks, history) have no filesystem root and use depth 0.
func pathDepth(path string, roots []string, rt indexstore.RecordType) int {
	if rt != indexstore.RecordFile {
		return 0
	}
	var best string
	for _, r := range roots {
		if (path == r || strings.HasPrefix(path, r+string(os.PathSeparator))) && len(r) > len(best) {
			best = r
		}
	}
	rel := path
	if best != "" {
		rel = strings.TrimPrefix(path[len(best):], string(os.PathSeparator))
	}
	return strings.Count(rel, string(filepath.Separator))
}
