// Package tokenize implements the multilingual tokenization pipeline: a
// pure, deterministic function from text to lowercased terms, shared by
// indexing (name, content) and query parsing (the free-text remainder)
// so that every term placed in the index can retrieve its document via
// an exact-match query on that same term.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/blevesearch/segment"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// cjkLow and cjkHigh bound the CJK Unified Ideographs block (U+4E00–U+9FFF).
const (
	cjkLow  = 0x4E00
	cjkHigh = 0x9FFF
)

// asciiPunct lists the ASCII punctuation that splits Latin-script text.
// Unicode whitespace is handled separately via unicode.IsSpace.
const asciiPunct = ".,;:_-/\\()[]{}'\""

var caseFold = cases.Fold()

// Tokenize splits text into lowercased terms. Input is NFC-normalized
// and case-folded first, then dispatched by script: any CJK rune routes
// the whole string through the CJK path (unigrams + bigrams); otherwise
// the Latin-script path splits on whitespace and the punctuation set
// above.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	normalized := norm.NFC.String(text)
	folded := caseFold.String(normalized)

	if containsCJK(folded) {
		return tokenizeCJK(folded)
	}
	return tokenizeLatin(folded)
}

func containsCJK(s string) bool {
	for _, r := range s {
		if r >= cjkLow && r <= cjkHigh {
			return true
		}
	}
	return false
}

// tokenizeLatin uses UAX#29 word-boundary segmentation to split words,
// then splits each segment again on whitespace and the ASCII punctuation
// set (UAX#29 keeps "main.go", "bar_baz" and "don't" together as single
// words; only pieces containing at least one letter or digit are kept as
// terms).
func tokenizeLatin(s string) []string {
	var terms []string
	seg := segment.NewWordSegmenterDirect([]byte(s))
	for seg.Segment() {
		pieces := strings.FieldsFunc(string(seg.Bytes()), func(r rune) bool {
			return unicode.IsSpace(r) || strings.ContainsRune(asciiPunct, r)
		})
		for _, word := range pieces {
			// A piece can still be pure symbols; only emit pieces that
			// contain at least one letter or digit.
			if !strings.ContainsFunc(word, func(r rune) bool {
				return unicode.IsLetter(r) || unicode.IsDigit(r)
			}) {
				continue
			}
			terms = append(terms, word)
		}
	}
	return terms
}

// tokenizeCJK emits one term per CJK rune (so mono-character queries
// match) plus one term per overlapping bigram of consecutive
// CJK runes, approximating dictionary word segmentation without a
// dictionary: a two-character word like "测试" is recoverable because
// its exact rune pair appears as a bigram on both the indexing and the
// query side. Non-CJK runs within the same string (e.g. a mixed
// "测试123" filename) fall back to the Latin splitting rules for the
// non-CJK spans.
func tokenizeCJK(s string) []string {
	runes := []rune(s)
	var terms []string

	var latinRun []rune
	flushLatin := func() {
		if len(latinRun) == 0 {
			return
		}
		terms = append(terms, tokenizeLatin(string(latinRun))...)
		latinRun = latinRun[:0]
	}

	var cjkRun []rune
	flushCJK := func() {
		for _, r := range cjkRun {
			terms = append(terms, string(r))
		}
		for i := 0; i+1 < len(cjkRun); i++ {
			terms = append(terms, string(cjkRun[i:i+2]))
		}
		cjkRun = cjkRun[:0]
	}

	for _, r := range runes {
		if r >= cjkLow && r <= cjkHigh {
			flushLatin()
			cjkRun = append(cjkRun, r)
			continue
		}
		flushCJK()
		latinRun = append(latinRun, r)
	}
	flushLatin()
	flushCJK()

	return terms
}
