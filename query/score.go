// Tiered relevance scoring: a candidate's final score is its structural
// match tier, scaled by an extension multiplier and a path-depth
// penalty, plus a small bonus for shorter names.
package query

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

var extMultTable = map[string]float64{
	"exe": 1.5, "lnk": 1.5, "app": 1.5, "bat": 1.5, "cmd": 1.5,
	"pdf": 1.0, "docx": 1.0, "epub": 1.0, "md": 1.0, "txt": 1.0,
	"png": 0.9, "jpg": 0.9, "jpeg": 0.9, "mp4": 0.9, "mp3": 0.9,
	"rs": 0.8, "json": 0.8, "dll": 0.8, "xml": 0.8, "sys": 0.8,
}

// extMult returns the scoring multiplier for an extension. URL records
// (bookmarks, history) always use 1.0, matched by their empty extension
// falling through to the default case here.
func extMult(ext string, isDir bool) float64 {
	if isDir {
		return 1.2
	}
	if m, ok := extMultTable[strings.ToLower(ext)]; ok {
		return m
	}
	return 1.0
}

// depthPenalty returns 0.95^depth, depth being the number of path
// separators beyond baseline (the indexed root's own depth, so files
// directly under a root are not penalised relative to each other).
func depthPenalty(depth int) float64 {
	if depth < 0 {
		depth = 0
	}
	return math.Pow(0.95, float64(depth))
}

// lengthBonus returns 100/sqrt(len(name)); a name of length 0 would
// divide by zero, so it is floored at 1.
func lengthBonus(name string) float64 {
	n := len([]rune(name))
	if n < 1 {
		n = 1
	}
	return 100 / math.Sqrt(float64(n))
}

// nameStem strips the extension suffix from name before scoring, so a
// query of "vibe" scores an exact match against "vibe.exe" rather than
// only a prefix match — a user searching for a file by its base name
// shouldn't be penalized for typing it without the extension.
func nameStem(name, ext string) string {
	if ext == "" {
		return name
	}
	suffix := "." + ext
	if strings.HasSuffix(strings.ToLower(name), strings.ToLower(suffix)) {
		return name[:len(name)-len(suffix)]
	}
	return name
}

// baseScore implements the five-tier structural match: exact, prefix,
// word-boundary substring, contiguous substring, then a scaled
// subsequence density for everything else. q is the untokenized
// free-text remainder of the query, compared case-insensitively against
// name. An empty q (a filters-only query, e.g. ".pdf") has no
// structural match to compute and returns 0 without disqualifying the
// candidate — filtering already selected it.
func baseScore(name, q string) float64 {
	if q == "" {
		return 0
	}
	nameLower := strings.ToLower(name)
	qLower := strings.ToLower(q)

	if nameLower == qLower {
		return 2000
	}
	if strings.HasPrefix(nameLower, qLower) {
		return 1000
	}
	if wordBoundaryMatch(nameLower, qLower) {
		return 800
	}
	if strings.Contains(nameLower, qLower) {
		return 500
	}
	return subsequenceScore(nameLower, qLower)
}

// wordBoundaryMatch reports whether q occurs in name starting at a word
// boundary: position 0, or immediately after a non-alphanumeric rune.
func wordBoundaryMatch(name, q string) bool {
	start := 0
	for {
		idx := strings.Index(name[start:], q)
		if idx == -1 {
			return false
		}
		abs := start + idx
		if abs == 0 {
			return true
		}
		if prev, _ := utf8.DecodeLastRuneInString(name[:abs]); !isAlnum(prev) {
			return true
		}
		start = abs + 1
		if start >= len(name) {
			return false
		}
	}
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// subsequenceScore checks whether every character of q appears in name
// in order (not necessarily contiguous) and, if so, scales 0-100 by how
// dense the match is: the shorter the span the characters are found
// within, the higher the score. A failed subsequence match returns 0,
// which disqualifies the candidate.
func subsequenceScore(name, q string) float64 {
	if q == "" {
		return 0
	}
	qi := 0
	matchStart, matchEnd := -1, -1
	nameRunes := []rune(name)
	qRunes := []rune(q)
	for i, r := range nameRunes {
		if qi < len(qRunes) && qRunes[qi] == r {
			if matchStart == -1 {
				matchStart = i
			}
			matchEnd = i
			qi++
		}
	}
	if qi < len(qRunes) {
		return 0
	}
	span := matchEnd - matchStart + 1
	if span <= 0 {
		return 0
	}
	density := float64(len(qRunes)) / float64(span)
	return density * 100
}
