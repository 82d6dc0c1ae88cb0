// Package split cuts oversized Java string literals into chunks that can be
// re-joined at runtime without breaking an escape sequence.
package split

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Lookback is the number of bytes, ending at the cut point, that must be free
// of escape-signal characters. It covers the longest Java escape (\uXXXX).
const Lookback = 6

var (
	// ErrInvalidSize is returned for a non-positive chunk size.
	ErrInvalidSize = errors.New("split: chunk size must be positive")
	// ErrUnsplittable is returned when no safe cut point exists.
	ErrUnsplittable = errors.New("split: no safe cut point")
)

// Split splits literal into chunks of at most maxChunkSize bytes. Joining the
// chunks reproduces literal exactly. A cut never lands within Lookback bytes
// after a backslash, double quote or single quote, nor inside a UTF-8
// sequence.
func Split(literal string, maxChunkSize int) ([]string, error) {
	if maxChunkSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, maxChunkSize)
	}
	if len(literal) <= maxChunkSize {
		return []string{literal}, nil
	}
	chunks := make([]string, 0, len(literal)/maxChunkSize+1)
	start := 0
	for len(literal)-start > maxChunkSize {
		cut := start + maxChunkSize
		for cut > start && !safeCut(literal, cut) {
			cut--
		}
		if cut <= start {
			return nil, fmt.Errorf("%w: %d bytes into a %d byte literal", ErrUnsplittable, start, len(literal))
		}
		chunks = append(chunks, literal[start:cut])
		start = cut
	}
	if start < len(literal) {
		chunks = append(chunks, literal[start:])
	}
	return chunks, nil
}

// safeCut reports whether s can be cut before index i. The byte at i is
// checked too: the next chunk must not start with an escape-signal character.
func safeCut(s string, i int) bool {
	if !utf8.RuneStart(s[i]) {
		return false
	}
	return !escapesNear(s, i)
}

func escapesNear(s string, i int) bool {
	for j := i; j > max(0, i-Lookback); j-- {
		switch s[j] {
		case '\\', '"', '\'':
			return true
		}
	}
	return false
}
