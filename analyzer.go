// ═══════════════════════════════════════════════════════════════════════════════
// TEXT ANALYSIS OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Text analysis turns raw document content into the ordered token stream the
// indexer assigns positions over. This package treats analysis as a pluggable
// capability (the Analyzer interface) rather than a fixed pipeline: the core
// index only depends on tokenize(text) -> ordered surface tokens and
// stem(token) -> term being deterministic and idempotent.
//
// ANALYSIS PIPELINE (DefaultAnalyzer):
// -------------------------------------
//  1. Tokenization  -> split text into an ordered sequence of surface tokens,
//     INCLUDING punctuation-only tokens. A token that contains no letter or
//     digit is still emitted: it consumes a position slot so that two words
//     separated by punctuation are not mistaken for adjacent words.
//  2. Casefolding + stemming -> applied only to tokens with at least one
//     alphanumeric character.
//
// EXAMPLE:
// --------
// Input:  "Quick fox, slow dog."
// Tokens: ["Quick", "fox", ",", "slow", "dog", "."]
// Terms (position -> term, punctuation tokens have no term):
//
//	0: quick   1: fox   2: (none, ",")   3: slow   4: dog   5: (none, ".")
//
// "fox" and "slow" are NOT adjacent (positions 1 and 3) even though no other
// WORD sits between them, because the comma still occupied position 2. This
// is what makes phrase adjacency match true token distance.
//
// There is deliberately no stop-word removal here: stop words are part of
// true adjacency and removing them would corrupt phrase position math.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

import (
	"regexp"
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// Analyzer is the pluggable tokenize/stem capability the indexer and query
// parser depend on. Implementations must be deterministic and idempotent:
// an index built under one Analyzer is invalid if queried under another.
type Analyzer interface {
	// Tokenize splits text into an ordered sequence of surface tokens.
	// Every token read from the text is returned, including tokens with no
	// alphanumeric character — callers use this to advance position
	// counters even for tokens they will not stem or index.
	Tokenize(text string) []string

	// Stem casefolds and reduces a single token to its indexed term. The
	// indexer calls it only for tokens that contain at least one
	// alphanumeric character; the query parser calls it on every query word.
	Stem(token string) string
}

// tokenPattern splits text into runs of Unicode letters/digits, or single
// non-whitespace characters, mirroring how a word-oriented tokenizer treats
// punctuation as tokens in its own right rather than discarding it.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+|[^\s]`)

// DefaultAnalyzer is the default, concrete Analyzer: Unicode-aware
// tokenization (via tokenPattern) and Snowball (Porter2) English stemming.
type DefaultAnalyzer struct{}

// NewDefaultAnalyzer returns the default analyzer used when an implementation
// isn't supplied explicitly.
func NewDefaultAnalyzer() *DefaultAnalyzer {
	return &DefaultAnalyzer{}
}

// Tokenize implements Analyzer.
func (a *DefaultAnalyzer) Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// Stem implements Analyzer. Casefolding happens before stemming so the
// stemmer always sees lowercase input.
func (a *DefaultAnalyzer) Stem(token string) string {
	return snowballeng.Stem(strings.ToLower(token), false)
}

// HasAlphanumeric reports whether token contains at least one letter or
// digit. The indexer uses this to decide whether a token should be stemmed
// and indexed, or merely counted toward position offsets.
func HasAlphanumeric(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
