// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENT STORE
// ═══════════════════════════════════════════════════════════════════════════════
// A Document holds everything about one doc_id except its postings: the
// CSV metadata rows contributed under that doc_id (more than one is
// possible — repeated doc_ids merge into one Document), its cosine-norm
// length, and (in the feedback-capable variant) its top-K tf*idf vector
// used for Rocchio centroid construction.
//
// `word_count` is transient — it is the running token-position offset used
// only while indexing, and is dropped before persistence. As with Term, it
// lives in a parallel documentBuildState map rather than as a field on
// Document itself.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

import "time"

// Metadata is one CSV row's descriptive fields for a document.
type Metadata struct {
	Title      string
	DatePosted time.Time
	Court      string
}

// Document is the persisted record for one doc_id.
type Document struct {
	DocID  int
	Data   []Metadata
	Length float64
	// Vector holds the document's top-K tf*idf-weighted terms, populated
	// only when the indexer's vector-building pass is enabled. Nil when
	// absent; callers must treat a nil Vector as "no feedback support" for
	// this document.
	Vector map[string]float64
}

// documentBuildState holds indexing-only state for a document: the running
// word_count (absolute position of the next token to be assigned) and the
// per-term squared-weight accumulator used to compute Length.
type documentBuildState struct {
	WordCount     int
	LengthSquares float64
}

// NormalizedVector returns doc's stored vector divided by its stored
// length, used as the per-relevant-document input to Rocchio centroid
// construction. Returns nil if the document has no vector or zero length.
func (d *Document) NormalizedVector() map[string]float64 {
	if d.Vector == nil || d.Length == 0 {
		return nil
	}
	out := make(map[string]float64, len(d.Vector))
	for term, weight := range d.Vector {
		out[term] = weight / d.Length
	}
	return out
}
