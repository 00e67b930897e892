// ═══════════════════════════════════════════════════════════════════════════════
// BOOLEAN MODEL
// ═══════════════════════════════════════════════════════════════════════════════
// Retrieve returns the set of doc_ids satisfying every clause in a
// conjunction. A clause is either a single stemmed term or a space-joined
// phrase of stemmed terms; a phrase clause is resolved by chaining the
// proximity merge (C3) across its words at distance 1 before reducing to a
// doc-id set. Clause sets are represented and intersected as
// *roaring.Bitmap — the same compressed-bitmap set-algebra idiom the
// teacher uses for its boolean query builder, here driving the parser-
// produced clause list instead of a fluent API.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

import (
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// BooleanModel answers conjunctive phrase/term retrieval.
type BooleanModel struct {
	reader *IndexReader
}

// NewBooleanModel returns a BooleanModel querying reader.
func NewBooleanModel(reader *IndexReader) *BooleanModel {
	return &BooleanModel{reader: reader}
}

// Retrieve returns the doc_ids satisfying every clause in clauses. An empty
// clause list returns the empty set. A clause whose term (or, for a
// multi-word clause, whose phrase) matches nothing contributes the empty
// set, so the whole conjunction is empty.
func (m *BooleanModel) Retrieve(clauses []string) (*roaring.Bitmap, error) {
	result := roaring.NewBitmap()
	if len(clauses) == 0 {
		return result, nil
	}

	first, err := m.clauseBitmap(clauses[0])
	if err != nil {
		return nil, err
	}
	result = first
	for _, clause := range clauses[1:] {
		bm, err := m.clauseBitmap(clause)
		if err != nil {
			return nil, err
		}
		result = roaring.And(result, bm)
	}
	return result, nil
}

// clauseBitmap resolves one clause (bare term or phrase) to the bitmap of
// doc_ids containing it.
func (m *BooleanModel) clauseBitmap(clause string) (*roaring.Bitmap, error) {
	pl, err := m.clausePostings(clause)
	if err != nil {
		return nil, err
	}
	bm := roaring.NewBitmap()
	for _, docID := range pl.DocIDs() {
		bm.Add(uint32(docID))
	}
	return bm, nil
}

// clausePostings resolves one clause to its matching postings list: a
// direct dictionary lookup for a single-word clause, or a telescoped
// proximity merge across its words for a multi-word (phrase) clause.
func (m *BooleanModel) clausePostings(clause string) (*PostingsList, error) {
	words := strings.Fields(clause)
	if len(words) == 0 {
		return NewPostingsList(), nil
	}

	pl, err := m.reader.PostingsFor(words[0])
	if err != nil {
		return nil, err
	}
	for _, word := range words[1:] {
		next, err := m.reader.PostingsFor(word)
		if err != nil {
			return nil, err
		}
		pl = Merge(pl, next, 1)
	}
	return pl, nil
}
