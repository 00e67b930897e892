// ═══════════════════════════════════════════════════════════════════════════════
// INDEX READER
// ═══════════════════════════════════════════════════════════════════════════════
// IndexReader is the read-only view over a persisted index that both
// retrieval models (Boolean and Vector-space) query against: the in-memory
// dictionary and document store, plus lazy, by-offset access to the
// postings file. A term absent from the dictionary is not an error — it
// simply yields an empty postings list, which propagates naturally through
// intersection (Boolean) and cosine scoring (vector-space).
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

// IndexReader is shared, read-only state for query-time retrieval.
type IndexReader struct {
	Dictionary *Dictionary
	Documents  map[int]*Document
	Postings   *PostingsFile
}

// NewIndexReader wraps an already-loaded dictionary, document store, and
// postings file for querying.
func NewIndexReader(dict *Dictionary, docs map[int]*Document, postings *PostingsFile) *IndexReader {
	return &IndexReader{Dictionary: dict, Documents: docs, Postings: postings}
}

// PostingsFor returns term's expanded postings list, or an empty one if
// term is absent from the dictionary.
func (r *IndexReader) PostingsFor(term string) (*PostingsList, error) {
	t, ok := r.Dictionary.Terms[term]
	if !ok {
		return NewPostingsList(), nil
	}
	line, err := r.Postings.ReadLineAt(t.Offset)
	if err != nil {
		return nil, err
	}
	return ParsePostingsList(line)
}
