// ═══════════════════════════════════════════════════════════════════════════════
// DICTIONARY
// ═══════════════════════════════════════════════════════════════════════════════
// The dictionary maps a stemmed, casefolded term to its persisted Term
// record: how many distinct documents contain it, and the byte offset of
// its postings-list line in the postings file. It is loaded whole into
// memory at query time.
//
// During indexing, a term also carries a transient `line` number — its
// insertion order, which becomes the line it is written to in the postings
// file. That number never survives into the persisted Term: it is the term's
// index in Dictionary.Order, and the term's pending postings list lives in a
// parallel termBuildState map owned only by the Indexer, modeling the
// spec's two-phase object lifetime without a nullable field on Term itself.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

// Term is the persisted record for one dictionary entry.
type Term struct {
	DocFrequency uint
	Offset       int64
}

// termBuildState holds indexing-only state for a term: its in-memory
// pending postings list, built up across records before it is compressed
// and flushed to the postings file. Its line number (insertion order into
// the dictionary, and the line it will occupy in the postings file) is not
// stored per-term — it is simply the term's index in Dictionary.Order.
type termBuildState struct {
	Postings *PostingsList
}

// Dictionary maps term -> Term, along with its insertion order (line order
// in the postings file), which must be preserved whenever the dictionary is
// iterated for writing.
type Dictionary struct {
	Terms map[string]*Term
	// Order holds terms in ascending line order: Order[i] is the term whose
	// line is i.
	Order []string
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{Terms: make(map[string]*Term)}
}

// getOrCreate returns the existing Term for key, or creates one (and
// assigns it the next line number) if absent. The returned bool is true if
// the term was newly created.
func (d *Dictionary) getOrCreate(key string) (*Term, bool) {
	if t, ok := d.Terms[key]; ok {
		return t, false
	}
	t := &Term{}
	d.Terms[key] = t
	d.Order = append(d.Order, key)
	return t, true
}
