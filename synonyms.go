// ═══════════════════════════════════════════════════════════════════════════════
// SYNONYM SOURCE
// ═══════════════════════════════════════════════════════════════════════════════
// Lexical query expansion (§4.9, after Rocchio feedback) looks up synonyms
// for each term in the adjusted query vector. Synonym lookup is a pluggable
// collaborator, out of the core's scope; MapSynonymSource is a minimal
// default good enough to exercise expansion end to end. A nil SynonymSource
// disables expansion without error — it is an optional refinement, not a
// required stage.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

// SynonymSource looks up the known synonyms of a (stemmed) term.
type SynonymSource interface {
	Synonyms(term string) []string
}

// MapSynonymSource is a simple in-memory SynonymSource backed by a fixed
// mapping.
type MapSynonymSource struct {
	synonyms map[string][]string
}

// NewMapSynonymSource builds a MapSynonymSource from an explicit mapping.
func NewMapSynonymSource(synonyms map[string][]string) *MapSynonymSource {
	if synonyms == nil {
		synonyms = make(map[string][]string)
	}
	return &MapSynonymSource{synonyms: synonyms}
}

// Synonyms implements SynonymSource.
func (s *MapSynonymSource) Synonyms(term string) []string {
	return s.synonyms[term]
}
