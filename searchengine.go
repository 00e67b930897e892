// ═══════════════════════════════════════════════════════════════════════════════
// SEARCHENGINE FACADE
// ═══════════════════════════════════════════════════════════════════════════════
// SearchEngine is the single entry point query-time callers use: it parses
// a raw query line and routes to the vector-space model (free-text path) or
// to the boolean model plus a restricted vector-space ranking (boolean/
// phrase path), fusing relevance-judgement seeds into the result either
// way.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

import (
	"log/slog"
	"strings"
)

// SearchEngine is the facade over the boolean and vector-space models.
type SearchEngine struct {
	reader   *IndexReader
	boolean  *BooleanModel
	vector   *VectorSpaceModel
	analyzer Analyzer
	logger   *slog.Logger

	// ExpandQueries and UsePRF gate the free-text path's optional stages.
	ExpandQueries bool
	UsePRF        bool
}

// NewSearchEngine wires a SearchEngine over an already-loaded index.
func NewSearchEngine(reader *IndexReader, analyzer Analyzer, synonyms SynonymSource, logger *slog.Logger) *SearchEngine {
	if analyzer == nil {
		analyzer = NewDefaultAnalyzer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchEngine{
		reader:   reader,
		boolean:  NewBooleanModel(reader),
		vector:   NewVectorSpaceModel(reader, synonyms, logger),
		analyzer: analyzer,
		logger:   logger,
	}
}

// Search parses queryLine and returns the ranked doc_ids, with relevant
// (the caller's relevance judgements, R) placed first in the order
// supplied. A ParseError from the query parser is returned as-is — callers
// writing to an output file should surface it as a diagnostic line and
// produce no ranking for that query, per the error-handling design.
func (e *SearchEngine) Search(queryLine string, relevant []int) ([]int, error) {
	query, err := ParseQuery(queryLine, e.analyzer.Stem)
	if err != nil {
		return nil, err
	}

	if !query.Boolean {
		return e.vector.Retrieve(query.FreeText, relevant, e.ExpandQueries, e.UsePRF)
	}
	return e.searchBoolean(query, relevant)
}

// searchBoolean implements the boolean/phrase path: intersect the boolean
// model's doc-id set, rank the flattened clause terms with the restricted
// vector-space pipeline, then fuse: R first, then ranked doc_ids that are
// in the boolean set, then any remaining boolean-set doc_ids not already
// covered by the ranking.
func (e *SearchEngine) searchBoolean(query Query, relevant []int) ([]int, error) {
	clauses := query.Clauses()
	boolSet, err := e.boolean.Retrieve(clauses)
	if err != nil {
		return nil, err
	}

	flattened := flattenClauses(clauses)
	ranked, err := e.vector.GetRanking(flattened, relevant)
	if err != nil {
		return nil, err
	}

	remaining := boolSet.Clone()
	relevantSet := toSet(relevant)

	result := make([]int, 0, int(boolSet.GetCardinality())+len(relevant))
	result = append(result, relevant...)
	for _, id := range ranked {
		if _, already := relevantSet[id]; already {
			remaining.Remove(uint32(id))
			continue
		}
		if !remaining.Contains(uint32(id)) {
			continue
		}
		result = append(result, id)
		remaining.Remove(uint32(id))
	}

	it := remaining.Iterator()
	for it.HasNext() {
		result = append(result, int(it.Next()))
	}
	return result, nil
}

// flattenClauses splits every clause (bare term or space-joined phrase)
// into its individual words, matching the original searchengine's
// flattened_terms construction over its full clause list.
func flattenClauses(clauses []string) []string {
	var out []string
	for _, clause := range clauses {
		out = append(out, strings.Fields(clause)...)
	}
	return out
}
