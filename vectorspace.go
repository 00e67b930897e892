// ═══════════════════════════════════════════════════════════════════════════════
// VECTOR-SPACE MODEL
// ═══════════════════════════════════════════════════════════════════════════════
// Cosine-ranked free-text retrieval, with optional Rocchio relevance
// feedback (explicit and pseudo-relevance), and optional lexical query
// expansion. Scoring and the feedback/expansion math are grounded directly
// on the original vectorspacemodel.py, INCLUDING the correction of its
// documented centroid bug: buildCentroid here averages per term across the
// relevant set, rather than overwriting the whole accumulator with the
// last document's weighted vector.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

import (
	"container/heap"
	"log/slog"
	"math"
	"sort"
)

// rocchioQueryWeight / rocchioCentroidWeight are the Rocchio coefficients
// used for both the explicit-feedback round and the PRF round, per the
// source code (not its (0.8, 0.2) docstring — see DESIGN.md).
const (
	rocchioQueryWeight    = 0.5
	rocchioCentroidWeight = 0.5
)

// prfTargetSize is the total number of "relevant" documents (explicit plus
// pseudo-relevant) pseudo-relevance feedback aims for.
const prfTargetSize = 10

// VectorSpaceModel answers free-text ranked retrieval.
type VectorSpaceModel struct {
	reader   *IndexReader
	synonyms SynonymSource
	logger   *slog.Logger
}

// NewVectorSpaceModel returns a VectorSpaceModel querying reader. synonyms
// may be nil to disable query expansion.
func NewVectorSpaceModel(reader *IndexReader, synonyms SynonymSource, logger *slog.Logger) *VectorSpaceModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &VectorSpaceModel{reader: reader, synonyms: synonyms, logger: logger}
}

// BuildQueryVector builds the initial tf*idf query vector for terms,
// dropping terms absent from the dictionary.
func (m *VectorSpaceModel) BuildQueryVector(terms []string) map[string]float64 {
	n := float64(len(m.reader.Documents))
	counts := make(map[string]int)
	for _, t := range terms {
		if _, ok := m.reader.Dictionary.Terms[t]; ok {
			counts[t]++
		}
	}
	vector := make(map[string]float64, len(counts))
	for term, tf := range counts {
		df := float64(m.reader.Dictionary.Terms[term].DocFrequency)
		w := (1 + math.Log10(float64(tf))) * math.Log10(n/df)
		if w < 0 {
			w = 0
		}
		vector[term] = w
	}
	return vector
}

// Retrieve runs the full free-text pipeline: build the query vector, apply
// Rocchio feedback from R (if non-empty), optionally expand via synonyms,
// optionally apply pseudo-relevance feedback, then rank.
func (m *VectorSpaceModel) Retrieve(terms []string, r []int, expand bool, prf bool) ([]int, error) {
	qv := m.BuildQueryVector(terms)

	if len(r) > 0 {
		centroid, err := m.buildCentroid(r)
		if err != nil {
			return nil, err
		}
		qv = adjustQuery(qv, centroid, rocchioQueryWeight, rocchioCentroidWeight)
	}

	if expand && m.synonyms != nil {
		qv = m.expand(qv)
	}

	if prf {
		return m.pseudoRelevanceFeedback(qv, r)
	}

	ranked, err := m.rank(qv)
	if err != nil {
		return nil, err
	}
	return fuseWithRelevant(ranked, r), nil
}

// GetRanking runs the restricted pipeline used by the boolean/phrase path:
// Rocchio feedback only, no expansion, no PRF.
func (m *VectorSpaceModel) GetRanking(terms []string, r []int) ([]int, error) {
	qv := m.BuildQueryVector(terms)
	if len(r) > 0 {
		centroid, err := m.buildCentroid(r)
		if err != nil {
			return nil, err
		}
		qv = adjustQuery(qv, centroid, rocchioQueryWeight, rocchioCentroidWeight)
	}
	ranked, err := m.rank(qv)
	if err != nil {
		return nil, err
	}
	return fuseWithRelevant(ranked, r), nil
}

// buildCentroid averages, per term, the normalized document vectors of the
// documents in docIDs. Documents without a stored vector (BuildVectors was
// disabled, or the document has zero length) are skipped.
func (m *VectorSpaceModel) buildCentroid(docIDs []int) (map[string]float64, error) {
	sums := make(map[string]float64)
	count := 0
	for _, id := range docIDs {
		doc, ok := m.reader.Documents[id]
		if !ok {
			continue
		}
		nv := doc.NormalizedVector()
		if nv == nil {
			continue
		}
		count++
		for term, weight := range nv {
			sums[term] += weight
		}
	}
	centroid := make(map[string]float64, len(sums))
	if count == 0 {
		return centroid, nil
	}
	for term, sum := range sums {
		centroid[term] = sum / float64(count)
	}
	return centroid, nil
}

// adjustQuery returns qCoef*query + cCoef*centroid, over the union of keys.
func adjustQuery(query, centroid map[string]float64, qCoef, cCoef float64) map[string]float64 {
	out := make(map[string]float64, len(query)+len(centroid))
	for term, w := range query {
		out[term] += qCoef * w
	}
	for term, w := range centroid {
		out[term] += cCoef * w
	}
	return out
}

// expand adds each query term's synonyms to the vector, with weight equal
// to the mean of the weights of the terms the synonym was derived from
// (summing contributions when reached from multiple terms before
// averaging), added on top of any existing weight for that synonym.
func (m *VectorSpaceModel) expand(qv map[string]float64) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for term, weight := range qv {
		for _, syn := range m.synonyms.Synonyms(term) {
			sums[syn] += weight
			counts[syn]++
		}
	}

	out := make(map[string]float64, len(qv))
	for term, w := range qv {
		out[term] = w
	}
	for syn, sum := range sums {
		out[syn] += sum / float64(counts[syn])
	}
	return out
}

// pseudoRelevanceFeedback ranks once with qv, treats the top
// max(0, 10-|R|) non-R results as relevant, re-applies Rocchio with the
// union of R and that pseudo-relevant set, and ranks again.
func (m *VectorSpaceModel) pseudoRelevanceFeedback(qv map[string]float64, r []int) ([]int, error) {
	first, err := m.rank(qv)
	if err != nil {
		return nil, err
	}
	fused := fuseWithRelevant(first, r)

	want := prfTargetSize - len(r)
	if want < 0 {
		want = 0
	}
	candidates := make([]int, 0, want)
	relevantSet := toSet(r)
	for _, id := range fused {
		if len(candidates) >= want {
			break
		}
		if _, already := relevantSet[id]; already {
			continue
		}
		candidates = append(candidates, id)
	}

	pseudoRelevant := append(append([]int{}, r...), candidates...)
	centroid, err := m.buildCentroid(pseudoRelevant)
	if err != nil {
		return nil, err
	}
	qv2 := adjustQuery(qv, centroid, rocchioQueryWeight, rocchioCentroidWeight)

	second, err := m.rank(qv2)
	if err != nil {
		return nil, err
	}
	return fuseWithRelevant(second, r), nil
}

// scoredDoc is one entry in the ranking max-heap.
type scoredDoc struct {
	docID int
	score float64
}

// scoreHeap is a max-heap over scoredDoc, ordered by descending score with
// ties broken by ascending doc_id (see DESIGN.md's "heap tie-break
// determinism" note — this avoids depending on Go's randomized map
// iteration order for "insertion order").
type scoreHeap []scoredDoc

func (h scoreHeap) Len() int { return len(h) }
func (h scoreHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return h[i].docID < h[j].docID
}
func (h scoreHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *scoreHeap) Push(x any)        { *h = append(*h, x.(scoredDoc)) }
func (h *scoreHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// rank scores every document reachable from qv's terms, normalizes by
// document length, and returns doc_ids in descending score order.
func (m *VectorSpaceModel) rank(qv map[string]float64) ([]int, error) {
	scores := make(map[int]float64)
	for term, weight := range qv {
		pl, err := m.reader.PostingsFor(term)
		if err != nil {
			return nil, err
		}
		for _, p := range pl.Postings {
			scores[p.DocID] += (1 + math.Log10(float64(p.TermFrequency))) * weight
		}
	}

	docIDs := make([]int, 0, len(scores))
	for id := range scores {
		docIDs = append(docIDs, id)
	}
	sort.Ints(docIDs)

	h := make(scoreHeap, 0, len(docIDs))
	for _, id := range docIDs {
		doc, ok := m.reader.Documents[id]
		if !ok || doc.Length == 0 {
			continue
		}
		h = append(h, scoredDoc{docID: id, score: scores[id] / doc.Length})
	}
	heap.Init(&h)

	ranked := make([]int, 0, h.Len())
	for h.Len() > 0 {
		item := heap.Pop(&h).(scoredDoc)
		ranked = append(ranked, item.docID)
	}
	return ranked, nil
}

// fuseWithRelevant places r at the front (in the order supplied), followed
// by ranked's entries that are not already in r.
func fuseWithRelevant(ranked []int, r []int) []int {
	seen := toSet(r)
	out := make([]int, 0, len(ranked)+len(r))
	out = append(out, r...)
	for _, id := range ranked {
		if _, ok := seen[id]; ok {
			continue
		}
		out = append(out, id)
	}
	return out
}

func toSet(ids []int) map[int]struct{} {
	s := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}
