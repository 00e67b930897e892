package caseindex

import (
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

// buildTestReader writes termPostings to a temporary postings file (in
// sorted term order, for deterministic offsets) and wires up an IndexReader
// over it and docs.
func buildTestReader(t *testing.T, termPostings map[string]*PostingsList, docs map[int]*Document) *IndexReader {
	t.Helper()

	path := filepath.Join(t.TempDir(), "postings.txt")
	writer, err := NewPostingsWriter(path)
	if err != nil {
		t.Fatalf("NewPostingsWriter: %v", err)
	}

	terms := make([]string, 0, len(termPostings))
	for term := range termPostings {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	for _, term := range terms {
		pl := termPostings[term]
		pl.Compress()
		if err := writer.WriteLine(pl.Serialize()); err != nil {
			t.Fatalf("WriteLine: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	pointers, err := LinePointers(path)
	if err != nil {
		t.Fatalf("LinePointers: %v", err)
	}

	dict := NewDictionary()
	for i, term := range terms {
		term := term
		tm, _ := dict.getOrCreate(term)
		tm.DocFrequency = uint(len(termPostings[term].Postings))
		tm.Offset = pointers[i]
	}

	return NewIndexReader(dict, docs, OpenPostingsFile(path))
}

func TestVectorSpaceModel_CosineRanking(t *testing.T) {
	// spec.md §8 scenario 4, literal: doc1 "apple apple", doc2 "apple
	// banana". N=2, df(apple)=2, so query_weight(apple) is exactly 0 — this
	// is the degenerate idf=0 case, and rank() must still register both
	// doc_ids (at score 0) rather than skipping the term entirely, so the
	// ascending-doc_id tie-break yields [1, 2].
	termPostings := map[string]*PostingsList{
		"apple": postings(
			Posting{DocID: 1, TermFrequency: 2, Positions: []int{0, 1}},
			Posting{DocID: 2, TermFrequency: 1, Positions: []int{0}},
		),
		"banana": postings(Posting{DocID: 2, TermFrequency: 1, Positions: []int{1}}),
	}
	docs := map[int]*Document{
		1: {DocID: 1, Length: 1.3010299956639813},
		2: {DocID: 2, Length: 1.4142135623730951},
	}
	reader := buildTestReader(t, termPostings, docs)
	model := NewVectorSpaceModel(reader, nil, nil)

	ranked, err := model.Retrieve([]string{"apple"}, nil, false, false)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if !reflect.DeepEqual(ranked, []int{1, 2}) {
		t.Fatalf("ranked = %v, want [1 2]", ranked)
	}
}

func TestVectorSpaceModel_RelevanceFeedbackPlacement(t *testing.T) {
	// R=[7]; the underlying ranker would otherwise emit [3,7,5]. The final
	// result must place R first, then the remaining ranked doc_ids in order.
	termPostings := map[string]*PostingsList{
		"apple": postings(
			Posting{DocID: 3, TermFrequency: 8, Positions: []int{0, 1, 2, 3, 4, 5, 6, 7}},
			Posting{DocID: 5, TermFrequency: 1, Positions: []int{0}},
			Posting{DocID: 7, TermFrequency: 2, Positions: []int{0, 1}},
		),
	}
	docs := map[int]*Document{
		3:  {DocID: 3, Length: 1.0},
		5:  {DocID: 5, Length: 2.0},
		7:  {DocID: 7, Length: 1.0},
		99: {DocID: 99, Length: 1.0}, // no "apple" term, keeps idf(apple) > 0
	}
	reader := buildTestReader(t, termPostings, docs)
	model := NewVectorSpaceModel(reader, nil, nil)

	baseline, err := model.rank(model.BuildQueryVector([]string{"apple"}))
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if !reflect.DeepEqual(baseline, []int{3, 7, 5}) {
		t.Fatalf("baseline ranking = %v, want [3 7 5] (test setup assumption)", baseline)
	}

	fused := fuseWithRelevant(baseline, []int{7})
	if !reflect.DeepEqual(fused, []int{7, 3, 5}) {
		t.Fatalf("fuseWithRelevant = %v, want [7 3 5]", fused)
	}
}

func TestVectorSpaceModel_CentroidIsPerTermAverage(t *testing.T) {
	docs := map[int]*Document{
		1: {DocID: 1, Length: 2.0, Vector: map[string]float64{"a": 4.0, "b": 2.0}},
		2: {DocID: 2, Length: 1.0, Vector: map[string]float64{"a": 1.0}},
	}
	reader := &IndexReader{Dictionary: NewDictionary(), Documents: docs}
	model := NewVectorSpaceModel(reader, nil, nil)

	centroid, err := model.buildCentroid([]int{1, 2})
	if err != nil {
		t.Fatalf("buildCentroid: %v", err)
	}
	// doc1 normalized: a=2.0, b=1.0; doc2 normalized: a=1.0.
	// centroid: a = (2.0+1.0)/2 = 1.5, b = 1.0/2 = 0.5.
	want := map[string]float64{"a": 1.5, "b": 0.5}
	if !reflect.DeepEqual(centroid, want) {
		t.Fatalf("buildCentroid = %v, want %v (must not replicate the scalar-overwrite bug)", centroid, want)
	}
}

func TestVectorSpaceModel_ExpandAveragesContributions(t *testing.T) {
	synonyms := NewMapSynonymSource(map[string][]string{
		"quick": {"fast"},
		"rapid": {"fast"},
	})
	model := NewVectorSpaceModel(&IndexReader{Dictionary: NewDictionary(), Documents: map[int]*Document{}}, synonyms, nil)

	qv := map[string]float64{"quick": 1.0, "rapid": 3.0}
	expanded := model.expand(qv)

	// "fast" is reached from both "quick" (weight 1.0) and "rapid" (weight
	// 3.0): mean of contributions, not their sum.
	if got, want := expanded["fast"], 2.0; got != want {
		t.Fatalf("expand()[fast] = %v, want %v", got, want)
	}
	if expanded["quick"] != 1.0 || expanded["rapid"] != 3.0 {
		t.Fatalf("expand() must retain original query weights, got %v", expanded)
	}
}

func TestVectorSpaceModel_PRFUnionsWithExplicitRelevant(t *testing.T) {
	termPostings := map[string]*PostingsList{
		"apple": postings(
			Posting{DocID: 1, TermFrequency: 1, Positions: []int{0}},
			Posting{DocID: 2, TermFrequency: 1, Positions: []int{0}},
		),
	}
	docs := map[int]*Document{
		1: {DocID: 1, Length: 1.0, Vector: map[string]float64{"apple": 1.0}},
		2: {DocID: 2, Length: 1.0, Vector: map[string]float64{"apple": 1.0}},
	}
	reader := buildTestReader(t, termPostings, docs)
	model := NewVectorSpaceModel(reader, nil, nil)

	qv := model.BuildQueryVector([]string{"apple"})
	result, err := model.pseudoRelevanceFeedback(qv, []int{1})
	if err != nil {
		t.Fatalf("pseudoRelevanceFeedback: %v", err)
	}
	if len(result) == 0 || result[0] != 1 {
		t.Fatalf("PRF result = %v, want explicit relevant doc 1 first", result)
	}
}
