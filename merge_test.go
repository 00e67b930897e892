package caseindex

import (
	"reflect"
	"testing"
)

func postings(ps ...Posting) *PostingsList {
	pl := NewPostingsList()
	for _, p := range ps {
		pl.Add(p)
	}
	return pl
}

func TestMerge_AdjacentPhrase(t *testing.T) {
	// doc 1: "a b c", doc 2: "a c b" — query "a b" should match only doc 1.
	a := postings(Posting{DocID: 1, TermFrequency: 1, Positions: []int{0}}, Posting{DocID: 2, TermFrequency: 1, Positions: []int{0}})
	b := postings(Posting{DocID: 1, TermFrequency: 1, Positions: []int{1}}, Posting{DocID: 2, TermFrequency: 1, Positions: []int{2}})

	result := Merge(a, b, 1)
	if len(result.Postings) != 1 || result.Postings[0].DocID != 1 {
		t.Fatalf("Merge = %+v, want single posting for doc 1", result.Postings)
	}
	if !reflect.DeepEqual(result.Postings[0].Positions, []int{1}) {
		t.Fatalf("matched positions = %v, want [1]", result.Postings[0].Positions)
	}
}

func TestMerge_TelescopedThreeTermPhrase(t *testing.T) {
	// doc 1: "x y z w" at positions 0,1,2,3.
	x := postings(Posting{DocID: 1, TermFrequency: 1, Positions: []int{0}})
	y := postings(Posting{DocID: 1, TermFrequency: 1, Positions: []int{1}})
	z := postings(Posting{DocID: 1, TermFrequency: 1, Positions: []int{2}})

	xy := Merge(x, y, 1)
	xyz := Merge(xy, z, 1)
	if len(xyz.Postings) != 1 || xyz.Postings[0].DocID != 1 {
		t.Fatalf("merge(merge(x,y),z) = %+v, want match on doc 1", xyz.Postings)
	}

	// "y x z" (mismatched order) should not match.
	yx := Merge(y, x, 1)
	yxz := Merge(yx, z, 1)
	if len(yxz.Postings) != 0 {
		t.Fatalf("merge for mismatched order = %+v, want empty", yxz.Postings)
	}
}

func TestMerge_NoSharedDocID(t *testing.T) {
	a := postings(Posting{DocID: 1, TermFrequency: 1, Positions: []int{0}})
	b := postings(Posting{DocID: 2, TermFrequency: 1, Positions: []int{1}})
	result := Merge(a, b, 1)
	if len(result.Postings) != 0 {
		t.Fatalf("Merge across disjoint doc_ids = %+v, want empty", result.Postings)
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	empty := NewPostingsList()
	nonEmpty := postings(Posting{DocID: 1, TermFrequency: 1, Positions: []int{0}})

	if r := Merge(empty, nonEmpty, 1); len(r.Postings) != 0 {
		t.Fatalf("Merge(empty, x) = %+v, want empty", r.Postings)
	}
	if r := Merge(nonEmpty, empty, 1); len(r.Postings) != 0 {
		t.Fatalf("Merge(x, empty) = %+v, want empty", r.Postings)
	}
}

func TestMerge_SameDocNoPositionMatch(t *testing.T) {
	a := postings(Posting{DocID: 1, TermFrequency: 1, Positions: []int{0}})
	b := postings(Posting{DocID: 1, TermFrequency: 1, Positions: []int{5}})
	result := Merge(a, b, 1)
	if len(result.Postings) != 0 {
		t.Fatalf("Merge with no position match = %+v, want empty", result.Postings)
	}
}
