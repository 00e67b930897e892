package caseindex

import (
	"reflect"
	"testing"
)

// identityAnalyzer is a test Analyzer that splits on spaces and returns
// each token unchanged from Stem, keeping test expectations easy to reason
// about.
type identityAnalyzer struct{}

func (identityAnalyzer) Tokenize(text string) []string {
	var tokens []string
	start := -1
	for i, r := range text {
		if r == ' ' {
			if start >= 0 {
				tokens = append(tokens, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

func (identityAnalyzer) Stem(token string) string { return token }

func TestSearchEngine_RoutesFreeTextQuery(t *testing.T) {
	termPostings := map[string]*PostingsList{
		"fox": postings(
			Posting{DocID: 1, TermFrequency: 2, Positions: []int{0, 1}},
			Posting{DocID: 2, TermFrequency: 1, Positions: []int{3}},
		),
	}
	docs := map[int]*Document{
		1: {DocID: 1, Length: 1.301},
		2: {DocID: 2, Length: 1.301},
		3: {DocID: 3, Length: 1.0},
	}
	reader := buildTestReader(t, termPostings, docs)
	engine := NewSearchEngine(reader, identityAnalyzer{}, nil, nil)

	ranked, err := engine.Search("fox", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ranked) == 0 {
		t.Fatalf("expected at least one result for a free-text query matching fox")
	}
}

func TestSearchEngine_RoutesBooleanQuery(t *testing.T) {
	// doc1: "a b c", doc2: "a c b". Phrase "a b" should match only doc1.
	termPostings := map[string]*PostingsList{
		"a": postings(
			Posting{DocID: 1, TermFrequency: 1, Positions: []int{0}},
			Posting{DocID: 2, TermFrequency: 1, Positions: []int{0}},
		),
		"b": postings(
			Posting{DocID: 1, TermFrequency: 1, Positions: []int{1}},
			Posting{DocID: 2, TermFrequency: 1, Positions: []int{2}},
		),
	}
	docs := map[int]*Document{
		1: {DocID: 1, Length: 1.0},
		2: {DocID: 2, Length: 1.0},
	}
	reader := buildTestReader(t, termPostings, docs)
	engine := NewSearchEngine(reader, identityAnalyzer{}, nil, nil)

	ranked, err := engine.Search(`"a b"`, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !reflect.DeepEqual(ranked, []int{1}) {
		t.Fatalf("boolean phrase search = %v, want [1]", ranked)
	}
}

func TestSearchEngine_RelevantDocsPlacedFirst(t *testing.T) {
	termPostings := map[string]*PostingsList{
		"a": postings(
			Posting{DocID: 1, TermFrequency: 1, Positions: []int{0}},
			Posting{DocID: 2, TermFrequency: 1, Positions: []int{0}},
		),
	}
	docs := map[int]*Document{
		1: {DocID: 1, Length: 1.0},
		2: {DocID: 2, Length: 1.0},
	}
	reader := buildTestReader(t, termPostings, docs)
	engine := NewSearchEngine(reader, identityAnalyzer{}, nil, nil)

	ranked, err := engine.Search(`"a"`, []int{2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ranked) == 0 || ranked[0] != 2 {
		t.Fatalf("Search with relevant=[2] = %v, want doc 2 first", ranked)
	}
}

func TestSearchEngine_ParseErrorPropagates(t *testing.T) {
	reader := buildTestReader(t, map[string]*PostingsList{}, map[int]*Document{})
	engine := NewSearchEngine(reader, identityAnalyzer{}, nil, nil)

	_, err := engine.Search("it's broken", nil)
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("Search with malformed query error = %v (%T), want *ParseError", err, err)
	}
}

func TestFlattenClauses_SplitsEveryClause(t *testing.T) {
	got := flattenClauses([]string{"red car", "fast"})
	want := []string{"red", "car", "fast"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("flattenClauses = %v, want %v", got, want)
	}
}
