// ═══════════════════════════════════════════════════════════════════════════════
// INDEXER
// ═══════════════════════════════════════════════════════════════════════════════
// The Indexer consumes a stream of records and produces three persistent
// artifacts: the postings file, the dictionary file, and the document file.
//
// TWO PASSES:
// -----------
//  1. Tokenize every record; build the in-memory dictionary, per-term
//     pending postings lists, and per-document length accumulators. Flush
//     the postings file (one compressed line per term, in dictionary
//     insertion order) and resolve each term's line number into a byte
//     offset by re-scanning the file once it's written.
//  2. (Optional, gated by IndexerConfig.BuildVectors) Re-read the records to
//     compute each document's top-K tf*idf vector, used only for Rocchio
//     centroid construction during relevance feedback.
//
// Indexing has one writer and no readers (§5): Index takes an internal
// mutex purely as a guard against accidental concurrent invocation, not
// because concurrent indexing is a supported mode.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

import (
	"errors"
	"log/slog"
	"math"
	"sort"
	"sync"
)

// errMismatchedLineCount indicates LinePointers found a different number of
// lines than terms were assigned — a corrupt or truncated postings file.
var errMismatchedLineCount = errors.New("postings file line count does not match dictionary size")

// closeSource closes source if it implements io.Closer, ignoring the
// result — a close failure on a read-only source that already yielded all
// its records is not itself a fatal indexing error.
func closeSource(source RecordSource) {
	if closer, ok := source.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

// TopKVectorTerms is the default number of terms kept in a document's
// feedback vector, matching the original indexer's top-K convention.
const TopKVectorTerms = 20

// IndexerConfig tunes the indexer's optional behavior.
type IndexerConfig struct {
	// TopKVectorTerms bounds how many terms are kept per document vector.
	TopKVectorTerms int
	// BuildVectors gates the optional second pass (step 9 of the indexing
	// algorithm). Disable it to skip Rocchio/PRF support entirely and save
	// a full re-read of the corpus.
	BuildVectors bool
}

// DefaultIndexerConfig returns the indexer's default tuning.
func DefaultIndexerConfig() IndexerConfig {
	return IndexerConfig{TopKVectorTerms: TopKVectorTerms, BuildVectors: true}
}

// RecordSourceFactory opens a fresh RecordSource over the same underlying
// corpus. The indexer calls it once per pass, since a RecordSource is
// single-use (Next only moves forward).
type RecordSourceFactory func() (RecordSource, error)

// Indexer builds a dictionary, document store, and postings file from a
// corpus of records.
type Indexer struct {
	analyzer     Analyzer
	config       IndexerConfig
	logger       *slog.Logger
	postingsPath string

	mu          sync.Mutex
	dictionary  *Dictionary
	documents   map[int]*Document
	termBuild   map[string]*termBuildState
	docBuild    map[int]*documentBuildState
	docSeenTerm map[int]map[string]struct{}
}

// NewIndexer returns an Indexer that will write its postings file to
// postingsPath.
func NewIndexer(postingsPath string, analyzer Analyzer, config IndexerConfig, logger *slog.Logger) *Indexer {
	if analyzer == nil {
		analyzer = NewDefaultAnalyzer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{
		analyzer:     analyzer,
		config:       config,
		logger:       logger,
		postingsPath: postingsPath,
		dictionary:   NewDictionary(),
		documents:    make(map[int]*Document),
		termBuild:    make(map[string]*termBuildState),
		docBuild:     make(map[int]*documentBuildState),
		docSeenTerm:  make(map[int]map[string]struct{}),
	}
}

// Index runs the full indexing algorithm against the corpus opened by
// factory, writing the postings file and, on success, leaving the built
// Dictionary() and Documents() ready to be persisted by the caller.
func (ix *Indexer) Index(factory RecordSourceFactory) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	source, err := factory()
	if err != nil {
		return err
	}
	err = ix.indexPass(source)
	closeSource(source)
	if err != nil {
		return err
	}
	ix.logger.Info("indexing pass complete",
		slog.Int("documents", len(ix.documents)),
		slog.Int("terms", len(ix.dictionary.Order)))

	if err := ix.finalizeLengths(); err != nil {
		return err
	}
	if err := ix.flushPostings(); err != nil {
		return err
	}

	if ix.config.BuildVectors {
		vecSource, err := factory()
		if err != nil {
			return err
		}
		err = ix.buildVectors(vecSource)
		closeSource(vecSource)
		if err != nil {
			return err
		}
		ix.logger.Info("document vector pass complete", slog.Int("documents", len(ix.documents)))
	}

	return nil
}

// Dictionary returns the built dictionary. Valid only after Index returns
// successfully.
func (ix *Indexer) Dictionary() *Dictionary { return ix.dictionary }

// Documents returns the built document store. Valid only after Index
// returns successfully.
func (ix *Indexer) Documents() map[int]*Document { return ix.documents }

// indexPass is step 1-5 of the indexing algorithm: per-record tokenization,
// dictionary/postings accumulation, and the running length-squares sum.
func (ix *Indexer) indexPass(source RecordSource) error {
	for {
		rec, ok, err := source.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		doc, dstate := ix.getOrCreateDocument(rec.DocID)
		doc.Data = append(doc.Data, Metadata{Title: rec.Title, DatePosted: rec.DatePosted, Court: rec.Court})

		tokens := ix.analyzer.Tokenize(rec.Content)
		positionsByTerm := make(map[string][]int)
		for tokenIndex, token := range tokens {
			if !HasAlphanumeric(token) {
				continue
			}
			term := ix.analyzer.Stem(token)
			positionsByTerm[term] = append(positionsByTerm[term], dstate.WordCount+tokenIndex)
		}

		seen := ix.docSeenTerm[rec.DocID]
		for term, positions := range positionsByTerm {
			t, _ := ix.dictionary.getOrCreate(term)
			if _, alreadySeen := seen[term]; !alreadySeen {
				t.DocFrequency++
				seen[term] = struct{}{}
			}

			tbs, ok := ix.termBuild[term]
			if !ok {
				tbs = &termBuildState{Postings: NewPostingsList()}
				ix.termBuild[term] = tbs
			}
			tbs.addOccurrence(rec.DocID, positions)

			tf := len(positions)
			dstate.LengthSquares += math.Pow(1+math.Log10(float64(tf)), 2)
		}

		dstate.WordCount += len(tokens)
	}
}

// getOrCreateDocument looks up doc_id's Document and documentBuildState,
// creating both (and the term-seen set used for doc_frequency counting) on
// first appearance.
func (ix *Indexer) getOrCreateDocument(docID int) (*Document, *documentBuildState) {
	doc, ok := ix.documents[docID]
	if !ok {
		doc = &Document{DocID: docID}
		ix.documents[docID] = doc
		ix.docBuild[docID] = &documentBuildState{}
		ix.docSeenTerm[docID] = make(map[string]struct{})
	}
	return doc, ix.docBuild[docID]
}

// addOccurrence appends positions to the postings list, merging into the
// most recently added posting if it already covers the same doc_id (the
// case of a document's content spanning multiple consecutive CSV rows).
func (tbs *termBuildState) addOccurrence(docID int, positions []int) {
	n := len(tbs.Postings.Postings)
	if n > 0 && tbs.Postings.Postings[n-1].DocID == docID {
		p := &tbs.Postings.Postings[n-1]
		p.Positions = append(p.Positions, positions...)
		p.TermFrequency = len(p.Positions)
		return
	}
	tbs.Postings.Add(Posting{DocID: docID, TermFrequency: len(positions), Positions: positions})
}

// finalizeLengths is step 6: doc.length = sqrt(accumulated squares).
func (ix *Indexer) finalizeLengths() error {
	for docID, doc := range ix.documents {
		doc.Length = math.Sqrt(ix.docBuild[docID].LengthSquares)
	}
	return nil
}

// flushPostings is steps 7-8: write the postings file in line order, then
// resolve each term's byte offset.
func (ix *Indexer) flushPostings() error {
	writer, err := NewPostingsWriter(ix.postingsPath)
	if err != nil {
		return err
	}
	for _, term := range ix.dictionary.Order {
		tbs := ix.termBuild[term]
		tbs.Postings.Compress()
		if err := writer.WriteLine(tbs.Postings.Serialize()); err != nil {
			writer.Close()
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	pointers, err := LinePointers(ix.postingsPath)
	if err != nil {
		return err
	}
	if len(pointers) != len(ix.dictionary.Order) {
		return &IOError{Op: "resolve postings offsets", Err: errMismatchedLineCount}
	}
	for i, term := range ix.dictionary.Order {
		ix.dictionary.Terms[term].Offset = pointers[i]
	}
	return nil
}

// buildVectors is the optional step 9: a second corpus pass computing each
// document's top-K tf*idf vector.
func (ix *Indexer) buildVectors(source RecordSource) error {
	k := ix.config.TopKVectorTerms
	if k <= 0 {
		k = TopKVectorTerms
	}

	counts := make(map[int]map[string]int)
	for {
		rec, ok, err := source.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		docCounts, exists := counts[rec.DocID]
		if !exists {
			docCounts = make(map[string]int)
			counts[rec.DocID] = docCounts
		}
		for _, token := range ix.analyzer.Tokenize(rec.Content) {
			if !HasAlphanumeric(token) {
				continue
			}
			docCounts[ix.analyzer.Stem(token)]++
		}
	}

	n := float64(len(ix.documents))
	for docID, docCounts := range counts {
		doc := ix.documents[docID]
		type weighted struct {
			term   string
			weight float64
		}
		weights := make([]weighted, 0, len(docCounts))
		for term, tf := range docCounts {
			t, ok := ix.dictionary.Terms[term]
			if !ok || t.DocFrequency == 0 {
				continue
			}
			idf := math.Log10(n / float64(t.DocFrequency))
			w := (1 + math.Log10(float64(tf))) * idf
			if w < 0 {
				w = 0
			}
			weights = append(weights, weighted{term: term, weight: w})
		}
		sort.Slice(weights, func(i, j int) bool { return weights[i].weight > weights[j].weight })
		if len(weights) > k {
			weights = weights[:k]
		}
		vector := make(map[string]float64, len(weights))
		for _, w := range weights {
			vector[w.term] = w.weight
		}
		doc.Vector = vector
	}
	return nil
}
