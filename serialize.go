// ═══════════════════════════════════════════════════════════════════════════════
// PERSISTENCE FRAME
// ═══════════════════════════════════════════════════════════════════════════════
// The dictionary and document files are each a serialized map that must
// round-trip byte-for-byte-equivalent values. Neither map contains pointer
// cycles or anything gob can't already express natively, so encoding/gob is
// the outer frame: no bespoke binary format is needed here (contrast with
// the teacher's serialization.go, which existed only to flatten a skip
// list's pointer graph into stable integer indices — a problem this data
// model doesn't have, since Term/Document are plain value structs).
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

import (
	"encoding/gob"
	"os"
)

// dictionaryFrame is what actually gets gob-encoded for the dictionary: the
// raw term map plus the line-order slice needed to reconstruct postings-file
// line assignment if the dictionary is ever rebuilt from a loaded file
// rather than from a live Indexer. The document map is encoded as is.
type dictionaryFrame struct {
	Terms map[string]*Term
	Order []string
}

// SaveDictionary persists dict to path.
func SaveDictionary(path string, dict *Dictionary) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create dictionary file", Err: err}
	}
	defer f.Close()

	frame := dictionaryFrame{Terms: dict.Terms, Order: dict.Order}
	if err := gob.NewEncoder(f).Encode(frame); err != nil {
		return &IOError{Op: "encode dictionary file", Err: err}
	}
	return nil
}

// LoadDictionary reads a dictionary previously written by SaveDictionary.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open dictionary file", Err: err}
	}
	defer f.Close()

	var frame dictionaryFrame
	if err := gob.NewDecoder(f).Decode(&frame); err != nil {
		return nil, &IOError{Op: "decode dictionary file", Err: err}
	}
	return &Dictionary{Terms: frame.Terms, Order: frame.Order}, nil
}

// SaveDocuments persists docs (keyed by doc_id) to path.
func SaveDocuments(path string, docs map[int]*Document) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create document file", Err: err}
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(docs); err != nil {
		return &IOError{Op: "encode document file", Err: err}
	}
	return nil
}

// LoadDocuments reads a document map previously written by SaveDocuments.
func LoadDocuments(path string) (map[int]*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open document file", Err: err}
	}
	defer f.Close()

	docs := make(map[int]*Document)
	if err := gob.NewDecoder(f).Decode(&docs); err != nil {
		return nil, &IOError{Op: "decode document file", Err: err}
	}
	return docs, nil
}
