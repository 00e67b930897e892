// ═══════════════════════════════════════════════════════════════════════════════
// POSTING & POSTINGS LIST
// ═══════════════════════════════════════════════════════════════════════════════
// A Posting is one term's occurrence record within one document: which
// document, how many times, and at which token positions. A PostingsList is
// every Posting for one term, ordered by ascending doc_id.
//
// On disk a postings list is one line of text:
//
//	<post>( <post>)*
//
// where <post> is:
//
//	<doc_id_gap>/<tf>/<pos_gap>(,<pos_gap>)*
//
// doc_id gaps are relative to the previous posting's doc_id on the same
// line; position gaps are relative to the previous position within the same
// posting. The first value of each sequence is absolute. In memory a
// PostingsList is always held in expanded (absolute, decompressed) form;
// Serialize/Parse cross the compressed/expanded boundary.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

import (
	"regexp"
	"strconv"
	"strings"
)

// Posting is one term's occurrence record in one document.
type Posting struct {
	DocID         int
	TermFrequency int
	Positions     []int
}

// PostingsList is an ordered sequence of Postings for a single term, sorted
// by ascending DocID. Doc_ids are strictly increasing; within each posting,
// positions are strictly increasing; TermFrequency == len(Positions).
type PostingsList struct {
	Postings []Posting
}

// NewPostingsList returns an empty postings list.
func NewPostingsList() *PostingsList {
	return &PostingsList{}
}

// Add appends a posting whose DocID strictly exceeds any existing DocID.
func (pl *PostingsList) Add(p Posting) {
	pl.Postings = append(pl.Postings, p)
}

// postingPattern matches one compressed posting: digits/digits/digits(,digits)*
var postingPattern = regexp.MustCompile(`^[0-9]*/[0-9]*/[0-9]+(,[0-9]+)*$`)

// atoiOrZero parses s as a decimal integer, treating an empty string as 0 —
// the doc_id-gap and term-frequency fields permit a bare empty field under
// the grammar's `[0-9]*` quantifier.
func atoiOrZero(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// ParsePostingsList parses one textual postings-file line into an expanded
// (decompressed) PostingsList. Returns a FormatError if any posting in the
// line fails to match the expected grammar.
func ParsePostingsList(line string) (*PostingsList, error) {
	pl := NewPostingsList()
	line = strings.TrimSpace(line)
	if line == "" {
		return pl, nil
	}

	prevDocID := 0
	for _, field := range strings.Fields(line) {
		if !postingPattern.MatchString(field) {
			return nil, &FormatError{Msg: "malformed posting: " + field}
		}
		parts := strings.SplitN(field, "/", 3)
		docGap, err := atoiOrZero(parts[0])
		if err != nil {
			return nil, &FormatError{Msg: "malformed doc_id gap: " + parts[0]}
		}
		tf, err := atoiOrZero(parts[1])
		if err != nil {
			return nil, &FormatError{Msg: "malformed term frequency: " + parts[1]}
		}
		posGaps := strings.Split(parts[2], ",")
		positions := make([]int, len(posGaps))
		for i, g := range posGaps {
			v, err := strconv.Atoi(g)
			if err != nil {
				return nil, &FormatError{Msg: "malformed position gap: " + g}
			}
			positions[i] = v
		}

		docID := prevDocID + docGap
		prevDocID = docID
		positions = gapDecode(positions)

		pl.Add(Posting{DocID: docID, TermFrequency: tf, Positions: positions})
	}
	return pl, nil
}

// Serialize renders pl's CURRENT (already compressed) contents to a single
// textual postings-file line, with no trailing newline.
func (pl *PostingsList) Serialize() string {
	fields := make([]string, 0, len(pl.Postings))
	for _, p := range pl.Postings {
		posStrs := make([]string, len(p.Positions))
		for i, v := range p.Positions {
			posStrs[i] = strconv.Itoa(v)
		}
		fields = append(fields, strconv.Itoa(p.DocID)+"/"+strconv.Itoa(p.TermFrequency)+"/"+strings.Join(posStrs, ","))
	}
	return strings.Join(fields, " ")
}

// Compress gap-encodes doc_ids (relative to the previous posting on the
// list) and, within each posting, its positions. Idempotent only in the
// sense that Decompress(Compress(x)) == x; calling Compress twice in a row
// double-encodes and is a caller error.
func (pl *PostingsList) Compress() {
	prevDocID := 0
	for i := range pl.Postings {
		docID := pl.Postings[i].DocID
		pl.Postings[i].DocID = docID - prevDocID
		prevDocID = docID
		pl.Postings[i].Positions = gapEncode(pl.Postings[i].Positions)
	}
}

// Decompress is the inverse of Compress.
func (pl *PostingsList) Decompress() {
	prevDocID := 0
	for i := range pl.Postings {
		docID := prevDocID + pl.Postings[i].DocID
		pl.Postings[i].DocID = docID
		prevDocID = docID
		pl.Postings[i].Positions = gapDecode(pl.Postings[i].Positions)
	}
}

// DocIDs returns the (expanded) doc_ids of every posting in the list, in
// ascending order.
func (pl *PostingsList) DocIDs() []int {
	ids := make([]int, len(pl.Postings))
	for i, p := range pl.Postings {
		ids[i] = p.DocID
	}
	return ids
}
