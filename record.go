// ═══════════════════════════════════════════════════════════════════════════════
// RECORD SOURCE
// ═══════════════════════════════════════════════════════════════════════════════
// The indexer consumes an iterator of (doc_id, title, content, date_posted,
// court) records. Reading those records from a CSV file is explicitly out
// of the core's scope — RecordSource is the pluggable boundary, and
// CSVRecordSource is the default implementation that reads the format
// described in the corpus's CSV layout: header row present, columns in
// order doc_id, title, content, date_posted, court.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

import (
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"
	"time"
)

// dateLayout is the CSV's date_posted format.
const dateLayout = "2006-01-02 15:04:05"

// Record is one row of the corpus: a document identifier plus the metadata
// and content carried by that row. Multiple records may share a DocID.
type Record struct {
	DocID      int
	Title      string
	Content    string
	DatePosted time.Time
	Court      string
}

// RecordSource yields records one at a time. Next returns ok=false (with a
// nil error) once the stream is exhausted.
type RecordSource interface {
	Next() (rec Record, ok bool, err error)
}

// CSVRecordSource reads records from a CSV file whose header row declares
// columns doc_id, title, content, date_posted, court (order fixed by the
// corpus format; column names are read to tolerate header reordering).
type CSVRecordSource struct {
	reader  *csv.Reader
	indices columnIndices
	logger  *slog.Logger
	closer  io.Closer
}

type columnIndices struct {
	docID, title, content, datePosted, court int
}

// NewCSVRecordSource reads and validates the header row of r, returning a
// RecordSource ready to be driven with Next.
func NewCSVRecordSource(r io.Reader, logger *slog.Logger) (*CSVRecordSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, &IOError{Op: "read csv header", Err: err}
	}

	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[name] = i
	}
	idx := columnIndices{}
	for _, col := range []struct {
		name string
		dst  *int
	}{
		{"doc_id", &idx.docID},
		{"title", &idx.title},
		{"content", &idx.content},
		{"date_posted", &idx.datePosted},
		{"court", &idx.court},
	} {
		i, ok := pos[col.name]
		if !ok {
			return nil, &FormatError{Msg: "csv missing required column: " + col.name}
		}
		*col.dst = i
	}

	logger.Info("csv record source opened", slog.Int("columns", len(header)))
	source := &CSVRecordSource{reader: cr, indices: idx, logger: logger}
	if closer, ok := r.(io.Closer); ok {
		source.closer = closer
	}
	return source, nil
}

// Close releases the underlying reader, if it is closable. Safe to call
// even if the source was built over a non-closable io.Reader.
func (s *CSVRecordSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Next implements RecordSource.
func (s *CSVRecordSource) Next() (Record, bool, error) {
	row, err := s.reader.Read()
	if err == io.EOF {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, &IOError{Op: "read csv row", Err: err}
	}

	docID, err := strconv.Atoi(row[s.indices.docID])
	if err != nil {
		return Record{}, false, &FormatError{Msg: "malformed doc_id: " + row[s.indices.docID]}
	}
	datePosted, err := time.Parse(dateLayout, row[s.indices.datePosted])
	if err != nil {
		return Record{}, false, &FormatError{Msg: "malformed date_posted: " + row[s.indices.datePosted]}
	}

	return Record{
		DocID:      docID,
		Title:      row[s.indices.title],
		Content:    row[s.indices.content],
		DatePosted: datePosted,
		Court:      row[s.indices.court],
	}, true, nil
}
