// ═══════════════════════════════════════════════════════════════════════════════
// POSTINGS FILE
// ═══════════════════════════════════════════════════════════════════════════════
// A line-oriented, random-access store of compressed postings lists. Line i
// (0-indexed) holds the term that was assigned line=i during indexing.
// Random access at query time goes through the byte offset recorded on each
// Term, not through the line number — ReadLineAt seeks directly to that
// offset and reads to the next newline.
//
// No caching is required by the contract; an implementation may add one
// (§5 explicitly allows an in-memory LRU for hot postings lists) without
// affecting correctness of cosine scores. This implementation opens the
// file fresh per read, matching the "no global cache required" baseline.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

import (
	"bufio"
	"os"
	"strings"
)

// PostingsFile is a handle to an on-disk, line-addressed postings store.
type PostingsFile struct {
	path string
}

// OpenPostingsFile returns a handle to the postings file at path. It does
// not require the file to exist yet — NewPostingsWriter creates it.
func OpenPostingsFile(path string) *PostingsFile {
	return &PostingsFile{path: path}
}

// ReadLineAt opens the file read-only, seeks to offset, and reads one
// newline-terminated line (without the trailing newline).
func (f *PostingsFile) ReadLineAt(offset int64) (string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return "", &IOError{Op: "open postings file", Err: err}
	}
	defer file.Close()

	if _, err := file.Seek(offset, 0); err != nil {
		return "", &IOError{Op: "seek postings file", Err: err}
	}

	line, err := bufio.NewReader(file).ReadString('\n')
	if err != nil && line == "" {
		return "", &IOError{Op: "read postings file", Err: err}
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// PostingsWriter appends compressed postings-list lines to a fresh postings
// file, one term at a time, in the same order terms were assigned lines.
type PostingsWriter struct {
	file *os.File
	w    *bufio.Writer
}

// NewPostingsWriter truncates (or creates) the file at path for writing.
func NewPostingsWriter(path string) (*PostingsWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &IOError{Op: "create postings file", Err: err}
	}
	return &PostingsWriter{file: f, w: bufio.NewWriter(f)}, nil
}

// WriteLine appends one postings-list line followed by a newline.
func (w *PostingsWriter) WriteLine(line string) error {
	if _, err := w.w.WriteString(line); err != nil {
		return &IOError{Op: "write postings file", Err: err}
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return &IOError{Op: "write postings file", Err: err}
	}
	return nil
}

// Close flushes buffered writes and closes the underlying file.
func (w *PostingsWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		w.file.Close()
		return &IOError{Op: "flush postings file", Err: err}
	}
	if err := w.file.Close(); err != nil {
		return &IOError{Op: "close postings file", Err: err}
	}
	return nil
}

// LinePointers walks the postings file at path and returns the byte offset
// at the start of each line, in line order. Used after writing to resolve
// each term's build-time line number into a persisted byte offset.
func LinePointers(path string) ([]int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open postings file", Err: err}
	}
	defer file.Close()

	var pointers []int64
	reader := bufio.NewReader(file)
	var offset int64
	for {
		line, err := reader.ReadString('\n')
		if len(line) == 0 && err != nil {
			break
		}
		pointers = append(pointers, offset)
		offset += int64(len(line))
		if err != nil {
			break
		}
	}
	return pointers, nil
}
