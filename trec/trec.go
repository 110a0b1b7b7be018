// Package trec emits ranked results in the TREC run format consumed by
// standard IR evaluation tooling (trec_eval and friends): one tab-separated
// line per result carrying query id, run iteration label, external document
// id, 0-based rank, score, and run id.
package trec

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LoadDocmap reads a line-indexed document map: line i holds the external
// id of internal document i.
func LoadDocmap(r io.Reader) ([]string, error) {
	var docs []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		docs = append(docs, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Writer writes run lines. Not safe for concurrent use; the parallel driver
// serializes per-query output before writing.
type Writer struct {
	w         *bufio.Writer
	iteration string
	runID     string
}

// NewWriter creates a run writer with the given iteration label and run id
// (conventionally "Q0" and the system name).
func NewWriter(w io.Writer, iteration, runID string) *Writer {
	return &Writer{w: bufio.NewWriter(w), iteration: iteration, runID: runID}
}

// WriteResult writes one result line.
func (w *Writer) WriteResult(queryID, doc string, rank int, score float32) error {
	_, err := fmt.Fprintf(w.w, "%s\t%s\t%s\t%d\t%f\t%s\n", queryID, w.iteration, doc, rank, score, w.runID)
	return err
}

// Flush flushes buffered lines to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
