// Package query defines the tokenized query consumed by evaluation and the
// line format the evaluation tool reads: an optional external id, a colon,
// and whitespace-separated term ids. Tokenization, stemming and stopword
// removal happen upstream; by the time a query reaches this package its
// terms are already resolved to ids.
package query

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Query is one tokenized query. Immutable once parsed; a Query with no
// terms evaluates to zero results, which is not an error.
type Query struct {
	// ID is the external query identifier, empty if the input line had
	// none.
	ID string
	// Terms is the ordered term-id sequence.
	Terms []uint32
}

// Parse parses one query line of the form "id:t1 t2 t3" or "t1 t2 t3".
func Parse(line string) (Query, error) {
	var q Query
	if i := strings.IndexByte(line, ':'); i >= 0 {
		q.ID = strings.TrimSpace(line[:i])
		line = line[i+1:]
	}
	for _, tok := range strings.Fields(line) {
		term, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return Query{}, fmt.Errorf("query: invalid term id %q: %w", tok, err)
		}
		q.Terms = append(q.Terms, uint32(term))
	}
	return q, nil
}

// ReadAll parses one query per non-empty line. A malformed line aborts the
// read; callers that prefer to skip bad lines should scan and Parse
// themselves.
func ReadAll(r io.Reader) ([]Query, error) {
	var out []Query
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		q, err := Parse(line)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
