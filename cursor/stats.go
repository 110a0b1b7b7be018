package cursor

import "sync/atomic"

// Stats counts posting-list accesses. A single Stats may be shared by all
// cursors of a run, including concurrent queries; counters are atomic.
//
// ScoredPostings in particular is the observable cost of an evaluation: a
// pruning algorithm that skips a block leaves its postings unscored.
type Stats struct {
	// ScoredPostings counts Score calls, i.e. postings actually
	// materialized into a score.
	ScoredPostings atomic.Uint64
	// Seeks counts NextGEQ calls.
	Seeks atomic.Uint64
	// Advances counts Next calls.
	Advances atomic.Uint64
}

func (s *Stats) scored() {
	if s != nil {
		s.ScoredPostings.Add(1)
	}
}

func (s *Stats) seeked() {
	if s != nil {
		s.Seeks.Add(1)
	}
}

func (s *Stats) advanced() {
	if s != nil {
		s.Advances.Add(1)
	}
}
