// Package topk provides the bounded selector that retains the best K
// (score, doc) pairs seen during one query evaluation and exposes the
// current K-th best score as the pruning threshold.
package topk

import (
	"container/heap"
	"math"
	"sort"
)

// Entry is one retained (score, doc id) pair.
type Entry struct {
	Score float32
	DocID uint32
}

// Selector keeps the best K entries on a min-heap whose root is the
// eviction victim. Entries are ordered by score descending with doc id
// ascending as the tie break, which makes the retained set, and therefore
// every algorithm's output, deterministic.
//
// A Selector serves exactly one evaluation: TopK drains it.
type Selector struct {
	k       int
	h       entryHeap
	drained bool
}

// NewSelector creates a selector for the best k entries.
func NewSelector(k int) *Selector {
	if k < 1 {
		k = 1
	}
	return &Selector{k: k, h: make(entryHeap, 0, k)}
}

// K returns the requested result-set size.
func (s *Selector) K() int { return s.k }

// Full reports whether K entries are held.
func (s *Selector) Full() bool { return len(s.h) == s.k }

// Threshold returns the current K-th best score, or -Inf while the selector
// is not yet full. Pruning must stay strict: skip only when a candidate's
// bound is <= this value and the selector is full, never on equality before.
func (s *Selector) Threshold() float32 {
	if len(s.h) < s.k {
		return float32(math.Inf(-1))
	}
	return s.h[0].Score
}

// WouldEnter reports whether a candidate with the given score upper bound
// could still displace the current K-th best entry.
func (s *Selector) WouldEnter(bound float32) bool {
	return bound > s.Threshold()
}

// Insert offers an entry. Returns true if the entry was retained.
//
// Once full, only a score strictly above the threshold enters; an entry
// tying the K-th best is rejected. This matches the strict bound comparison
// the pruning algorithms use, so every algorithm retains the same set even
// when scores tie at the boundary (equal-score ties inside the heap evict
// the highest doc id first).
func (s *Selector) Insert(score float32, doc uint32) bool {
	e := Entry{Score: score, DocID: doc}
	if len(s.h) < s.k {
		heap.Push(&s.h, e)
		return true
	}
	if e.Score <= s.h[0].Score {
		return false
	}
	s.h[0] = e
	heap.Fix(&s.h, 0)
	return true
}

// TopK drains the selector, returning entries sorted by score descending
// and doc id ascending among equal scores. It is destructive and valid once
// per evaluation.
func (s *Selector) TopK() []Entry {
	if s.drained {
		return nil
	}
	s.drained = true
	out := make([]Entry, len(s.h))
	copy(out, s.h)
	s.h = s.h[:0]
	sort.Slice(out, func(i, j int) bool { return beats(out[i], out[j]) })
	return out
}

// beats is the total order on entries: higher score first, then lower doc id.
func beats(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.DocID < b.DocID
}

// entryHeap is a min-heap under beats: the root is the worst retained entry.
type entryHeap []Entry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return beats(h[j], h[i]) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(Entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
