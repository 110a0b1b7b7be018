package search

import (
	"sort"

	"github.com/hupe1980/lexgo/cursor"
	"github.com/hupe1980/lexgo/topk"
)

// MaxScore partitions the terms, sorted ascending by global bound, into a
// non-essential prefix and an essential suffix. The non-essential prefix is
// the longest one whose bounds sum to at most the threshold: a document
// matching only those terms cannot unseat the current K-th best, so the
// merge is driven by the essential cursors alone and non-essential terms are
// merely probed, from the largest bound down, while they can still lift a
// candidate over the threshold.
//
// The boundary is re-derived eagerly whenever an insertion raises the
// threshold.
func MaxScore(cursors []cursor.MaxScoreCursor, numDocs uint32, sel *topk.Selector) {
	n := len(cursors)
	if n == 0 {
		return
	}
	sort.Slice(cursors, func(i, j int) bool { return cursors[i].MaxScore() < cursors[j].MaxScore() })

	// prefix[i] bounds the total contribution of cursors[0:i].
	prefix := make([]float32, n+1)
	for i, c := range cursors {
		prefix[i+1] = prefix[i] + c.MaxScore()
	}

	nonEssential := 0
	updateBoundary := func() {
		for nonEssential < n && prefix[nonEssential+1] <= sel.Threshold() {
			nonEssential++
		}
	}
	updateBoundary()

	for nonEssential < n {
		candidate := numDocs
		for _, c := range cursors[nonEssential:] {
			if d := c.DocID(); d < candidate {
				candidate = d
			}
		}
		if candidate >= numDocs {
			return
		}

		var score float32
		for _, c := range cursors[nonEssential:] {
			if c.DocID() == candidate {
				score += c.Score()
				c.Next()
			}
		}
		for i := nonEssential - 1; i >= 0; i-- {
			if score+prefix[i+1] <= sel.Threshold() {
				break
			}
			c := cursors[i]
			c.NextGEQ(candidate)
			if c.DocID() == candidate {
				score += c.Score()
			}
		}

		if sel.Insert(score, candidate) {
			updateBoundary()
		}
	}
}
