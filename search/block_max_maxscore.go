package search

import (
	"sort"

	"github.com/hupe1980/lexgo/cursor"
	"github.com/hupe1980/lexgo/topk"
)

// BlockMaxMaxScore runs MaxScore's essential/non-essential partition but
// probes a non-essential term only when its block-local bound, rather than
// its global one, could still lift the candidate over the threshold. Probes
// into known-low blocks are skipped without touching their postings.
func BlockMaxMaxScore(cursors []cursor.BlockMaxCursor, numDocs uint32, sel *topk.Selector) {
	n := len(cursors)
	if n == 0 {
		return
	}
	sort.Slice(cursors, func(i, j int) bool { return cursors[i].MaxScore() < cursors[j].MaxScore() })

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
			// The block bound is tighter than MaxScore, so a probe that a
			// global bound would pay for can still be skipped here.
			if score+c.BlockMaxScore(candidate)+prefix[i] <= sel.Threshold() {
				continue
			}
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
