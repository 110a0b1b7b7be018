package search

import (
	"sort"

	"github.com/hupe1980/lexgo/cursor"
	"github.com/hupe1980/lexgo/topk"
)

// BlockMaxWAND follows WAND's control flow but re-verifies every pivot
// against the block-local bounds before paying for an evaluation. When the
// tighter sum falls back under the threshold the pivot's whole
// neighbourhood is known to be low scoring, so instead of realigning, the
// cursor whose current block ends first is jumped past its block boundary.
func BlockMaxWAND(cursors []cursor.BlockMaxCursor, numDocs uint32, sel *topk.Selector) {
	if len(cursors) == 0 {
		return
	}
	ordered := make([]cursor.BlockMaxCursor, len(cursors))
	copy(ordered, cursors)
	byDocID := func() {
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].DocID() < ordered[j].DocID() })
	}
	byDocID()

	for {
		pivot := findPivot(ordered, sel)
		if pivot < 0 {
			return
		}
		pivotDoc := ordered[pivot].DocID()
		if pivotDoc >= numDocs {
			return
		}
		// Fold in every cursor already sitting on the pivot document, so
		// the block-bound check below accounts for all of its terms.
		for pivot+1 < len(ordered) && ordered[pivot+1].DocID() == pivotDoc {
			pivot++
		}

		var blockBound float32
		for _, c := range ordered[:pivot+1] {
			blockBound += c.BlockMaxScore(pivotDoc)
		}

		if sel.WouldEnter(blockBound) {
			if ordered[0].DocID() == pivotDoc {
				var score float32
				for _, c := range ordered {
					if c.DocID() != pivotDoc {
						break
					}
					score += c.Score()
					c.Next()
				}
				sel.Insert(score, pivotDoc)
			} else {
				for _, c := range ordered[:pivot] {
					c.NextGEQ(pivotDoc)
				}
			}
			byDocID()
			continue
		}

		// The pivot's blocks cannot produce a contender. Skip past the
		// first block boundary rather than decompressing any of them, but
		// never beyond the next cursor's document, which may still add a
		// term the bound above did not include.
		jump := ordered[0]
		next := jump.BlockMaxDocID(pivotDoc) + 1
		for _, c := range ordered[1 : pivot+1] {
			if b := c.BlockMaxDocID(pivotDoc) + 1; b < next {
				next = b
				jump = c
			}
		}
		if pivot+1 < len(ordered) {
			if d := ordered[pivot+1].DocID(); d < next {
				next = d
			}
		}
		jump.NextGEQ(next)
		byDocID()
	}
}
