package search

import (
	"github.com/hupe1980/lexgo/accumulator"
	"github.com/hupe1980/lexgo/cursor"
	"github.com/hupe1980/lexgo/topk"
)

// RankedORTAAT evaluates term-at-a-time: each cursor is walked to the end
// on its own, adding its scores into the borrowed accumulator, and the
// accumulator is drained into the selector in one final pass. Whether the
// accumulator is dense or lazy does not change the result, only its memory
// behavior.
func RankedORTAAT(cursors []cursor.Cursor, numDocs uint32, acc accumulator.Accumulator, sel *topk.Selector) {
	acc.Reset()
	for _, c := range cursors {
		for c.DocID() < numDocs {
			acc.Accumulate(c.DocID(), c.Score())
			c.Next()
		}
	}
	acc.CollectInto(sel)
}
