package search

import (
	"github.com/hupe1980/lexgo/cursor"
	"github.com/hupe1980/lexgo/topk"
)

// RankedOR scores every document present in any term's posting list: a
// document-at-a-time merge of all cursors with no pruning. It is the
// correctness baseline for the pruning strategies.
func RankedOR(cursors []cursor.Cursor, numDocs uint32, sel *topk.Selector) {
	if len(cursors) == 0 {
		return
	}
	cur := numDocs
	for _, c := range cursors {
		if d := c.DocID(); d < cur {
			cur = d
		}
	}
	for cur < numDocs {
		var score float32
		next := numDocs
		for _, c := range cursors {
			if c.DocID() == cur {
				score += c.Score()
				c.Next()
			}
			if d := c.DocID(); d < next {
				next = d
			}
		}
		sel.Insert(score, cur)
		cur = next
	}
}
