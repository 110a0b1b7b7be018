package search

import (
	"github.com/hupe1980/lexgo/cursor"
	"github.com/hupe1980/lexgo/topk"
)

// RankedAND scores only documents present in every term's posting list,
// using a leapfrog intersection: each cursor seeks to the current candidate,
// and any mismatch promotes the larger doc id to the new candidate.
func RankedAND(cursors []cursor.Cursor, numDocs uint32, sel *topk.Selector) {
	if len(cursors) == 0 {
		return
	}
	var candidate uint32
	for _, c := range cursors {
		if d := c.DocID(); d > candidate {
			candidate = d
		}
	}
	for candidate < numDocs {
		aligned := true
		for _, c := range cursors {
			c.NextGEQ(candidate)
			if d := c.DocID(); d != candidate {
				candidate = d
				aligned = false
				break
			}
		}
		if !aligned {
			continue
		}
		var score float32
		for _, c := range cursors {
			score += c.Score()
		}
		sel.Insert(score, candidate)
		cursors[0].Next()
		candidate = cursors[0].DocID()
	}
}
