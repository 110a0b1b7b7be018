package search

import (
	"sort"

	"github.com/hupe1980/lexgo/cursor"
	"github.com/hupe1980/lexgo/topk"
)

// WAND keeps the cursors sorted by current doc id and scans them in that
// order, summing global bounds until the running sum exceeds the threshold.
// The cursor where that happens is the pivot; no document before the pivot's
// doc id can enter the top K. If the leading cursors already sit on the
// pivot document it is evaluated fully, otherwise they are realigned to it
// with NextGEQ and the scan repeats.
func WAND(cursors []cursor.MaxScoreCursor, numDocs uint32, sel *topk.Selector) {
	if len(cursors) == 0 {
		return
	}
	ordered := make([]cursor.MaxScoreCursor, len(cursors))
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
	}
}

// findPivot returns the first index at which the cumulative global bound
// beats the threshold, or -1 if even the full sum cannot.
func findPivot[C cursor.MaxScoreCursor](ordered []C, sel *topk.Selector) int {
	var bound float32
	for i, c := range ordered {
		bound += c.MaxScore()
		if sel.WouldEnter(bound) {
			return i
		}
	}
	return -1
}
