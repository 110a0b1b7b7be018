// Package accumulator provides the per-document running scores used by
// term-at-a-time evaluation. The dense and lazy variants are behaviorally
// identical; they differ only in how memory is materialized and reset.
package accumulator

import "github.com/hupe1980/lexgo/topk"

// Accumulator maps doc ids to running scores for one query at a time.
// Implementations are not safe for concurrent use; each query evaluation
// borrows one exclusively and Resets it before reuse.
type Accumulator interface {
	// Reset clears all scores, preparing the accumulator for the next
	// query.
	Reset()
	// Accumulate adds delta to the document's running score.
	Accumulate(doc uint32, delta float32)
	// CollectInto offers every non-zero score to the selector, in
	// increasing doc-id order.
	CollectInto(sel *topk.Selector)
}

// Dense preallocates one float32 per document in the collection.
type Dense struct {
	scores []float32
}

var _ Accumulator = (*Dense)(nil)

// NewDense creates a dense accumulator for numDocs documents.
func NewDense(numDocs uint32) *Dense {
	return &Dense{scores: make([]float32, numDocs)}
}

func (a *Dense) Reset() {
	clear(a.scores)
}

func (a *Dense) Accumulate(doc uint32, delta float32) {
	a.scores[doc] += delta
}

func (a *Dense) CollectInto(sel *topk.Selector) {
	for doc, s := range a.scores {
		if s != 0 {
			sel.Insert(s, uint32(doc))
		}
	}
}
