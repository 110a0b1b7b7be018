package cursor

import (
	"github.com/hupe1980/lexgo/index"
	"github.com/hupe1980/lexgo/score"
)

// Scored wraps a posting iterator with a term scorer.
type Scored struct {
	it     index.PostingIterator
	scorer score.TermScorer
	end    uint32
	stats  *Stats
}

var _ Cursor = (*Scored)(nil)

// NewScored creates a scored cursor. end is the collection size, used as the
// exhausted sentinel. stats may be nil.
func NewScored(it index.PostingIterator, scorer score.TermScorer, end uint32, stats *Stats) *Scored {
	return &Scored{it: it, scorer: scorer, end: end, stats: stats}
}

func (c *Scored) DocID() uint32 {
	if d := c.it.DocID(); d != index.EndOfList {
		return d
	}
	return c.end
}

func (c *Scored) Score() float32 {
	c.stats.scored()
	return c.scorer(c.it.DocID(), c.it.Freq())
}

func (c *Scored) Next() {
	c.stats.advanced()
	c.it.Next()
}

func (c *Scored) NextGEQ(d uint32) {
	c.stats.seeked()
	c.it.NextGEQ(d)
}
