// Package bounds implements the per-term score-bound table consumed by the
// pruning algorithms: a global maximum score per term plus per-block maxima
// over fixed-size runs of postings.
//
// The table exists in two interchangeable representations: Raw keeps exact
// float32 bounds, Quantized stores one byte per bound. Both uphold the same
// invariant: a bound is never smaller than any true score it covers, which is
// what makes skipping on it safe. Quantization therefore always rounds up.
package bounds

import (
	"errors"

	"github.com/hupe1980/lexgo/index"
	"github.com/hupe1980/lexgo/score"
)

// DefaultBlockLen is the number of postings covered by one block bound.
const DefaultBlockLen = 128

// Kind discriminates the on-disk and in-memory bound representation.
type Kind uint8

const (
	KindRaw Kind = iota + 1
	KindQuantized
)

// Table is the read-only score-bound handle, shared across queries.
type Table interface {
	Kind() Kind
	NumTerms() uint32
	// MaxScore is the term's score upper bound over its whole posting list.
	// Unknown terms yield 0.
	MaxScore(term uint32) float32
	// Blocks returns the term's block bounds, nil for unknown terms.
	Blocks(term uint32) BlockList
}

// BlockList is an ordered sequence of block bounds. Blocks partition a
// term's posting list into contiguous runs; LastDocID(i) is the greatest doc
// id covered by block i and MaxScore(i) bounds every score inside it.
type BlockList interface {
	NumBlocks() int
	LastDocID(i int) uint32
	MaxScore(i int) float32
}

var errNoPostings = errors.New("bounds: index has no terms")

// Build computes a Raw table from an index and scorer. blockLen postings are
// covered per block bound; blockLen <= 0 selects DefaultBlockLen.
func Build(idx index.Index, fn score.Function, blockLen int) (*Raw, error) {
	if idx.NumTerms() == 0 {
		return nil, errNoPostings
	}
	if blockLen <= 0 {
		blockLen = DefaultBlockLen
	}

	t := &Raw{
		blockLen: blockLen,
		maxes:    make([]float32, idx.NumTerms()),
		lasts:    make([][]uint32, idx.NumTerms()),
		bmax:     make([][]float32, idx.NumTerms()),
	}
	for term := uint32(0); term < idx.NumTerms(); term++ {
		scorer := fn.Term(term)
		it := idx.Postings(term).Iterator()

		var (
			termMax  float32
			blockMax float32
			inBlock  int
			lastDoc  uint32
		)
		for it.DocID() != index.EndOfList {
			s := scorer(it.DocID(), it.Freq())
			if s > termMax {
				termMax = s
			}
			if s > blockMax {
				blockMax = s
			}
			lastDoc = it.DocID()
			inBlock++
			if inBlock == blockLen {
				t.lasts[term] = append(t.lasts[term], lastDoc)
				t.bmax[term] = append(t.bmax[term], blockMax)
				blockMax = 0
				inBlock = 0
			}
			it.Next()
		}
		if inBlock > 0 {
			t.lasts[term] = append(t.lasts[term], lastDoc)
			t.bmax[term] = append(t.bmax[term], blockMax)
		}
		t.maxes[term] = termMax
	}
	return t, nil
}
