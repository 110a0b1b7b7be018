package score

import (
	"math"

	"github.com/hupe1980/lexgo/index"
)

const (
	k1 = 1.2
	b  = 0.75
)

// BM25 is the Okapi BM25 ranking function over an index's collection
// statistics.
type BM25 struct {
	idx index.Index
}

// NewBM25 creates a BM25 scorer bound to an index.
func NewBM25(idx index.Index) *BM25 {
	return &BM25{idx: idx}
}

// Term binds the term's document frequency and returns its scorer.
func (s *BM25) Term(term uint32) TermScorer {
	df := float64(s.idx.Postings(term).Len())
	n := float64(s.idx.NumDocs())
	idf := math.Log((n-df+0.5)/(df+0.5) + 1)
	avgDL := s.idx.AvgDocLen()
	if avgDL == 0 {
		avgDL = 1
	}
	idxRef := s.idx

	return func(doc uint32, freq uint32) float32 {
		tf := float64(freq)
		docLen := float64(idxRef.DocLen(doc))
		num := tf * (k1 + 1)
		denom := tf + k1*(1-b) + k1*b*docLen/avgDL
		return float32(idf * num / denom)
	}
}
