package index

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// roaringIndex keeps each posting list as a Roaring bitmap of doc ids plus a
// frequency array aligned by bitmap rank. Rank(docID)-1 is the position of a
// doc's frequency, which holds because ranks and doc ids sort identically.
type roaringIndex struct {
	numDocs   uint32
	docLens   []uint32
	avgDocLen float64
	bitmaps   []*roaring.Bitmap
	freqs     [][]uint32
}

func newRoaringIndex(numDocs uint32, docLens []uint32, avgDocLen float64, docs, freqs [][]uint32) *roaringIndex {
	idx := &roaringIndex{
		numDocs:   numDocs,
		docLens:   append([]uint32(nil), docLens...),
		avgDocLen: avgDocLen,
		bitmaps:   make([]*roaring.Bitmap, len(docs)),
		freqs:     make([][]uint32, len(docs)),
	}
	for term := range docs {
		bm := roaring.New()
		bm.AddMany(docs[term])
		bm.RunOptimize()
		idx.bitmaps[term] = bm
		idx.freqs[term] = append([]uint32(nil), freqs[term]...)
	}
	return idx
}

func (idx *roaringIndex) Type() Type         { return TypeRoaring }
func (idx *roaringIndex) NumDocs() uint32    { return idx.numDocs }
func (idx *roaringIndex) NumTerms() uint32   { return uint32(len(idx.bitmaps)) }
func (idx *roaringIndex) AvgDocLen() float64 { return idx.avgDocLen }

func (idx *roaringIndex) DocLen(doc uint32) uint32 {
	if doc >= uint32(len(idx.docLens)) {
		return 0
	}
	return idx.docLens[doc]
}

func (idx *roaringIndex) Postings(term uint32) PostingList {
	if term >= uint32(len(idx.bitmaps)) || idx.bitmaps[term].IsEmpty() {
		return emptyPostingList{}
	}
	return &roaringPostings{bm: idx.bitmaps[term], freqs: idx.freqs[term]}
}

type roaringPostings struct {
	bm    *roaring.Bitmap
	freqs []uint32
}

func (p *roaringPostings) Len() int { return len(p.freqs) }

func (p *roaringPostings) Iterator() PostingIterator {
	it := &roaringIterator{bm: p.bm, freqs: p.freqs, it: p.bm.Iterator()}
	it.advance()
	return it
}

type roaringIterator struct {
	bm    *roaring.Bitmap
	freqs []uint32
	it    roaring.IntPeekable
	cur   uint32
	done  bool
}

func (it *roaringIterator) advance() {
	if it.it.HasNext() {
		it.cur = it.it.Next()
	} else {
		it.done = true
	}
}

func (it *roaringIterator) DocID() uint32 {
	if it.done {
		return EndOfList
	}
	return it.cur
}

func (it *roaringIterator) Freq() uint32 {
	if it.done {
		return 0
	}
	return it.freqs[it.bm.Rank(it.cur)-1]
}

func (it *roaringIterator) Next() {
	if !it.done {
		it.advance()
	}
}

// NextGEQ seeks to the first doc id >= d using Roaring's container-level
// skip, so blocks of postings below d are never touched.
func (it *roaringIterator) NextGEQ(d uint32) {
	if it.done || it.cur >= d {
		return
	}
	it.it.AdvanceIfNeeded(d)
	it.advance()
}
