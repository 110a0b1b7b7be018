package index

import "sort"

// sliceIndex keeps each posting list as a pair of parallel sorted arrays.
type sliceIndex struct {
	numDocs   uint32
	docLens   []uint32
	avgDocLen float64
	docs      [][]uint32
	freqs     [][]uint32
}

func (idx *sliceIndex) Type() Type         { return TypeSlice }
func (idx *sliceIndex) NumDocs() uint32    { return idx.numDocs }
func (idx *sliceIndex) NumTerms() uint32   { return uint32(len(idx.docs)) }
func (idx *sliceIndex) AvgDocLen() float64 { return idx.avgDocLen }

func (idx *sliceIndex) DocLen(doc uint32) uint32 {
	if doc >= uint32(len(idx.docLens)) {
		return 0
	}
	return idx.docLens[doc]
}

func (idx *sliceIndex) Postings(term uint32) PostingList {
	if term >= uint32(len(idx.docs)) || len(idx.docs[term]) == 0 {
		return emptyPostingList{}
	}
	return &slicePostings{docs: idx.docs[term], freqs: idx.freqs[term]}
}

type slicePostings struct {
	docs  []uint32
	freqs []uint32
}

func (p *slicePostings) Len() int { return len(p.docs) }

func (p *slicePostings) Iterator() PostingIterator {
	return &sliceIterator{docs: p.docs, freqs: p.freqs}
}

type sliceIterator struct {
	docs  []uint32
	freqs []uint32
	pos   int
}

func (it *sliceIterator) DocID() uint32 {
	if it.pos >= len(it.docs) {
		return EndOfList
	}
	return it.docs[it.pos]
}

func (it *sliceIterator) Freq() uint32 {
	if it.pos >= len(it.docs) {
		return 0
	}
	return it.freqs[it.pos]
}

func (it *sliceIterator) Next() {
	if it.pos < len(it.docs) {
		it.pos++
	}
}

// NextGEQ advances by binary search over the remaining suffix.
func (it *sliceIterator) NextGEQ(d uint32) {
	if it.pos >= len(it.docs) || it.docs[it.pos] >= d {
		return
	}
	rest := it.docs[it.pos:]
	it.pos += sort.Search(len(rest), func(i int) bool { return rest[i] >= d })
}
