package index

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDocOutOfOrder is returned when postings are added with decreasing or
// duplicate doc ids within one term.
var ErrDocOutOfOrder = errors.New("index: posting doc ids must be strictly increasing")

// Builder accumulates postings and produces an immutable Index.
//
// Builders exist so index artifacts can be created for tools and tests; query
// evaluation itself only ever sees the finished read-only Index.
type Builder struct {
	numDocs uint32
	docLens []uint32
	docs    [][]uint32
	freqs   [][]uint32
}

// NewBuilder creates a Builder for a collection of numDocs documents.
func NewBuilder(numDocs uint32) *Builder {
	return &Builder{
		numDocs: numDocs,
		docLens: make([]uint32, numDocs),
	}
}

// SetDocLen records the token length of a document.
func (b *Builder) SetDocLen(doc uint32, length uint32) {
	if doc < b.numDocs {
		b.docLens[doc] = length
	}
}

// Add appends a posting to a term's list. Doc ids must arrive in strictly
// increasing order per term and be smaller than the collection size.
func (b *Builder) Add(term, doc, freq uint32) error {
	if doc >= b.numDocs {
		return fmt.Errorf("index: doc id %d out of range (num docs %d)", doc, b.numDocs)
	}
	for uint32(len(b.docs)) <= term {
		b.docs = append(b.docs, nil)
		b.freqs = append(b.freqs, nil)
	}
	if n := len(b.docs[term]); n > 0 && b.docs[term][n-1] >= doc {
		return ErrDocOutOfOrder
	}
	b.docs[term] = append(b.docs[term], doc)
	b.freqs[term] = append(b.freqs[term], freq)
	return nil
}

// Build produces an immutable Index of the given representation. The Builder
// may be reused afterwards; the Index does not alias its slices for the
// roaring representation and takes ownership of them for the slice one.
func (b *Builder) Build(t Type) (Index, error) {
	avg := b.avgDocLen()
	switch t {
	case TypeSlice:
		return &sliceIndex{
			numDocs:   b.numDocs,
			docLens:   b.docLens,
			avgDocLen: avg,
			docs:      b.docs,
			freqs:     b.freqs,
		}, nil
	case TypeRoaring:
		return newRoaringIndex(b.numDocs, b.docLens, avg, b.docs, b.freqs), nil
	default:
		return nil, fmt.Errorf("index: unknown index type %d", t)
	}
}

func (b *Builder) avgDocLen() float64 {
	if b.numDocs == 0 {
		return 0
	}
	var total uint64
	for _, l := range b.docLens {
		total += uint64(l)
	}
	return float64(total) / float64(b.numDocs)
}

// FromPostings builds an index directly from per-term posting pairs, a
// convenience for tests and small tools. Postings may be given unsorted.
func FromPostings(t Type, numDocs uint32, postings map[uint32][]Posting) (Index, error) {
	b := NewBuilder(numDocs)
	terms := make([]uint32, 0, len(postings))
	for term := range postings {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })
	for _, term := range terms {
		ps := append([]Posting(nil), postings[term]...)
		sort.Slice(ps, func(i, j int) bool { return ps[i].DocID < ps[j].DocID })
		for _, p := range ps {
			if err := b.Add(term, p.DocID, p.Freq); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(t)
}

// Posting is one (doc id, frequency) pair of a term's list.
type Posting struct {
	DocID uint32
	Freq  uint32
}
