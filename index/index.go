// Package index provides the read-only inverted index the query evaluator
// runs on: per-term posting lists in increasing doc-id order plus the
// collection statistics length-aware scorers need.
//
// Two interchangeable posting-list representations exist, selected at build
// or load time: plain sorted arrays and Roaring bitmaps. Both satisfy the
// same iterator contract; algorithms never know which one they traverse.
package index

// EndOfList marks an exhausted posting iterator.
const EndOfList = ^uint32(0)

// Type identifies the posting-list representation of an index.
type Type uint8

const (
	// TypeSlice stores postings as sorted doc-id and frequency arrays.
	TypeSlice Type = 1
	// TypeRoaring stores doc ids in Roaring bitmaps with rank-aligned
	// frequency arrays.
	TypeRoaring Type = 2
)

func (t Type) String() string {
	switch t {
	case TypeSlice:
		return "slice"
	case TypeRoaring:
		return "roaring"
	default:
		return "unknown"
	}
}

// ParseType parses an index type name as used by the evaluation tool.
func ParseType(s string) (Type, bool) {
	switch s {
	case "slice":
		return TypeSlice, true
	case "roaring":
		return TypeRoaring, true
	default:
		return 0, false
	}
}

// PostingIterator walks one term's posting list in increasing doc-id order.
//
// DocID returns EndOfList once the list is exhausted. Freq is undefined at
// the end of the list. NextGEQ positions the iterator on the first posting
// with doc id >= d; both representations implement it as a genuine skip
// (binary search and Roaring container seek respectively), since the pruning
// algorithms rely on sub-linear advance cost.
type PostingIterator interface {
	DocID() uint32
	Freq() uint32
	Next()
	NextGEQ(d uint32)
}

// PostingList is one term's read-only posting list.
type PostingList interface {
	Len() int
	Iterator() PostingIterator
}

// Index is a read-only inverted index handle.
//
// An Index is immutable once built or decoded and safe for concurrent use by
// any number of query evaluations.
type Index interface {
	Type() Type
	NumDocs() uint32
	NumTerms() uint32
	// Postings returns the posting list for a term. Unknown terms yield an
	// empty list, never nil.
	Postings(term uint32) PostingList
	// DocLen returns the token length of a document, used by length-aware
	// scorers such as BM25.
	DocLen(doc uint32) uint32
	AvgDocLen() float64
}

// emptyPostingList is returned for out-of-vocabulary terms.
type emptyPostingList struct{}

func (emptyPostingList) Len() int                  { return 0 }
func (emptyPostingList) Iterator() PostingIterator { return emptyIterator{} }

type emptyIterator struct{}

func (emptyIterator) DocID() uint32  { return EndOfList }
func (emptyIterator) Freq() uint32   { return 0 }
func (emptyIterator) Next()          {}
func (emptyIterator) NextGEQ(uint32) {}
