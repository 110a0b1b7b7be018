// Package cursor layers scoring and score-bound lookup onto posting
// iterators. All pruning algorithms consume posting lists exclusively
// through these cursors.
//
// A cursor's end sentinel is the collection size (NumDocs), so "docID ==
// sentinel" and "docID beyond every real document" coincide and algorithm
// loops need a single comparison.
package cursor

// Cursor iterates one term's postings in increasing doc-id order, exposing
// the term's score at the current position.
type Cursor interface {
	// DocID is the current document, or the end sentinel (the collection
	// size) once exhausted.
	DocID() uint32
	// Score is the term's contribution to the current document. Undefined
	// at the end of the list.
	Score() float32
	Next()
	NextGEQ(d uint32)
}

// MaxScoreCursor adds the term's global score upper bound, constant for the
// cursor's lifetime.
type MaxScoreCursor interface {
	Cursor
	MaxScore() float32
}

// BlockMaxCursor adds block-local score bounds: a tighter upper bound over
// the block of postings containing a given doc id.
type BlockMaxCursor interface {
	MaxScoreCursor
	// BlockMaxScore bounds every score in the block containing the first
	// posting with doc id >= d.
	BlockMaxScore(d uint32) float32
	// BlockMaxDocID is the last doc id covered by that block.
	BlockMaxDocID(d uint32) uint32
}
