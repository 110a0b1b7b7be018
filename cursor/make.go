package cursor

import (
	"github.com/hupe1980/lexgo/bounds"
	"github.com/hupe1980/lexgo/index"
	"github.com/hupe1980/lexgo/score"
)

// MakeScored creates one scored cursor per query term. Terms without
// postings yield cursors already positioned at the end sentinel.
func MakeScored(idx index.Index, fn score.Function, terms []uint32, stats *Stats) []Cursor {
	out := make([]Cursor, 0, len(terms))
	for _, term := range terms {
		out = append(out, NewScored(idx.Postings(term).Iterator(), fn.Term(term), idx.NumDocs(), stats))
	}
	return out
}

// MakeMaxScored creates scored cursors carrying each term's global bound.
func MakeMaxScored(idx index.Index, fn score.Function, tbl bounds.Table, terms []uint32, stats *Stats) []MaxScoreCursor {
	out := make([]MaxScoreCursor, 0, len(terms))
	for _, term := range terms {
		s := NewScored(idx.Postings(term).Iterator(), fn.Term(term), idx.NumDocs(), stats)
		out = append(out, NewMaxScored(s, tbl.MaxScore(term)))
	}
	return out
}

// MakeBlockMax creates scored cursors carrying both the global and the
// per-block bounds.
func MakeBlockMax(idx index.Index, fn score.Function, tbl bounds.Table, terms []uint32, stats *Stats) []BlockMaxCursor {
	out := make([]BlockMaxCursor, 0, len(terms))
	for _, term := range terms {
		s := NewScored(idx.Postings(term).Iterator(), fn.Term(term), idx.NumDocs(), stats)
		m := NewMaxScored(s, tbl.MaxScore(term))
		out = append(out, NewBlockMax(m, tbl.Blocks(term)))
	}
	return out
}
