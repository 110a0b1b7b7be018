// Package score provides the additive term scorers used by query
// evaluation. A scorer binds per-term statistics once and is then called for
// every posting the evaluation touches, so TermScorer must stay allocation
// free.
package score

import "github.com/hupe1980/lexgo/index"

// TermScorer computes the contribution of one term to one document.
type TermScorer func(doc uint32, freq uint32) float32

// Function produces a TermScorer per term id.
type Function interface {
	Term(term uint32) TermScorer
}

// ParseFunction builds a named scorer over an index. Recognized names are
// "bm25" and "impact".
func ParseFunction(name string, idx index.Index) (Function, bool) {
	switch name {
	case "bm25":
		return NewBM25(idx), true
	case "impact":
		return Impact{}, true
	default:
		return nil, false
	}
}
