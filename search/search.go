// Package search implements the query processors: one top-K retrieval
// strategy per algorithm, all consuming cursors and draining into a
// topk.Selector.
//
// Every processor produces the same top-K set for the same query, index,
// scorer, and K; they differ only in how much of the posting lists they
// touch. ranked_or is the exhaustive baseline the pruning algorithms are
// tested against.
package search

import "fmt"

// Algorithm is the closed set of retrieval strategies. It is parsed once
// per run, never dispatched on per document.
type Algorithm uint8

const (
	RankedOROp Algorithm = iota + 1
	RankedANDOp
	MaxScoreOp
	WANDOp
	BlockMaxWANDOp
	BlockMaxMaxScoreOp
	RankedORTAATOp
	RankedORTAATLazyOp
)

var algorithmNames = map[Algorithm]string{
	RankedOROp:         "ranked_or",
	RankedANDOp:        "ranked_and",
	MaxScoreOp:         "maxscore",
	WANDOp:             "wand",
	BlockMaxWANDOp:     "block_max_wand",
	BlockMaxMaxScoreOp: "block_max_maxscore",
	RankedORTAATOp:     "ranked_or_taat",
	RankedORTAATLazyOp: "ranked_or_taat_lazy",
}

func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return fmt.Sprintf("algorithm(%d)", uint8(a))
}

// NeedsBounds reports whether the algorithm requires a score-bound table.
func (a Algorithm) NeedsBounds() bool {
	switch a {
	case MaxScoreOp, WANDOp, BlockMaxWANDOp, BlockMaxMaxScoreOp:
		return true
	default:
		return false
	}
}

// NeedsBlocks reports whether the algorithm requires per-block bounds on
// top of the global per-term bound.
func (a Algorithm) NeedsBlocks() bool {
	return a == BlockMaxWANDOp || a == BlockMaxMaxScoreOp
}

// TermAtATime reports whether the algorithm evaluates through an
// accumulator instead of document-at-a-time cursor alignment.
func (a Algorithm) TermAtATime() bool {
	return a == RankedORTAATOp || a == RankedORTAATLazyOp
}

// UnknownAlgorithmError is the configuration error for an unrecognized
// algorithm name.
type UnknownAlgorithmError struct {
	Name string
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("search: unsupported algorithm %q", e.Name)
}

// Parse resolves an algorithm name as used by the evaluation tool.
func Parse(name string) (Algorithm, error) {
	for a, s := range algorithmNames {
		if s == name {
			return a, nil
		}
	}
	return 0, &UnknownAlgorithmError{Name: name}
}
