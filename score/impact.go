package score

// Impact treats the stored frequency as a precomputed impact score. It is
// used with impact-ordered or quantized indexes, where the scoring work
// happened at build time.
type Impact struct{}

// Term returns the identity scorer.
func (Impact) Term(uint32) TermScorer {
	return func(_ uint32, freq uint32) float32 {
		return float32(freq)
	}
}
