package cursor

// MaxScored is a Scored cursor carrying the term's global score upper bound
// from the score-bound table.
type MaxScored struct {
	Scored
	maxScore float32
}

var _ MaxScoreCursor = (*MaxScored)(nil)

// NewMaxScored wraps a scored cursor with its term's global bound.
func NewMaxScored(s *Scored, maxScore float32) *MaxScored {
	return &MaxScored{Scored: *s, maxScore: maxScore}
}

func (c *MaxScored) MaxScore() float32 { return c.maxScore }
