package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lexgo/bounds"
	"github.com/hupe1980/lexgo/index"
	"github.com/hupe1980/lexgo/score"
)

func buildTestIndex(t *testing.T) index.Index {
	t.Helper()
	idx, err := index.FromPostings(index.TypeSlice, 100, map[uint32][]index.Posting{
		0: {{DocID: 1, Freq: 5}, {DocID: 3, Freq: 9}, {DocID: 7, Freq: 2}, {DocID: 20, Freq: 4}, {DocID: 90, Freq: 7}},
		1: {{DocID: 2, Freq: 4}, {DocID: 3, Freq: 6}},
	})
	require.NoError(t, err)
	return idx
}

func TestScoredEndSentinel(t *testing.T) {
	idx := buildTestIndex(t)
	cursors := MakeScored(idx, score.Impact{}, []uint32{1, 42}, nil)
	require.Len(t, cursors, 2)

	c := cursors[0]
	assert.Equal(t, uint32(2), c.DocID())
	assert.Equal(t, float32(4), c.Score())

	c.Next()
	c.Next()
	assert.Equal(t, idx.NumDocs(), c.DocID(), "exhausted cursor reports the collection size")

	// Out-of-vocabulary terms start exhausted.
	assert.Equal(t, idx.NumDocs(), cursors[1].DocID())
}

func TestScoredNextGEQ(t *testing.T) {
	idx := buildTestIndex(t)
	c := MakeScored(idx, score.Impact{}, []uint32{0}, nil)[0]

	c.NextGEQ(4)
	assert.Equal(t, uint32(7), c.DocID())
	c.NextGEQ(91)
	assert.Equal(t, idx.NumDocs(), c.DocID())
}

func TestStatsCounting(t *testing.T) {
	idx := buildTestIndex(t)
	stats := &Stats{}
	c := MakeScored(idx, score.Impact{}, []uint32{0}, stats)[0]

	c.Score()
	c.Score()
	c.Next()
	c.NextGEQ(20)

	assert.Equal(t, uint64(2), stats.ScoredPostings.Load())
	assert.Equal(t, uint64(1), stats.Advances.Load())
	assert.Equal(t, uint64(1), stats.Seeks.Load())
}

func TestNilStats(t *testing.T) {
	idx := buildTestIndex(t)
	c := MakeScored(idx, score.Impact{}, []uint32{0}, nil)[0]
	assert.NotPanics(t, func() {
		c.Score()
		c.Next()
		c.NextGEQ(5)
	})
}

func TestMaxScored(t *testing.T) {
	idx := buildTestIndex(t)
	tbl, err := bounds.Build(idx, score.Impact{}, 2)
	require.NoError(t, err)

	cursors := MakeMaxScored(idx, score.Impact{}, tbl, []uint32{0, 1}, nil)
	assert.Equal(t, float32(9), cursors[0].MaxScore())
	assert.Equal(t, float32(6), cursors[1].MaxScore())
}

func TestBlockMaxBounds(t *testing.T) {
	idx := buildTestIndex(t)
	tbl, err := bounds.Build(idx, score.Impact{}, 2)
	require.NoError(t, err)

	// Term 0 blocks: (1,5)(3,9) | (7,2)(20,4) | (90,7).
	c := MakeBlockMax(idx, score.Impact{}, tbl, []uint32{0}, nil)[0]

	assert.Equal(t, float32(9), c.BlockMaxScore(1))
	assert.Equal(t, uint32(3), c.BlockMaxDocID(1))

	assert.Equal(t, float32(4), c.BlockMaxScore(7))
	assert.Equal(t, uint32(20), c.BlockMaxDocID(7))

	assert.Equal(t, float32(7), c.BlockMaxScore(25))
	assert.Equal(t, uint32(90), c.BlockMaxDocID(25))

	// Past the final block the position stays clamped.
	assert.Equal(t, float32(7), c.BlockMaxScore(95))
	assert.Equal(t, uint32(90), c.BlockMaxDocID(95))
}

func TestBlockMaxWithoutBlocks(t *testing.T) {
	idx := buildTestIndex(t)
	tbl, err := bounds.Build(idx, score.Impact{}, 2)
	require.NoError(t, err)

	// Unknown terms have a nil block list; the global bound must still hold.
	c := MakeBlockMax(idx, score.Impact{}, tbl, []uint32{42}, nil)[0]
	assert.Equal(t, float32(0), c.BlockMaxScore(10))
	assert.Equal(t, idx.NumDocs(), c.BlockMaxDocID(10))
}
