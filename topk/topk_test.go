package topk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorThresholdBeforeFull(t *testing.T) {
	s := NewSelector(3)

	assert.True(t, math.IsInf(float64(s.Threshold()), -1))
	assert.True(t, s.WouldEnter(0))
	assert.True(t, s.WouldEnter(-1))

	s.Insert(2.0, 1)
	s.Insert(1.0, 2)
	assert.True(t, math.IsInf(float64(s.Threshold()), -1), "threshold stays -Inf until k entries are held")

	s.Insert(3.0, 3)
	assert.True(t, s.Full())
	assert.Equal(t, float32(1.0), s.Threshold())
}

func TestSelectorKeepsBestK(t *testing.T) {
	s := NewSelector(2)
	for _, e := range []Entry{
		{Score: 0.5, DocID: 1},
		{Score: 0.9, DocID: 3},
		{Score: 0.2, DocID: 7},
	} {
		s.Insert(e.Score, e.DocID)
	}

	got := s.TopK()
	require.Len(t, got, 2)
	assert.Equal(t, Entry{Score: 0.9, DocID: 3}, got[0])
	assert.Equal(t, Entry{Score: 0.5, DocID: 1}, got[1])
}

func TestSelectorRejectsThresholdTies(t *testing.T) {
	s := NewSelector(2)
	require.True(t, s.Insert(2.0, 1))
	require.True(t, s.Insert(1.0, 2))

	assert.False(t, s.Insert(1.0, 3), "a score tying the k-th best must not enter")
	assert.False(t, s.WouldEnter(1.0))
	assert.True(t, s.Insert(1.5, 4))
	assert.Equal(t, float32(1.5), s.Threshold())
}

func TestSelectorTieOrder(t *testing.T) {
	s := NewSelector(4)
	s.Insert(1.0, 9)
	s.Insert(1.0, 2)
	s.Insert(2.0, 5)
	s.Insert(1.0, 4)

	got := s.TopK()
	require.Len(t, got, 4)
	assert.Equal(t, []Entry{
		{Score: 2.0, DocID: 5},
		{Score: 1.0, DocID: 2},
		{Score: 1.0, DocID: 4},
		{Score: 1.0, DocID: 9},
	}, got)
}

func TestSelectorThresholdNeverDecreases(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for _, k := range []int{1, 3, 10} {
		s := NewSelector(k)
		prev := float32(math.Inf(-1))
		for doc := uint32(0); doc < 500; doc++ {
			s.Insert(rng.Float32()*100, doc)
			cur := s.Threshold()
			require.GreaterOrEqual(t, cur, prev, "k=%d doc=%d", k, doc)
			prev = cur
		}
		assert.True(t, s.Full())
	}
}

func TestSelectorFewerThanK(t *testing.T) {
	s := NewSelector(10)
	s.Insert(1.0, 1)
	s.Insert(3.0, 2)

	got := s.TopK()
	require.Len(t, got, 2)
	assert.Equal(t, float32(3.0), got[0].Score)
}

func TestSelectorDrainOnce(t *testing.T) {
	s := NewSelector(2)
	s.Insert(1.0, 1)

	require.Len(t, s.TopK(), 1)
	assert.Nil(t, s.TopK())
}

func TestSelectorClampsK(t *testing.T) {
	s := NewSelector(0)
	assert.Equal(t, 1, s.K())
}
