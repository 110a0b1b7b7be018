package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lexgo/index"
)

func buildTestIndex(t *testing.T) index.Index {
	t.Helper()
	b := index.NewBuilder(4)
	b.SetDocLen(0, 10)
	b.SetDocLen(1, 10)
	b.SetDocLen(2, 40)
	b.SetDocLen(3, 20)
	require.NoError(t, b.Add(0, 0, 3))
	require.NoError(t, b.Add(0, 2, 3))
	require.NoError(t, b.Add(1, 1, 1))
	idx, err := b.Build(index.TypeSlice)
	require.NoError(t, err)
	return idx
}

func TestBM25(t *testing.T) {
	idx := buildTestIndex(t)
	scorer := NewBM25(idx).Term(0)

	// Same frequency, shorter document scores higher.
	assert.Greater(t, scorer(0, 3), scorer(2, 3))

	// Higher frequency scores higher in the same document.
	assert.Greater(t, scorer(0, 5), scorer(0, 3))

	// Reference value: idf = ln((4-2+0.5)/(2+0.5)+1), tf part with
	// docLen=10, avgDocLen=20.
	idf := math.Log((4-2+0.5)/(2+0.5) + 1)
	tf := 3.0 * (1.2 + 1) / (3.0 + 1.2*(1-0.75) + 1.2*0.75*10.0/20.0)
	assert.InDelta(t, idf*tf, float64(scorer(0, 3)), 1e-5)
}

func TestBM25RareTermsScoreHigher(t *testing.T) {
	idx := buildTestIndex(t)
	bm25 := NewBM25(idx)

	// Term 1 appears in one document, term 0 in two.
	assert.Greater(t, bm25.Term(1)(0, 3), bm25.Term(0)(0, 3))
}

func TestImpact(t *testing.T) {
	scorer := Impact{}.Term(7)
	assert.Equal(t, float32(42), scorer(0, 42))
	assert.Equal(t, float32(42), scorer(9, 42), "impact ignores the document")
}

func TestParseFunction(t *testing.T) {
	idx := buildTestIndex(t)

	fn, ok := ParseFunction("bm25", idx)
	require.True(t, ok)
	assert.IsType(t, &BM25{}, fn)

	fn, ok = ParseFunction("impact", idx)
	require.True(t, ok)
	assert.IsType(t, Impact{}, fn)

	_, ok = ParseFunction("tfidf", idx)
	assert.False(t, ok)
}
