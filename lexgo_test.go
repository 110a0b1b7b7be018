package lexgo_test

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lexgo"
	"github.com/hupe1980/lexgo/blobstore"
	"github.com/hupe1980/lexgo/bounds"
	"github.com/hupe1980/lexgo/index"
	"github.com/hupe1980/lexgo/query"
	"github.com/hupe1980/lexgo/resource"
	"github.com/hupe1980/lexgo/score"
	"github.com/hupe1980/lexgo/search"
	"github.com/hupe1980/lexgo/topk"
	"github.com/hupe1980/lexgo/trec"
)

func buildTestIndex(t *testing.T) index.Index {
	t.Helper()
	idx, err := index.FromPostings(index.TypeSlice, 10, map[uint32][]index.Posting{
		0: {{DocID: 1, Freq: 5}, {DocID: 3, Freq: 9}, {DocID: 7, Freq: 2}},
		1: {{DocID: 2, Freq: 4}, {DocID: 3, Freq: 6}},
	})
	require.NoError(t, err)
	return idx
}

// buildArtifacts encodes an index, its bound table, and a docmap into an
// in-memory store, the way the artifacts would sit on disk or in a bucket.
func buildArtifacts(t *testing.T) *blobstore.MemoryStore {
	t.Helper()
	idx := buildTestIndex(t)

	var buf bytes.Buffer
	require.NoError(t, index.Encode(&buf, idx))
	store := blobstore.NewMemoryStore()
	store.Put("index.lxi", buf.Bytes())

	raw, err := bounds.Build(idx, score.Impact{}, 2)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, bounds.Encode(&buf, raw))
	store.Put("bounds.lxb", buf.Bytes())

	buf.Reset()
	require.NoError(t, bounds.Encode(&buf, bounds.Quantize(raw)))
	store.Put("bounds-quantized.lxb", buf.Bytes())

	var docmap bytes.Buffer
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&docmap, "D%02d\n", i)
	}
	store.Put("documents.txt", docmap.Bytes())

	return store
}

func openTestEngine(t *testing.T, extra ...lexgo.Option) *lexgo.Engine {
	t.Helper()
	opts := append([]lexgo.Option{
		lexgo.Remote(buildArtifacts(t)),
		lexgo.WithBounds("bounds.lxb"),
		lexgo.WithDocmap("documents.txt"),
		lexgo.WithScorer("impact"),
	}, extra...)
	eng, err := lexgo.Open(context.Background(), opts...)
	require.NoError(t, err)
	return eng
}

func TestOpenAndEvaluate(t *testing.T) {
	eng := openTestEngine(t)
	ctx := context.Background()
	q := query.Query{ID: "703", Terms: []uint32{0, 1}}

	want := []topk.Entry{
		{Score: 15, DocID: 3},
		{Score: 5, DocID: 1},
		{Score: 4, DocID: 2},
		{Score: 2, DocID: 7},
	}
	for _, algo := range []search.Algorithm{
		search.RankedOROp, search.MaxScoreOp, search.WANDOp,
		search.BlockMaxWANDOp, search.BlockMaxMaxScoreOp,
		search.RankedORTAATOp, search.RankedORTAATLazyOp,
	} {
		got, err := eng.Evaluate(ctx, q, algo, 10)
		require.NoError(t, err, algo.String())
		assert.Equal(t, want, got, algo.String())
	}

	got, err := eng.Evaluate(ctx, q, search.RankedANDOp, 10)
	require.NoError(t, err)
	assert.Equal(t, []topk.Entry{{Score: 15, DocID: 3}}, got)
}

func TestEvaluateEmptyQuery(t *testing.T) {
	eng := openTestEngine(t)
	got, err := eng.Evaluate(context.Background(), query.Query{ID: "1"}, search.RankedOROp, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEvaluateConfigErrors(t *testing.T) {
	eng := openTestEngine(t)
	ctx := context.Background()
	q := query.Query{Terms: []uint32{0}}

	_, err := eng.Evaluate(ctx, q, search.RankedOROp, 0)
	assert.ErrorIs(t, err, lexgo.ErrInvalidK)

	_, err = eng.Evaluate(ctx, q, search.Algorithm(99), 10)
	var unknown *search.UnknownAlgorithmError
	assert.ErrorAs(t, err, &unknown)

	// Without a bound table the pruning algorithms must refuse to run.
	bare, err := lexgo.New(buildTestIndex(t), lexgo.WithScorer("impact"))
	require.NoError(t, err)
	_, err = bare.Evaluate(ctx, q, search.WANDOp, 10)
	assert.ErrorIs(t, err, lexgo.ErrMissingBounds)
	_, err = bare.Evaluate(ctx, q, search.RankedOROp, 10)
	assert.NoError(t, err)
}

func TestOpenValidation(t *testing.T) {
	ctx := context.Background()

	_, err := lexgo.Open(ctx)
	assert.ErrorIs(t, err, lexgo.ErrNoStore)

	_, err = lexgo.Open(ctx, lexgo.Remote(buildArtifacts(t)), lexgo.WithIndex("missing.lxi"))
	var artifact *lexgo.ArtifactError
	require.ErrorAs(t, err, &artifact)
	assert.Equal(t, "missing.lxi", artifact.Name)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	_, err = lexgo.Open(ctx, lexgo.Remote(buildArtifacts(t)),
		lexgo.WithExpectedType(index.TypeRoaring))
	var typeErr *lexgo.IndexTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, index.TypeSlice, typeErr.Actual)

	_, err = lexgo.Open(ctx, lexgo.Remote(buildArtifacts(t)),
		lexgo.WithBounds("bounds.lxb"), lexgo.WithBoundsKind(bounds.KindQuantized))
	var kindErr *lexgo.BoundsKindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, bounds.KindRaw, kindErr.Actual)

	_, err = lexgo.Open(ctx, lexgo.Remote(buildArtifacts(t)), lexgo.WithScorer("tfidf"))
	var scorerErr *lexgo.UnknownScorerError
	require.ErrorAs(t, err, &scorerErr)
}

func TestQuantizedBoundsArtifact(t *testing.T) {
	eng, err := lexgo.Open(context.Background(),
		lexgo.Remote(buildArtifacts(t)),
		lexgo.WithBounds("bounds-quantized.lxb"),
		lexgo.WithBoundsKind(bounds.KindQuantized),
		lexgo.WithScorer("impact"),
	)
	require.NoError(t, err)

	got, err := eng.Evaluate(context.Background(), query.Query{Terms: []uint32{0, 1}}, search.BlockMaxWANDOp, 2)
	require.NoError(t, err)
	assert.Equal(t, []topk.Entry{{Score: 15, DocID: 3}, {Score: 5, DocID: 1}}, got)
}

func TestRunWritesRunFile(t *testing.T) {
	eng := openTestEngine(t)
	queries := []query.Query{
		{ID: "703", Terms: []uint32{0, 1}},
		{ID: "704", Terms: []uint32{1}},
	}

	var out bytes.Buffer
	tw := trec.NewWriter(&out, "Q0", "R0")
	require.NoError(t, eng.Run(context.Background(), queries, search.MaxScoreOp, 2, tw))

	want := "703\tQ0\tD03\t0\t15.000000\tR0\n" +
		"703\tQ0\tD01\t1\t5.000000\tR0\n" +
		"704\tQ0\tD03\t0\t6.000000\tR0\n" +
		"704\tQ0\tD02\t1\t4.000000\tR0\n"
	assert.Equal(t, want, out.String())
}

func TestRunFallsBackToOrdinalQueryID(t *testing.T) {
	eng := openTestEngine(t)
	queries := []query.Query{
		{Terms: []uint32{0, 1}},
		{ID: "704", Terms: []uint32{1}},
		{Terms: []uint32{1}},
	}

	var out bytes.Buffer
	tw := trec.NewWriter(&out, "Q0", "R0")
	require.NoError(t, eng.Run(context.Background(), queries, search.RankedOROp, 1, tw))

	want := "0\tQ0\tD03\t0\t15.000000\tR0\n" +
		"704\tQ0\tD03\t0\t6.000000\tR0\n" +
		"2\tQ0\tD03\t0\t6.000000\tR0\n"
	assert.Equal(t, want, out.String())

	var parallel bytes.Buffer
	require.NoError(t, eng.RunParallel(context.Background(), queries, search.RankedOROp, 1,
		trec.NewWriter(&parallel, "Q0", "R0"), nil))
	assert.Equal(t, want, parallel.String())
}

func TestRunParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	var queries []query.Query
	for i := 0; i < 40; i++ {
		q := query.Query{ID: fmt.Sprintf("q%d", i)}
		for j := 0; j < rng.Intn(3)+1; j++ {
			q.Terms = append(q.Terms, uint32(rng.Intn(3)))
		}
		queries = append(queries, q)
	}

	eng := openTestEngine(t)
	ctx := context.Background()

	var sequential bytes.Buffer
	require.NoError(t, eng.Run(ctx, queries, search.BlockMaxWANDOp, 3,
		trec.NewWriter(&sequential, "Q0", "R0")))

	var parallel bytes.Buffer
	ctrl := resource.NewController(resource.Config{MaxWorkers: 4})
	require.NoError(t, eng.RunParallel(ctx, queries, search.BlockMaxWANDOp, 3,
		trec.NewWriter(&parallel, "Q0", "R0"), ctrl))

	assert.Equal(t, sequential.String(), parallel.String(),
		"parallel evaluation must preserve query output order")
}

func TestRunPropagatesConfigError(t *testing.T) {
	eng := openTestEngine(t)
	var out bytes.Buffer
	err := eng.Run(context.Background(), []query.Query{{Terms: []uint32{0}}},
		search.WANDOp, -1, trec.NewWriter(&out, "Q0", "R0"))
	assert.ErrorIs(t, err, lexgo.ErrInvalidK)
	assert.Zero(t, out.Len())
}

func TestDocNameFallback(t *testing.T) {
	eng, err := lexgo.New(buildTestIndex(t), lexgo.WithScorer("impact"))
	require.NoError(t, err)
	assert.Equal(t, "7", eng.DocName(7), "without a docmap, internal ids are printed")

	withMap := openTestEngine(t)
	assert.Equal(t, "D07", withMap.DocName(7))
	assert.Equal(t, "12", withMap.DocName(12), "ids beyond the docmap fall back")
}

func TestLocalArtifacts(t *testing.T) {
	dir := t.TempDir()
	store := buildArtifacts(t)
	for _, name := range []string{"index.lxi", "bounds.lxb", "documents.txt"} {
		data, err := blobstore.ReadAll(context.Background(), store, name)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	eng, err := lexgo.Open(context.Background(),
		lexgo.Local(dir),
		lexgo.WithBounds("bounds.lxb"),
		lexgo.WithDocmap("documents.txt"),
		lexgo.WithScorer("impact"),
	)
	require.NoError(t, err)

	got, err := eng.Evaluate(context.Background(), query.Query{Terms: []uint32{0, 1}}, search.MaxScoreOp, 1)
	require.NoError(t, err)
	assert.Equal(t, []topk.Entry{{Score: 15, DocID: 3}}, got)
}

func TestMetricsAndStats(t *testing.T) {
	metrics := &lexgo.BasicMetricsCollector{}
	eng := openTestEngine(t, lexgo.WithMetricsCollector(metrics))
	ctx := context.Background()

	_, err := eng.Evaluate(ctx, query.Query{Terms: []uint32{0}}, search.RankedOROp, 10)
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.EvaluateCount)
	assert.Equal(t, int64(3), stats.ScoredPostings)
	assert.Equal(t, uint64(3), eng.Stats().ScoredPostings.Load())
}
