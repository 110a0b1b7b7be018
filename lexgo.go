// Package lexgo provides top-K query evaluation over precomputed inverted
// index artifacts.
//
// Lexgo loads an immutable index, an optional score-bound table, and an
// optional document map, then evaluates term queries with one of several
// retrieval algorithms:
//
//   - ranked_or, ranked_and: exhaustive document-at-a-time evaluation
//   - maxscore, wand: dynamic pruning on per-term score bounds
//   - block_max_wand, block_max_maxscore: pruning on per-block bounds
//   - ranked_or_taat, ranked_or_taat_lazy: term-at-a-time via accumulators
//
// All algorithms return the same top-K set for the same query; the pruning
// variants only touch fewer postings.
//
// # Quick Start
//
//	ctx := context.Background()
//	eng, err := lexgo.Open(ctx,
//	    lexgo.Local("./artifacts"),
//	    lexgo.WithBounds("bounds.lxb"),
//	    lexgo.WithDocmap("documents.txt"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	q, _ := query.Parse("703:17 42 108")
//	results, err := eng.Evaluate(ctx, q, search.BlockMaxWANDOp, 10)
//
// Batch evaluation with TREC run output:
//
//	tw := trec.NewWriter(os.Stdout, "Q0", "R0")
//	err = eng.Run(ctx, queries, search.MaxScoreOp, 10, tw)
//
// Artifacts can also live in object storage; see blobstore/s3 and
// blobstore/minio.
package lexgo

import (
	"bytes"
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lexgo/accumulator"
	"github.com/hupe1980/lexgo/blobstore"
	"github.com/hupe1980/lexgo/bounds"
	"github.com/hupe1980/lexgo/cursor"
	"github.com/hupe1980/lexgo/index"
	"github.com/hupe1980/lexgo/query"
	"github.com/hupe1980/lexgo/resource"
	"github.com/hupe1980/lexgo/score"
	"github.com/hupe1980/lexgo/search"
	"github.com/hupe1980/lexgo/topk"
	"github.com/hupe1980/lexgo/trec"
)

// Engine evaluates queries against one loaded index. Safe for concurrent
// use: all loaded artifacts are read-only and per-query state is created or
// pooled per evaluation.
type Engine struct {
	idx     index.Index
	tbl     bounds.Table // nil when no bound table was loaded
	fn      score.Function
	docmap  []string // nil when no document map was loaded
	logger  *Logger
	metrics MetricsCollector
	stats   cursor.Stats

	dense sync.Pool
	lazy  sync.Pool
}

// Open loads the configured artifacts from the store and returns an engine.
// Any artifact that fails to load or decode aborts the open.
func Open(ctx context.Context, optFns ...Option) (*Engine, error) {
	o := applyOptions(optFns)
	if o.store == nil {
		return nil, ErrNoStore
	}

	data, err := loadArtifact(ctx, &o, o.indexName)
	if err != nil {
		return nil, err
	}
	idx, err := index.Decode(data)
	if err != nil {
		return nil, &ArtifactError{Name: o.indexName, cause: err}
	}
	if o.expectedType != 0 && idx.Type() != o.expectedType {
		return nil, &IndexTypeError{Expected: o.expectedType, Actual: idx.Type()}
	}

	tbl := o.boundsTable
	if tbl == nil && o.boundsName != "" {
		data, err := loadArtifact(ctx, &o, o.boundsName)
		if err != nil {
			return nil, err
		}
		if tbl, err = bounds.Decode(data); err != nil {
			return nil, &ArtifactError{Name: o.boundsName, cause: err}
		}
	}
	if tbl != nil && o.boundsKind != 0 && tbl.Kind() != o.boundsKind {
		return nil, &BoundsKindError{Expected: o.boundsKind, Actual: tbl.Kind()}
	}

	docmap := o.docNames
	if docmap == nil && o.docmapName != "" {
		data, err := loadArtifact(ctx, &o, o.docmapName)
		if err != nil {
			return nil, err
		}
		if docmap, err = trec.LoadDocmap(bytes.NewReader(data)); err != nil {
			return nil, &ArtifactError{Name: o.docmapName, cause: err}
		}
	}

	return newEngine(idx, tbl, docmap, o)
}

// New creates an engine around an already built index, bypassing artifact
// loading. Bound tables and document maps are injected with WithBoundsTable
// and WithDocNames.
func New(idx index.Index, optFns ...Option) (*Engine, error) {
	o := applyOptions(optFns)
	if o.expectedType != 0 && idx.Type() != o.expectedType {
		return nil, &IndexTypeError{Expected: o.expectedType, Actual: idx.Type()}
	}
	if o.boundsTable != nil && o.boundsKind != 0 && o.boundsTable.Kind() != o.boundsKind {
		return nil, &BoundsKindError{Expected: o.boundsKind, Actual: o.boundsTable.Kind()}
	}
	return newEngine(idx, o.boundsTable, o.docNames, o)
}

func newEngine(idx index.Index, tbl bounds.Table, docmap []string, o options) (*Engine, error) {
	fn, ok := score.ParseFunction(o.scorerName, idx)
	if !ok {
		return nil, &UnknownScorerError{Name: o.scorerName}
	}

	e := &Engine{
		idx:     idx,
		tbl:     tbl,
		fn:      fn,
		docmap:  docmap,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
	e.dense.New = func() any { return accumulator.NewDense(idx.NumDocs()) }
	e.lazy.New = func() any { return accumulator.NewLazy(idx.NumDocs()) }
	return e, nil
}

func loadArtifact(ctx context.Context, o *options, name string) ([]byte, error) {
	start := time.Now()
	data, err := blobstore.ReadAll(ctx, o.store, name)
	o.metricsCollector.RecordLoad(len(data), time.Since(start), err)
	o.logger.LogLoad(ctx, name, len(data), err)
	if err != nil {
		return nil, &ArtifactError{Name: name, cause: err}
	}
	return data, nil
}

// Index returns the loaded index.
func (e *Engine) Index() index.Index { return e.idx }

// Bounds returns the loaded bound table, nil if none.
func (e *Engine) Bounds() bounds.Table { return e.tbl }

// Stats returns cumulative cursor counters across all evaluations.
func (e *Engine) Stats() *cursor.Stats { return &e.stats }

// Evaluate runs one query and returns the top k results in rank order.
// An empty query returns no results and no error.
func (e *Engine) Evaluate(ctx context.Context, q query.Query, algo search.Algorithm, k int) ([]topk.Entry, error) {
	start := time.Now()
	results, stats, err := e.evaluate(q, algo, k)

	scored := stats.ScoredPostings.Load()
	e.stats.ScoredPostings.Add(scored)
	e.stats.Seeks.Add(stats.Seeks.Load())
	e.stats.Advances.Add(stats.Advances.Load())

	e.metrics.RecordEvaluate(k, scored, time.Since(start), err)
	e.logger.LogEvaluate(ctx, q.ID, k, len(results), err)
	return results, err
}

func (e *Engine) evaluate(q query.Query, algo search.Algorithm, k int) ([]topk.Entry, *cursor.Stats, error) {
	stats := &cursor.Stats{}
	if k <= 0 {
		return nil, stats, ErrInvalidK
	}
	if algo.NeedsBounds() && e.tbl == nil {
		return nil, stats, ErrMissingBounds
	}
	if _, err := algoName(algo); err != nil {
		return nil, stats, err
	}

	sel := topk.NewSelector(k)
	numDocs := e.idx.NumDocs()

	switch algo {
	case search.RankedOROp:
		search.RankedOR(cursor.MakeScored(e.idx, e.fn, q.Terms, stats), numDocs, sel)
	case search.RankedANDOp:
		search.RankedAND(cursor.MakeScored(e.idx, e.fn, q.Terms, stats), numDocs, sel)
	case search.MaxScoreOp:
		search.MaxScore(cursor.MakeMaxScored(e.idx, e.fn, e.tbl, q.Terms, stats), numDocs, sel)
	case search.WANDOp:
		search.WAND(cursor.MakeMaxScored(e.idx, e.fn, e.tbl, q.Terms, stats), numDocs, sel)
	case search.BlockMaxWANDOp:
		search.BlockMaxWAND(cursor.MakeBlockMax(e.idx, e.fn, e.tbl, q.Terms, stats), numDocs, sel)
	case search.BlockMaxMaxScoreOp:
		search.BlockMaxMaxScore(cursor.MakeBlockMax(e.idx, e.fn, e.tbl, q.Terms, stats), numDocs, sel)
	case search.RankedORTAATOp:
		acc := e.dense.Get().(*accumulator.Dense)
		search.RankedORTAAT(cursor.MakeScored(e.idx, e.fn, q.Terms, stats), numDocs, acc, sel)
		e.dense.Put(acc)
	case search.RankedORTAATLazyOp:
		acc := e.lazy.Get().(*accumulator.Lazy)
		search.RankedORTAAT(cursor.MakeScored(e.idx, e.fn, q.Terms, stats), numDocs, acc, sel)
		e.lazy.Put(acc)
	}

	return sel.TopK(), stats, nil
}

func algoName(a search.Algorithm) (string, error) {
	switch a {
	case search.RankedOROp, search.RankedANDOp, search.MaxScoreOp, search.WANDOp,
		search.BlockMaxWANDOp, search.BlockMaxMaxScoreOp,
		search.RankedORTAATOp, search.RankedORTAATLazyOp:
		return a.String(), nil
	default:
		return "", &search.UnknownAlgorithmError{Name: a.String()}
	}
}

// DocName translates an internal doc id to its external name. Ids outside
// the document map print as decimal numbers.
func (e *Engine) DocName(doc uint32) string {
	if int(doc) < len(e.docmap) {
		return e.docmap[doc]
	}
	return strconv.FormatUint(uint64(doc), 10)
}

// Run evaluates every query in order and writes one run line per result.
// The writer is flushed before Run returns.
func (e *Engine) Run(ctx context.Context, queries []query.Query, algo search.Algorithm, k int, tw *trec.Writer) error {
	start := time.Now()
	err := e.run(ctx, queries, algo, k, tw)
	e.metrics.RecordRun(len(queries), time.Since(start), err)
	e.logger.LogRun(ctx, len(queries), time.Since(start), err)
	return err
}

func (e *Engine) run(ctx context.Context, queries []query.Query, algo search.Algorithm, k int, tw *trec.Writer) error {
	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return err
		}
		results, err := e.Evaluate(ctx, q, algo, k)
		if err != nil {
			return err
		}
		if err := e.writeResults(tw, queryID(q, i), results); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// RunParallel evaluates queries concurrently under the controller's limits
// and writes results in query order, identical to Run's output.
func (e *Engine) RunParallel(ctx context.Context, queries []query.Query, algo search.Algorithm, k int, tw *trec.Writer, ctrl *resource.Controller) error {
	start := time.Now()
	err := e.runParallel(ctx, queries, algo, k, tw, ctrl)
	e.metrics.RecordRun(len(queries), time.Since(start), err)
	e.logger.LogRun(ctx, len(queries), time.Since(start), err)
	return err
}

func (e *Engine) runParallel(ctx context.Context, queries []query.Query, algo search.Algorithm, k int, tw *trec.Writer, ctrl *resource.Controller) error {
	if ctrl == nil {
		ctrl = resource.NewController(resource.Config{})
	}

	ranked := make([][]topk.Entry, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		if err := ctrl.AcquireWorker(gctx); err != nil {
			// A failed acquire means gctx is done; surface the workers'
			// error rather than the cancellation.
			break
		}
		g.Go(func() error {
			defer ctrl.ReleaseWorker()
			results, err := e.Evaluate(gctx, q, algo, k)
			if err != nil {
				return err
			}
			ranked[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, q := range queries {
		if err := e.writeResults(tw, queryID(q, i), ranked[i]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// queryID returns the run-line query id, falling back to the query's
// position in the batch when the input carried no id prefix.
func queryID(q query.Query, ord int) string {
	if q.ID != "" {
		return q.ID
	}
	return strconv.Itoa(ord)
}

func (e *Engine) writeResults(tw *trec.Writer, qid string, results []topk.Entry) error {
	for rank, r := range results {
		if err := tw.WriteResult(qid, e.DocName(r.DocID), rank, r.Score); err != nil {
			return err
		}
	}
	return nil
}
