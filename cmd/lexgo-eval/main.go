// Command lexgo-eval evaluates a batch of term queries against precomputed
// index artifacts and prints one TREC run line per result to stdout.
//
// Queries are read from -queries, or from stdin when the flag is empty, one
// query per line in the form "id:t1 t2 t3" (the id prefix is optional).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/lexgo"
	s3store "github.com/hupe1980/lexgo/blobstore/s3"
	"github.com/hupe1980/lexgo/bounds"
	"github.com/hupe1980/lexgo/index"
	"github.com/hupe1980/lexgo/query"
	"github.com/hupe1980/lexgo/resource"
	"github.com/hupe1980/lexgo/search"
	"github.com/hupe1980/lexgo/trec"
)

func main() {
	var (
		dataDir     = flag.String("data", ".", "local directory containing the artifacts")
		s3Bucket    = flag.String("s3-bucket", "", "load artifacts from this S3 bucket instead of -data")
		s3Prefix    = flag.String("s3-prefix", "", "key prefix inside the S3 bucket")
		indexName   = flag.String("index", lexgo.DefaultIndexName, "index artifact name")
		typeName    = flag.String("type", "", "required index type: slice or roaring")
		boundsName  = flag.String("bounds", "", "score-bound artifact name")
		compressed  = flag.Bool("compressed-bounds", false, "require quantized score bounds")
		docsName    = flag.String("documents", "", "document map artifact name")
		queriesPath = flag.String("queries", "", "query file, stdin if empty")
		algoName    = flag.String("algorithm", "", "retrieval algorithm")
		k           = flag.Int("k", 10, "number of results per query")
		scorerName  = flag.String("scorer", "bm25", "scoring function: bm25 or impact")
		iteration   = flag.String("iteration", "Q0", "iteration label for run lines")
		runID       = flag.String("run-id", "R0", "run id for run lines")
		threads     = flag.Int("threads", 1, "number of queries evaluated concurrently")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := lexgo.NewTextLogger(level)

	if err := run(context.Background(), logger, config{
		dataDir:     *dataDir,
		s3Bucket:    *s3Bucket,
		s3Prefix:    *s3Prefix,
		indexName:   *indexName,
		typeName:    *typeName,
		boundsName:  *boundsName,
		compressed:  *compressed,
		docsName:    *docsName,
		queriesPath: *queriesPath,
		algoName:    *algoName,
		k:           *k,
		scorerName:  *scorerName,
		iteration:   *iteration,
		runID:       *runID,
		threads:     *threads,
	}); err != nil {
		// Configuration problems skip the run; anything else, in
		// particular artifact load failures, is fatal.
		if isConfigError(err) {
			logger.Error("run skipped", "error", err)
			return
		}
		logger.Error("lexgo-eval failed", "error", err)
		os.Exit(1)
	}
}

func isConfigError(err error) bool {
	var unknownAlgo *search.UnknownAlgorithmError
	var unknownScorer *lexgo.UnknownScorerError
	return errors.As(err, &unknownAlgo) ||
		errors.As(err, &unknownScorer) ||
		errors.Is(err, lexgo.ErrInvalidK) ||
		errors.Is(err, lexgo.ErrMissingBounds)
}

type config struct {
	dataDir     string
	s3Bucket    string
	s3Prefix    string
	indexName   string
	typeName    string
	boundsName  string
	compressed  bool
	docsName    string
	queriesPath string
	algoName    string
	k           int
	scorerName  string
	iteration   string
	runID       string
	threads     int
}

func run(ctx context.Context, logger *lexgo.Logger, cfg config) error {
	algo, err := search.Parse(cfg.algoName)
	if err != nil {
		return err
	}

	queries, err := readQueries(cfg.queriesPath)
	if err != nil {
		return err
	}

	opts := []lexgo.Option{
		lexgo.WithIndex(cfg.indexName),
		lexgo.WithScorer(cfg.scorerName),
		lexgo.WithLogger(logger),
	}
	if cfg.s3Bucket != "" {
		store, err := s3store.New(ctx, cfg.s3Bucket, func(o *s3store.Options) {
			o.Prefix = cfg.s3Prefix
		})
		if err != nil {
			return err
		}
		opts = append(opts, lexgo.Remote(store))
	} else {
		opts = append(opts, lexgo.Local(cfg.dataDir))
	}
	if cfg.typeName != "" {
		t, ok := index.ParseType(cfg.typeName)
		if !ok {
			return fmt.Errorf("unknown index type %q", cfg.typeName)
		}
		opts = append(opts, lexgo.WithExpectedType(t))
	}
	if cfg.boundsName != "" {
		opts = append(opts, lexgo.WithBounds(cfg.boundsName))
		if cfg.compressed {
			opts = append(opts, lexgo.WithBoundsKind(bounds.KindQuantized))
		}
	}
	if cfg.docsName != "" {
		opts = append(opts, lexgo.WithDocmap(cfg.docsName))
	}

	eng, err := lexgo.Open(ctx, opts...)
	if err != nil {
		return err
	}

	tw := trec.NewWriter(os.Stdout, cfg.iteration, cfg.runID)
	if cfg.threads > 1 {
		ctrl := resource.NewController(resource.Config{MaxWorkers: int64(cfg.threads)})
		return eng.RunParallel(ctx, queries, algo, cfg.k, tw, ctrl)
	}
	return eng.Run(ctx, queries, algo, cfg.k, tw)
}

func readQueries(path string) ([]query.Query, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return query.ReadAll(r)
}
