package lexgo

import (
	"log/slog"

	"github.com/hupe1980/lexgo/blobstore"
	"github.com/hupe1980/lexgo/bounds"
	"github.com/hupe1980/lexgo/index"
)

// DefaultIndexName is the artifact name Open loads the index from unless
// WithIndex overrides it.
const DefaultIndexName = "index.lxi"

type options struct {
	store blobstore.Store

	indexName  string
	boundsName string
	docmapName string

	scorerName   string
	expectedType index.Type
	boundsKind   bounds.Kind

	boundsTable bounds.Table
	docNames    []string

	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Open/New behavior.
type Option func(*options)

// Local configures artifact loading from a directory on the local
// filesystem.
func Local(dir string) Option {
	return func(o *options) {
		o.store = blobstore.NewLocalStore(dir)
	}
}

// Remote configures artifact loading from an arbitrary store, e.g. one of
// the blobstore/s3 or blobstore/minio backends.
func Remote(store blobstore.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithIndex overrides the index artifact name.
func WithIndex(name string) Option {
	return func(o *options) {
		if name != "" {
			o.indexName = name
		}
	}
}

// WithBounds configures the score-bound artifact to load. Without it, no
// bound table is loaded and only the non-pruning algorithms can run.
func WithBounds(name string) Option {
	return func(o *options) {
		o.boundsName = name
	}
}

// WithDocmap configures the document-map artifact to load. Without it, run
// output falls back to printing internal doc ids.
func WithDocmap(name string) Option {
	return func(o *options) {
		o.docmapName = name
	}
}

// WithScorer selects the scoring function by name ("bm25" or "impact").
// The default is "bm25".
func WithScorer(name string) Option {
	return func(o *options) {
		o.scorerName = name
	}
}

// WithExpectedType makes Open fail when the loaded index does not use the
// given posting-list representation.
func WithExpectedType(t index.Type) Option {
	return func(o *options) {
		o.expectedType = t
	}
}

// WithBoundsKind makes Open fail when the loaded bound table does not have
// the given representation. Use bounds.KindQuantized to insist on
// compressed bounds.
func WithBoundsKind(k bounds.Kind) Option {
	return func(o *options) {
		o.boundsKind = k
	}
}

// WithBoundsTable injects an already built bound table. Takes precedence
// over WithBounds.
func WithBoundsTable(t bounds.Table) Option {
	return func(o *options) {
		o.boundsTable = t
	}
}

// WithDocNames injects an already loaded document map. Takes precedence
// over WithDocmap.
func WithDocNames(names []string) Option {
	return func(o *options) {
		o.docNames = names
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		indexName:        DefaultIndexName,
		scorerName:       "bm25",
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
