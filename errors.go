package lexgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lexgo/bounds"
	"github.com/hupe1980/lexgo/index"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrNoStore is returned by Open when no artifact store is configured.
	ErrNoStore = errors.New("no artifact store configured")

	// ErrMissingBounds is returned when the requested algorithm prunes on
	// score bounds but no bound table was loaded.
	ErrMissingBounds = errors.New("algorithm requires a score bound table")
)

// ArtifactError indicates that a named artifact could not be loaded or
// decoded.
//
// The original underlying error can be accessed via errors.Unwrap.
type ArtifactError struct {
	Name  string
	cause error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("artifact %q: %v", e.Name, e.cause)
}

func (e *ArtifactError) Unwrap() error { return e.cause }

// IndexTypeError indicates the loaded index does not have the expected
// posting-list representation.
type IndexTypeError struct {
	Expected index.Type
	Actual   index.Type
}

func (e *IndexTypeError) Error() string {
	return fmt.Sprintf("index type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// BoundsKindError indicates the loaded bound table does not have the
// expected representation (raw vs quantized).
type BoundsKindError struct {
	Expected bounds.Kind
	Actual   bounds.Kind
}

func (e *BoundsKindError) Error() string {
	return fmt.Sprintf("bound table kind mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// UnknownScorerError indicates an unrecognized scoring function name.
type UnknownScorerError struct {
	Name string
}

func (e *UnknownScorerError) Error() string {
	return fmt.Sprintf("unknown scorer %q", e.Name)
}
