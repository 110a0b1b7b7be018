// Package blobstore abstracts read-only access to the immutable artifacts
// query evaluation runs on: the index, the score-bound table, and the
// document map. Artifacts may live on the local file system (memory-mapped),
// in memory (tests), or in object storage.
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error satisfying errors.Is(err, ErrNotFound);
// the default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// Store provides read access to named blobs.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to one artifact.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the blob size in bytes.
	Size() int64
}

// Mappable is an optional Blob interface for zero-copy access. The returned
// slice is valid until the blob is closed.
type Mappable interface {
	Bytes() ([]byte, error)
}

// ReadAll fetches a whole blob, using the zero-copy view when the blob
// supports it. The returned slice is owned by the caller.
func ReadAll(ctx context.Context, store Store, name string) ([]byte, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if m, ok := b.(Mappable); ok {
		view, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(view))
		copy(out, view)
		return out, nil
	}

	out := make([]byte, b.Size())
	if _, err := io.ReadFull(io.NewSectionReader(b, 0, b.Size()), out); err != nil {
		return nil, err
	}
	return out, nil
}
