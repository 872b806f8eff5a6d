// Package store owns the single persisted document and is the sole access
// path to it. All mutation is serialized through an exclusive section; a
// mutator that returns an error aborts the write and the previously
// persisted state is retained.
package store

import (
	"context"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/pkg/apperror"
)

// ErrUnavailable is returned when the persistence medium cannot be read or
// written, or the document is corrupt. The store does not attempt repair.
var ErrUnavailable = apperror.New(apperror.KindStoreUnavailable, "data store unavailable")

// Store provides atomic read/mutate/write access to the document.
type Store interface {
	// View loads a consistent snapshot and passes it to fn for pure queries.
	// Views may run concurrently with each other but never with an Update.
	// fn must not retain or mutate the document.
	View(ctx context.Context, fn func(doc *domain.Document) error) error

	// Update acquires the process-wide exclusive section, loads the current
	// document, invokes fn with a mutable view and persists the result.
	// If fn returns an error nothing is written.
	Update(ctx context.Context, fn func(doc *domain.Document) error) error

	// Close releases resources held by the store.
	Close()
}
