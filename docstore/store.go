package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidPath      = errors.New("invalid document path")
	// ErrReadAfterWrite is returned when a transaction reads after its
	// first write. The transaction contract requires all reads to
	// precede any write.
	ErrReadAfterWrite = errors.New("transaction read after write")
	// ErrTransactionConflict marks a transaction aborted by the backing
	// store (contention, serialization failure). Callers retry the
	// whole operation; both apply and revert are idempotent.
	ErrTransactionConflict = errors.New("transaction aborted due to conflict")
)

// Document is a stored JSON document addressed by a hierarchical path.
type Document struct {
	Path string
	Data json.RawMessage
}

// Decode unmarshals the document body into v.
func (d *Document) Decode(v interface{}) error {
	return json.Unmarshal(d.Data, v)
}

// ID returns the last path segment.
func (d *Document) ID() string {
	idx := strings.LastIndexByte(d.Path, '/')
	return d.Path[idx+1:]
}

// Tx is the handle passed to a transaction function. All Get calls
// must precede any Set or Delete; the queued writes commit atomically
// as a set.
type Tx interface {
	Get(path string) (*Document, error)
	Set(path string, value interface{}) error
	Delete(path string) error
}

// Store is a transactional key-document store. Paths are hierarchical
// (collection/id/collection/id/...); Query lists the documents directly
// under a collection path.
type Store interface {
	Get(ctx context.Context, path string) (*Document, error)
	Set(ctx context.Context, path string, value interface{}, merge bool) error
	Delete(ctx context.Context, path string) error
	Query(ctx context.Context, collectionPath string) ([]*Document, error)
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error
}

// CollectionOf returns the parent collection of a document path, or ""
// for a top-level path.
func CollectionOf(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// ValidatePath rejects empty paths and paths with empty segments. A
// document path has an even number of segments (collection/id pairs).
func ValidatePath(path string) error {
	if path == "" {
		return ErrInvalidPath
	}
	segments := strings.Split(path, "/")
	if len(segments)%2 != 0 {
		return ErrInvalidPath
	}
	for _, s := range segments {
		if s == "" {
			return ErrInvalidPath
		}
	}
	return nil
}
