package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local tooling.
// Transactions are serialized under the store mutex: the callback
// reads the committed state and stages its writes, which are applied
// only if the callback returns nil. That matches the all-or-nothing
// contract of the Postgres implementation.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(ctx context.Context, path string) (*Document, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[path]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return &Document{Path: path, Data: cloneRaw(data)}, nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, value interface{}, merge bool) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", path, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if merge {
		if existing, ok := s.docs[path]; ok {
			merged, err := mergeJSON(existing, data)
			if err != nil {
				return err
			}
			s.docs[path] = merged
			return nil
		}
	}
	s.docs[path] = data
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, path)
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, collectionPath string) ([]*Document, error) {
	if collectionPath == "" {
		return nil, ErrInvalidPath
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]*Document, 0)
	for path, data := range s.docs {
		if CollectionOf(path) == collectionPath {
			docs = append(docs, &Document{Path: path, Data: cloneRaw(data)})
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

func (s *MemoryStore) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &memoryTx{
		store:   s,
		writes:  make(map[string]json.RawMessage),
		deletes: make(map[string]bool),
	}
	if err := fn(tx); err != nil {
		return err
	}
	for path := range tx.deletes {
		delete(s.docs, path)
	}
	for path, data := range tx.writes {
		s.docs[path] = data
	}
	return nil
}

// Len returns the number of stored documents. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

type memoryTx struct {
	store   *MemoryStore
	writes  map[string]json.RawMessage
	deletes map[string]bool
	wrote   bool
}

func (t *memoryTx) Get(path string) (*Document, error) {
	if t.wrote {
		return nil, ErrReadAfterWrite
	}
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	data, ok := t.store.docs[path]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return &Document{Path: path, Data: cloneRaw(data)}, nil
}

func (t *memoryTx) Set(path string, value interface{}) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", path, err)
	}
	t.wrote = true
	delete(t.deletes, path)
	t.writes[path] = data
	return nil
}

func (t *memoryTx) Delete(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	t.wrote = true
	delete(t.writes, path)
	t.deletes[path] = true
	return nil
}

func cloneRaw(data json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(data))
	copy(out, data)
	return out
}

// mergeJSON does a shallow key merge of two JSON objects, matching the
// jsonb || operator used by the Postgres implementation.
func mergeJSON(existing, incoming json.RawMessage) (json.RawMessage, error) {
	var base, patch map[string]json.RawMessage
	if err := json.Unmarshal(existing, &base); err != nil {
		return nil, fmt.Errorf("merge target is not an object: %w", err)
	}
	if err := json.Unmarshal(incoming, &patch); err != nil {
		return nil, fmt.Errorf("merge value is not an object: %w", err)
	}
	for k, v := range patch {
		base[k] = v
	}
	merged, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// JoinPath builds a document path from segments. Helper for callers
// assembling ad-hoc paths in tests.
func JoinPath(segments ...string) string {
	return strings.Join(segments, "/")
}
