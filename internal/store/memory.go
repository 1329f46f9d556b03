package store

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store used by tests and local experiments. It
// mirrors the Postgres semantics: ids are uuids, patches merge top-level
// keys, newest-first ordering follows insertion order.
type Memory struct {
	mu          sync.Mutex
	collections map[string][]*memoryDocument
}

type memoryDocument struct {
	id  string
	doc Document
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]*memoryDocument)}
}

func (s *Memory) InsertOne(_ context.Context, collection string, doc Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.collections[collection] = append(s.collections[collection], &memoryDocument{
		id:  id,
		doc: copyDocument(doc),
	})
	return id, nil
}

func (s *Memory) InsertMany(ctx context.Context, collection string, docs []Document) ([]string, error) {
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id, err := s.InsertOne(ctx, collection, doc)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Memory) Find(_ context.Context, collection string, filter Filter, opts ...FindOption) ([]Document, error) {
	var options FindOptions
	for _, opt := range opts {
		opt(&options)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := []Document{}
	entries := s.collections[collection]
	if options.NewestFirst {
		for i := len(entries) - 1; i >= 0; i-- {
			if matches(entries[i].doc, filter) {
				docs = append(docs, entries[i].document())
			}
		}
	} else {
		for _, e := range entries {
			if matches(e.doc, filter) {
				docs = append(docs, e.document())
			}
		}
	}

	if options.Limit > 0 && len(docs) > options.Limit {
		docs = docs[:options.Limit]
	}
	return docs, nil
}

func (s *Memory) FindOneAndUpdate(_ context.Context, collection, id string, patch Document) (Document, error) {
	if _, err := ParseID(id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.collections[collection] {
		if e.id == id {
			for k, v := range patch {
				e.doc[k] = v
			}
			return e.document(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) FindOneAndDelete(_ context.Context, collection, id string) (Document, error) {
	if _, err := ParseID(id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.collections[collection]
	for i, e := range entries {
		if e.id == id {
			s.collections[collection] = append(entries[:i], entries[i+1:]...)
			return e.document(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) ListCollections(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := []string{}
	for name, entries := range s.collections {
		if len(entries) > 0 {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *Memory) Available(_ context.Context) bool {
	return true
}

func (e *memoryDocument) document() Document {
	doc := copyDocument(e.doc)
	doc["_id"] = e.id
	return doc
}

func copyDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func matches(doc Document, filter Filter) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
