package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ajitpratap0/vrem/pkg/codec"
	"github.com/ajitpratap0/vrem/pkg/errors"
	"github.com/ajitpratap0/vrem/pkg/models"
)

// MemoryStore keeps encoded documents in memory. Every read and write goes
// through the codec so callers see the same values a database would return.
type MemoryStore struct {
	mu         sync.RWMutex
	serializer *codec.Serializer
	docs       map[primitive.ObjectID][]byte
	order      []primitive.ObjectID
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		serializer: codec.NewSerializer(),
		docs:       make(map[primitive.ObjectID][]byte),
	}
}

// GetByName implements Store
func (s *MemoryStore) GetByName(ctx context.Context, name string) (*models.Exhibition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		e, err := s.serializer.Unmarshal(s.docs[id])
		if err != nil {
			return nil, err
		}
		if e.Name == name {
			return e, nil
		}
	}
	return nil, errors.New(errors.ErrorTypeNotFound, "exhibition not found").WithDetail("name", name)
}

// GetByID implements Store
func (s *MemoryStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Exhibition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, errors.New(errors.ErrorTypeNotFound, "exhibition not found").WithDetail("id", id.Hex())
	}
	return s.serializer.Unmarshal(doc)
}

// Save implements Store
func (s *MemoryStore) Save(ctx context.Context, e *models.Exhibition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := s.serializer.Marshal(e)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	s.docs[e.ID] = doc
	return nil
}

// DeleteByName implements Store
func (s *MemoryStore) DeleteByName(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	kept := s.order[:0]
	for _, id := range s.order {
		e, err := s.serializer.Unmarshal(s.docs[id])
		if err != nil {
			return deleted, err
		}
		if e.Name == name {
			delete(s.docs, id)
			deleted++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return deleted, nil
}

// List implements Store
func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.order))
	for _, id := range s.order {
		e, err := s.serializer.Unmarshal(s.docs[id])
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{ID: e.ID, Name: e.Name, Description: e.Description})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Close implements Store
func (s *MemoryStore) Close(context.Context) error {
	return nil
}

var (
	_ Store = (*MongoStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
