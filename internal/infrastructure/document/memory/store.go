// Package memory provides an in-process document store used by the CLI dry
// runs and by tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/rezkam/weekly/internal/document"
	"github.com/rezkam/weekly/internal/domain"
)

type doc struct {
	id    string
	title string
	nodes []domain.Block
}

// Store keeps documents in memory. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	docs []*doc
}

var _ document.Store = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) ListDocuments(_ context.Context) ([]document.Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := make([]document.Ref, 0, len(s.docs))
	for _, d := range s.docs {
		refs = append(refs, document.Ref{ID: d.id, Title: d.title})
	}
	return refs, nil
}

func (s *Store) CreateDocument(_ context.Context, title string, blocks []domain.Block) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &doc{id: uuid.NewString(), title: title, nodes: assignIDs(blocks)}
	s.docs = append(s.docs, d)
	return d.id, nil
}

func (s *Store) ListTopLevelNodes(_ context.Context, docID string) ([]domain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.find(docID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(d.nodes), nil
}

// DeleteNode removes a top-level node from whichever document holds it.
func (s *Store) DeleteNode(_ context.Context, nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.docs {
		if i := indexOf(d.nodes, nodeID); i >= 0 {
			d.nodes = slices.Delete(d.nodes, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("node %s: %w", nodeID, domain.ErrNotFound)
}

func (s *Store) AppendNodes(_ context.Context, docID, afterID string, blocks []domain.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.find(docID)
	if err != nil {
		return err
	}

	at := len(d.nodes)
	if afterID != "" {
		i := indexOf(d.nodes, afterID)
		if i < 0 {
			return fmt.Errorf("anchor %s: %w", afterID, domain.ErrNotFound)
		}
		at = i + 1
	}
	d.nodes = slices.Insert(d.nodes, at, assignIDs(blocks)...)
	return nil
}

// Nodes returns the top-level nodes of a document, or nil if it does not exist.
func (s *Store) Nodes(docID string) []domain.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.find(docID)
	if err != nil {
		return nil
	}
	return slices.Clone(d.nodes)
}

func (s *Store) find(docID string) (*doc, error) {
	for _, d := range s.docs {
		if d.id == docID {
			return d, nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
}

func indexOf(nodes []domain.Block, id string) int {
	return slices.IndexFunc(nodes, func(b domain.Block) bool { return b.ID == id })
}

// assignIDs copies blocks, giving every node in the tree a fresh ID.
func assignIDs(blocks []domain.Block) []domain.Block {
	out := make([]domain.Block, 0, len(blocks))
	for _, b := range blocks {
		b.ID = uuid.NewString()
		if len(b.Children) > 0 {
			b.Children = assignIDs(b.Children)
		}
		out = append(out, b)
	}
	return out
}
