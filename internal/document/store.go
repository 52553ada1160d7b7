// Package document keeps one member's region of the shared weekly document in
// sync with a parsed report fragment.
package document

import (
	"context"

	"github.com/rezkam/weekly/internal/domain"
)

// Ref identifies a document in the store by ID and title.
type Ref struct {
	ID    string
	Title string
}

// Store is the external hierarchical document service.
type Store interface {
	// ListDocuments returns every weekly document the store knows about.
	ListDocuments(ctx context.Context) ([]Ref, error)
	// CreateDocument creates a document titled with the period key and returns its ID.
	CreateDocument(ctx context.Context, title string, blocks []domain.Block) (string, error)
	// ListTopLevelNodes returns the flat, ordered top-level nodes of a document.
	ListTopLevelNodes(ctx context.Context, docID string) ([]domain.Block, error)
	DeleteNode(ctx context.Context, nodeID string) error
	// AppendNodes inserts blocks after the node afterID, or at the end when afterID is empty.
	AppendNodes(ctx context.Context, docID, afterID string, blocks []domain.Block) error
}
