package notion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/rezkam/weekly/internal/document"
	"github.com/rezkam/weekly/internal/domain"
)

// DocumentStore keeps weekly pages in a Notion database, one page per period.
type DocumentStore struct {
	client     *Client
	databaseID string
}

var _ document.Store = (*DocumentStore)(nil)

// NewDocumentStore creates a document store over the report database.
func NewDocumentStore(client *Client, databaseID string) *DocumentStore {
	return &DocumentStore{client: client, databaseID: databaseID}
}

// ListDocuments returns every page of the report database with its title.
func (s *DocumentStore) ListDocuments(ctx context.Context) ([]document.Ref, error) {
	var (
		refs   []document.Ref
		cursor string
	)
	for {
		resp, err := s.client.queryDatabase(ctx, s.databaseID, nil, cursor)
		if err != nil {
			return nil, err
		}
		for _, p := range resp.Results {
			refs = append(refs, document.Ref{ID: string(p.ID), Title: pageTitle(p)})
		}
		if !resp.HasMore || resp.NextCursor == "" {
			return refs, nil
		}
		cursor = string(resp.NextCursor)
	}
}

// CreateDocument creates a page titled title with blocks as its content.
func (s *DocumentStore) CreateDocument(ctx context.Context, title string, blocks []domain.Block) (string, error) {
	titleProp, err := s.titleProperty(ctx)
	if err != nil {
		return "", err
	}

	children := toNotionAll(blocks)
	first := children[:min(len(children), maxAppend)]

	created, err := s.client.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(s.databaseID),
		},
		Properties: notionapi.Properties{
			titleProp: notionapi.TitleProperty{Title: text(title)},
		},
		Children: first,
	})
	if err != nil {
		return "", fmt.Errorf("create page %q: %w", title, err)
	}
	id := string(created.ID)

	if rest := blocks[len(first):]; len(rest) > 0 {
		if err := s.AppendNodes(ctx, id, "", rest); err != nil {
			return id, err
		}
	}
	return id, nil
}

// titleProperty finds the name of the database's title property.
func (s *DocumentStore) titleProperty(ctx context.Context) (string, error) {
	db, err := s.client.api.Database.Get(ctx, notionapi.DatabaseID(s.databaseID))
	if err != nil {
		return "", fmt.Errorf("get database %s: %w", s.databaseID, err)
	}
	for name, prop := range db.Properties {
		if prop.GetType() == "title" {
			return name, nil
		}
	}
	return "Name", nil
}

// ListTopLevelNodes returns the page's direct children in order.
func (s *DocumentStore) ListTopLevelNodes(ctx context.Context, docID string) ([]domain.Block, error) {
	blocks, err := s.client.listChildren(ctx, docID)
	if err != nil {
		return nil, err
	}
	nodes := make([]domain.Block, 0, len(blocks))
	for _, b := range blocks {
		nodes = append(nodes, fromNotion(b))
	}
	return nodes, nil
}

// DeleteNode archives one block.
func (s *DocumentStore) DeleteNode(ctx context.Context, nodeID string) error {
	if _, err := s.client.api.Block.Delete(ctx, notionapi.BlockID(nodeID)); err != nil {
		return fmt.Errorf("delete block %s: %w", nodeID, err)
	}
	return nil
}

// AppendNodes inserts blocks after afterID, or at the end of the page when
// afterID is empty. Inputs larger than one request are sent in chunks, each
// placed after the last block of the previous chunk.
func (s *DocumentStore) AppendNodes(ctx context.Context, docID, afterID string, blocks []domain.Block) error {
	children := toNotionAll(blocks)

	for len(children) > 0 {
		n := min(len(children), maxAppend)
		req := &notionapi.AppendBlockChildrenRequest{Children: children[:n]}
		if afterID != "" {
			req.After = notionapi.BlockID(afterID)
		}

		resp, err := s.client.api.Block.AppendChildren(ctx, notionapi.BlockID(docID), req)
		if err != nil {
			return fmt.Errorf("append to %s: %w", docID, err)
		}
		children = children[n:]

		// The response lists the newly created top-level blocks.
		if afterID != "" && len(children) > 0 {
			if len(resp.Results) == 0 {
				return errors.New("append response did not include inserted blocks")
			}
			afterID = string(resp.Results[len(resp.Results)-1].GetID())
		}
	}
	return nil
}
