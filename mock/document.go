package mock

import (
	"context"

	"github.com/sammelband/sammelband"
)

var _ sammelband.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of sammelband.DocumentStore.
type DocumentStore struct {
	SaveDocumentFn    func(ctx context.Context, doc *sammelband.Document) error
	FindDocumentFn    func(ctx context.Context, id string, format sammelband.Format) (*sammelband.Document, error)
	DeleteDocumentsFn func(ctx context.Context, id string) error
}

func (s *DocumentStore) SaveDocument(ctx context.Context, doc *sammelband.Document) error {
	return s.SaveDocumentFn(ctx, doc)
}

func (s *DocumentStore) FindDocument(ctx context.Context, id string, format sammelband.Format) (*sammelband.Document, error) {
	return s.FindDocumentFn(ctx, id, format)
}

func (s *DocumentStore) DeleteDocuments(ctx context.Context, id string) error {
	return s.DeleteDocumentsFn(ctx, id)
}
