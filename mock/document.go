package mock

import (
	"context"

	"github.com/fwojciec/spicedocs"
)

var _ spicedocs.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of spicedocs.DocumentService.
type DocumentService struct {
	UpsertDocumentFn     func(ctx context.Context, doc *spicedocs.Document) error
	FindDocumentByPathFn func(ctx context.Context, path string) (*spicedocs.Document, error)
	FindDocumentsFn      func(ctx context.Context, filter spicedocs.DocumentFilter) ([]*spicedocs.Document, error)
	CountDocumentsFn     func(ctx context.Context) (int, error)
}

func (s *DocumentService) UpsertDocument(ctx context.Context, doc *spicedocs.Document) error {
	return s.UpsertDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByPath(ctx context.Context, path string) (*spicedocs.Document, error) {
	return s.FindDocumentByPathFn(ctx, path)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter spicedocs.DocumentFilter) ([]*spicedocs.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	return s.CountDocumentsFn(ctx)
}
