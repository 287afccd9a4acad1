package services

import (
	"context"

	"github.com/libshelf/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookRepository defines persistence operations for the book catalog.
type BookRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (types.Book, error)
	Search(ctx context.Context, search string) ([]types.Book, error)
	Create(ctx context.Context, book types.Book) (types.Book, error)
	Update(ctx context.Context, id primitive.ObjectID, patch types.BookPatch) (types.Book, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BookService encapsulates book use-cases.
type BookService struct {
	repo BookRepository
}

func NewBookService(repo BookRepository) *BookService {
	return &BookService{repo: repo}
}

func (s *BookService) GetByID(ctx context.Context, id primitive.ObjectID) (types.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BookService) Search(ctx context.Context, search string) ([]types.Book, error) {
	return s.repo.Search(ctx, search)
}

func (s *BookService) Create(ctx context.Context, book types.Book) (types.Book, error) {
	if book.CurrentStatus == "" {
		book.CurrentStatus = types.BookStatusInStock
	}
	return s.repo.Create(ctx, book)
}

func (s *BookService) Update(ctx context.Context, id primitive.ObjectID, patch types.BookPatch) (types.Book, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *BookService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}
