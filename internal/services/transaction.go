package services

import (
	"context"

	"github.com/libshelf/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionRepository defines persistence operations for transactions,
// including the enriched join query.
type TransactionRepository interface {
	Query(ctx context.Context, f types.TransactionFilter) ([]types.TransactionDetails, error)
	Create(ctx context.Context, tx types.Transaction) (types.Transaction, error)
	Update(ctx context.Context, id primitive.ObjectID, patch types.TransactionPatch) (types.Transaction, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TransactionService encapsulates transaction use-cases.
type TransactionService struct {
	repo TransactionRepository
}

func NewTransactionService(repo TransactionRepository) *TransactionService {
	return &TransactionService{repo: repo}
}

// Query returns transactions matching the filter, each joined with its user
// and book details. Unresolvable references are dropped by the store.
func (s *TransactionService) Query(ctx context.Context, f types.TransactionFilter) ([]types.TransactionDetails, error) {
	return s.repo.Query(ctx, f)
}

func (s *TransactionService) Create(ctx context.Context, tx types.Transaction) (types.Transaction, error) {
	if tx.TransactionType == "" {
		tx.TransactionType = types.TransactionBorrowed
	}
	return s.repo.Create(ctx, tx)
}

func (s *TransactionService) Update(ctx context.Context, id primitive.ObjectID, patch types.TransactionPatch) (types.Transaction, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *TransactionService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}
