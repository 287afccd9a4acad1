package services

import (
	"context"
	"testing"

	"github.com/libshelf/apiserver/internal/store"
	"github.com/libshelf/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type capturingBookRepo struct {
	created types.Book
}

func (r *capturingBookRepo) GetByID(_ context.Context, _ primitive.ObjectID) (types.Book, error) {
	return types.Book{}, store.ErrNotFound
}

func (r *capturingBookRepo) Search(_ context.Context, _ string) ([]types.Book, error) {
	return nil, nil
}

func (r *capturingBookRepo) Create(_ context.Context, book types.Book) (types.Book, error) {
	r.created = book
	return book, nil
}

func (r *capturingBookRepo) Update(_ context.Context, _ primitive.ObjectID, _ types.BookPatch) (types.Book, error) {
	return types.Book{}, store.ErrNotFound
}

func (r *capturingBookRepo) Delete(_ context.Context, _ primitive.ObjectID) error {
	return store.ErrNotFound
}

type capturingTransactionRepo struct {
	created types.Transaction
}

func (r *capturingTransactionRepo) Query(_ context.Context, _ types.TransactionFilter) ([]types.TransactionDetails, error) {
	return nil, nil
}

func (r *capturingTransactionRepo) Create(_ context.Context, tx types.Transaction) (types.Transaction, error) {
	r.created = tx
	return tx, nil
}

func (r *capturingTransactionRepo) Update(_ context.Context, _ primitive.ObjectID, _ types.TransactionPatch) (types.Transaction, error) {
	return types.Transaction{}, store.ErrNotFound
}

func (r *capturingTransactionRepo) Delete(_ context.Context, _ primitive.ObjectID) error {
	return store.ErrNotFound
}

func TestBookCreateDefaultsToInStock(t *testing.T) {
	repo := &capturingBookRepo{}
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), types.Book{Name: "Clean Architecture", Author: "Martin"})
	require.NoError(t, err)
	assert.Equal(t, types.BookStatusInStock, repo.created.CurrentStatus)

	_, err = svc.Create(context.Background(), types.Book{Name: "Clean Code", Author: "Martin", CurrentStatus: "BORROWED"})
	require.NoError(t, err)
	assert.Equal(t, "BORROWED", repo.created.CurrentStatus)
}

func TestTransactionCreateDefaultsToBorrowed(t *testing.T) {
	repo := &capturingTransactionRepo{}
	svc := NewTransactionService(repo)

	_, err := svc.Create(context.Background(), types.Transaction{UserID: "u", BookID: "b"})
	require.NoError(t, err)
	assert.Equal(t, types.TransactionBorrowed, repo.created.TransactionType)

	_, err = svc.Create(context.Background(), types.Transaction{UserID: "u", BookID: "b", TransactionType: types.TransactionReturned})
	require.NoError(t, err)
	assert.Equal(t, types.TransactionReturned, repo.created.TransactionType)
}
