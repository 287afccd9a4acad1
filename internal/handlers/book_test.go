package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/libshelf/apiserver/internal/services"
	"github.com/libshelf/apiserver/internal/store"
	"github.com/libshelf/apiserver/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBookRepo struct {
	books     map[primitive.ObjectID]types.Book
	createErr error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[primitive.ObjectID]types.Book{}}
}

func (r *fakeBookRepo) GetByID(_ context.Context, id primitive.ObjectID) (types.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return types.Book{}, store.ErrNotFound
	}
	return book, nil
}

func (r *fakeBookRepo) Search(_ context.Context, search string) ([]types.Book, error) {
	var out []types.Book
	for _, b := range r.books {
		if search == "" || strings.Contains(strings.ToLower(b.Name), strings.ToLower(search)) ||
			strings.Contains(strings.ToLower(b.Author), strings.ToLower(search)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) Create(_ context.Context, book types.Book) (types.Book, error) {
	if r.createErr != nil {
		return types.Book{}, r.createErr
	}
	book.ID = primitive.NewObjectID()
	r.books[book.ID] = book
	return book, nil
}

func (r *fakeBookRepo) Update(_ context.Context, id primitive.ObjectID, patch types.BookPatch) (types.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return types.Book{}, store.ErrNotFound
	}
	if patch.Name != "" {
		book.Name = patch.Name
	}
	if patch.Author != "" {
		book.Author = patch.Author
	}
	if patch.CurrentStatus != "" {
		book.CurrentStatus = patch.CurrentStatus
	}
	r.books[id] = book
	return book, nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.books[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func newBookRouter(repo services.BookRepository) *chi.Mux {
	router := chi.NewRouter()
	BookRouter(router, NewBookHandler(services.NewBookService(repo), zerolog.Nop()))
	return router
}

func TestCreateBookDefaultsStatus(t *testing.T) {
	repo := newFakeBookRepo()
	router := newBookRouter(repo)

	rec, env := doRequest(t, router, http.MethodPost, "/addBook",
		`{"name":"The Go Programming Language","author":"Donovan"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Book created successfully", env.Message)
	assert.Equal(t, types.BookStatusInStock, env.dataObject(t)["currentStatus"])
}

func TestCreateBookDuplicateName(t *testing.T) {
	repo := newFakeBookRepo()
	repo.createErr = store.ErrDuplicateKey
	router := newBookRouter(repo)

	rec, env := doRequest(t, router, http.MethodPost, "/addBook",
		`{"name":"The Go Programming Language","author":"Donovan"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Book name already exists", env.Message)
}

func TestSearchBooksMatchesAuthor(t *testing.T) {
	repo := newFakeBookRepo()
	_, err := repo.Create(context.Background(), types.Book{Name: "The Go Programming Language", Author: "Donovan"})
	require.NoError(t, err)
	router := newBookRouter(repo)

	rec, env := doRequest(t, router, http.MethodGet, "/books?search=donovan", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Book found", env.Message)
	assert.Len(t, env.dataArray(t), 1)
}

func TestUpdateBookStatus(t *testing.T) {
	repo := newFakeBookRepo()
	book, err := repo.Create(context.Background(), types.Book{
		Name: "The Go Programming Language", Author: "Donovan", CurrentStatus: types.BookStatusInStock,
	})
	require.NoError(t, err)
	router := newBookRouter(repo)

	rec, env := doRequest(t, router, http.MethodPost, "/updateBook",
		`{"id":"`+book.ID.Hex()+`","currentStatus":"BORROWED"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Book updated successfully", env.Message)
	data := env.dataObject(t)
	assert.Equal(t, "BORROWED", data["currentStatus"])
	assert.Equal(t, "The Go Programming Language", data["name"])
}

func TestDeleteBookNotFound(t *testing.T) {
	router := newBookRouter(newFakeBookRepo())

	rec, env := doRequest(t, router, http.MethodDelete, "/deleteBook?id="+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No book found", env.Message)
}

func TestHealth(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/health", Health)

	rec, env := doRequest(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Health check!", env.Message)
	assert.Equal(t, types.StatusSuccess, env.Status)
}
