package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/libshelf/apiserver/internal/services"
	"github.com/libshelf/apiserver/internal/store"
	"github.com/libshelf/apiserver/types"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookHandler provides HTTP handlers for the book catalog.
type BookHandler struct {
	service *services.BookService
	log     zerolog.Logger
}

func NewBookHandler(service *services.BookService, log zerolog.Logger) *BookHandler {
	return &BookHandler{service: service, log: log}
}

// BookRouter registers the protected book routes.
func BookRouter(r chi.Router, h *BookHandler) {
	r.Post("/addBook", h.CreateBook)
	r.Get("/books", h.GetBooks)
	r.Post("/updateBook", h.UpdateBook)
	r.Delete("/deleteBook", h.DeleteBook)
}

type CreateBookRequest struct {
	Name          string `json:"name" validate:"required,min=3,max=50"`
	Author        string `json:"author" validate:"required,min=3,max=30"`
	CurrentStatus string `json:"currentStatus"`
}

func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgValidationError))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeEnvelope(w, validationEnvelope(err))
		return
	}

	book, err := h.service.Create(r.Context(), types.Book{
		Name:          req.Name,
		Author:        req.Author,
		CurrentStatus: req.CurrentStatus,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create book failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoBookFound, msgBookExists, msgErrorCreatingBook))
		return
	}

	writeEnvelope(w, successEnvelope(msgBookCreated, book))
}

func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	if id := idFromQuery(r); id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorGettingBooks))
			return
		}
		book, err := h.service.GetByID(r.Context(), oid)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeEnvelope(w, successEnvelope(msgNoBookFound, nil))
				return
			}
			h.log.Error().Err(err).Msg("get book failed")
			writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, msgErrorGettingBooks))
			return
		}
		writeEnvelope(w, successEnvelope(msgBookFound, book))
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	books, err := h.service.Search(r.Context(), search)
	if err != nil {
		h.log.Error().Err(err).Msg("search books failed")
		writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, msgErrorGettingBooks))
		return
	}
	if len(books) == 0 {
		writeEnvelope(w, successEnvelope(msgNoBookFound, nil))
		return
	}
	writeEnvelope(w, successEnvelope(msgBookFound, books))
}

type UpdateBookRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name" validate:"omitempty,min=3,max=50"`
	Author        string `json:"author" validate:"omitempty,min=3,max=30"`
	CurrentStatus string `json:"currentStatus"`
}

func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var req UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgValidationError))
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeEnvelope(w, idRequiredEnvelope())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeEnvelope(w, validationEnvelope(err))
		return
	}
	oid, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorUpdatingBook))
		return
	}

	book, err := h.service.Update(r.Context(), oid, types.BookPatch{
		Name:          req.Name,
		Author:        req.Author,
		CurrentStatus: req.CurrentStatus,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("update book failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoBookFound, msgBookExists, msgErrorUpdatingBook))
		return
	}

	writeEnvelope(w, successEnvelope(msgBookUpdated, book))
}

func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id := idFromQuery(r)
	if id == "" {
		writeEnvelope(w, idRequiredEnvelope())
		return
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorDeletingBook))
		return
	}

	if err := h.service.Delete(r.Context(), oid); err != nil {
		h.log.Error().Err(err).Msg("delete book failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoBookFound, msgErrorDeletingBook, msgErrorDeletingBook))
		return
	}

	writeEnvelope(w, successEnvelope(msgBookDeleted, nil))
}
