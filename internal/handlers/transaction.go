package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/libshelf/apiserver/internal/services"
	"github.com/libshelf/apiserver/types"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionHandler provides HTTP handlers for borrow/return transactions.
type TransactionHandler struct {
	service *services.TransactionService
	log     zerolog.Logger
}

func NewTransactionHandler(service *services.TransactionService, log zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{service: service, log: log}
}

// TransactionRouter registers the protected transaction routes.
func TransactionRouter(r chi.Router, h *TransactionHandler) {
	r.Post("/addTransaction", h.CreateTransaction)
	r.Post("/transactions", h.GetTransactions)
	r.Post("/updateTransaction", h.UpdateTransaction)
	r.Delete("/deleteTransaction", h.DeleteTransaction)
}

type CreateTransactionRequest struct {
	UserID          string `json:"userId" validate:"required,mongodb"`
	BookID          string `json:"bookId" validate:"required,mongodb"`
	DueDate         string `json:"dueDate" validate:"required"`
	TransactionType string `json:"transactionType" validate:"omitempty,oneof=BORROWED RETURNED"`
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgValidationError))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeEnvelope(w, validationEnvelope(err))
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgValidationError+": 'dueDate' must be a valid date"))
		return
	}

	tx, err := h.service.Create(r.Context(), types.Transaction{
		UserID:          req.UserID,
		BookID:          req.BookID,
		DueDate:         dueDate,
		TransactionType: req.TransactionType,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create transaction failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoTransactionFound, msgTransactionExists, msgErrorCreatingTransaction))
		return
	}

	writeEnvelope(w, successEnvelope(msgTransactionCreated, tx))
}

// TransactionQueryRequest carries the optional filters of a transaction
// query. An empty or absent body matches every transaction.
type TransactionQueryRequest struct {
	ID              string `json:"id"`
	TransactionType string `json:"transactionType" validate:"omitempty,oneof=BORROWED RETURNED"`
	BookID          string `json:"bookId"`
	UserID          string `json:"userId"`
	DueDate         string `json:"dueDate"`
}

func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	var req TransactionQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgValidationError))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeEnvelope(w, validationEnvelope(err))
		return
	}

	var filter types.TransactionFilter
	if id := strings.TrimSpace(req.ID); id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorGettingTransactions))
			return
		}
		filter.ID = &oid
	}
	filter.TransactionType = strings.TrimSpace(req.TransactionType)
	filter.BookID = strings.TrimSpace(req.BookID)
	filter.UserID = strings.TrimSpace(req.UserID)
	if due := strings.TrimSpace(req.DueDate); due != "" {
		t, err := parseDate(due)
		if err != nil {
			writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgValidationError+": 'dueDate' must be a valid date"))
			return
		}
		filter.DueDate = &t
	}

	details, err := h.service.Query(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("transaction query failed")
		writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, msgErrorGettingTransactions))
		return
	}
	if details == nil {
		details = []types.TransactionDetails{}
	}
	if len(details) == 0 {
		writeEnvelope(w, successEnvelope(msgNoTransactionFound, details))
		return
	}
	writeEnvelope(w, successEnvelope(msgTransactionFound, details))
}

type UpdateTransactionRequest struct {
	ID              string `json:"id"`
	UserID          string `json:"userId" validate:"omitempty,mongodb"`
	BookID          string `json:"bookId" validate:"omitempty,mongodb"`
	DueDate         string `json:"dueDate"`
	TransactionType string `json:"transactionType" validate:"omitempty,oneof=BORROWED RETURNED"`
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req UpdateTransactionRequest
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
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorUpdatingTransaction))
		return
	}

	patch := types.TransactionPatch{
		UserID:          req.UserID,
		BookID:          req.BookID,
		TransactionType: req.TransactionType,
	}
	if due := strings.TrimSpace(req.DueDate); due != "" {
		t, err := parseDate(due)
		if err != nil {
			writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgValidationError+": 'dueDate' must be a valid date"))
			return
		}
		patch.DueDate = &t
	}

	tx, err := h.service.Update(r.Context(), oid, patch)
	if err != nil {
		h.log.Error().Err(err).Msg("update transaction failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoTransactionFound, msgTransactionExists, msgErrorUpdatingTransaction))
		return
	}

	writeEnvelope(w, successEnvelope(msgTransactionUpdated, tx))
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := idFromQuery(r)
	if id == "" {
		writeEnvelope(w, idRequiredEnvelope())
		return
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorDeletingTransaction))
		return
	}

	if err := h.service.Delete(r.Context(), oid); err != nil {
		h.log.Error().Err(err).Msg("delete transaction failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoTransactionFound, msgErrorDeletingTransaction, msgErrorDeletingTransaction))
		return
	}

	writeEnvelope(w, successEnvelope(msgTransactionDeleted, nil))
}
