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

// UserHandler provides HTTP handlers for library members.
type UserHandler struct {
	service *services.UserService
	log     zerolog.Logger
}

func NewUserHandler(service *services.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

// UserRouter registers the protected user routes.
func UserRouter(r chi.Router, h *UserHandler) {
	r.Post("/addUser", h.CreateUser)
	r.Get("/users", h.GetUsers)
	r.Post("/updateUser", h.UpdateUser)
	r.Delete("/deleteUser", h.DeleteUser)
}

type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=50"`
	UserName  string `json:"userName" validate:"required,min=3,max=30"`
	ContactNo string `json:"contactNo" validate:"required,len=10,numeric"`
	EmailId   string `json:"emailId" validate:"required,email"`
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgValidationError))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeEnvelope(w, validationEnvelope(err))
		return
	}

	user, err := h.service.Create(r.Context(), types.User{
		Name:      req.Name,
		UserName:  req.UserName,
		ContactNo: req.ContactNo,
		EmailId:   req.EmailId,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create user failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoUserFound, msgUserExists, msgErrorCreatingUser))
		return
	}

	writeEnvelope(w, successEnvelope(msgUserCreated, user))
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	if id := idFromQuery(r); id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorGettingUsers))
			return
		}
		user, err := h.service.GetByID(r.Context(), oid)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeEnvelope(w, successEnvelope(msgNoUserFound, nil))
				return
			}
			h.log.Error().Err(err).Msg("get user failed")
			writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, msgErrorGettingUsers))
			return
		}
		writeEnvelope(w, successEnvelope(msgUserFound, user))
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	users, err := h.service.Search(r.Context(), search)
	if err != nil {
		h.log.Error().Err(err).Msg("search users failed")
		writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, msgErrorGettingUsers))
		return
	}
	if len(users) == 0 {
		writeEnvelope(w, successEnvelope(msgNoUserFound, nil))
		return
	}
	writeEnvelope(w, successEnvelope(msgUserFound, users))
}

type UpdateUserRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"omitempty,min=3,max=50"`
	ContactNo string `json:"contactNo" validate:"omitempty,len=10,numeric"`
	EmailId   string `json:"emailId" validate:"omitempty,email"`
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
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
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorUpdatingUser))
		return
	}

	user, err := h.service.Update(r.Context(), oid, types.UserPatch{
		Name:      req.Name,
		ContactNo: req.ContactNo,
		EmailId:   req.EmailId,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("update user failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoUserFound, msgUserExists, msgErrorUpdatingUser))
		return
	}

	writeEnvelope(w, successEnvelope(msgUserUpdated, user))
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := idFromQuery(r)
	if id == "" {
		writeEnvelope(w, idRequiredEnvelope())
		return
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorDeletingUser))
		return
	}

	if err := h.service.Delete(r.Context(), oid); err != nil {
		h.log.Error().Err(err).Msg("delete user failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoUserFound, msgErrorDeletingUser, msgErrorDeletingUser))
		return
	}

	writeEnvelope(w, successEnvelope(msgUserDeleted, nil))
}
