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

// AdminHandler provides HTTP handlers for admin accounts.
type AdminHandler struct {
	service *services.AdminService
	log     zerolog.Logger
}

func NewAdminHandler(service *services.AdminService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{service: service, log: log}
}

// AdminRouter registers the protected admin routes. The creation route is
// registered separately by AuthRouter so that the first admin can be
// bootstrapped without a token.
func AdminRouter(r chi.Router, h *AdminHandler) {
	r.Get("/admins", h.GetAdmins)
	r.Post("/updateAdmin", h.UpdateAdmin)
	r.Delete("/deleteAdmin", h.DeleteAdmin)
}

type CreateAdminRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=50"`
	UserName  string `json:"userName" validate:"required,min=3,max=30"`
	Password  string `json:"password" validate:"required,min=8,max=20"`
	ContactNo string `json:"contactNo" validate:"required,len=10,numeric"`
	EmailId   string `json:"emailId" validate:"required,email"`
}

func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgValidationError))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeEnvelope(w, validationEnvelope(err))
		return
	}

	admin, err := h.service.Create(r.Context(), types.Admin{
		Name:      req.Name,
		UserName:  req.UserName,
		ContactNo: req.ContactNo,
		EmailId:   req.EmailId,
	}, req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("create admin failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoAdminFound, msgAdminExists, msgErrorCreatingAdmin))
		return
	}

	writeEnvelope(w, successEnvelope(msgAdminCreated, admin))
}

func (h *AdminHandler) GetAdmins(w http.ResponseWriter, r *http.Request) {
	if id := idFromQuery(r); id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorGettingAdmins))
			return
		}
		admin, err := h.service.GetByID(r.Context(), oid)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeEnvelope(w, successEnvelope(msgNoAdminFound, nil))
				return
			}
			h.log.Error().Err(err).Msg("get admin failed")
			writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, msgErrorGettingAdmins))
			return
		}
		writeEnvelope(w, successEnvelope(msgAdminFound, admin))
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	admins, err := h.service.Search(r.Context(), search)
	if err != nil {
		h.log.Error().Err(err).Msg("search admins failed")
		writeEnvelope(w, errorEnvelope(http.StatusUnauthorized, msgErrorGettingAdmins))
		return
	}
	if len(admins) == 0 {
		writeEnvelope(w, successEnvelope(msgNoAdminFound, nil))
		return
	}
	writeEnvelope(w, successEnvelope(msgAdminFound, admins))
}

// UpdateAdminRequest deliberately leaves the password unvalidated: a password
// shorter than the minimum is ignored by the service, not rejected.
type UpdateAdminRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"omitempty,min=3,max=50"`
	ContactNo string `json:"contactNo" validate:"omitempty,len=10,numeric"`
	EmailId   string `json:"emailId" validate:"omitempty,email"`
	Password  string `json:"password"`
}

func (h *AdminHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var req UpdateAdminRequest
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
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorUpdatingAdmin))
		return
	}

	admin, err := h.service.Update(r.Context(), oid, services.AdminUpdate{
		Name:      req.Name,
		ContactNo: req.ContactNo,
		EmailId:   req.EmailId,
		Password:  req.Password,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("update admin failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoAdminFound, msgAdminExists, msgErrorUpdatingAdmin))
		return
	}

	writeEnvelope(w, successEnvelope(msgAdminUpdated, admin))
}

func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id := idFromQuery(r)
	if id == "" {
		writeEnvelope(w, idRequiredEnvelope())
		return
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		writeEnvelope(w, errorEnvelope(http.StatusBadRequest, msgErrorDeletingAdmin))
		return
	}

	if err := h.service.Delete(r.Context(), oid); err != nil {
		h.log.Error().Err(err).Msg("delete admin failed")
		writeEnvelope(w, crudErrorEnvelope(err, msgNoAdminFound, msgErrorDeletingAdmin, msgErrorDeletingAdmin))
		return
	}

	writeEnvelope(w, successEnvelope(msgAdminDeleted, nil))
}
