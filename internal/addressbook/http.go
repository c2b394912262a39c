// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package addressbook

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/addressbook/internal/platform/apperr"
	requestutil "github.com/taibuivan/addressbook/internal/platform/request"
	"github.com/taibuivan/addressbook/internal/platform/respond"
	"github.com/taibuivan/addressbook/internal/platform/validate"
)

// OwnerResolver maps the authenticated email to the owning account id.
// An id of 0 means the account no longer exists.
type OwnerResolver interface {
	GetUserIDByEmail(context context.Context, email string) (int64, error)
}

// Handler implements the HTTP layer for contacts.
type Handler struct {
	repository *Repository
	owners     OwnerResolver
}

// NewHandler constructs a new contacts [Handler].
func NewHandler(repository *Repository, owners OwnerResolver) *Handler {
	return &Handler{repository: repository, owners: owners}
}

// Routes returns the caller-scoped contact endpoints. Mount behind RequireAuth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// AdminRoutes returns the unscoped endpoints. Mount behind RequireRole(Admin).
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Delete("/{id}", handler.adminDelete)
	return router
}

// contactRequest is the JSON payload for create and update.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (input contactRequest) validate() error {
	return (&validate.Validator{}).
		Required("name", input.Name).
		MaxLen("name", input.Name, 100).
		OptionalEmail("email", input.Email).
		MaxLen("email", input.Email, 254).
		Phone("phone", input.Phone).
		MaxLen("address", input.Address, 500).
		Err()
}

func (input contactRequest) fields() Fields {
	return Fields{Name: input.Name, Email: input.Email, Phone: input.Phone, Address: input.Address}
}

// owner resolves the caller's account id from the session email.
func (handler *Handler) owner(request *http.Request) (int64, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return 0, err
	}

	userID, err := handler.owners.GetUserIDByEmail(request.Context(), claims.Email)
	if err != nil {
		return 0, err
	}
	if userID == 0 {
		return 0, apperr.Unauthorized("Account no longer exists")
	}
	return userID, nil
}

/*
GET /api/v1/contacts.

Response:
  - 200: []Contact: The caller's contacts ordered by id
  - 401: ErrUnauthorized
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.owner(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contacts, err := handler.repository.GetAllContacts(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contacts)
}

/*
GET /api/v1/contacts/{id}.

Response:
  - 200: Contact
  - 404: ErrNotFound: Absent or owned by someone else
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.owner(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contactID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.repository.GetByID(request.Context(), contactID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if contact == nil {
		respond.Error(writer, request, apperr.NotFound("Contact"))
		return
	}

	respond.OK(writer, contact)
}

/*
POST /api/v1/contacts.

Request:
  - body: contactRequest

Response:
  - 201: Contact: The persisted entry with its id
  - 400: Validation
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.owner(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contactRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	fields := input.fields()
	contact, err := handler.repository.AddContact(request.Context(), Contact{
		Name:    fields.Name,
		Email:   fields.Email,
		Phone:   fields.Phone,
		Address: fields.Address,
	}, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, contact)
}

/*
PUT /api/v1/contacts/{id}.

Response:
  - 200: Contact: The updated entry
  - 404: ErrNotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.owner(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contactID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contactRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.repository.UpdateContact(request.Context(), contactID, input.fields(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if contact == nil {
		respond.Error(writer, request, apperr.NotFound("Contact"))
		return
	}

	respond.OK(writer, contact)
}

// DELETE /api/v1/contacts/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.owner(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contactID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.repository.DeleteContact(request.Context(), contactID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !deleted {
		respond.Error(writer, request, apperr.NotFound("Contact"))
		return
	}

	respond.NoContent(writer)
}

// DELETE /api/v1/admin/contacts/{id}.
func (handler *Handler) adminDelete(writer http.ResponseWriter, request *http.Request) {
	contactID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.repository.DeleteContactAsAdmin(request.Context(), contactID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !deleted {
		respond.Error(writer, request, apperr.NotFound("Contact"))
		return
	}

	respond.NoContent(writer)
}
