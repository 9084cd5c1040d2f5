package handler

import (
	"net/http"

	"github.com/freeeve/sideline/api/internal/auth"
	"github.com/freeeve/sideline/api/internal/service"
)

// UserHandler handles operator account management.
type UserHandler struct {
	userSvc *service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())
	users, err := h.userSvc.List(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if users == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromContext(r.Context())
	var req service.CreateUserInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.userSvc.Create(r.Context(), actor, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
