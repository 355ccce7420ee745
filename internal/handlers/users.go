package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/talentaworks/talenta-backend/internal/services"
	"github.com/talentaworks/talenta-backend/internal/store"
	"github.com/talentaworks/talenta-backend/pkg/utils"
)

type UpdateRoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UpdateProfileRequest struct {
	Email  string  `json:"email"`
	Name   *string `json:"name,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

type UsersHandler struct {
	users *services.UserService
}

func NewUsersHandler(users *services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// UpdateRole handles PUT /api/users/role.
func (h *UsersHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Role == "" {
		utils.Error(w, http.StatusBadRequest, "Email and role are required")
		return
	}

	user, err := h.users.UpdateRole(r.Context(), req.Email, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, user.Summary())
}

// GetProfile handles GET /api/users/profile?email=...
func (h *UsersHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := h.users.Get(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, user.Summary())
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		utils.Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), req.Email, store.ProfileUpdate{
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, user.Summary())
}
