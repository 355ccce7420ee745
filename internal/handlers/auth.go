package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/talentaworks/talenta-backend/internal/services"
	"github.com/talentaworks/talenta-backend/pkg/utils"
)

type SignupRequest struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthHandler struct {
	users    *services.UserService
	sessions *services.Sessions
}

func NewAuthHandler(users *services.UserService, sessions *services.Sessions) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.sessions.Create(r.Context(), user.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Created(w, map[string]interface{}{
		"user":  user.Summary(),
		"token": token,
	})
}

// Signin handles POST /api/auth/signin.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.sessions.Create(r.Context(), user.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user.Summary(),
		"token": token,
	})
}

// Me handles GET /api/auth/me using a Bearer session token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		utils.Error(w, http.StatusUnauthorized, "Missing session token")
		return
	}

	email, ok := h.sessions.Validate(r.Context(), token)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Invalid or expired session")
		return
	}

	user, err := h.users.Get(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, user.Summary())
}

// Signout handles POST /api/auth/signout.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		h.sessions.Invalidate(r.Context(), token)
	}
	utils.SuccessMessage(w, nil, "Signed out")
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
