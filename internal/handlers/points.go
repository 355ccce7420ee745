package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/talentaworks/talenta-backend/internal/services"
	"github.com/talentaworks/talenta-backend/pkg/utils"
)

type AwardPointsRequest struct {
	Email       string `json:"email"`
	Type        string `json:"type"`
	Points      int64  `json:"points"`
	Description string `json:"description"`
	ContextID   string `json:"contextId,omitempty"`
}

type DailyLoginRequest struct {
	Email string `json:"email"`
}

type PointsHandler struct {
	points *services.PointsService
}

func NewPointsHandler(points *services.PointsService) *PointsHandler {
	return &PointsHandler{points: points}
}

// Award handles POST /api/points.
func (h *PointsHandler) Award(w http.ResponseWriter, r *http.Request) {
	var req AwardPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Type == "" || req.Description == "" {
		utils.Error(w, http.StatusBadRequest, "Email, type, and description are required")
		return
	}
	if req.Points <= 0 {
		utils.Error(w, http.StatusBadRequest, "Points must be a positive integer")
		return
	}

	total, err := h.points.Award(r.Context(), req.Email, req.Type, req.Points, req.Description, req.ContextID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"email":  req.Email,
		"points": total,
	})
}

// DailyLogin handles POST /api/points/daily-login.
func (h *PointsHandler) DailyLogin(w http.ResponseWriter, r *http.Request) {
	var req DailyLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		utils.Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	result, err := h.points.AwardDailyLogin(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if result.AlreadyClaimed {
		utils.SuccessMessage(w, result, "Daily login already claimed today")
		return
	}
	utils.Success(w, result)
}

// Get handles GET /api/points?email=...
func (h *PointsHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	rank, err := h.points.PointsAndRank(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, rank)
}
