package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/talentaworks/talenta-backend/internal/services"
	"github.com/talentaworks/talenta-backend/pkg/utils"
)

type RebuildRequest struct {
	Email string `json:"email"`
}

type LeaderboardHandler struct {
	board *services.LeaderboardService
}

func NewLeaderboardHandler(board *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{board: board}
}

// Top handles GET /api/leaderboard?limit=
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := int64(10)
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}

	entries, err := h.board.Top(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, entries)
}

// Rebuild handles POST /api/leaderboard/rebuild: recompute one creator's
// entry from the user document and the activity log.
func (h *LeaderboardHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	var req RebuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		utils.Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	entry, err := h.board.Rebuild(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, entry)
}
