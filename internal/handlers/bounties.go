package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/talentaworks/talenta-backend/internal/services"
	"github.com/talentaworks/talenta-backend/pkg/utils"
)

type CreateBountyRequest struct {
	Email       string `json:"email"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Reward      int64  `json:"reward"`
}

type ApplyBountyRequest struct {
	Email    string `json:"email"`
	BountyID string `json:"bountyId"`
	Message  string `json:"message,omitempty"`
}

type CompleteBountyRequest struct {
	Email       string `json:"email"`
	BountyID    string `json:"bountyId"`
	CompletedBy string `json:"completedBy"`
}

type BountiesHandler struct {
	bounties *services.BountyService
}

func NewBountiesHandler(bounties *services.BountyService) *BountiesHandler {
	return &BountiesHandler{bounties: bounties}
}

// Create handles POST /api/bounties.
func (h *BountiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBountyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Title == "" {
		utils.Error(w, http.StatusBadRequest, "Email and title are required")
		return
	}
	if req.Reward <= 0 {
		utils.Error(w, http.StatusBadRequest, "Reward must be a positive integer")
		return
	}

	bounty, err := h.bounties.Create(r.Context(), req.Email, req.Title, req.Description, req.Reward)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Created(w, bounty)
}

// List handles GET /api/bounties?status=&limit=
func (h *BountiesHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var limit int64
	if v := query.Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	bounties, err := h.bounties.List(r.Context(), query.Get("status"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, bounties)
}

// Apply handles POST /api/bounties/apply.
func (h *BountiesHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyBountyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.BountyID == "" {
		utils.Error(w, http.StatusBadRequest, "Email and bountyId are required")
		return
	}

	application, err := h.bounties.Apply(r.Context(), req.BountyID, req.Email, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Created(w, application)
}

// Complete handles POST /api/bounties/complete.
func (h *BountiesHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req CompleteBountyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.BountyID == "" || req.CompletedBy == "" {
		utils.Error(w, http.StatusBadRequest, "Email, bountyId, and completedBy are required")
		return
	}

	bounty, err := h.bounties.Complete(r.Context(), req.BountyID, req.Email, req.CompletedBy)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, bounty)
}
