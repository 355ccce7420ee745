package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/talentaworks/talenta-backend/internal/services"
	"github.com/talentaworks/talenta-backend/pkg/utils"
)

type CreateDonationRequest struct {
	FromEmail string `json:"fromEmail"`
	ToEmail   string `json:"toEmail"`
	Amount    int64  `json:"amount"`
	Message   string `json:"message,omitempty"`
}

type DonationsHandler struct {
	donations *services.DonationService
}

func NewDonationsHandler(donations *services.DonationService) *DonationsHandler {
	return &DonationsHandler{donations: donations}
}

// Create handles POST /api/donations.
func (h *DonationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FromEmail == "" || req.ToEmail == "" {
		utils.Error(w, http.StatusBadRequest, "fromEmail and toEmail are required")
		return
	}
	if req.Amount <= 0 {
		utils.Error(w, http.StatusBadRequest, "Amount must be a positive integer")
		return
	}

	donation, err := h.donations.Create(r.Context(), req.FromEmail, req.ToEmail, req.Amount, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Created(w, donation)
}

// List handles GET /api/donations?email=&limit=
func (h *DonationsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	email := query.Get("email")
	if email == "" {
		utils.Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	var limit int64
	if v := query.Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	donations, err := h.donations.ListByRecipient(r.Context(), email, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, donations)
}
