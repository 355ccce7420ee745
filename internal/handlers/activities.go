package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/talentaworks/talenta-backend/internal/services"
	"github.com/talentaworks/talenta-backend/pkg/utils"
)

type RecordActivityRequest struct {
	Email        string                 `json:"email"`
	ActivityType string                 `json:"activityType"`
	Description  string                 `json:"description,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

type ActivitiesHandler struct {
	activities *services.ActivityService
}

func NewActivitiesHandler(activities *services.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{activities: activities}
}

// List handles GET /api/activities?email=&limit=&offset=
func (h *ActivitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	email := query.Get("email")

	var limit, offset int64
	if v := query.Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := query.Get("offset"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	activities, err := h.activities.List(r.Context(), email, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Success(w, activities)
}

// Record handles POST /api/activities.
func (h *ActivitiesHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.ActivityType == "" {
		utils.Error(w, http.StatusBadRequest, "Email and activityType are required")
		return
	}

	activity, err := h.activities.Record(r.Context(), req.Email, req.ActivityType, req.Description, req.Metadata)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.Created(w, activity)
}
