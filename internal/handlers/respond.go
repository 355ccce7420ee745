package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/talentaworks/talenta-backend/internal/services"
	"github.com/talentaworks/talenta-backend/pkg/utils"
)

// writeServiceError maps service errors onto HTTP statuses: validation 400,
// missing resources 404, conflicts 409, everything unexpected 500 with the
// detail kept server-side.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *utils.ValidationError

	switch {
	case errors.Is(err, services.ErrInvalidAward), errors.Is(err, services.ErrInvalidRole), errors.Is(err, services.ErrInvalidSignup):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &vErr):
		utils.Error(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrBountyNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotCreator), errors.Is(err, services.ErrNotBountyPoster):
		utils.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrAlreadyApplied), errors.Is(err, services.ErrBountyClosed):
		utils.Error(w, http.StatusConflict, err.Error())
	default:
		log.Printf("internal error: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Something went wrong")
	}
}
