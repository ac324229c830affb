package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dekritpn/kawio/internal/apperror"
	"github.com/dekritpn/kawio/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(logger *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// respondError maps domain failures onto HTTP statuses. Anything unmapped is
// an internal error and gets logged before the generic reply goes out.
func respondError(logger *slog.Logger, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidCoordinate),
		errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrMoveRequired):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrInactiveMatch),
		errors.Is(err, apperror.ErrMatchFull):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrUnknownMatch),
		errors.Is(err, apperror.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		respondJSON(logger, w, status, errorResponse{Error: "internal error"})

		return
	}

	respondJSON(logger, w, status, errorResponse{Error: err.Error()})
}
