package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"truckore/config"
	"truckore/models"
)

// ApiResponse is the envelope every JSON endpoint answers with.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps domain errors onto HTTP statuses: invalid input 400,
// missing records 404, state conflicts 409, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		config.Logger().WithError(err).Error("request failed")
	}
	writeJSON(w, status, ApiResponse{Success: false, Message: err.Error()})
}

func statusFor(err error) int {
	// A partial write outranks whatever sentinel it wraps.
	var ierr *models.InconsistencyError
	if errors.As(err, &ierr) {
		return http.StatusInternalServerError
	}

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrTicketNotFound),
		errors.Is(err, models.ErrBillNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrOpenBillMissing),
		errors.Is(err, models.ErrDuplicateTicketNo),
		errors.Is(err, models.ErrStatusConflict),
		errors.Is(err, models.ErrBillNotClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
