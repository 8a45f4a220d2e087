package handlers

import (
	"encoding/json"
	"net/http"

	"truckore/models"
	"truckore/repository"
)

type StationHandler struct {
	Repo repository.StationRepository
}

func (h *StationHandler) SaveStation(w http.ResponseWriter, r *http.Request) {
	var station models.StationSetup
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if station.StationName == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Station name is required",
		})
		return
	}

	if err := h.Repo.SaveStation(r.Context(), &station); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: station})
}

func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	station, err := h.Repo.GetStation(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if station == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{
			Success: false,
			Message: "Station details not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: station})
}
