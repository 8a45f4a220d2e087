package handlers

import (
	"net/http"

	"truckore/models"
	"truckore/weighment"
)

type TareHandler struct {
	Tares *weighment.TareStore
}

// tareResponse pairs the stored entry with its expiry summary so the
// operator screen can show both without a second call.
type tareResponse struct {
	Tare   *models.StoredTare `json:"tare"`
	Expiry models.TareExpiry  `json:"expiry"`
}

// GetTare handler: the cached tare for ?vehicleNo=, expired or not; the
// expiry block says which.
func (h *TareHandler) GetTare(w http.ResponseWriter, r *http.Request) {
	vehicleNo := r.URL.Query().Get("vehicleNo")
	if vehicleNo == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "missing vehicleNo",
		})
		return
	}

	tare, err := h.Tares.GetByVehicle(r.Context(), vehicleNo)
	if err != nil {
		writeError(w, err)
		return
	}
	if tare == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{
			Success: false,
			Message: "No stored tare for vehicle",
		})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    tareResponse{Tare: tare, Expiry: h.Tares.ExpiryInfo(tare)},
	})
}
