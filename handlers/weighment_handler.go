package handlers

import (
	"encoding/json"
	"net/http"

	"truckore/models"
	"truckore/utils"
	"truckore/weighment"
)

// Wire names for the weighment operation types.
const (
	opNewTrip    = "new-trip"
	opCloseTrip  = "close-trip"
	opOneTime    = "one-time"
	opStoredTare = "stored-tare"
)

type WeighmentHandler struct {
	Engine *weighment.Engine
}

// weighmentRequest is the common payload for all operation types; which
// fields matter depends on operationType.
type weighmentRequest struct {
	OperationType string   `json:"operationType"`
	TicketID      string   `json:"ticketId,omitempty"`
	VehicleNo     string   `json:"vehicleNo"`
	PartyName     string   `json:"partyName"`
	ProductName   string   `json:"productName"`
	VehicleStatus string   `json:"vehicleStatus"`
	Weight        float64  `json:"weight"`
	Stable        bool     `json:"stable"`
	Charges       *float64 `json:"charges,omitempty"`
	Refresh       bool     `json:"refresh,omitempty"`
	FrontImage    *string  `json:"frontImage,omitempty"`
	RearImage     *string  `json:"rearImage,omitempty"`
}

// Execute handler: one POST endpoint for every weighment operation.
func (h *WeighmentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req weighmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	// Captures go through the storage pipeline before the engine sees them.
	shots := utils.ProcessCaptures(r.Context(), models.CapturedImages{
		FrontImage: req.FrontImage,
		RearImage:  req.RearImage,
	})

	op, err := req.toOperation(shots)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.Engine.Execute(r.Context(), op)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: res.Action,
		Data:    res,
	})
}

// NextSerial handler: the number the next serial-consuming weighment will
// take. Pure read, nothing is reserved.
func (h *WeighmentHandler) NextSerial(w http.ResponseWriter, r *http.Request) {
	serial, err := h.Engine.Serials.Peek(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    map[string]string{"next": serial},
	})
}

func (req *weighmentRequest) toOperation(shots models.CapturedImages) (weighment.Operation, error) {
	reading := weighment.Reading{Weight: req.Weight, Stable: req.Stable}
	charges := 0.0
	if req.Charges != nil {
		charges = *req.Charges
	}

	switch req.OperationType {
	case opNewTrip:
		return weighment.NewTrip{
			VehicleNo:     req.VehicleNo,
			PartyName:     req.PartyName,
			ProductName:   req.ProductName,
			VehicleStatus: models.VehicleStatus(req.VehicleStatus),
			Reading:       reading,
			Charges:       charges,
			Images:        shots,
		}, nil
	case opCloseTrip:
		return weighment.CloseTrip{
			TicketID: req.TicketID,
			Reading:  reading,
			Charges:  req.Charges,
			Images:   shots,
		}, nil
	case opOneTime:
		return weighment.OneTime{
			VehicleNo:   req.VehicleNo,
			PartyName:   req.PartyName,
			ProductName: req.ProductName,
			Reading:     reading,
			Charges:     charges,
			Images:      shots,
		}, nil
	case opStoredTare:
		return weighment.StoredTareOp{
			VehicleNo:   req.VehicleNo,
			PartyName:   req.PartyName,
			ProductName: req.ProductName,
			Reading:     reading,
			Charges:     charges,
			Refresh:     req.Refresh,
			Images:      shots,
		}, nil
	default:
		return nil, models.Invalid("operationType",
			"must be new-trip, close-trip, one-time or stored-tare")
	}
}
