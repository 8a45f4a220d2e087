package handlers

import (
	"net/http"

	"truckore/models"
	"truckore/repository"
	"truckore/weighment"
)

type BillHandler struct {
	Repo   repository.BillRepository
	Engine *weighment.Engine
}

// Query params accepted on the bill list, mapped to ledger columns.
var billFilterKeys = map[string]string{
	"vehicleNo": "vehicle_no",
	"billNo":    "bill_no",
	"ticketNo":  "ticket_no",
	"partyName": "party_name",
	"status":    "status",
}

// GetAllBills handler: ?q= searches billNo/vehicleNo/partyName, otherwise
// the list is filtered by exact-match params.
func (h *BillHandler) GetAllBills(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		list []*models.Bill
		err  error
	)
	if search := q.Get("q"); search != "" {
		list, err = h.Repo.Search(r.Context(), search)
	} else {
		filters := make(map[string]interface{})
		for param, column := range billFilterKeys {
			if v := q.Get(param); v != "" {
				filters[column] = v
			}
		}
		list, err = h.Repo.List(r.Context(), filters)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*models.Bill{}
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

// GetBillByID handler
func (h *BillHandler) GetBillByID(w http.ResponseWriter, r *http.Request, id string) {
	b, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if b == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{
			Success: false,
			Message: "Bill not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: b})
}

// MarkPrinted handler: moves a closed bill to PRINTED. Reprinting an already
// printed bill returns it unchanged.
func (h *BillHandler) MarkPrinted(w http.ResponseWriter, r *http.Request, id string) {
	b, err := h.Engine.MarkPrinted(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Bill marked as printed",
		Data:    b,
	})
}
