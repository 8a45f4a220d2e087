package handlers

import (
	"net/http"

	"truckore/models"
	"truckore/repository"
)

type TicketHandler struct {
	Repo repository.TicketRepository
}

// Query params accepted on the ticket list, mapped to ledger columns.
var ticketFilterKeys = map[string]string{
	"vehicleNo": "vehicle_no",
	"ticketNo":  "ticket_no",
	"partyName": "party_name",
}

// GetAllTickets handler: the open tickets, newest first, optionally
// filtered.
func (h *TicketHandler) GetAllTickets(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for param, column := range ticketFilterKeys {
		if v := q.Get(param); v != "" {
			filters[column] = v
		}
	}

	list, err := h.Repo.List(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*models.Ticket{}
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

// GetTicketByID handler
func (h *TicketHandler) GetTicketByID(w http.ResponseWriter, r *http.Request, id string) {
	t, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if t == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{
			Success: false,
			Message: "Ticket not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: t})
}
