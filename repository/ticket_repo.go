package repository

import (
	"context"

	"truckore/models"
)

// TicketRepository is the ledger of open tickets awaiting their second
// weighing. Lookups return nil without error when nothing matches.
type TicketRepository interface {
	Add(ctx context.Context, t *models.Ticket) error
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	GetByTicketNo(ctx context.Context, ticketNo string) (*models.Ticket, error)
	List(ctx context.Context, filters map[string]interface{}) ([]*models.Ticket, error)
	// RemoveByID deletes the ticket if it is still present and reports
	// whether a row was removed, so a double-close can be told apart from
	// a successful one.
	RemoveByID(ctx context.Context, id string) (bool, error)
}
