package repository

import (
	"context"

	"truckore/models"
)

// WeighmentRepository carries the multi-entity writes of the lifecycle
// engine. Each method is one commit: on Postgres a single transaction, on
// Mongo an ordered sequence of conditional writes where a partial failure
// surfaces as *models.InconsistencyError.
type WeighmentRepository interface {
	// CreateTicket persists an open ticket with its OPEN bill and commits
	// serial as the last issued number, all as one unit.
	CreateTicket(ctx context.Context, t *models.Ticket, b *models.Bill, serial string) error
	// CreateClosedBill persists a bill born CLOSED (one-time and
	// stored-tare flows) and commits its serial with it.
	CreateClosedBill(ctx context.Context, b *models.Bill, serial string) error
	// CloseTicket removes the ticket and resolves its OPEN bill to the
	// fields of b in one unit. The stored bill's id and createdAt are
	// written back into b. A missing ticket yields ErrTicketNotFound, a
	// missing OPEN bill ErrOpenBillMissing.
	CloseTicket(ctx context.Context, ticketID string, b *models.Bill) error
}
