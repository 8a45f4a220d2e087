package repository

import (
	"context"
	"time"

	"truckore/models"
)

// BillRepository is the ledger of billing records across their whole
// lifecycle. Lookups return nil without error when nothing matches.
type BillRepository interface {
	Add(ctx context.Context, b *models.Bill) error
	GetByID(ctx context.Context, id string) (*models.Bill, error)
	List(ctx context.Context, filters map[string]interface{}) ([]*models.Bill, error)
	// Search matches q case-insensitively against billNo, vehicleNo and
	// partyName.
	Search(ctx context.Context, q string) ([]*models.Bill, error)
	// UpdateStatus moves the bill to next only while its current status is
	// next's predecessor, stamping closedAt/printedAt as appropriate. It
	// reports whether the transition was applied.
	UpdateStatus(ctx context.Context, id string, next models.BillStatus, at time.Time) (bool, error)
	SetPDFURL(ctx context.Context, id string, url string) error
}
