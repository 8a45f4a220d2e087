package repository

import (
	"context"

	"truckore/models"
)

// TareRepository stores one cached tare per vehicle. Validity is a policy
// concern and lives in the weighment package; the repository keeps every
// entry until it is overwritten.
type TareRepository interface {
	GetByVehicle(ctx context.Context, vehicleNo string) (*models.StoredTare, error)
	Save(ctx context.Context, t *models.StoredTare) error
}
