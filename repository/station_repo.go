package repository

import (
	"context"

	"truckore/models"
)

type StationRepository interface {
	SaveStation(ctx context.Context, s *models.StationSetup) error
	GetStation(ctx context.Context) (*models.StationSetup, error)
}
