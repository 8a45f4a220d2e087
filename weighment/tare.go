package weighment

import (
	"context"
	"fmt"
	"time"

	"truckore/models"
	"truckore/repository"
)

// TareStore applies the validity window on top of the tare ledger. The
// boundary is inclusive: an entry stored exactly one window ago is still
// valid.
type TareStore struct {
	Repo   repository.TareRepository
	Window time.Duration
	Now    func() time.Time
}

func NewTareStore(repo repository.TareRepository, validityDays int) *TareStore {
	return &TareStore{
		Repo:   repo,
		Window: time.Duration(validityDays) * 24 * time.Hour,
		Now:    time.Now,
	}
}

// GetByVehicle returns the cached entry regardless of validity, nil when the
// vehicle has none.
func (s *TareStore) GetByVehicle(ctx context.Context, vehicleNo string) (*models.StoredTare, error) {
	return s.Repo.GetByVehicle(ctx, vehicleNo)
}

// GetValid returns the cached entry only while inside the validity window.
func (s *TareStore) GetValid(ctx context.Context, vehicleNo string) (*models.StoredTare, error) {
	t, err := s.Repo.GetByVehicle(ctx, vehicleNo)
	if err != nil || t == nil {
		return nil, err
	}
	if s.expired(t) {
		return nil, nil
	}
	return t, nil
}

// Save upserts the vehicle's tare. A still-valid entry keeps its original
// storedAt anchor, so repeated re-weighs cannot push expiry out forever; an
// expired entry is renewed with a fresh anchor.
func (s *TareStore) Save(ctx context.Context, vehicleNo string, weight float64) (*models.StoredTare, error) {
	now := s.Now()

	existing, err := s.Repo.GetByVehicle(ctx, vehicleNo)
	if err != nil {
		return nil, err
	}

	anchor := now
	if existing != nil && !s.expired(existing) {
		anchor = existing.StoredAt
	}

	t := &models.StoredTare{
		VehicleNo:  vehicleNo,
		TareWeight: weight,
		StoredAt:   anchor,
		UpdatedAt:  now,
	}
	if err := s.Repo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("save stored tare: %w", err)
	}
	return t, nil
}

// ExpiryInfo summarizes remaining validity for operator display, using the
// same inclusive threshold as GetValid.
func (s *TareStore) ExpiryInfo(t *models.StoredTare) models.TareExpiry {
	expiry := t.StoredAt.Add(s.Window)
	remaining := expiry.Sub(s.Now())

	info := models.TareExpiry{ExpiryDate: expiry}
	if remaining < 0 {
		info.IsExpired = true
		return info
	}
	info.DaysRemaining = int(remaining / (24 * time.Hour))
	info.HoursRemaining = int(remaining % (24 * time.Hour) / time.Hour)
	return info
}

func (s *TareStore) expired(t *models.StoredTare) bool {
	return s.Now().Sub(t.StoredAt) > s.Window
}
