package repository

import (
	"context"
	"database/sql"

	"truckore/models"
)

type PostgresTareRepo struct {
	DB *sql.DB
}

func NewPostgresTareRepo(db *sql.DB) *PostgresTareRepo {
	return &PostgresTareRepo{DB: db}
}

func (r *PostgresTareRepo) GetByVehicle(ctx context.Context, vehicleNo string) (*models.StoredTare, error) {
	t := &models.StoredTare{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT vehicle_no, tare_weight, stored_at, updated_at
		FROM stored_tares
		WHERE vehicle_no=$1
	`, vehicleNo).Scan(&t.VehicleNo, &t.TareWeight, &t.StoredAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresTareRepo) Save(ctx context.Context, t *models.StoredTare) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO stored_tares(vehicle_no, tare_weight, stored_at, updated_at)
		VALUES($1,$2,$3,$4)
		ON CONFLICT (vehicle_no) DO UPDATE
		SET tare_weight=EXCLUDED.tare_weight,
			stored_at=EXCLUDED.stored_at,
			updated_at=EXCLUDED.updated_at
	`, t.VehicleNo, t.TareWeight, t.StoredAt, t.UpdatedAt)
	return err
}
