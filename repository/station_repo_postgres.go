package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"truckore/models"
)

type PostgresStationRepo struct {
	DB *sql.DB
}

func NewPostgresStationRepo(db *sql.DB) *PostgresStationRepo {
	return &PostgresStationRepo{DB: db}
}

// SaveStation inserts or updates the station identity shown on slips.
func (r *PostgresStationRepo) SaveStation(ctx context.Context, s *models.StationSetup) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	phoneJSON, err := json.Marshal(s.Phone)
	if err != nil {
		return err
	}

	if s.ID > 0 {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE station_setup
			SET name=$1, address=$2, city=$3, state=$4, pincode=$5,
				phone=$6, footnote=$7, created_at=$8
			WHERE id=$9
		`, s.StationName, s.Address, s.City, s.State, s.Pincode,
			phoneJSON, s.Footnote, s.CreatedAt, s.ID)
		return err
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO station_setup
		(name, address, city, state, pincode, phone, footnote, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`, s.StationName, s.Address, s.City, s.State, s.Pincode,
		phoneJSON, s.Footnote, s.CreatedAt).Scan(&s.ID)
}

// GetStation fetches the latest station setup, nil when none is configured.
func (r *PostgresStationRepo) GetStation(ctx context.Context) (*models.StationSetup, error) {
	s := &models.StationSetup{}
	var phoneJSON []byte

	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, address, city, state, pincode, phone, footnote, created_at
		FROM station_setup
		ORDER BY id DESC LIMIT 1
	`).Scan(&s.ID, &s.StationName, &s.Address, &s.City, &s.State,
		&s.Pincode, &phoneJSON, &s.Footnote, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if len(phoneJSON) > 0 {
		if err := json.Unmarshal(phoneJSON, &s.Phone); err != nil {
			return nil, err
		}
	}
	return s, nil
}
