package repository

import (
	"context"
	"database/sql"
)

type PostgresSerialRepo struct {
	DB *sql.DB
}

func NewPostgresSerialRepo(db *sql.DB) *PostgresSerialRepo {
	return &PostgresSerialRepo{DB: db}
}

// LoadLast returns the last committed serial, empty when none was ever
// issued. The row is seeded by the initial migration.
func (r *PostgresSerialRepo) LoadLast(ctx context.Context) (string, error) {
	var last string
	err := r.DB.QueryRowContext(ctx, `SELECT last_serial FROM serial_state WHERE id=1`).Scan(&last)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return last, nil
}
