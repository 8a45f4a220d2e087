package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"truckore/models"
)

type PostgresWeighmentRepo struct {
	DB *sql.DB
}

func NewPostgresWeighmentRepo(db *sql.DB) *PostgresWeighmentRepo {
	return &PostgresWeighmentRepo{DB: db}
}

func (r *PostgresWeighmentRepo) CreateTicket(ctx context.Context, t *models.Ticket, b *models.Bill, serial string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertTicketSQL, ticketArgs(t)...); err != nil {
		return asDuplicateSerial(err, t.TicketNo)
	}
	if _, err := tx.ExecContext(ctx, insertBillSQL, billArgs(b)...); err != nil {
		return asDuplicateSerial(err, b.BillNo)
	}
	if err := commitSerial(ctx, tx, serial); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresWeighmentRepo) CreateClosedBill(ctx context.Context, b *models.Bill, serial string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertBillSQL, billArgs(b)...); err != nil {
		return asDuplicateSerial(err, b.BillNo)
	}
	if err := commitSerial(ctx, tx, serial); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresWeighmentRepo) CloseTicket(ctx context.Context, ticketID string, b *models.Bill) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE id=$1`, ticketID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", models.ErrTicketNotFound, ticketID)
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE bills
		SET gross_weight=$1, tare_weight=$2, net_weight=$3, charges=$4,
			front_image=$5, rear_image=$6, status=$7, closed_at=$8, updated_at=$8
		WHERE bill_no=$9 AND status=$10
		RETURNING id, created_at
	`, b.GrossWeight, b.TareWeight, b.NetWeight, b.Charges,
		b.FrontImage, b.RearImage, b.Status, b.ClosedAt,
		b.BillNo, models.BillOpen,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: bill %s", models.ErrOpenBillMissing, b.BillNo)
		}
		return err
	}

	return tx.Commit()
}

// commitSerial records serial as the last issued number inside the caller's
// transaction, so an aborted write never consumes it.
func commitSerial(ctx context.Context, tx *sql.Tx, serial string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO serial_state (id, last_serial) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET last_serial=EXCLUDED.last_serial
	`, serial)
	return err
}

// asDuplicateSerial maps a unique violation on ticket_no/bill_no to the
// integrity sentinel; anything else passes through untouched.
func asDuplicateSerial(err error, serial string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", models.ErrDuplicateTicketNo, serial)
	}
	return err
}
