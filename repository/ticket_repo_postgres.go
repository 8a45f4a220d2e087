package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"truckore/models"
)

type PostgresTicketRepo struct {
	DB *sql.DB
}

func NewPostgresTicketRepo(db *sql.DB) *PostgresTicketRepo {
	return &PostgresTicketRepo{DB: db}
}

const selectTicketSQL = `
	SELECT id, ticket_no, vehicle_no, party_name, product_name,
		vehicle_status, first_weight_type, gross_weight, tare_weight,
		charges, front_image, rear_image, created_at
	FROM tickets
`

const insertTicketSQL = `
	INSERT INTO tickets(
		id, ticket_no, vehicle_no, party_name, product_name,
		vehicle_status, first_weight_type, gross_weight, tare_weight,
		charges, front_image, rear_image, created_at
	)
	VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`

func ticketArgs(t *models.Ticket) []interface{} {
	return []interface{}{
		t.ID, t.TicketNo, t.VehicleNo, t.PartyName, t.ProductName,
		t.VehicleStatus, t.FirstWeightType, t.GrossWeight, t.TareWeight,
		t.Charges, t.FrontImage, t.RearImage, t.CreatedAt,
	}
}

func scanTicket(row interface{ Scan(dest ...interface{}) error }) (*models.Ticket, error) {
	t := &models.Ticket{}
	err := row.Scan(
		&t.ID, &t.TicketNo, &t.VehicleNo, &t.PartyName, &t.ProductName,
		&t.VehicleStatus, &t.FirstWeightType, &t.GrossWeight, &t.TareWeight,
		&t.Charges, &t.FrontImage, &t.RearImage, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PostgresTicketRepo) Add(ctx context.Context, t *models.Ticket) error {
	_, err := r.DB.ExecContext(ctx, insertTicketSQL, ticketArgs(t)...)
	return err
}

func (r *PostgresTicketRepo) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	t, err := scanTicket(r.DB.QueryRowContext(ctx, selectTicketSQL+` WHERE id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresTicketRepo) GetByTicketNo(ctx context.Context, ticketNo string) (*models.Ticket, error) {
	t, err := scanTicket(r.DB.QueryRowContext(ctx, selectTicketSQL+` WHERE ticket_no=$1`, ticketNo))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresTicketRepo) List(ctx context.Context, filters map[string]interface{}) ([]*models.Ticket, error) {
	query := selectTicketSQL
	args := []interface{}{}
	where := []string{}
	i := 1
	for k, v := range filters {
		where = append(where, fmt.Sprintf("%s = $%d", k, i))
		args = append(args, v)
		i++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []*models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *PostgresTicketRepo) RemoveByID(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
