package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"truckore/models"
)

type PostgresBillRepo struct {
	DB *sql.DB
}

func NewPostgresBillRepo(db *sql.DB) *PostgresBillRepo {
	return &PostgresBillRepo{DB: db}
}

const selectBillSQL = `
	SELECT id, bill_no, ticket_no, vehicle_no, party_name, product_name,
		vehicle_status, first_weight_type, gross_weight, tare_weight,
		net_weight, charges, front_image, rear_image, status, pdf_url,
		created_at, updated_at, closed_at, printed_at
	FROM bills
`

const insertBillSQL = `
	INSERT INTO bills(
		id, bill_no, ticket_no, vehicle_no, party_name, product_name,
		vehicle_status, first_weight_type, gross_weight, tare_weight,
		net_weight, charges, front_image, rear_image, status, pdf_url,
		created_at, updated_at, closed_at, printed_at
	)
	VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
`

func billArgs(b *models.Bill) []interface{} {
	return []interface{}{
		b.ID, b.BillNo, b.TicketNo, b.VehicleNo, b.PartyName, b.ProductName,
		b.VehicleStatus, b.FirstWeightType, b.GrossWeight, b.TareWeight,
		b.NetWeight, b.Charges, b.FrontImage, b.RearImage, b.Status, b.PDFURL,
		b.CreatedAt, b.UpdatedAt, b.ClosedAt, b.PrintedAt,
	}
}

func scanBill(row interface{ Scan(dest ...interface{}) error }) (*models.Bill, error) {
	b := &models.Bill{}
	err := row.Scan(
		&b.ID, &b.BillNo, &b.TicketNo, &b.VehicleNo, &b.PartyName, &b.ProductName,
		&b.VehicleStatus, &b.FirstWeightType, &b.GrossWeight, &b.TareWeight,
		&b.NetWeight, &b.Charges, &b.FrontImage, &b.RearImage, &b.Status, &b.PDFURL,
		&b.CreatedAt, &b.UpdatedAt, &b.ClosedAt, &b.PrintedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresBillRepo) Add(ctx context.Context, b *models.Bill) error {
	_, err := r.DB.ExecContext(ctx, insertBillSQL, billArgs(b)...)
	return err
}

func (r *PostgresBillRepo) GetByID(ctx context.Context, id string) (*models.Bill, error) {
	b, err := scanBill(r.DB.QueryRowContext(ctx, selectBillSQL+` WHERE id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (r *PostgresBillRepo) List(ctx context.Context, filters map[string]interface{}) ([]*models.Bill, error) {
	query := selectBillSQL
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

	return collectBills(rows)
}

func (r *PostgresBillRepo) Search(ctx context.Context, q string) ([]*models.Bill, error) {
	pattern := "%" + q + "%"
	rows, err := r.DB.QueryContext(ctx, selectBillSQL+`
		WHERE bill_no ILIKE $1 OR vehicle_no ILIKE $1 OR party_name ILIKE $1
		ORDER BY created_at DESC
	`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBills(rows)
}

func collectBills(rows *sql.Rows) ([]*models.Bill, error) {
	bills := []*models.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *PostgresBillRepo) UpdateStatus(ctx context.Context, id string, next models.BillStatus, at time.Time) (bool, error) {
	prev, ok := next.Predecessor()
	if !ok {
		return false, fmt.Errorf("%w: no transition into %s", models.ErrStatusConflict, next)
	}

	stamp := "closed_at"
	if next == models.BillPrinted {
		stamp = "printed_at"
	}

	res, err := r.DB.ExecContext(ctx, fmt.Sprintf(`
		UPDATE bills SET status=$1, %s=$2, updated_at=$2
		WHERE id=$3 AND status=$4
	`, stamp), next, at, id, prev)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresBillRepo) SetPDFURL(ctx context.Context, id string, url string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE bills SET pdf_url=$1, updated_at=$2 WHERE id=$3
	`, url, time.Now().UTC(), id)
	return err
}
