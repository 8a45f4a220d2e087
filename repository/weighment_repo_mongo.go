package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"truckore/models"
)

// MongoWeighmentRepo has no transaction to lean on, so each operation is an
// ordered sequence of conditional single-document writes. The ordering keeps
// the worst partial outcome harmless: a committed serial without its record
// is a numbering gap, an OPEN bill without its ticket can still be found and
// audited, but a ticket without a bill could never be closed.
type MongoWeighmentRepo struct {
	Tickets *MongoTicketRepo
	Bills   *MongoBillRepo
	Serials *MongoSerialRepo
}

func NewMongoWeighmentRepo(db *mongo.Client) *MongoWeighmentRepo {
	return &MongoWeighmentRepo{
		Tickets: NewMongoTicketRepo(db),
		Bills:   NewMongoBillRepo(db),
		Serials: NewMongoSerialRepo(db),
	}
}

// CreateTicket writes serial state, then the OPEN bill, then the ticket.
func (r *MongoWeighmentRepo) CreateTicket(ctx context.Context, t *models.Ticket, b *models.Bill, serial string) error {
	existing, err := r.Tickets.GetByTicketNo(ctx, t.TicketNo)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", models.ErrDuplicateTicketNo, t.TicketNo)
	}

	if err := r.Serials.SaveLast(ctx, serial); err != nil {
		return err
	}
	if err := r.Bills.Add(ctx, b); err != nil {
		return &models.InconsistencyError{Applied: "serial commit", Failed: "bill insert", Err: err}
	}
	if err := r.Tickets.Add(ctx, t); err != nil {
		return &models.InconsistencyError{Applied: "serial commit, bill insert", Failed: "ticket insert", Err: err}
	}
	return nil
}

func (r *MongoWeighmentRepo) CreateClosedBill(ctx context.Context, b *models.Bill, serial string) error {
	dups, err := r.Bills.List(ctx, map[string]interface{}{"bill_no": b.BillNo})
	if err != nil {
		return err
	}
	if len(dups) > 0 {
		return fmt.Errorf("%w: %s", models.ErrDuplicateTicketNo, b.BillNo)
	}

	if err := r.Serials.SaveLast(ctx, serial); err != nil {
		return err
	}
	if err := r.Bills.Add(ctx, b); err != nil {
		return &models.InconsistencyError{Applied: "serial commit", Failed: "bill insert", Err: err}
	}
	return nil
}

// CloseTicket removes the ticket first; only a successful removal may
// resolve the bill, so two concurrent closes cannot both win.
func (r *MongoWeighmentRepo) CloseTicket(ctx context.Context, ticketID string, b *models.Bill) error {
	removed, err := r.Tickets.RemoveByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", models.ErrTicketNotFound, ticketID)
	}

	var stored models.Bill
	err = r.Bills.collection().FindOneAndUpdate(ctx,
		bson.M{"bill_no": b.BillNo, "status": models.BillOpen},
		bson.M{"$set": bson.M{
			"gross_weight": b.GrossWeight,
			"tare_weight":  b.TareWeight,
			"net_weight":   b.NetWeight,
			"charges":      b.Charges,
			"front_image":  b.FrontImage,
			"rear_image":   b.RearImage,
			"status":       b.Status,
			"closed_at":    b.ClosedAt,
			"updated_at":   b.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = fmt.Errorf("%w: bill %s", models.ErrOpenBillMissing, b.BillNo)
		}
		return &models.InconsistencyError{Applied: "ticket removal", Failed: "bill close", Err: err}
	}

	b.ID = stored.ID
	b.CreatedAt = stored.CreatedAt
	return nil
}
