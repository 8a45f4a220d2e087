package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"truckore/models"
)

type MongoBillRepo struct {
	DB *mongo.Client
}

func NewMongoBillRepo(db *mongo.Client) *MongoBillRepo {
	return &MongoBillRepo{DB: db}
}

func (r *MongoBillRepo) collection() *mongo.Collection {
	return r.DB.Database("truckore").Collection("bills")
}

func (r *MongoBillRepo) Add(ctx context.Context, b *models.Bill) error {
	_, err := r.collection().InsertOne(ctx, b)
	return err
}

func (r *MongoBillRepo) GetByID(ctx context.Context, id string) (*models.Bill, error) {
	var b models.Bill
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoBillRepo) List(ctx context.Context, filters map[string]interface{}) ([]*models.Bill, error) {
	bsonFilter := bson.M{}
	for k, v := range filters {
		bsonFilter[k] = v
	}
	return r.find(ctx, bsonFilter)
}

func (r *MongoBillRepo) Search(ctx context.Context, q string) ([]*models.Bill, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"bill_no": re},
		bson.M{"vehicle_no": re},
		bson.M{"party_name": re},
	}})
}

func (r *MongoBillRepo) find(ctx context.Context, filter bson.M) ([]*models.Bill, error) {
	cur, err := r.collection().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bills := []*models.Bill{}
	for cur.Next(ctx) {
		var b models.Bill
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		bills = append(bills, &b)
	}
	return bills, cur.Err()
}

func (r *MongoBillRepo) UpdateStatus(ctx context.Context, id string, next models.BillStatus, at time.Time) (bool, error) {
	prev, ok := next.Predecessor()
	if !ok {
		return false, fmt.Errorf("%w: no transition into %s", models.ErrStatusConflict, next)
	}

	stamp := "closed_at"
	if next == models.BillPrinted {
		stamp = "printed_at"
	}

	res, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": id, "status": prev},
		bson.M{"$set": bson.M{"status": next, stamp: at, "updated_at": at}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoBillRepo) SetPDFURL(ctx context.Context, id string, url string) error {
	_, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"pdf_url": url, "updated_at": time.Now().UTC()}},
	)
	return err
}
