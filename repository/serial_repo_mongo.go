package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSerialRepo struct {
	DB *mongo.Client
}

func NewMongoSerialRepo(db *mongo.Client) *MongoSerialRepo {
	return &MongoSerialRepo{DB: db}
}

const serialDocID = "last"

func (r *MongoSerialRepo) collection() *mongo.Collection {
	return r.DB.Database("truckore").Collection("serial_state")
}

func (r *MongoSerialRepo) LoadLast(ctx context.Context) (string, error) {
	var doc struct {
		Last string `bson:"last_serial"`
	}
	err := r.collection().FindOne(ctx, bson.M{"_id": serialDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return doc.Last, nil
}

// SaveLast commits serial as the last issued number. It sits on the concrete
// type, not the interface: callers other than the weighment repository never
// write serial state on its own.
func (r *MongoSerialRepo) SaveLast(ctx context.Context, serial string) error {
	_, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": serialDocID},
		bson.M{"$set": bson.M{"last_serial": serial}},
		options.Update().SetUpsert(true))
	return err
}
