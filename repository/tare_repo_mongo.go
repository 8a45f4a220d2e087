package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"truckore/models"
)

type MongoTareRepo struct {
	DB *mongo.Client
}

func NewMongoTareRepo(db *mongo.Client) *MongoTareRepo {
	return &MongoTareRepo{DB: db}
}

func (r *MongoTareRepo) collection() *mongo.Collection {
	return r.DB.Database("truckore").Collection("stored_tares")
}

func (r *MongoTareRepo) GetByVehicle(ctx context.Context, vehicleNo string) (*models.StoredTare, error) {
	var t models.StoredTare
	err := r.collection().FindOne(ctx, bson.M{"_id": vehicleNo}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *MongoTareRepo) Save(ctx context.Context, t *models.StoredTare) error {
	_, err := r.collection().ReplaceOne(ctx,
		bson.M{"_id": t.VehicleNo}, t,
		options.Replace().SetUpsert(true))
	return err
}
