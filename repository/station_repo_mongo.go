package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"truckore/models"
)

type MongoStationRepo struct {
	DB *mongo.Client
}

func NewMongoStationRepo(db *mongo.Client) *MongoStationRepo {
	return &MongoStationRepo{DB: db}
}

func (r *MongoStationRepo) collection() *mongo.Collection {
	return r.DB.Database("truckore").Collection("station_setup")
}

func (r *MongoStationRepo) SaveStation(ctx context.Context, s *models.StationSetup) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if s.ID == 0 {
		s.ID = time.Now().UTC().UnixMilli()
		_, err := r.collection().InsertOne(ctx, s)
		return err
	}

	_, err := r.collection().ReplaceOne(ctx,
		bson.M{"_id": s.ID}, s,
		options.Replace().SetUpsert(true))
	return err
}

func (r *MongoStationRepo) GetStation(ctx context.Context) (*models.StationSetup, error) {
	var s models.StationSetup
	err := r.collection().FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
