package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"truckore/models"
)

type MongoTicketRepo struct {
	DB *mongo.Client
}

func NewMongoTicketRepo(db *mongo.Client) *MongoTicketRepo {
	return &MongoTicketRepo{DB: db}
}

func (r *MongoTicketRepo) collection() *mongo.Collection {
	return r.DB.Database("truckore").Collection("tickets")
}

func (r *MongoTicketRepo) Add(ctx context.Context, t *models.Ticket) error {
	_, err := r.collection().InsertOne(ctx, t)
	return err
}

func (r *MongoTicketRepo) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	var t models.Ticket
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *MongoTicketRepo) GetByTicketNo(ctx context.Context, ticketNo string) (*models.Ticket, error) {
	var t models.Ticket
	err := r.collection().FindOne(ctx, bson.M{"ticket_no": ticketNo}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *MongoTicketRepo) List(ctx context.Context, filters map[string]interface{}) ([]*models.Ticket, error) {
	bsonFilter := bson.M{}
	for k, v := range filters {
		bsonFilter[k] = v
	}

	cur, err := r.collection().Find(ctx, bsonFilter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tickets := []*models.Ticket{}
	for cur.Next(ctx) {
		var t models.Ticket
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		tickets = append(tickets, &t)
	}
	return tickets, cur.Err()
}

func (r *MongoTicketRepo) RemoveByID(ctx context.Context, id string) (bool, error) {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
