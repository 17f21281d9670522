package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoVenueRepo struct {
	col *mongo.Collection
}

func NewMongoVenueRepository(col *mongo.Collection) VenueRepository {
	return &mongoVenueRepo{col: col}
}

func (r *mongoVenueRepo) Create(ctx context.Context, v *Venue) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, v)
	return err
}

func (r *mongoVenueRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var v Venue
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *mongoVenueRepo) Find(ctx context.Context, f VenueFilter) ([]Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.ActiveOnly {
		filter["is_active"] = true
	}
	if f.City != "" {
		filter["city"] = bson.M{"$regex": f.City, "$options": "i"}
	}
	if f.State != "" {
		filter["state"] = bson.M{"$regex": f.State, "$options": "i"}
	}
	if f.MinCapacity > 0 {
		filter["capacity"] = bson.M{"$gte": f.MinCapacity}
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"address": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if !f.CreatedBy.IsZero() {
		filter["created_by"] = f.CreatedBy
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(50)

	cursor, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}

	var venues []Venue
	if err := cursor.All(ctx, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *mongoVenueRepo) Update(ctx context.Context, v *Venue) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoVenueRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
