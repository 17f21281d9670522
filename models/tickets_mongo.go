package models

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoTicketRepo struct {
	col *mongo.Collection
}

func NewMongoTicketRepository(col *mongo.Collection) TicketRepository {
	r := &mongoTicketRepo{col: col}
	if err := r.ensureIndexes(context.Background()); err != nil {
		log.Printf("[warn] ticket indexes: %v", err)
	}
	return r
}

// One ticket per (event, user) pair.
func (r *mongoTicketRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event", Value: 1}, {Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("tickets_event_user_unique"),
	})
	return err
}

func (r *mongoTicketRepo) Create(ctx context.Context, t *Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *mongoTicketRepo) findOne(ctx context.Context, filter bson.M) (*Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var t Ticket
	if err := r.col.FindOne(ctx, filter).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *mongoTicketRepo) GetByEventAndUser(ctx context.Context, eventID, userID primitive.ObjectID) (*Ticket, error) {
	return r.findOne(ctx, bson.M{"event": eventID, "user": userID})
}

func (r *mongoTicketRepo) GetByQRCode(ctx context.Context, qr string) (*Ticket, error) {
	return r.findOne(ctx, bson.M{"qr_code": qr})
}

func (r *mongoTicketRepo) Update(ctx context.Context, t *Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
