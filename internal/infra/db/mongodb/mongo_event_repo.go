package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"daily-chronicle-bot/internal/domain/model"
	"daily-chronicle-bot/internal/domain/ports/repository"
)

var _ repository.EventRepository = (*MongoEventRepo)(nil)

type MongoEventRepo struct {
	col *mongo.Collection
}

func NewMongoEventRepo(db *mongo.Database) *MongoEventRepo {
	return &MongoEventRepo{col: db.Collection(eventsCollection)}
}

func (r *MongoEventRepo) Create(ctx context.Context, ev *model.Event) error {
	now := time.Now()
	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = now
	}
	ev.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, ev); err != nil {
		return fmt.Errorf("insert event tgId=%s: %w", ev.TgID, err)
	}
	return nil
}

func (r *MongoEventRepo) FindByOwnerBetween(ctx context.Context, tgID string, from, to time.Time) ([]model.Event, error) {
	filter := bson.M{
		"tgId": tgID,
		"createdAt": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find events tgId=%s: %w", tgID, err)
	}
	defer cur.Close(ctx)

	var out []model.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode events tgId=%s: %w", tgID, err)
	}
	return out, nil
}

func (r *MongoEventRepo) CountByOwner(ctx context.Context, tgID string) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"tgId": tgID})
	if err != nil {
		return 0, fmt.Errorf("count events tgId=%s: %w", tgID, err)
	}
	return int(n), nil
}
