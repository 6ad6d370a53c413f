package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"daily-chronicle-bot/internal/domain"
	"daily-chronicle-bot/internal/domain/model"
	"daily-chronicle-bot/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*MongoUserRepo)(nil)

type MongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{col: db.Collection(usersCollection)}
}

// EnsureUser performs a create-if-absent upsert keyed by tgId. All
// attributes live under $setOnInsert, so replays never overwrite what the
// first insert wrote.
func (r *MongoUserRepo) EnsureUser(ctx context.Context, u *model.User) (*model.User, error) {
	now := time.Now()
	filter := bson.M{"tgId": u.TgID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"tgId":      u.TgID,
			"firstName": u.FirstName,
			"lastName":  u.LastName,
			"isBot":     u.IsBot,
			"username":  u.Username,
			"createdAt": now,
			"updatedAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out model.User
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		return nil, fmt.Errorf("ensure user tgId=%s: %w", u.TgID, err)
	}
	return &out, nil
}

func (r *MongoUserRepo) FindByTgID(ctx context.Context, tgID string) (*model.User, error) {
	var out model.User
	err := r.col.FindOne(ctx, bson.M{"tgId": tgID}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user tgId=%s: %w", tgID, err)
	}
	return &out, nil
}

func (r *MongoUserRepo) CountUsers(ctx context.Context) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return int(n), nil
}
