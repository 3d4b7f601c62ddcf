package repomanager

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmitrijs2005/videotube/internal/server/repositories/users"
)

type MongoRepositoryManager struct {
}

func NewMongoRepositoryManager() (RepositoryManager, error) {
	return &MongoRepositoryManager{}, nil
}

func (m *MongoRepositoryManager) Users(db *mongo.Database) users.Repository {
	return users.NewMongoRepository(db)
}

func (m *MongoRepositoryManager) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
