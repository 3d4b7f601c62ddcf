// Package repomanager aggregates the repositories backed by a shared
// document database handle and owns schema-level guarantees (indexes).
package repomanager

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dmitrijs2005/videotube/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db *mongo.Database) users.Repository

	// EnsureIndexes creates the unique indexes the data model relies on
	// (username and email uniqueness).
	EnsureIndexes(ctx context.Context, db *mongo.Database) error
}
