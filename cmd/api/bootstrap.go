package main

import (
	"context"

	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/fwedwicc/rebyuwer-app/internal/infrastructure/db/mongo"
)

// bootstrapIndexes creates the indexes each repository relies on. Index
// creation is idempotent; running it on every start is safe.
func bootstrapIndexes(ctx context.Context, db *driver.Database) error {
	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewCardSetRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongo.NewCardRepository(db).EnsureIndexes(ctx)
}
