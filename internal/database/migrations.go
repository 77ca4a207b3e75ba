package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(50) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS collections (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, name)
	)`,

	// collection_id carries no foreign key on purpose: deleting a
	// collection leaves its snippets in place with a dangling reference.
	// Ownership of the referenced collection is checked at write time.
	`CREATE TABLE IF NOT EXISTS snippets (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(200) NOT NULL,
		code TEXT NOT NULL,
		language VARCHAR(50) NOT NULL,
		explanation TEXT,
		tags TEXT[] NOT NULL DEFAULT '{}',
		is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		collection_id UUID NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_collections_user_id ON collections(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_snippets_user_collection ON snippets(user_id, collection_id)`,
	`CREATE INDEX IF NOT EXISTS idx_snippets_user_favorite ON snippets(user_id, is_favorite)`,
	`CREATE INDEX IF NOT EXISTS idx_snippets_tags ON snippets USING gin (tags)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
