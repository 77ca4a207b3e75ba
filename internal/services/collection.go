package services

import (
	"context"
	"errors"

	"github.com/NoteLegend/CodeKeep/internal/database"
	"github.com/NoteLegend/CodeKeep/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrCollectionNotFound  = errors.New("collection not found")
	ErrDuplicateCollection = errors.New("collection with this name already exists")
)

type CollectionService struct {
	db *database.DB
}

func NewCollectionService(db *database.DB) *CollectionService {
	return &CollectionService{db: db}
}

// List returns the user's collections, newest first. Every query in this
// service filters by user_id so one user's collections are invisible to
// another.
func (s *CollectionService) List(ctx context.Context, userID uuid.UUID) ([]models.Collection, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, user_id, created_at, updated_at
		FROM collections WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

func (s *CollectionService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Collection, error) {
	var c models.Collection
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, user_id, created_at, updated_at
		FROM collections WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&c.ID, &c.Name, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *CollectionService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Collection, error) {
	var c models.Collection
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO collections (name, user_id)
		VALUES ($1, $2)
		RETURNING id, name, user_id, created_at, updated_at
	`, name, userID).Scan(&c.ID, &c.Name, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCollection
		}
		return nil, err
	}
	return &c, nil
}

func (s *CollectionService) Update(ctx context.Context, id, userID uuid.UUID, name string) (*models.Collection, error) {
	var c models.Collection
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE collections SET name = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING id, name, user_id, created_at, updated_at
	`, name, id, userID).Scan(&c.ID, &c.Name, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCollection
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes the collection only. Snippets referencing it are left in
// place with a dangling collection_id; reads resolve that to a null
// collection.
func (s *CollectionService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM collections WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCollectionNotFound
	}
	return nil
}
