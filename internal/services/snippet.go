package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/NoteLegend/CodeKeep/internal/database"
	"github.com/NoteLegend/CodeKeep/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSnippetNotFound = errors.New("snippet not found")

// SnippetInput carries the full field set for a create.
type SnippetInput struct {
	Title        string
	Code         string
	Language     string
	Explanation  *string
	Tags         []string
	IsFavorite   bool
	CollectionID uuid.UUID
}

// SnippetUpdate carries the partial field set for an update. Title, Code,
// Language and Explanation keep their stored value when nil; Tags and
// IsFavorite reset to empty/false when omitted; CollectionID keeps the
// stored reference when nil.
type SnippetUpdate struct {
	Title        *string
	Code         *string
	Language     *string
	Explanation  *string
	Tags         []string
	IsFavorite   *bool
	CollectionID *uuid.UUID
}

// SnippetFilter narrows List. Zero value means no filtering.
type SnippetFilter struct {
	CollectionID  *uuid.UUID
	FavoritesOnly bool
	Tag           string
}

type SnippetService struct {
	db *database.DB
}

func NewSnippetService(db *database.DB) *SnippetService {
	return &SnippetService{db: db}
}

// snippetColumns resolves the collection reference in the same query. The
// join is LEFT so snippets whose collection was deleted still come back,
// with a null collection.
const snippetColumns = `
	s.id, s.title, s.code, s.language, s.explanation, s.tags, s.is_favorite,
	s.user_id, s.collection_id, c.id, c.name, s.created_at, s.updated_at`

const snippetFrom = `
	FROM snippets s
	LEFT JOIN collections c ON c.id = s.collection_id`

func scanSnippet(row pgx.Row) (*models.Snippet, error) {
	var (
		s       models.Snippet
		colID   *uuid.UUID
		colName *string
	)
	err := row.Scan(
		&s.ID, &s.Title, &s.Code, &s.Language, &s.Explanation, &s.Tags,
		&s.IsFavorite, &s.UserID, &s.CollectionID, &colID, &colName,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if colID != nil && colName != nil {
		s.Collection = &models.CollectionRef{ID: *colID, Name: *colName}
	}
	return &s, nil
}

func (s *SnippetService) List(ctx context.Context, userID uuid.UUID, filter SnippetFilter) ([]models.Snippet, error) {
	query := `SELECT` + snippetColumns + snippetFrom + `
	WHERE s.user_id = $1`
	args := []any{userID}

	if filter.CollectionID != nil {
		args = append(args, *filter.CollectionID)
		query += fmt.Sprintf(" AND s.collection_id = $%d", len(args))
	}
	if filter.FavoritesOnly {
		query += " AND s.is_favorite = TRUE"
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM unnest(s.tags) AS t WHERE LOWER(t) = LOWER($%d))", len(args))
	}
	query += " ORDER BY s.created_at DESC"

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snippets []models.Snippet
	for rows.Next() {
		snippet, err := scanSnippet(rows)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, *snippet)
	}
	return snippets, rows.Err()
}

func (s *SnippetService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Snippet, error) {
	row := s.db.Pool.QueryRow(ctx, `SELECT`+snippetColumns+snippetFrom+`
	WHERE s.id = $1 AND s.user_id = $2`, id, userID)

	snippet, err := scanSnippet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnippetNotFound
		}
		return nil, err
	}
	return snippet, nil
}

func (s *SnippetService) Create(ctx context.Context, userID uuid.UUID, in SnippetInput) (*models.Snippet, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	var id uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO snippets (title, code, language, explanation, tags, is_favorite, user_id, collection_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, in.Title, in.Code, in.Language, in.Explanation, tags, in.IsFavorite, userID, in.CollectionID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create snippet: %w", err)
	}

	return s.Get(ctx, id, userID)
}

func (s *SnippetService) Update(ctx context.Context, id, userID uuid.UUID, in SnippetUpdate) (*models.Snippet, error) {
	existing, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	title := existing.Title
	if in.Title != nil {
		title = *in.Title
	}
	code := existing.Code
	if in.Code != nil {
		code = *in.Code
	}
	language := existing.Language
	if in.Language != nil {
		language = *in.Language
	}
	explanation := existing.Explanation
	if in.Explanation != nil {
		explanation = in.Explanation
	}

	// tags and isFavorite are not merged: an update that omits them
	// resets them, mirroring the create defaults.
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	isFavorite := false
	if in.IsFavorite != nil {
		isFavorite = *in.IsFavorite
	}

	collectionID := existing.CollectionID
	if in.CollectionID != nil {
		collectionID = *in.CollectionID
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE snippets
		SET title = $1, code = $2, language = $3, explanation = $4, tags = $5,
		    is_favorite = $6, collection_id = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
	`, title, code, language, explanation, tags, isFavorite, collectionID, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update snippet: %w", err)
	}

	return s.Get(ctx, id, userID)
}

func (s *SnippetService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM snippets WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSnippetNotFound
	}
	return nil
}

func (s *SnippetService) ToggleFavorite(ctx context.Context, id, userID uuid.UUID) (*models.Snippet, error) {
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE snippets SET is_favorite = NOT is_favorite, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrSnippetNotFound
	}

	return s.Get(ctx, id, userID)
}
