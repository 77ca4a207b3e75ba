package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/NoteLegend/CodeKeep/internal/database"
	"github.com/NoteLegend/CodeKeep/internal/models"
	"github.com/NoteLegend/CodeKeep/internal/services"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext password used for all fixture users.
const TestPassword = "password123"

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db        *database.DB
	passwords *services.PasswordService
	counter   int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{
		db:        db,
		passwords: services.NewPasswordServiceWithCost(bcrypt.MinCost),
	}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Name:  fmt.Sprintf("Test User %d", f.counter),
		Email: fmt.Sprintf("user%d@example.com", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	hash, err := f.passwords.Hash(TestPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at, updated_at
	`, user.Name, user.Email, hash).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// CreateCollection creates a test collection owned by the given user
func (f *Fixtures) CreateCollection(t *testing.T, owner *models.User, opts ...CollectionOption) *models.Collection {
	t.Helper()
	f.counter++

	col := &models.Collection{
		Name:   fmt.Sprintf("Test Collection %d", f.counter),
		UserID: owner.ID,
	}

	for _, opt := range opts {
		opt(col)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO collections (name, user_id)
		VALUES ($1, $2)
		RETURNING id, name, user_id, created_at, updated_at
	`, col.Name, col.UserID).Scan(
		&col.ID, &col.Name, &col.UserID, &col.CreatedAt, &col.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create collection: %v", err)
	}

	return col
}

// CollectionOption configures a test collection
type CollectionOption func(*models.Collection)

// WithCollectionName sets the collection name
func WithCollectionName(name string) CollectionOption {
	return func(c *models.Collection) {
		c.Name = name
	}
}

// CreateSnippet creates a test snippet in the given collection
func (f *Fixtures) CreateSnippet(t *testing.T, owner *models.User, col *models.Collection, opts ...SnippetOption) *models.Snippet {
	t.Helper()
	f.counter++

	sn := &models.Snippet{
		Title:        fmt.Sprintf("Test Snippet %d", f.counter),
		Code:         fmt.Sprintf("fmt.Println(%d)", f.counter),
		Language:     "go",
		Tags:         []string{},
		UserID:       owner.ID,
		CollectionID: col.ID,
	}

	for _, opt := range opts {
		opt(sn)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO snippets (title, code, language, explanation, tags, is_favorite, user_id, collection_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, title, code, language, explanation, tags, is_favorite, user_id, collection_id, created_at, updated_at
	`, sn.Title, sn.Code, sn.Language, sn.Explanation, sn.Tags, sn.IsFavorite, sn.UserID, sn.CollectionID).Scan(
		&sn.ID, &sn.Title, &sn.Code, &sn.Language, &sn.Explanation, &sn.Tags,
		&sn.IsFavorite, &sn.UserID, &sn.CollectionID, &sn.CreatedAt, &sn.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create snippet: %v", err)
	}

	sn.Collection = &models.CollectionRef{ID: col.ID, Name: col.Name}
	return sn
}

// SnippetOption configures a test snippet
type SnippetOption func(*models.Snippet)

// WithTitle sets the snippet title
func WithTitle(title string) SnippetOption {
	return func(s *models.Snippet) {
		s.Title = title
	}
}

// WithLanguage sets the snippet language
func WithLanguage(language string) SnippetOption {
	return func(s *models.Snippet) {
		s.Language = language
	}
}

// WithTags sets the snippet tags
func WithTags(tags ...string) SnippetOption {
	return func(s *models.Snippet) {
		s.Tags = tags
	}
}

// WithFavorite marks the snippet as favorite
func WithFavorite() SnippetOption {
	return func(s *models.Snippet) {
		s.IsFavorite = true
	}
}

// WithExplanation sets the snippet explanation
func WithExplanation(explanation string) SnippetOption {
	return func(s *models.Snippet) {
		s.Explanation = &explanation
	}
}
