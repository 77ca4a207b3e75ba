package handlers

import (
	"context"

	"github.com/NoteLegend/CodeKeep/internal/models"
	"github.com/NoteLegend/CodeKeep/internal/services"
	"github.com/google/uuid"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// CollectionServiceInterface defines the methods used by handlers from CollectionService
type CollectionServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Collection, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*models.Collection, error)
	Create(ctx context.Context, userID uuid.UUID, name string) (*models.Collection, error)
	Update(ctx context.Context, id, userID uuid.UUID, name string) (*models.Collection, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// SnippetServiceInterface defines the methods used by handlers from SnippetService
type SnippetServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID, filter services.SnippetFilter) ([]models.Snippet, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*models.Snippet, error)
	Create(ctx context.Context, userID uuid.UUID, in services.SnippetInput) (*models.Snippet, error)
	Update(ctx context.Context, id, userID uuid.UUID, in services.SnippetUpdate) (*models.Snippet, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ToggleFavorite(ctx context.Context, id, userID uuid.UUID) (*models.Snippet, error)
}
