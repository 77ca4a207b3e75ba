package testutil

import (
	"context"

	"github.com/NoteLegend/CodeKeep/internal/models"
	"github.com/NoteLegend/CodeKeep/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCollectionService mocks the CollectionService
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) List(ctx context.Context, userID uuid.UUID) ([]models.Collection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collection), args.Error(1)
}

func (m *MockCollectionService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Collection, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Collection, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) Update(ctx context.Context, id, userID uuid.UUID, name string) (*models.Collection, error) {
	args := m.Called(ctx, id, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockSnippetService mocks the SnippetService
type MockSnippetService struct {
	mock.Mock
}

func (m *MockSnippetService) List(ctx context.Context, userID uuid.UUID, filter services.SnippetFilter) ([]models.Snippet, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Snippet), args.Error(1)
}

func (m *MockSnippetService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Snippet, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snippet), args.Error(1)
}

func (m *MockSnippetService) Create(ctx context.Context, userID uuid.UUID, in services.SnippetInput) (*models.Snippet, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snippet), args.Error(1)
}

func (m *MockSnippetService) Update(ctx context.Context, id, userID uuid.UUID, in services.SnippetUpdate) (*models.Snippet, error) {
	args := m.Called(ctx, id, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snippet), args.Error(1)
}

func (m *MockSnippetService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockSnippetService) ToggleFavorite(ctx context.Context, id, userID uuid.UUID) (*models.Snippet, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snippet), args.Error(1)
}
