package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/NoteLegend/CodeKeep/internal/middleware"
	"github.com/NoteLegend/CodeKeep/internal/models"
	"github.com/NoteLegend/CodeKeep/internal/services"
	"github.com/NoteLegend/CodeKeep/pkg/dto"
	"github.com/NoteLegend/CodeKeep/tests/testutil"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupSnippetTest(t *testing.T) (*testutil.MockSnippetService, *testutil.MockCollectionService, http.Handler, *services.JWTService) {
	t.Helper()
	mockSnippetService := new(testutil.MockSnippetService)
	mockCollectionService := new(testutil.MockCollectionService)
	jwtSvc := newTestJWTService()
	handler := NewSnippetHandler(mockSnippetService, mockCollectionService)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/snippets", handler.List)
	app.Get("/snippets/:id", handler.Get)
	app.Post("/snippets", handler.Create)
	app.Put("/snippets/:id", handler.Update)
	app.Delete("/snippets/:id", handler.Delete)
	app.Patch("/snippets/:id/favorite", handler.ToggleFavorite)

	return mockSnippetService, mockCollectionService, app, jwtSvc
}

func TestSnippetHandler_List_Success(t *testing.T) {
	mockSnippetService, _, app, jwtSvc := setupSnippetTest(t)

	userID := uuid.New()
	snippets := []models.Snippet{
		{ID: uuid.New(), Title: "Hello", Language: "go", Tags: []string{}, UserID: userID},
	}
	mockSnippetService.On("List", mock.Anything, userID, services.SnippetFilter{}).Return(snippets, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	rec := authedRequest(t, app, http.MethodGet, "/snippets", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Success bool             `json:"success"`
		Count   int              `json:"count"`
		Data    []models.Snippet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, 1, response.Count)

	mockSnippetService.AssertExpectations(t)
}

func TestSnippetHandler_List_Filters(t *testing.T) {
	mockSnippetService, _, app, jwtSvc := setupSnippetTest(t)

	userID := uuid.New()
	collectionID := uuid.New()
	expected := services.SnippetFilter{
		CollectionID:  &collectionID,
		FavoritesOnly: true,
		Tag:           "cli",
	}
	mockSnippetService.On("List", mock.Anything, userID, expected).Return([]models.Snippet{}, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	path := "/snippets?collection=" + collectionID.String() + "&isFavorite=true&tag=cli"
	rec := authedRequest(t, app, http.MethodGet, path, token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSnippetService.AssertExpectations(t)
}

func TestSnippetHandler_List_FavoriteParamMustBeTrue(t *testing.T) {
	mockSnippetService, _, app, jwtSvc := setupSnippetTest(t)

	userID := uuid.New()
	// Any value other than the literal "true" leaves the filter off.
	mockSnippetService.On("List", mock.Anything, userID, services.SnippetFilter{}).Return([]models.Snippet{}, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	rec := authedRequest(t, app, http.MethodGet, "/snippets?isFavorite=1", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSnippetService.AssertExpectations(t)
}

func TestSnippetHandler_List_InvalidCollectionParam(t *testing.T) {
	_, _, app, jwtSvc := setupSnippetTest(t)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	rec := authedRequest(t, app, http.MethodGet, "/snippets?collection=not-a-uuid", token, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid collection ID")
}

func TestSnippetHandler_Get_NotFound(t *testing.T) {
	mockSnippetService, _, app, jwtSvc := setupSnippetTest(t)

	userID := uuid.New()
	snippetID := uuid.New()
	mockSnippetService.On("Get", mock.Anything, snippetID, userID).
		Return(nil, services.ErrSnippetNotFound)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	rec := authedRequest(t, app, http.MethodGet, "/snippets/"+snippetID.String(), token, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Snippet not found")
	mockSnippetService.AssertExpectations(t)
}

func TestSnippetHandler_Get_InvalidID(t *testing.T) {
	_, _, app, jwtSvc := setupSnippetTest(t)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	rec := authedRequest(t, app, http.MethodGet, "/snippets/42", token, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Snippet not found")
}

func TestSnippetHandler_Create_Success(t *testing.T) {
	mockSnippetService, mockCollectionService, app, jwtSvc := setupSnippetTest(t)

	userID := uuid.New()
	collectionID := uuid.New()
	collection := &models.Collection{ID: collectionID, Name: "Go", UserID: userID}
	snippet := &models.Snippet{
		ID: uuid.New(), Title: "Hello", Code: "fmt.Println(1)", Language: "go",
		Tags: []string{"basics"}, UserID: userID, CollectionID: collectionID,
		Collection: &models.CollectionRef{ID: collectionID, Name: "Go"},
	}

	mockCollectionService.On("Get", mock.Anything, collectionID, userID).Return(collection, nil)
	mockSnippetService.On("Create", mock.Anything, userID, mock.Anything).Return(snippet, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	rec := authedRequest(t, app, http.MethodPost, "/snippets", token, dto.CreateSnippetRequest{
		Title:      "Hello",
		Code:       "fmt.Println(1)",
		Language:   "go",
		Tags:       []string{"basics"},
		Collection: collectionID.String(),
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response struct {
		Success bool           `json:"success"`
		Data    models.Snippet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.NotNil(t, response.Data.Collection)
	assert.Equal(t, "Go", response.Data.Collection.Name)

	mockSnippetService.AssertExpectations(t)
	mockCollectionService.AssertExpectations(t)
}

func TestSnippetHandler_Create_ValidationErrors(t *testing.T) {
	_, _, app, jwtSvc := setupSnippetTest(t)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	rec := authedRequest(t, app, http.MethodPost, "/snippets", token, dto.CreateSnippetRequest{
		Title:      "",
		Code:       "",
		Language:   "",
		Collection: "not-a-uuid",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title is required")
	assert.Contains(t, rec.Body.String(), "Code is required")
	assert.Contains(t, rec.Body.String(), "Language is required")
	assert.Contains(t, rec.Body.String(), "Invalid collection ID")
}

func TestSnippetHandler_Create_ForeignCollection(t *testing.T) {
	_, mockCollectionService, app, jwtSvc := setupSnippetTest(t)

	userID := uuid.New()
	collectionID := uuid.New()
	mockCollectionService.On("Get", mock.Anything, collectionID, userID).
		Return(nil, services.ErrCollectionNotFound)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	rec := authedRequest(t, app, http.MethodPost, "/snippets", token, dto.CreateSnippetRequest{
		Title:      "Hello",
		Code:       "fmt.Println(1)",
		Language:   "go",
		Collection: collectionID.String(),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Collection not found or does not belong to user")
	mockCollectionService.AssertExpectations(t)
}

func TestSnippetHandler_Update_KeepsCollectionWithoutRecheck(t *testing.T) {
	mockSnippetService, mockCollectionService, app, jwtSvc := setupSnippetTest(t)

	userID := uuid.New()
	snippetID := uuid.New()
	collectionID := uuid.New()
	existing := &models.Snippet{
		ID: snippetID, Title: "Hello", Code: "fmt.Println(1)", Language: "go",
		Tags: []string{}, UserID: userID, CollectionID: collectionID,
	}
	updated := &models.Snippet{
		ID: snippetID, Title: "Hello v2", Code: "fmt.Println(1)", Language: "go",
		Tags: []string{}, UserID: userID, CollectionID: collectionID,
	}

	mockSnippetService.On("Get", mock.Anything, snippetID, userID).Return(existing, nil)
	mockSnippetService.On("Update", mock.Anything, snippetID, userID, mock.Anything).Return(updated, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	title := "Hello v2"
	rec := authedRequest(t, app, http.MethodPut, "/snippets/"+snippetID.String(), token,
		dto.UpdateSnippetRequest{Title: &title})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello v2")

	// No collection change, so ownership is not re-checked.
	mockCollectionService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	mockSnippetService.AssertExpectations(t)
}

func TestSnippetHandler_Update_ChangedCollectionIsVerified(t *testing.T) {
	mockSnippetService, mockCollectionService, app, jwtSvc := setupSnippetTest(t)

	userID := uuid.New()
	snippetID := uuid.New()
	oldCollection := uuid.New()
	newCollection := uuid.New()
	existing := &models.Snippet{
		ID: snippetID, Title: "Hello", Code: "fmt.Println(1)", Language: "go",
		Tags: []string{}, UserID: userID, CollectionID: oldCollection,
	}

	mockSnippetService.On("Get", mock.Anything, snippetID, userID).Return(existing, nil)
	mockCollectionService.On("Get", mock.Anything, newCollection, userID).
		Return(nil, services.ErrCollectionNotFound)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	newCollectionStr := newCollection.String()
	rec := authedRequest(t, app, http.MethodPut, "/snippets/"+snippetID.String(), token,
		dto.UpdateSnippetRequest{Collection: &newCollectionStr})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Collection not found or does not belong to user")
	mockCollectionService.AssertExpectations(t)
}

func TestSnippetHandler_Delete_Success(t *testing.T) {
	mockSnippetService, _, app, jwtSvc := setupSnippetTest(t)

	userID := uuid.New()
	snippetID := uuid.New()
	mockSnippetService.On("Delete", mock.Anything, snippetID, userID).Return(nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	rec := authedRequest(t, app, http.MethodDelete, "/snippets/"+snippetID.String(), token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Snippet deleted successfully")
	mockSnippetService.AssertExpectations(t)
}

func TestSnippetHandler_ToggleFavorite_Success(t *testing.T) {
	mockSnippetService, _, app, jwtSvc := setupSnippetTest(t)

	userID := uuid.New()
	snippetID := uuid.New()
	toggled := &models.Snippet{
		ID: snippetID, Title: "Hello", Language: "go", Tags: []string{},
		IsFavorite: true, UserID: userID,
	}
	mockSnippetService.On("ToggleFavorite", mock.Anything, snippetID, userID).Return(toggled, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	rec := authedRequest(t, app, http.MethodPatch, "/snippets/"+snippetID.String()+"/favorite", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isFavorite":true`)
	mockSnippetService.AssertExpectations(t)
}

func TestSnippetHandler_ToggleFavorite_NotFound(t *testing.T) {
	mockSnippetService, _, app, jwtSvc := setupSnippetTest(t)

	userID := uuid.New()
	snippetID := uuid.New()
	mockSnippetService.On("ToggleFavorite", mock.Anything, snippetID, userID).
		Return(nil, services.ErrSnippetNotFound)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	rec := authedRequest(t, app, http.MethodPatch, "/snippets/"+snippetID.String()+"/favorite", token, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockSnippetService.AssertExpectations(t)
}
