package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NoteLegend/CodeKeep/internal/services"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", time.Hour)
}

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, userID uuid.UUID, email string) string {
	t.Helper()
	token, err := jwtSvc.GenerateToken(userID, email)
	require.NoError(t, err)
	return token
}

func protectedApp(jwtSvc *services.JWTService) http.Handler {
	app := drift.New()
	app.Use(Auth(jwtSvc))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{
			"user_id": GetUserID(c).String(),
			"email":   GetUserEmail(c),
		})
	})
	return app
}

func TestAuth_MissingAuthorizationHeader(t *testing.T) {
	app := protectedApp(newTestJWTService())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized to access this route")
}

func TestAuth_InvalidAuthorizationFormat(t *testing.T) {
	app := protectedApp(newTestJWTService())

	testCases := []struct {
		name   string
		header string
	}{
		{"wrong scheme", "Token some-token"},
		{"only bearer", "Bearer"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tc.header)
			rec := httptest.NewRecorder()

			app.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Not authorized to access this route")
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	app := protectedApp(newTestJWTService())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized to access this route")
}

func TestAuth_ExpiredToken(t *testing.T) {
	shortLived := services.NewJWTService("test-secret-key", 1*time.Millisecond)
	app := protectedApp(shortLived)

	token := generateTestToken(t, shortLived, uuid.New(), "test@example.com")
	time.Sleep(10 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	jwtSvc := newTestJWTService()
	app := protectedApp(jwtSvc)

	userID := uuid.New()
	token := generateTestToken(t, jwtSvc, userID, "test@example.com")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.Contains(t, rec.Body.String(), "test@example.com")
}

func TestGetUserID_Unset(t *testing.T) {
	app := drift.New()
	app.Get("/open", func(c *drift.Context) {
		assert.Equal(t, uuid.Nil, GetUserID(c))
		assert.Equal(t, "", GetUserEmail(c))
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
