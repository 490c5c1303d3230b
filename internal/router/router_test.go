package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"teamforge/internal/auth"
	"teamforge/internal/model"
)

const testSecret = "test-secret"

func bearerRequest(token string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	return req, httptest.NewRecorder()
}

func TestJWTMiddlewareStoresTypedClaims(t *testing.T) {
	jwtService := auth.NewJWTService(testSecret)
	userID := uuid.New()

	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "token missing from context")
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "claims have wrong type")
		}
		return c.JSON(http.StatusOK, map[string]string{
			"userId": claims.UserID,
			"role":   string(claims.Role),
		})
	}, jwtMiddleware(testSecret))

	t.Run("bearer token reaches the handler with parsed claims", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(userID, "asha@example.com", model.RoleUser)
		assert.NoError(t, err)

		req, rec := bearerRequest(token)
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), userID.String())
		assert.Contains(t, rec.Body.String(), string(model.RoleUser))
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		token, err := auth.NewJWTService("other-secret").GenerateAccessToken(userID, "asha@example.com", model.RoleUser)
		assert.NoError(t, err)

		req, rec := bearerRequest(token)
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	jwtService := auth.NewJWTService(testSecret)

	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, jwtMiddleware(testSecret), RequireAdmin)

	t.Run("admin role passes", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(uuid.New(), "admin@example.com", model.RoleAdmin)
		assert.NoError(t, err)

		req, rec := bearerRequest(token)
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("user role is forbidden", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(uuid.New(), "asha@example.com", model.RoleUser)
		assert.NoError(t, err)

		req, rec := bearerRequest(token)
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
