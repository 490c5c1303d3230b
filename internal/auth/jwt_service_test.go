package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"teamforge/internal/model"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	t.Run("access token carries identity and role", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(userID, "asha@example.com", model.RoleAdmin)
		assert.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "asha@example.com", claims.Email)
		assert.Equal(t, model.RoleAdmin, claims.Role)

		subject, err := claims.SubjectID()
		assert.NoError(t, err)
		assert.Equal(t, userID, subject)
	})

	t.Run("refresh token carries its store key", func(t *testing.T) {
		tokenID, token, err := svc.GenerateRefreshToken(userID, "asha@example.com", model.RoleUser)
		assert.NoError(t, err)
		assert.NotEmpty(t, tokenID)

		extracted, err := svc.ExtractTokenID(token)
		assert.NoError(t, err)
		assert.Equal(t, tokenID, extracted)
	})

	t.Run("access token has no store key", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(userID, "asha@example.com", model.RoleUser)
		assert.NoError(t, err)

		_, err = svc.ExtractTokenID(token)
		assert.Error(t, err)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(userID, "asha@example.com", model.RoleUser)
		assert.NoError(t, err)

		_, err = NewJWTService("other-secret").ValidateToken(token)
		assert.Error(t, err)
	})
}
