package services

import (
	"testing"
	"time"

	"github.com/Renal37/quickserve/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	service := NewJWTService("secret")
	user := &models.User{ID: uuid.New(), Role: models.RoleShopkeeper}

	pair, err := service.GenerateTokens(user)
	require.NoError(t, err)

	claims, err := service.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, models.RoleShopkeeper, claims.Role)

	refresh, err := service.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), refresh.Subject)
}

func TestJWTServiceRejectsWrongTokenType(t *testing.T) {
	service := NewJWTService("secret")
	pair, err := service.GenerateTokens(&models.User{ID: uuid.New(), Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = service.ValidateToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenIsInvalid)

	_, err = service.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenIsInvalid)
}

func TestJWTServiceRejectsForeignSignature(t *testing.T) {
	pair, err := NewJWTService("other").GenerateTokens(&models.User{ID: uuid.New(), Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = NewJWTService("secret").ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenIsInvalid)
}

func TestJWTServiceExpiredAccessToken(t *testing.T) {
	issuedAt := time.Now().Add(-time.Hour)
	service := NewJWTService("secret")
	service.now = func() time.Time { return issuedAt }

	pair, err := service.GenerateTokens(&models.User{ID: uuid.New(), Role: models.RoleCustomer})
	require.NoError(t, err)

	service.now = time.Now

	_, err = service.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenIsExpired)

	// refresh живет 7 дней и все еще действителен
	_, err = service.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}
