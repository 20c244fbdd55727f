package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	cacheSvc := new(MockCacheService)
	cacheSvc.On("IsTokenDenylisted", mock.Anything, mock.Anything).Return(false, nil)

	svc := NewAuthService(cacheSvc, "test-secret", time.Hour)
	sessionID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(context.Background(), 7, sessionID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, sessionID.String(), claims.SessionID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cacheSvc := new(MockCacheService)

	issuer := NewAuthService(cacheSvc, "secret-a", time.Hour)
	verifier := NewAuthService(cacheSvc, "secret-b", time.Hour)

	token, _, err := issuer.GenerateToken(context.Background(), 7, uuid.New())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	assert.Error(t, err)
}

func TestRevokedTokenRejected(t *testing.T) {
	cacheSvc := new(MockCacheService)
	cacheSvc.On("DenylistToken", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cacheSvc.On("IsTokenDenylisted", mock.Anything, mock.Anything).Return(true, nil)

	svc := NewAuthService(cacheSvc, "test-secret", time.Hour)

	token, _, err := svc.GenerateToken(context.Background(), 7, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "revoked")
}

func TestValidateTokenCacheDownDoesNotLockOut(t *testing.T) {
	cacheSvc := new(MockCacheService)
	cacheSvc.On("IsTokenDenylisted", mock.Anything, mock.Anything).Return(false, assert.AnError)

	svc := NewAuthService(cacheSvc, "test-secret", time.Hour)

	token, _, err := svc.GenerateToken(context.Background(), 7, uuid.New())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}
