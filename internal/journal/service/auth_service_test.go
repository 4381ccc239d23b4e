package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-trade-journal/internal/journal/dto"
	"go-trade-journal/pkg/logger"
	"go-trade-journal/pkg/security"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()

	hash, err := security.HashPassword("superadmin123")
	require.NoError(t, err)

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	tokens := security.NewAuthService("test-secret", time.Hour)
	return NewAuthService("owner", hash, tokens, time.Hour, log)
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "owner", Password: "superadmin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "owner", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "visitor", Password: "superadmin123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
