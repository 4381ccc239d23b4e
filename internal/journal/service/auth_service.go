package service

import (
	"context"
	"crypto/subtle"
	"time"

	"go-trade-journal/internal/journal/dto"
	"go-trade-journal/pkg/logger"
	"go-trade-journal/pkg/security"
)

// AuthService is the owner-mode gate: a single owner account configured at
// startup, exchanged for a signed token on login.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	TokenExpiry() time.Duration
}

// NewAuthService creates the owner login service.
func NewAuthService(ownerUsername, ownerPasswordHash string, tokens *security.AuthService, tokenExpiry time.Duration, logger *logger.Logger) AuthService {
	return &authService{
		ownerUsername:     ownerUsername,
		ownerPasswordHash: ownerPasswordHash,
		tokens:            tokens,
		tokenExpiry:       tokenExpiry,
		logger:            logger,
	}
}

type authService struct {
	ownerUsername     string
	ownerPasswordHash string
	tokens            *security.AuthService
	tokenExpiry       time.Duration
	logger            *logger.Logger
}

// Login checks the owner credentials and issues a token. Username and
// password failures are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.ownerUsername)) == 1
	passwordOK := security.CompareHashAndPassword(s.ownerPasswordHash, req.Password) == nil

	if !usernameOK || !passwordOK {
		s.logger.Warn("Rejected owner login attempt", logger.Field("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(s.ownerUsername)
	if err != nil {
		s.logger.Error("Failed to issue owner token", logger.ErrorField(err))
		return nil, err
	}

	s.logger.Info("Owner logged in")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenExpiry),
	}, nil
}

// TokenExpiry reports the configured token lifetime, used for cookie expiry.
func (s *authService) TokenExpiry() time.Duration {
	return s.tokenExpiry
}
