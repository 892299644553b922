package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	adminSecret string
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(adminSecret string, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		adminSecret: adminSecret,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login checks the submitted admin secret and issues an access token.
// Failed attempts are logged but carry no detail about which check failed.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if !auth.CheckAdminSecret(s.adminSecret, req.Secret) {
		s.logger.Warn().Msg("Admin login rejected")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAdminToken()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate admin token")
		return nil, fmt.Errorf("generating admin token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
