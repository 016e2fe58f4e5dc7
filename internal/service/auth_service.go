package service

import (
	"context"
	"fmt"
	"time"

	"catalog-api-server/internal/domain"
	"catalog-api-server/internal/repository"
	"catalog-api-server/pkg/hash"
	"catalog-api-server/pkg/jwt"
)

type AuthService struct {
	userRepo          repository.UserRepository
	jwtSecret         string
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExp, refreshExp time.Duration) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExp,
		refreshExpiration: refreshExp,
	}
}

// Token exchanges a username/password pair for an access+refresh token
// pair. Unknown users and wrong passwords report the same error.
func (s *AuthService) Token(ctx context.Context, req *domain.TokenRequest) (*domain.TokenPairResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := hash.Compare(user.Password, req.Password); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	accessToken, err := jwt.GenerateToken(user.ID, s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(user.ID, s.refreshExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtExpiration.Seconds()),
	}, nil
}

// Refresh mints a fresh access token from a still-valid refresh token.
// Access tokens presented here are rejected regardless of validity.
func (s *AuthService) Refresh(ctx context.Context, req *domain.RefreshRequest) (*domain.AccessTokenResponse, error) {
	claims, err := jwt.ValidateToken(req.RefreshToken, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, fmt.Errorf("invalid refresh token")
	}

	if _, err := s.userRepo.FindByID(ctx, claims.UserID); err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	accessToken, err := jwt.GenerateToken(claims.UserID, s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AccessTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtExpiration.Seconds()),
	}, nil
}

// ResolveIdentity turns a presented access token into a caller identity.
// The token must be valid, of type access, and its subject must resolve to
// a known user.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := jwt.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("invalid or expired token")
	}

	if claims.TokenType != jwt.TokenTypeAccess {
		return domain.Identity{}, fmt.Errorf("invalid or expired token")
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("unknown token subject")
	}

	return domain.Identity{UserID: user.ID, Role: user.Role()}, nil
}
