package services

import (
	"context"
	"fmt"
	"time"

	"dinepos/internal/caching"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService issues and validates the HS256 tokens that tie a request to a
// login session. Revoked token ids are tracked in the cache until expiry.
type AuthService interface {
	GenerateToken(ctx context.Context, userID int64, sessionID uuid.UUID) (string, time.Time, error)
	ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error)
	RevokeToken(ctx context.Context, claims *TokenClaims) error
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID    int64  `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

type authService struct {
	cacheSvc  caching.CacheService
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(cacheSvc caching.CacheService, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		cacheSvc:  cacheSvc,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) GenerateToken(ctx context.Context, userID int64, sessionID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := TokenClaims{
		UserID:    userID,
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "dinepos-auth",
			Subject:   fmt.Sprintf("%d", userID),
			Audience:  jwt.ClaimStrings{"dinepos-api"},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token not valid")
	}

	denied, err := s.cacheSvc.IsTokenDenylisted(ctx, claims.ID)
	if err != nil {
		// Cache being down must not lock everyone out.
		return claims, nil
	}
	if denied {
		return nil, fmt.Errorf("token revoked")
	}
	return claims, nil
}

func (s *authService) RevokeToken(ctx context.Context, claims *TokenClaims) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.cacheSvc.DenylistToken(ctx, claims.ID, ttl)
}
