package auth

import (
	"fmt"
	"log/slog"
	"time"

	"starforge/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "starforge"

type TokenService struct {
	secret     []byte
	expiration time.Duration
	logger     *slog.Logger
}

// NewTokenService returns nil when no JWT secret is configured, which
// leaves every protected endpoint closed.
func NewTokenService(cfg config.AuthConfig, logger *slog.Logger) *TokenService {
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, admin endpoints are disabled")
		return nil
	}

	return &TokenService{
		secret:     []byte(cfg.JWTSecret),
		expiration: cfg.TokenExpiration,
		logger:     logger,
	}
}

func (s *TokenService) Generate(subject, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Debug("Token issued", "subject", subject, "role", role, "expires_at", claims.ExpiresAt.Time)
	return signed, nil
}

func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
