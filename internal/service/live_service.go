package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/acadex/gradepoint-backend/internal/config"
	"github.com/acadex/gradepoint-backend/internal/model"
)

// Common live-session errors.
var (
	ErrTokenInvalid    = errors.New("invalid live session token")
	ErrSessionNotFound = errors.New("live session not found or expired")
)

// liveTokenType marks tokens minted by this service so tokens signed for
// other purposes with the same secret can never open a stream.
const liveTokenType = "live"

// LiveClaims extends JWT standard claims with the live-session marker.
// Sessions are anonymous: there is no subject.
type LiveClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// LiveService issues and validates anonymous live-calculation sessions.
// A session is a signed token plus a Redis registration keyed by the
// token ID; the registration's TTL (or its deletion) ends the session
// independently of the token's own expiry.
type LiveService struct {
	cfg *config.Config
	rdb *redis.Client
}

// NewLiveService creates a new LiveService.
func NewLiveService(cfg *config.Config, rdb *redis.Client) *LiveService {
	return &LiveService{cfg: cfg, rdb: rdb}
}

// OpenSession mints a session token and registers its ID in Redis.
func (s *LiveService) OpenSession(ctx context.Context) (*model.LiveSessionResponse, error) {
	jti := uuid.New().String()
	now := time.Now()
	expiresAt := now.Add(s.cfg.LiveSessionTTL)

	claims := LiveClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenType: liveTokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	key := config.CacheKey.LiveSessionKey(jti)
	if err := s.rdb.Set(ctx, key, now.UTC().Format(time.RFC3339), s.cfg.LiveSessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}

	return &model.LiveSessionResponse{
		SessionID: jti,
		Token:     signed,
		ExpiresAt: expiresAt.UTC(),
	}, nil
}

// ValidateToken parses and validates a live session token, returning the claims.
func (s *LiveService) ValidateToken(tokenStr string) (*LiveClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &LiveClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*LiveClaims)
	if !ok || !token.Valid || claims.TokenType != liveTokenType {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ValidateSession checks that the token's registration is still present in Redis.
func (s *LiveService) ValidateSession(ctx context.Context, jti string) error {
	if err := s.rdb.Get(ctx, config.CacheKey.LiveSessionKey(jti)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("check session: %w", err)
	}
	return nil
}

// EndSession removes the session registration ahead of its TTL.
func (s *LiveService) EndSession(ctx context.Context, jti string) error {
	return s.rdb.Del(ctx, config.CacheKey.LiveSessionKey(jti)).Err()
}
