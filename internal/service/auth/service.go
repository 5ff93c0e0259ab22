package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/security"
)

// Config holds the fixed admin credential and token settings. This is a
// mock credential check, not an identity system; the issued token only
// tags the bearer with a role.
type Config struct {
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
}

type Service struct {
	username     string
	passwordHash string
	secret       []byte
	expiry       time.Duration
}

func NewService(cfg Config) (*Service, error) {
	hash, err := security.HashPassword(cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare credential: %w", err)
	}
	expiry := cfg.TokenExpiry
	if expiry == 0 {
		expiry = 12 * time.Hour
	}
	return &Service{
		username:     cfg.Username,
		passwordHash: hash,
		secret:       []byte(cfg.JWTSecret),
		expiry:       expiry,
	}, nil
}

func (s *Service) Login(req model.LoginRequest) (model.TokenResponse, error) {
	if req.Username != s.username || !security.VerifyPassword(s.passwordHash, req.Password) {
		return model.TokenResponse{}, errors.Unauthorized(nil)
	}

	now := time.Now()
	claims := model.Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   req.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return model.TokenResponse{}, errors.Internal(err)
	}

	return model.TokenResponse{
		Token:     token,
		Role:      claims.Role,
		ExpiresIn: int64(s.expiry.Seconds()),
	}, nil
}

func (s *Service) Verify(tokenString string) (*model.Claims, error) {
	claims := &model.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Unauthorized(err)
	}
	return claims, nil
}
