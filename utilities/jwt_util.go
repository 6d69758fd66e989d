package utilities

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tripify-backend/internal/config"
	"tripify-backend/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid or malformed token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims struct
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// JWTManager signs and verifies HS256 access and refresh tokens.
type JWTManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewJWTManager(cfg config.AuthenticationConfig) *JWTManager {
	return &JWTManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessExpiry:  cfg.AccessTokenExpiry(),
		refreshExpiry: cfg.RefreshTokenExpiry(),
		now:           time.Now,
	}
}

// GenerateTokens creates both access and refresh tokens
func (m *JWTManager) GenerateTokens(user *model.User) (TokenPair, error) {
	accessToken, err := m.generateToken(user, m.accessSecret, m.accessExpiry)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := m.generateToken(user, m.refreshSecret, m.refreshExpiry)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ValidateToken verifies the token and extracts claims
func (m *JWTManager) ValidateToken(tokenStr string, isRefresh bool) (*Claims, error) {
	secret := m.accessSecret
	if isRefresh {
		secret = m.refreshSecret
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrExpiredToken
	}
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RefreshTokens generates a new access and refresh token using a valid refresh token
func (m *JWTManager) RefreshTokens(refreshToken string) (TokenPair, error) {
	claims, err := m.ValidateToken(refreshToken, true)
	if err != nil {
		return TokenPair{}, err
	}

	return m.GenerateTokens(&model.User{
		ID:    claims.UserID,
		Email: claims.Email,
	})
}

// Helper function to generate JWT token
func (m *JWTManager) generateToken(user *model.User, secret []byte, expiry time.Duration) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
