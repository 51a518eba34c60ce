// Package auth issues and verifies the bearer tokens the API runs on.
package auth

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/config"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// Manager signs and verifies HS256 access and refresh tokens.
type Manager struct {
	secret     []byte
	issuer     string
	audience   string
	expiration time.Duration
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.JWTIssuer,
		audience:   cfg.JWTAudience,
		expiration: time.Duration(cfg.JWTExpirationMs) * time.Millisecond,
	}
}

// GenerateToken creates a short-lived access token for the user.
func (m *Manager) GenerateToken(userID uuid.UUID, email string) (string, error) {
	claims := jwt.MapClaims{
		"iss":    m.issuer,
		"aud":    m.audience,
		"userId": userID.String(),
		"email":  email,
		"exp":    jwt.NewNumericDate(time.Now().Add(m.expiration)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// GenerateRefreshToken creates a 30-day refresh token for the user.
func (m *Manager) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"iss":    m.issuer,
		"aud":    m.audience,
		"userId": userID.String(),
		"type":   "refresh",
		"exp":    jwt.NewNumericDate(time.Now().Add(refreshTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// VerifyToken validates an access token and returns the user id it carries.
func (m *Manager) VerifyToken(tokenString string) (uuid.UUID, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	if tokenType, _ := claims["type"].(string); tokenType == "refresh" {
		return uuid.Nil, apperr.New(apperr.KindUnauthenticated, "Invalid token")
	}
	return m.userIDClaim(claims)
}

// VerifyRefreshToken validates a refresh token and returns the user id.
// Access tokens are rejected so a leaked short-lived token cannot mint
// new credentials.
func (m *Manager) VerifyRefreshToken(tokenString string) (uuid.UUID, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return uuid.Nil, apperr.New(apperr.KindUnauthenticated, "Invalid refresh token")
	}
	return m.userIDClaim(claims)
}

func (m *Manager) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthenticated, "Invalid token", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.New(apperr.KindUnauthenticated, "Invalid token")
	}
	return claims, nil
}

func (m *Manager) userIDClaim(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, _ := claims["userId"].(string)
	userID, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.KindUnauthenticated, "Invalid token", err)
	}
	return userID, nil
}
