package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/reviewmarket/api/internal/hash"
	"github.com/reviewmarket/api/internal/models"
	"github.com/reviewmarket/api/internal/repo"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

type Service struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

// Authenticate verifies credentials without revealing whether the email or
// the password was wrong.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssuePair signs an access token and a refresh token and stores the
// refresh token for later rotation checks.
func (s *Service) IssuePair(ctx context.Context, user *models.User) (string, string, error) {
	access, err := s.signAccess(user.ID, user.Role)
	if err != nil {
		return "", "", err
	}

	refreshExp := time.Now().Add(refreshTTL)
	refresh, err := s.signRefresh(user.ID, user.Role, refreshExp)
	if err != nil {
		return "", "", err
	}

	stored := &models.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.SaveRefreshToken(ctx, stored); err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// Rotate exchanges a valid refresh token for a fresh pair and revokes the
// old token so it cannot be replayed.
func (s *Service) Rotate(ctx context.Context, raw string) (string, string, error) {
	claims, err := s.validateRefresh(ctx, raw)
	if err != nil {
		return "", "", err
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return "", "", ErrInvalidToken
	}
	role, ok := models.ParseRole(fmt.Sprint(claims["role"]))
	if !ok {
		return "", "", ErrInvalidToken
	}

	if err := s.Repo.RevokeRefreshToken(ctx, raw); err != nil {
		return "", "", err
	}

	return s.IssuePair(ctx, &models.User{ID: uint(sub), Role: role})
}

// ParseAccess maps a bearer token to the principal it was issued for.
func (s *Service) ParseAccess(raw string) (*models.Principal, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if typ, present := claims["typ"]; present && typ == "refresh" {
		return nil, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, ok := models.ParseRole(fmt.Sprint(claims["role"]))
	if !ok {
		return nil, ErrInvalidToken
	}

	return &models.Principal{UserID: uint(sub), Role: role}, nil
}

func (s *Service) signAccess(userID uint, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(accessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.JWTSecret)
}

func (s *Service) signRefresh(userID uint, role models.Role, exp time.Time) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	// jti keeps tokens signed within the same second distinct
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"typ":  "refresh",
		"jti":  hex.EncodeToString(nonce),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.RefreshSecret)
}

func (s *Service) validateRefresh(ctx context.Context, raw string) (jwt.MapClaims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.RefreshSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if typ, present := claims["typ"]; !present || typ != "refresh" {
		return nil, ErrInvalidToken
	}

	stored, err := s.Repo.GetRefreshToken(ctx, raw)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if stored.Revoked {
		return nil, ErrInvalidToken
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
