package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger/app/dto"
	"ledger/app/entity"
	"ledger/app/password"
	"ledger/app/repository"
	"ledger/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWeakPassword       = errors.New("password does not meet policy requirements")
)

type AuthService struct {
	userRepo    *repository.UserRepository
	refreshRepo *repository.RefreshTokenRepository
	hasher      *password.Hasher
	cfg         *config.Config
}

func NewAuthService(
	userRepo *repository.UserRepository,
	refreshRepo *repository.RefreshTokenRepository,
	hasher *password.Hasher,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		hasher:      hasher,
		cfg:         cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, email, plaintext, fullName string) (*dto.AuthResult, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	if err := s.cfg.PasswordPolicy.Validate(plaintext); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	passwordHash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     nullString(fullName),
		Balance:      decimal.Zero,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logrus.WithField("user_id", user.ID).Info("User registered")

	return s.issueTokens(ctx, user.ID)
}

func (s *AuthService) Login(ctx context.Context, email, plaintext string) (*dto.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Same error as a wrong password so callers cannot probe for accounts.
		return nil, ErrInvalidCredentials
	}

	match, err := s.hasher.Verify(plaintext, user.PasswordHash)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("Stored password hash is unreadable")
		return nil, ErrInvalidCredentials
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	logrus.WithField("user_id", user.ID).Info("Login successful")
	return s.issueTokens(ctx, user.ID)
}

// RefreshToken exchanges a live refresh token for a fresh token pair. The
// consumed token row is left in place and remains honorable until its own
// expiry instant.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResult, error) {
	user, err := s.userRepo.FindByValidRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return s.issueTokens(ctx, user.ID)
}

// ValidateAccessToken verifies the signature and expiry of an access token and
// returns its subject. It performs no store access. Every failure mode
// collapses to ErrInvalidToken; the cause is only logged.
func (s *AuthService) ValidateAccessToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(s.cfg.TokenLeeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		logrus.WithError(err).Debug("Access token rejected")
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

func (s *AuthService) issueTokens(ctx context.Context, userID string) (*dto.AuthResult, error) {
	accessToken, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       userID,
	}, nil
}

func (s *AuthService) generateAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(ctx context.Context, userID string) (string, error) {
	tokenString := uuid.New().String()
	now := time.Now()

	refreshToken := &entity.RefreshToken{
		UserID:    userID,
		Token:     tokenString,
		ExpiresAt: now.Add(s.cfg.RefreshTokenTTL),
		CreatedAt: now,
	}

	if err := s.refreshRepo.Create(ctx, refreshToken); err != nil {
		return "", err
	}

	return tokenString, nil
}
