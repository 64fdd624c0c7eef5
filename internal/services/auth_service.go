package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hidecraft/internal/caching"
	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates workshop users and manages JWT access tokens
// with redis-backed refresh tokens.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// TokenClaims are the JWT claims carried by access tokens.
type TokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo   repositories.UserRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   int // seconds
	refreshTTL int // seconds
}

func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds, refreshTTLSeconds int) AuthService {
	return &authService{
		userRepo:   userRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTLSeconds,
		refreshTTL: refreshTTLSeconds,
	}
}

const minPasswordLength = 8

func (s *authService) Register(ctx context.Context, email, password, displayName string) (*models.User, error) {
	if email == "" || !strings.Contains(email, "@") {
		return nil, common.NewValidationError("email", "must be a valid address")
	}
	if len(password) < minPasswordLength {
		return nil, common.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if err := common.ValidateRequiredString(displayName, "display_name"); err != nil {
		return nil, err
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, common.NewValidationError("email", "is already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and bad password.
		return nil, common.NewValidationError("credentials", "email or password is incorrect")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.NewValidationError("credentials", "email or password is incorrect")
	}
	return s.issueTokens(ctx, user.ID)
}

func (s *authService) issueTokens(ctx context.Context, userID uuid.UUID) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "hidecraft",
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := generateSecureToken()
	if err != nil {
		return nil, err
	}
	refreshHash := hashToken(refreshToken)
	// value: userID:expiryUnix, keyed by the token hash so the raw token
	// never touches redis.
	data := fmt.Sprintf("%s:%d", userID.String(), now.Unix()+int64(s.refreshTTL))
	if err := s.cacheSvc.SetString(ctx, refreshTokenKey(refreshHash), data, time.Duration(s.refreshTTL)*time.Second); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokenTTL,
		RefreshToken: refreshToken,
		UserID:       userID.String(),
		IssuedAt:     now,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	refreshHash := hashToken(refreshToken)
	key := refreshTokenKey(refreshHash)

	data, err := s.cacheSvc.GetString(ctx, key)
	if err != nil || data == "" {
		return nil, common.NewValidationError("refresh_token", "is invalid or expired")
	}
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return nil, common.NewValidationError("refresh_token", "is invalid or expired")
	}
	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, common.NewValidationError("refresh_token", "is invalid or expired")
	}
	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || time.Now().Unix() > expiry {
		return nil, common.NewValidationError("refresh_token", "is invalid or expired")
	}

	// Rotate: the old refresh token is single use.
	if err := s.cacheSvc.Delete(ctx, key); err != nil {
		log.Warnf("refresh token rotation delete failed: %v", err)
	}
	return s.issueTokens(ctx, userID)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.cacheSvc.Delete(ctx, refreshTokenKey(hashToken(refreshToken)))
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return common.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return common.NewValidationError("password", "current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(ctx, user)
}

func refreshTokenKey(hash string) string {
	return "hidecraft:refresh_token:" + hash
}

func generateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
