package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yanqian/unievents/pkg/errors"
)

// Service exposes authentication workflows.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
	Profile(ctx context.Context, userID int64) (UserView, error)
	Logout(ctx context.Context, claims Claims, refreshToken string) error
}

type service struct {
	cfg     Config
	repo    Repository
	revoked RevocationStore
	logger  *slog.Logger
	now     func() time.Time
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// NewService constructs a Service instance. revoked may be nil, in which case logout is
// client side only.
func NewService(cfg Config, repo Repository, revoked RevocationStore, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		repo:    repo,
		revoked: revoked,
		logger:  logger.With("component", "auth.service"),
		now:     time.Now,
	}
}

// HashPassword produces the bcrypt hash stored for an account.
func HashPassword(password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email, err := NormalizeEmail(req.Email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
	}
	if req.Password == "" {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "password cannot be empty", nil)
	}
	user, found, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "failed to load user", err)
	}
	if !found {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidCredentials, "invalid email or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidCredentials, "invalid email or password", nil)
	}
	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return s.buildLoginResponse(user)
}

func (s *service) ValidateToken(ctx context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token missing", nil)
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != tokenTypeAccess {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token type mismatch", nil)
	}
	if err := s.ensureActive(ctx, claims); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

func (s *service) Profile(ctx context.Context, userID int64) (UserView, error) {
	user, found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to load profile", err)
	}
	if !found {
		return UserView{}, apperrors.Wrap(apperrors.CodeNotFound, "user not found", nil)
	}
	return toView(user), nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (LoginResponse, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return LoginResponse{}, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token type mismatch", nil)
	}
	if err := s.ensureActive(ctx, claims); err != nil {
		return LoginResponse{}, err
	}
	user, found, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap("auth_error", "failed to load user", err)
	}
	if !found {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeNotFound, "user not found", nil)
	}
	// Rotated refresh tokens cannot be replayed.
	s.revoke(ctx, claims)
	return s.buildLoginResponse(user)
}

func (s *service) Logout(ctx context.Context, claims Claims, refreshToken string) error {
	if s.revoked == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.TokenID, s.remaining(claims)); err != nil {
		return apperrors.Wrap("auth_error", "failed to revoke token", err)
	}
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	refresh, err := s.parseToken(refreshToken)
	if err != nil || refresh.TokenType != tokenTypeRefresh || refresh.UserID != claims.UserID {
		s.logger.Warn("ignoring unusable refresh token on logout", "user_id", claims.UserID)
		return nil
	}
	if err := s.revoked.Revoke(ctx, refresh.TokenID, s.remaining(refresh)); err != nil {
		return apperrors.Wrap("auth_error", "failed to revoke token", err)
	}
	s.logger.Info("user logged out", "user_id", claims.UserID)
	return nil
}

func (s *service) ensureActive(ctx context.Context, claims Claims) error {
	if s.revoked == nil || claims.TokenID == "" {
		return nil
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return apperrors.Wrap("auth_error", "failed to check token state", err)
	}
	if revoked {
		return apperrors.Wrap(apperrors.CodeInvalidToken, "token revoked", nil)
	}
	return nil
}

func (s *service) revoke(ctx context.Context, claims Claims) {
	if s.revoked == nil || claims.TokenID == "" {
		return
	}
	if err := s.revoked.Revoke(ctx, claims.TokenID, s.remaining(claims)); err != nil {
		s.logger.Warn("failed to revoke rotated token", "user_id", claims.UserID, "error", err)
	}
}

func (s *service) remaining(claims Claims) time.Duration {
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}

func (s *service) buildLoginResponse(user User) (LoginResponse, error) {
	access, err := s.generateToken(user, tokenTypeAccess, s.cfg.TokenTTL)
	if err != nil {
		return LoginResponse{}, err
	}
	refresh, err := s.generateToken(user, tokenTypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		Token:        access,
		RefreshToken: refresh,
		User:         toView(user),
	}, nil
}

func (s *service) generateToken(user User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		ClubName:  user.ClubName,
		ClubSlug:  user.ClubSlug,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        newTokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", apperrors.Wrap("auth_error", "failed to sign token", err)
	}
	return signed, nil
}

func (s *service) parseToken(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token invalid", nil)
	}
	if claims.ExpiresAt == nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token missing expiry", nil)
	}
	if claims.ExpiresAt.Time.Before(s.now()) {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token expired", nil)
	}
	return Claims{
		TokenID:   claims.ID,
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		ClubName:  claims.ClubName,
		ClubSlug:  claims.ClubSlug,
		TokenType: claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func toView(user User) UserView {
	view := UserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		ClubName:  user.ClubName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
	if user.ClubSlug != "" {
		slug := user.ClubSlug
		view.ClubSlug = &slug
	}
	return view
}

// NormalizeEmail lowercases and validates an address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", errors.New("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ClubName  string `json:"clubName,omitempty"`
	ClubSlug  string `json:"clubSlug,omitempty"`
	TokenType string `json:"type"`
}

func newTokenID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(buf)
}
