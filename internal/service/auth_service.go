package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/afterschool-api/internal/models"
	"github.com/noah-isme/afterschool-api/internal/repository"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
	"github.com/noah-isme/afterschool-api/pkg/validation"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

type sessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	FailedLogins(ctx context.Context, email string) (int64, error)
	RegisterFailedLogin(ctx context.Context, email string, window time.Duration) (int64, error)
	ResetFailedLogins(ctx context.Context, email string) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
	MaxLoginAttempts  int
	LoginWindow       time.Duration
}

// AuthService provides authentication use cases.
type AuthService struct {
	repo      authUserRepository
	sessions  sessionStore
	audit     auditLogger
	validator *validation.Validator
	logger    *zap.Logger
	config    AuthConfig
	now       Clock
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, sessions sessionStore, audit auditLogger, validate *validation.Validator, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessions: sessions, audit: audit, validator: validate, logger: logger, config: config, now: time.Now}
}

// Signup registers a new account with a hashed password.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.UserInfo, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.StudentIDNo != nil {
		trimmed := strings.TrimSpace(*req.StudentIDNo)
		if trimmed == "" {
			req.StudentIDNo = nil
		} else {
			req.StudentIDNo = &trimmed
		}
	}
	if err := s.validator.Struct(req, "invalid signup payload"); err != nil {
		return nil, err
	}
	role, _ := models.ParseRole(req.Role)

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check email")
	}
	if exists {
		return nil, appErrors.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		StudentIDNo:  req.StudentIDNo,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateEmail, "email or student number already registered")
		}
		return nil, appErrors.Internal(err, "failed to create user")
	}

	recordAudit(ctx, s.audit, s.logger, models.Principal{UserID: user.ID, Role: user.Role}, models.AuditActionSignup, "user", user.ID, map[string]interface{}{"role": user.Role})
	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))

	info := user.Info()
	return &info, nil
}

// Login authenticates a user and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req, "invalid login payload"); err != nil {
		return nil, err
	}

	if s.config.MaxLoginAttempts > 0 {
		attempts, err := s.sessions.FailedLogins(ctx, req.Email)
		if err != nil {
			s.logger.Warn("failed to read login attempts", zap.Error(err))
		} else if attempts >= int64(s.config.MaxLoginAttempts) {
			return nil, appErrors.Clone(appErrors.ErrTooManyRequests, "too many failed login attempts, try again later")
		}
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.registerFailure(ctx, req.Email)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Internal(err, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.registerFailure(ctx, req.Email)
		return nil, appErrors.ErrInvalidCredentials
	}

	if err := s.sessions.ResetFailedLogins(ctx, req.Email); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	issuedAt := s.now().UTC()
	token, err := s.generateAccessToken(user, issuedAt)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create access token")
	}

	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		Role:        user.Role,
		User:        user.Info(),
		IssuedAt:    issuedAt,
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
// Tokens revoked through Logout are rejected.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	if claims.ID != "" {
		revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to check token revocation")
		}
		if revoked {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token has been revoked")
		}
	}
	return claims, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if err := s.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return appErrors.Internal(err, "failed to revoke token")
	}
	recordAudit(ctx, s.audit, s.logger, claims.Principal(), models.AuditActionLogout, "auth", claims.UserID, nil)
	return nil
}

// Me returns the caller's profile.
func (s *AuthService) Me(ctx context.Context, p models.Principal) (*models.UserInfo, error) {
	if p.UserID == 0 {
		return nil, appErrors.ErrUnauthorized
	}
	user, err := s.repo.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}
	info := user.Info()
	return &info, nil
}

func (s *AuthService) registerFailure(ctx context.Context, email string) {
	if s.config.MaxLoginAttempts <= 0 {
		return
	}
	if _, err := s.sessions.RegisterFailedLogin(ctx, email, s.config.LoginWindow); err != nil {
		s.logger.Warn("failed to register login attempt", zap.Error(err))
	}
}

func (s *AuthService) generateAccessToken(user *models.User, issuedAt time.Time) (string, error) {
	claims := &models.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}
