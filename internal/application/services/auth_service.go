package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/infrastructure/config"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
)

// Claims represents the JWT claims
type Claims struct {
	UserID string            `json:"user_id"`
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	Role   entities.UserRole `json:"role"`
	Team   string            `json:"team"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies the bearer credentials that resolve the
// identity context for every request.
type AuthService struct {
	userRepo  ports.UserRepository
	jwtConfig config.JWTConfig
	logger    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, jwtConfig config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

// Register creates a new user account and returns a bearer token.
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" {
		return nil, entities.NewValidationError("name", "is required")
	}
	if email == "" {
		return nil, entities.NewValidationError("email", "is required")
	}
	if len(req.Password) < 6 {
		return nil, entities.NewValidationError("password", "must be at least 6 characters")
	}

	role := entities.RoleMember
	if req.Role != "" {
		role = entities.UserRole(req.Role)
		if !role.IsValid() {
			return nil, entities.NewValidationError("role", "invalid role")
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Team:         strings.TrimSpace(req.Team),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return nil, entities.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infow("User registered", "user_id", user.ID, "email", user.Email, "role", user.Role)

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &ports.AuthResponse{
		Token: token,
		User:  user.Profile(),
	}, nil
}

// Login authenticates a user and returns a bearer token.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Warnw("Login attempt with unknown email", "email", email)
		return nil, entities.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warnw("Login attempt with invalid password", "user_id", user.ID)
		return nil, entities.ErrInvalidCredentials
	}

	s.logger.Infow("User logged in", "user_id", user.ID)

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &ports.AuthResponse{
		Token: token,
		User:  user.Profile(),
	}, nil
}

// Me returns the stored profile for an authenticated user.
func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// ValidateToken validates a JWT token and returns the resolved claims.
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &ports.Claims{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   claims.Role,
		Team:   claims.Team,
	}, nil
}

func (s *AuthService) generateToken(user *entities.User) (string, error) {
	claims := &Claims{
		UserID: user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Team:   user.Team,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
