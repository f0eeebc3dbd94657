package services

import (
	"context"
	"errors"

	"shop-api/models"
	"shop-api/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenGenerator issues signed tokens for authenticated users.
type TokenGenerator interface {
	Generate(userID uuid.UUID, username, role string) (string, error)
}

// UserService handles signup and credential checks.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, *ServiceError)
	Login(ctx context.Context, username, password string) (string, *ServiceError)
}

type userServiceImpl struct {
	repo   repository.UserRepository
	tokens TokenGenerator
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, tokens TokenGenerator, logger *zap.Logger) UserService {
	return &userServiceImpl{repo: repo, tokens: tokens, logger: logger}
}

// Register creates a user with the default role. Duplicate usernames
// and emails fail validation naming the conflicting field; the unique
// indexes on both columns back this check up inside the insert itself.
func (s *userServiceImpl) Register(ctx context.Context, username, email, password string) (*models.User, *ServiceError) {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, validationError("username", "A user with this username already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("username lookup failed", zap.Error(err))
		return nil, internalError("Failed to create account")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, validationError("email", "A user with this email already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("email lookup failed", zap.Error(err))
		return nil, internalError("Failed to create account")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, internalError("Failed to create account")
	}

	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := user.NormalizeForSave(); err != nil {
		return nil, validationError("role", err.Error())
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("user insert failed", zap.Error(err))
		return nil, internalError("Failed to create account")
	}

	s.logger.Info("user registered", zap.String("username", username))
	return user, nil
}

// Login checks the credentials and returns a signed token.
func (s *userServiceImpl) Login(ctx context.Context, username, password string) (string, *ServiceError) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", unauthorizedError("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", unauthorizedError("Invalid username or password")
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return "", internalError("Failed to generate token")
	}
	return token, nil
}
