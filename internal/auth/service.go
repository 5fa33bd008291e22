package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/mkravets/bookcatalog/internal/config"
	"github.com/mkravets/bookcatalog/internal/entities"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmailInvalid       = errors.New("invalid email format")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var validate = validator.New()

// Service handles registration, credential checks and user lookups.
type Service struct {
	db     *gorm.DB
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// NormalizeEmail lowercases and trims an email address; emails are matched
// case-insensitively everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with the "user" role.
func (s *Service) Register(username, email, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	email = NormalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, ErrEmailInvalid
	}

	var existing entities.User
	err := s.db.Where("LOWER(email) = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleUser,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate validates an email/password pair and returns the user.
// The password is also checked with surrounding whitespace stripped, to
// tolerate clients that submit padded input.
func (s *Service) Authenticate(email, password string) (*entities.User, error) {
	email = NormalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, ErrEmailInvalid
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	var user entities.User
	err := s.db.Where("LOWER(email) = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if CheckPassword(password, user.PasswordHash) != nil &&
		CheckPassword(strings.TrimSpace(password), user.PasswordHash) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := s.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// IssueToken signs a bearer token for the user with the service's secret.
func (s *Service) IssueToken(user *entities.User) (string, error) {
	return IssueToken(user, s.config.JWTSecret, s.config.TokenExpiry)
}
