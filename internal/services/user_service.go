package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "expensebook/internal/errors"
	"expensebook/internal/models"
	"expensebook/internal/uuid"
)

// PasswordCost is the bcrypt cost used for stored password hashes.
const PasswordCost = 10

// userService handles user storage and credential checks.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser hashes password and stores a new user. No duplicate check is
// made: registering an existing email creates a second record.
func (s *userService) CreateUser(ctx context.Context, email, password string) (*models.UserView, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		CreatedAt: time.Now(),
		Email:     email,
		Password:  string(hashedPassword),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user.ToView(), nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id string) (*models.UserView, error) {
	if !uuid.IsValid(id) {
		return nil, nil
	}
	user, err := s.findOne(ctx, "id = ?", id)
	if err != nil || user == nil {
		return nil, err
	}
	return user.ToView(), nil
}

// GetUserByEmail retrieves a user by email. With duplicate emails any one
// of the matching records may be returned.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.UserView, error) {
	user, err := s.findOne(ctx, "email = ?", email)
	if err != nil || user == nil {
		return nil, err
	}
	return user.ToView(), nil
}

// VerifyLogin returns the user when password matches the stored hash. An
// unknown email and a wrong password both yield (nil, nil).
func (s *userService) VerifyLogin(ctx context.Context, email, password string) (*models.UserView, error) {
	user, err := s.findOne(ctx, "email = ?", email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil
	}
	return user.ToView(), nil
}

// DeleteUserByEmail removes at most one user with the given email and
// reports whether one was removed.
func (s *userService) DeleteUserByEmail(ctx context.Context, email string) (bool, error) {
	user, err := s.findOne(ctx, "email = ?", email)
	if err != nil || user == nil {
		return false, err
	}

	result := s.db.WithContext(ctx).Where("id = ?", user.ID).Delete(&models.User{})
	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *userService) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where(query, arg).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
