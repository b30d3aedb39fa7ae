package services

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "bondledger/internal/errors"
	"bondledger/internal/models"
)

// userService handles user registration and lookup.
type userService struct {
	store LedgerStore
}

// NewUserService creates a new UserServicer.
func NewUserService(store LedgerStore) UserServicer {
	return &userService{store: store}
}

// RegisterUser hashes the password and creates the user. Email/username
// uniqueness is enforced atomically by the store's unique indexes, so a
// duplicate surfaces as DUPLICATE_EMAIL or DUPLICATE_USERNAME even under
// concurrent registrations.
func (s *userService) RegisterUser(email, username, password string) (*models.User, error) {
	if email == "" || username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email, username and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.store.CreateUser(email, username, string(hashedPassword))
}

// GetUserByEmail retrieves a user by email.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.store.GetUserByEmail(email)
}

// GetUserByID retrieves a user by id.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.store.GetUserByID(id)
}

// VerifyPassword checks if the provided password matches the stored hash.
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
