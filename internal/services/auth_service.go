package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dkoroteev/stride/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Distinct conditions so the UI layer can show distinct messages: a wrong
// password is not "no such user" and neither is a duplicate registration.
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrInvalidSex    = errors.New("invalid sex value")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Registration carries the profile a new account is created with.
type Registration struct {
	Name            string
	Email           string
	Password        string
	DateOfBirth     time.Time
	Sex             string
	HeightMetres    float64
	WeightKilograms float64
}

func (service *AuthService) Register(input Registration) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}
	if !models.ValidSex(input.Sex) {
		return models.User{}, ErrInvalidSex
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email uniqueness: %w", err)
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:            input.Name,
		Email:           email,
		PasswordHash:    string(passwordHash),
		DateOfBirth:     input.DateOfBirth,
		Sex:             input.Sex,
		HeightMetres:    input.HeightMetres,
		WeightKilograms: input.WeightKilograms,
		CreatedAt:       time.Now(),
	}
	if err := service.users.Create(&user); err != nil {
		// The unique index is the backstop for races between the existence
		// check and the insert.
		return models.User{}, ErrEmailTaken
	}
	return user, nil
}

// Authenticate verifies credentials and returns the matching user.
func (service *AuthService) Authenticate(emailRaw string, password string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrUserNotFound
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrWrongPassword
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// ChangePassword re-verifies the current password before storing a new hash.
func (service *AuthService) ChangePassword(userID uint, currentPassword string, newPassword string) error {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", userID, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrWrongPassword
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return service.users.UpdatePassword(userID, string(passwordHash))
}
