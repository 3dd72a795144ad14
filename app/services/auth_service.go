package services

import (
	"errors"
	"fmt"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/repositories"
	"github.com/muthuvel/santhai/pkg/auth"
	"gorm.io/gorm"
)

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrAccountDisabled    = errors.New("auth: account is disabled")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrUsernameTaken      = errors.New("auth: username already taken")
	ErrWrongPassword      = errors.New("auth: current password is wrong")
)

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,alpha_dash,min=3,max=80"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"nullable,max=50"`
	LastName  string `json:"last_name" validate:"nullable,max=50"`
	Phone     string `json:"phone" validate:"nullable,min=10,max=15"`
}

// TokenPair is an access token plus its refresh token.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles registration, login and password changes.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repositories.NewUserRepository(db)}
}

// Register creates a customer account and returns it with a token pair.
func (s *AuthService) Register(in RegisterInput) (models.User, TokenPair, error) {
	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return models.User{}, TokenPair{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, TokenPair{}, fmt.Errorf("auth: lookup email: %w", err)
	}
	if _, err := s.users.FindByUsername(in.Username); err == nil {
		return models.User{}, TokenPair{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, TokenPair{}, fmt.Errorf("auth: lookup username: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, TokenPair{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user := models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Role:      models.RoleCustomer,
		Active:    true,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, TokenPair{}, fmt.Errorf("auth: create user: %w", err)
	}

	pair, err := s.tokens(user)
	return user, pair, err
}

// Login authenticates by username or email plus password.
func (s *AuthService) Login(identifier, password string) (models.User, TokenPair, error) {
	user, err := s.users.FindByEmail(identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.users.FindByUsername(identifier)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, TokenPair{}, fmt.Errorf("auth: lookup user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	if !user.Active {
		return models.User{}, TokenPair{}, ErrAccountDisabled
	}

	pair, err := s.tokens(user)
	return user, pair, err
}

// ChangePassword verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(userID uint, current, next string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, current) {
		return ErrWrongPassword
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	user.Password = hash
	return s.users.Update(&user)
}

func (s *AuthService) tokens(user models.User) (TokenPair, error) {
	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth: sign token: %w", err)
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth: sign refresh token: %w", err)
	}
	return TokenPair{Token: token, RefreshToken: refresh}, nil
}
