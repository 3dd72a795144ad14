package services

import (
	"errors"
	"fmt"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/repositories"
	"github.com/muthuvel/santhai/pkg/auth"
	"github.com/muthuvel/santhai/pkg/orm"
	"gorm.io/gorm"
)

// ErrUnknownRole rejects role values outside the defined set.
var ErrUnknownRole = errors.New("user: unknown role")

// ProfileInput is the editable part of a user's own profile.
type ProfileInput struct {
	FirstName string `json:"first_name" validate:"nullable,max=50"`
	LastName  string `json:"last_name" validate:"nullable,max=50"`
	Phone     string `json:"phone" validate:"nullable,min=10,max=15"`
}

// AddressInput is a delivery address form.
type AddressInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	Phone        string `json:"phone" validate:"required,min=10,max=15"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required,max=50"`
	State        string `json:"state" validate:"required,max=50"`
	Pincode      string `json:"pincode" validate:"required,digits=6"`
	IsDefault    bool   `json:"is_default"`
}

// AdminUserInput is the admin's create-user form, role included.
type AdminUserInput struct {
	RegisterInput
	Role string `json:"role" validate:"required,in=customer,storekeeper,admin"`
}

// UserService covers profile editing, the address book and admin user
// management.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{users: repositories.NewUserRepository(db)}
}

// User returns one user.
func (s *UserService) User(id uint) (models.User, error) {
	return s.users.FindByID(id)
}

// UpdateProfile saves the user-editable fields.
func (s *UserService) UpdateProfile(userID uint, in ProfileInput) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Phone = in.Phone
	if err := s.users.Update(&user); err != nil {
		return models.User{}, fmt.Errorf("user: update profile: %w", err)
	}
	return user, nil
}

// ─────────────────────────────────────────────
// Address book
// ─────────────────────────────────────────────

// Addresses lists the user's saved addresses, default first.
func (s *UserService) Addresses(userID uint) ([]models.Address, error) {
	return s.users.AddressesByUser(userID)
}

// DefaultAddress returns the user's default address when one exists.
func (s *UserService) DefaultAddress(userID uint) (models.Address, error) {
	return s.users.DefaultAddress(userID)
}

// AddAddress saves a new address. The first address a user saves becomes
// the default regardless of the flag.
func (s *UserService) AddAddress(userID uint, in AddressInput) (models.Address, error) {
	existing, err := s.users.AddressesByUser(userID)
	if err != nil {
		return models.Address{}, fmt.Errorf("user: list addresses: %w", err)
	}

	addr := models.Address{
		UserID:       userID,
		Name:         in.Name,
		Phone:        in.Phone,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		Pincode:      in.Pincode,
		IsDefault:    in.IsDefault || len(existing) == 0,
	}
	if err := s.users.CreateAddress(&addr); err != nil {
		return models.Address{}, fmt.Errorf("user: create address: %w", err)
	}
	return addr, nil
}

// ─────────────────────────────────────────────
// Admin user management
// ─────────────────────────────────────────────

// All lists users for the admin, paginated.
func (s *UserService) All(page, perPage int) ([]models.User, orm.Pagination, error) {
	return s.users.All(page, perPage)
}

// CreateWithRole is the admin's user creation with explicit role.
func (s *UserService) CreateWithRole(in AdminUserInput) (models.User, error) {
	switch in.Role {
	case models.RoleCustomer, models.RoleStorekeeper, models.RoleAdmin:
	default:
		return models.User{}, ErrUnknownRole
	}

	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("user: lookup email: %w", err)
	}
	if _, err := s.users.FindByUsername(in.Username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("user: lookup username: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("user: hash password: %w", err)
	}

	user := models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Role:      in.Role,
		Active:    true,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("user: create: %w", err)
	}
	return user, nil
}

// SetActive enables or disables an account.
func (s *UserService) SetActive(userID uint, active bool) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	user.Active = active
	return s.users.Update(&user)
}
