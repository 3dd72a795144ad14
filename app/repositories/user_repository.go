package repositories

import (
	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/pkg/orm"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User and Address.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByUsername looks up a user by username.
func (r *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// All returns users newest-first with pagination.
func (r *UserRepository) All(page, perPage int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	q := r.db.Model(&models.User{}).Order("created_at DESC")
	pagination, err := orm.Paginate(q, &users, page, perPage)
	return users, pagination, err
}

// CountByRole counts users holding the given role.
func (r *UserRepository) CountByRole(role string) (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

// EmailsByRole returns the addresses of all active users with the role.
func (r *UserRepository) EmailsByRole(role string) ([]string, error) {
	var emails []string
	err := r.db.Model(&models.User{}).
		Where("role = ? AND active = ?", role, true).
		Pluck("email", &emails).Error
	return emails, err
}

// CustomersForAudience returns customers matching a campaign audience.
// "all" returns every active customer; other audiences fall back to the same
// set until segmentation lands.
func (r *UserRepository) CustomersForAudience(audience string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ? AND active = ?", models.RoleCustomer, true).Find(&users).Error
	return users, err
}

// ── Addresses ────────────────────────────────────────────────────────────────

// AddressesByUser returns all saved addresses for a user.
func (r *UserRepository) AddressesByUser(userID uint) ([]models.Address, error) {
	var addrs []models.Address
	err := r.db.Where("user_id = ?", userID).Find(&addrs).Error
	return addrs, err
}

// DefaultAddress returns the user's default address, if any.
func (r *UserRepository) DefaultAddress(userID uint) (models.Address, error) {
	var addr models.Address
	err := r.db.Where("user_id = ? AND is_default = ?", userID, true).First(&addr).Error
	return addr, err
}

// CreateAddress saves a new address. When it is flagged default, any
// previous default for the user is cleared first.
func (r *UserRepository) CreateAddress(addr *models.Address) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if addr.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND is_default = ?", addr.UserID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(addr).Error
	})
}
