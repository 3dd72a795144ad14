package repositories

import (
	"time"

	"github.com/muthuvel/santhai/app/models"
	"gorm.io/gorm"
)

// CampaignRepository handles database operations for Campaign.
type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// All returns campaigns newest-first.
func (r *CampaignRepository) All() ([]models.Campaign, error) {
	var cs []models.Campaign
	err := r.db.Order("created_at DESC").Find(&cs).Error
	return cs, err
}

// FindByID looks up a campaign by primary key.
func (r *CampaignRepository) FindByID(id uint) (models.Campaign, error) {
	var c models.Campaign
	err := r.db.First(&c, id).Error
	return c, err
}

// Create persists a new campaign.
func (r *CampaignRepository) Create(c *models.Campaign) error {
	return r.db.Create(c).Error
}

// Update persists changes to an existing campaign.
func (r *CampaignRepository) Update(c *models.Campaign) error {
	return r.db.Save(c).Error
}

// DueScheduled returns scheduled campaigns whose send time has passed.
// The scheduler polls this every minute.
func (r *CampaignRepository) DueScheduled(now time.Time) ([]models.Campaign, error) {
	var cs []models.Campaign
	err := r.db.
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?",
			models.CampaignStatusScheduled, now).
		Find(&cs).Error
	return cs, err
}
