package repositories

import (
	"context"

	"hmc-messhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// hostelRepository implements HostelRepository interface
type hostelRepository struct {
	db *gorm.DB
}

// NewHostelRepository creates a new hostel repository
func NewHostelRepository(db *gorm.DB) HostelRepository {
	return &hostelRepository{db: db}
}

// Create creates a new hostel
func (r *hostelRepository) Create(ctx context.Context, hostel *models.Hostel) error {
	return r.db.WithContext(ctx).Create(hostel).Error
}

// GetByID gets a hostel by ID
func (r *hostelRepository) GetByID(ctx context.Context, id uint) (*models.Hostel, error) {
	var hostel models.Hostel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hostel).Error
	if err != nil {
		return nil, err
	}
	return &hostel, nil
}

// List lists all hostels
func (r *hostelRepository) List(ctx context.Context) ([]*models.Hostel, error) {
	var hostels []*models.Hostel
	err := r.db.WithContext(ctx).Order("name").Find(&hostels).Error
	return hostels, err
}

// Update updates a hostel
func (r *hostelRepository) Update(ctx context.Context, hostel *models.Hostel) error {
	return r.db.WithContext(ctx).Save(hostel).Error
}

// CascadeDelete removes a hostel and all its dependent data in one
// transaction. Rows belonging to admins (allowlist entries and
// profiles with the admin role) are left untouched.
func (r *hostelRepository) CascadeDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hostel_id = ?", id).Delete(&models.Rebate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hostel_id = ?", id).Delete(&models.ExtraPurchase{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hostel_id = ?", id).Delete(&models.Menu{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id IN (?)",
			tx.Model(&models.Poll{}).Select("id").Where("hostel_id = ?", id),
		).Delete(&models.PollVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hostel_id = ?", id).Delete(&models.Poll{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)",
			tx.Model(&models.ForumPost{}).Select("id").Where("hostel_id = ?", id),
		).Delete(&models.ForumComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hostel_id = ?", id).Delete(&models.ForumPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hostel_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hostel_id = ? AND role <> ?", id, "admin").
			Delete(&models.AllowedEmail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hostel_id = ? AND role <> ?", id, "admin").
			Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		// Admin profiles tied to this hostel keep their account but
		// lose the dangling hostel reference.
		if err := tx.Model(&models.Profile{}).
			Where("hostel_id = ? AND role = ?", id, "admin").
			Update("hostel_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Hostel{}, id).Error
	})
}
