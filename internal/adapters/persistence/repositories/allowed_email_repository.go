package repositories

import (
	"context"

	"hmc-messhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// allowedEmailRepository implements AllowedEmailRepository interface
type allowedEmailRepository struct {
	db *gorm.DB
}

// NewAllowedEmailRepository creates a new allowed email repository
func NewAllowedEmailRepository(db *gorm.DB) AllowedEmailRepository {
	return &allowedEmailRepository{db: db}
}

// Create creates a new allowlist entry
func (r *allowedEmailRepository) Create(ctx context.Context, entry *models.AllowedEmail) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateBatch inserts entries in one statement, skipping emails that
// already exist. The conflict clause keeps concurrent imports of
// overlapping lists from failing each other.
func (r *allowedEmailRepository) CreateBatch(ctx context.Context, entries []*models.AllowedEmail) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&entries)
	return result.RowsAffected, result.Error
}

// GetByEmail gets an allowlist entry by (lowercase) email
func (r *allowedEmailRepository) GetByEmail(ctx context.Context, email string) (*models.AllowedEmail, error) {
	var entry models.AllowedEmail
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List lists allowlist entries with pagination, optionally by hostel
func (r *allowedEmailRepository) List(ctx context.Context, hostelID *uint, offset, limit int) ([]*models.AllowedEmail, int64, error) {
	var entries []*models.AllowedEmail
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AllowedEmail{})
	if hostelID != nil {
		query = query.Where("hostel_id = ?", *hostelID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Hostel").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Delete removes an allowlist entry
func (r *allowedEmailRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AllowedEmail{}, id).Error
}
