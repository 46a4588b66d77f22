package repositories

import (
	"context"
	"time"

	"hmc-messhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// extrasRepository implements ExtrasRepository interface
type extrasRepository struct {
	db *gorm.DB
}

// NewExtrasRepository creates a new extras repository
func NewExtrasRepository(db *gorm.DB) ExtrasRepository {
	return &extrasRepository{db: db}
}

// CreateBatch inserts all purchases of one billing call in a single
// statement, so the batch commits or fails as a whole.
func (r *extrasRepository) CreateBatch(ctx context.Context, purchases []*models.ExtraPurchase) error {
	if len(purchases) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&purchases).Error
}

// ListByUser lists a user's purchases, newest first
func (r *extrasRepository) ListByUser(ctx context.Context, userID uint) ([]*models.ExtraPurchase, error) {
	var purchases []*models.ExtraPurchase
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

// TotalAmount sums price x quantity over a user's purchases,
// restricted to rows at or after since when given.
func (r *extrasRepository) TotalAmount(ctx context.Context, userID uint, since *time.Time) (float64, error) {
	var total float64
	query := r.db.WithContext(ctx).Model(&models.ExtraPurchase{}).
		Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	err := query.Select("COALESCE(SUM(price * quantity), 0)").Scan(&total).Error
	return total, err
}

// ListRecent lists the most recent raw purchase rows, newest first,
// scoped to one hostel unless hostelID is nil.
func (r *extrasRepository) ListRecent(ctx context.Context, hostelID *uint, limit int) ([]*models.ExtraPurchase, error) {
	var purchases []*models.ExtraPurchase
	query := r.db.WithContext(ctx).
		Preload("User").Preload("User.Profile")
	if hostelID != nil {
		query = query.Where("hostel_id = ?", *hostelID)
	}
	err := query.Order("created_at DESC").Order("id DESC").
		Limit(limit).Find(&purchases).Error
	return purchases, err
}
