package repositories

import (
	"context"

	"hmc-messhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// rebateRepository implements RebateRepository interface
type rebateRepository struct {
	db *gorm.DB
}

// NewRebateRepository creates a new rebate repository
func NewRebateRepository(db *gorm.DB) RebateRepository {
	return &rebateRepository{db: db}
}

// Create creates a new rebate
func (r *rebateRepository) Create(ctx context.Context, rebate *models.Rebate) error {
	return r.db.WithContext(ctx).Create(rebate).Error
}

// GetByID gets a rebate by ID with student and hostel preloaded
func (r *rebateRepository) GetByID(ctx context.Context, id uint) (*models.Rebate, error) {
	var rebate models.Rebate
	err := r.db.WithContext(ctx).
		Preload("User").Preload("User.Profile").Preload("Hostel").
		Where("id = ?", id).First(&rebate).Error
	if err != nil {
		return nil, err
	}
	return &rebate, nil
}

// ListByUser lists a user's rebates, newest first
func (r *rebateRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Rebate, error) {
	var rebates []*models.Rebate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rebates).Error
	return rebates, err
}

// ListByHostel lists one hostel's rebates, newest first
func (r *rebateRepository) ListByHostel(ctx context.Context, hostelID uint) ([]*models.Rebate, error) {
	var rebates []*models.Rebate
	err := r.db.WithContext(ctx).
		Preload("User").Preload("User.Profile").
		Where("hostel_id = ?", hostelID).
		Order("created_at DESC").
		Find(&rebates).Error
	return rebates, err
}

// ListAll lists every hostel's rebates, newest first
func (r *rebateRepository) ListAll(ctx context.Context) ([]*models.Rebate, error) {
	var rebates []*models.Rebate
	err := r.db.WithContext(ctx).
		Preload("User").Preload("User.Profile").Preload("Hostel").
		Order("created_at DESC").
		Find(&rebates).Error
	return rebates, err
}

// ListApprovedByUser lists a user's approved rebates only
func (r *rebateRepository) ListApprovedByUser(ctx context.Context, userID uint) ([]*models.Rebate, error) {
	var rebates []*models.Rebate
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, "approved").
		Find(&rebates).Error
	return rebates, err
}

// Update updates a rebate
func (r *rebateRepository) Update(ctx context.Context, rebate *models.Rebate) error {
	return r.db.WithContext(ctx).Save(rebate).Error
}

// Delete removes a rebate
func (r *rebateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Rebate{}, id).Error
}
