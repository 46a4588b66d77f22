package repositories

import (
	"context"

	"hmc-messhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// menuRepository implements MenuRepository interface
type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

// Upsert writes the menu for one hostel/day/meal slot, replacing the
// existing items if the slot is already set.
func (r *menuRepository) Upsert(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hostel_id"}, {Name: "day"}, {Name: "meal"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "updated_by", "updated_at"}),
		}).
		Create(menu).Error
}

// GetSlot gets the menu for one hostel/day/meal slot
func (r *menuRepository) GetSlot(ctx context.Context, hostelID uint, day int, meal string) (*models.Menu, error) {
	var menu models.Menu
	err := r.db.WithContext(ctx).
		Where("hostel_id = ? AND day = ? AND meal = ?", hostelID, day, meal).
		First(&menu).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// GetWeek gets the full weekly menu for a hostel
func (r *menuRepository) GetWeek(ctx context.Context, hostelID uint) ([]*models.Menu, error) {
	var menus []*models.Menu
	err := r.db.WithContext(ctx).
		Where("hostel_id = ?", hostelID).
		Order("day").Order("meal").
		Find(&menus).Error
	return menus, err
}
