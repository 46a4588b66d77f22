package services

import (
	"context"
	"errors"
	"fmt"

	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/adapters/persistence/repositories"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/pkg/validation"

	"gorm.io/gorm"
)

// ErrInvalidMealSlot is returned for unknown day/meal combinations
var ErrInvalidMealSlot = errors.New("invalid day or meal slot")

// MenuService handles weekly mess menus
type MenuService struct {
	menuRepo repositories.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repositories.MenuRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// SetMenuInput represents a menu slot update
type SetMenuInput struct {
	HostelID uint   `json:"hostel_id" validate:"required"`
	Day      int    `json:"day" validate:"gte=0,lte=6"`
	Meal     string `json:"meal" validate:"required"`
	Items    string `json:"items" validate:"required"`
}

// SetSlot writes the menu for one hostel/day/meal slot. MHMC and
// admin only; mhmc only for their own hostel.
func (s *MenuService) SetSlot(ctx context.Context, actor domain.Actor, input *SetMenuInput) (*models.Menu, error) {
	if !domain.CanModerate(actor.Role) {
		return nil, ErrNotPermitted
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !models.ValidMeal(input.Meal) {
		return nil, ErrInvalidMealSlot
	}
	if !actor.SameHostel(input.HostelID) {
		return nil, ErrHostelMismatch
	}

	menu := &models.Menu{
		HostelID:  input.HostelID,
		Day:       input.Day,
		Meal:      input.Meal,
		Items:     input.Items,
		UpdatedBy: actor.UserID,
	}
	if err := s.menuRepo.Upsert(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// Week returns the full weekly menu for the actor's hostel, or for
// the requested hostel when the actor may view all hostels.
func (s *MenuService) Week(ctx context.Context, actor domain.Actor, hostelID uint) ([]*models.Menu, error) {
	if !actor.SameHostel(hostelID) {
		return nil, ErrHostelMismatch
	}
	return s.menuRepo.GetWeek(ctx, hostelID)
}

// Slot returns the menu for one slot
func (s *MenuService) Slot(ctx context.Context, actor domain.Actor, hostelID uint, day int, meal string) (*models.Menu, error) {
	if !actor.SameHostel(hostelID) {
		return nil, ErrHostelMismatch
	}
	if day < 0 || day > 6 || !models.ValidMeal(meal) {
		return nil, ErrInvalidMealSlot
	}
	menu, err := s.menuRepo.GetSlot(ctx, hostelID, day, meal)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return menu, nil
}
