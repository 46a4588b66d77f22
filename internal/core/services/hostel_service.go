package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/adapters/persistence/repositories"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/pkg/validation"

	"gorm.io/gorm"
)

// Hostel service errors
var (
	ErrHostelNotFound = errors.New("hostel not found")
	ErrHostelExists   = errors.New("hostel name or code already exists")
)

// HostelService handles hostel administration
type HostelService struct {
	hostelRepo repositories.HostelRepository
}

// NewHostelService creates a new hostel service
func NewHostelService(hostelRepo repositories.HostelRepository) *HostelService {
	return &HostelService{hostelRepo: hostelRepo}
}

// HostelInput represents hostel create/update input
type HostelInput struct {
	Name              string  `json:"name" validate:"required,max=100"`
	Code              string  `json:"code" validate:"required,max=20"`
	MonthlyMessFee    float64 `json:"monthly_mess_fee" validate:"gte=0"`
	DailyRebateRate   float64 `json:"daily_rebate_rate" validate:"gte=0"`
	SemesterStartDate string  `json:"semester_start_date"`
}

// Create creates a hostel. Admin only.
func (s *HostelService) Create(ctx context.Context, actor domain.Actor, input *HostelInput) (*models.Hostel, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrNotPermitted
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	hostel := &models.Hostel{
		Name:            input.Name,
		Code:            input.Code,
		MonthlyMessFee:  input.MonthlyMessFee,
		DailyRebateRate: input.DailyRebateRate,
	}
	if input.SemesterStartDate != "" {
		start, err := time.Parse("2006-01-02", input.SemesterStartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid semester_start_date, use YYYY-MM-DD", domain.ErrInvalidInput)
		}
		hostel.SemesterStartDate = &start
	}

	if err := s.hostelRepo.Create(ctx, hostel); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrHostelExists
		}
		return nil, err
	}
	return hostel, nil
}

// GetByID gets a hostel by ID
func (s *HostelService) GetByID(ctx context.Context, id uint) (*models.Hostel, error) {
	hostel, err := s.hostelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostelNotFound
		}
		return nil, err
	}
	return hostel, nil
}

// List lists all hostels
func (s *HostelService) List(ctx context.Context) ([]*models.Hostel, error) {
	return s.hostelRepo.List(ctx)
}

// FeePolicy returns the billing constants for a hostel, with defaults
// applied for omitted fields.
func (s *HostelService) FeePolicy(ctx context.Context, hostelID uint) (*domain.FeePolicy, error) {
	hostel, err := s.GetByID(ctx, hostelID)
	if err != nil {
		return nil, err
	}
	policy := FeePolicyFor(hostel.MonthlyMessFee, hostel.DailyRebateRate)
	return &policy, nil
}

// Update updates a hostel. Admin only.
func (s *HostelService) Update(ctx context.Context, actor domain.Actor, id uint, input *HostelInput) (*models.Hostel, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrNotPermitted
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	hostel, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hostel.Name = input.Name
	hostel.Code = input.Code
	hostel.MonthlyMessFee = input.MonthlyMessFee
	hostel.DailyRebateRate = input.DailyRebateRate
	if input.SemesterStartDate != "" {
		start, err := time.Parse("2006-01-02", input.SemesterStartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid semester_start_date, use YYYY-MM-DD", domain.ErrInvalidInput)
		}
		hostel.SemesterStartDate = &start
	}

	if err := s.hostelRepo.Update(ctx, hostel); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrHostelExists
		}
		return nil, err
	}
	return hostel, nil
}

// Delete cascade-deletes a hostel and its dependent data. Admin only.
// Allowlist entries and profiles with the admin role survive.
func (s *HostelService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if actor.Role != domain.RoleAdmin {
		return ErrNotPermitted
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.hostelRepo.CascadeDelete(ctx, id)
}
