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

// Rebate service errors
var (
	ErrRebateNotFound   = errors.New("rebate not found")
	ErrNoHostelAssigned = errors.New("no hostel assigned to profile")
	ErrInvalidDateRange = errors.New("to_date must not be before from_date")
	ErrNotPermitted     = errors.New("not permitted")
	ErrHostelMismatch   = errors.New("record belongs to a different hostel")
)

// RebateService handles rebate filing, review and day counting
type RebateService struct {
	rebateRepo repositories.RebateRepository
	userRepo   repositories.UserRepository
	// autoApprove controls the status of self-filed rebates.
	autoApprove bool
}

// NewRebateService creates a new rebate service
func NewRebateService(rebateRepo repositories.RebateRepository, userRepo repositories.UserRepository, autoApprove bool) *RebateService {
	return &RebateService{
		rebateRepo:  rebateRepo,
		userRepo:    userRepo,
		autoApprove: autoApprove,
	}
}

// FileRebateInput represents rebate filing input
type FileRebateInput struct {
	FromDate string `json:"from_date" validate:"required"`
	ToDate   string `json:"to_date" validate:"required"`
	Reason   string `json:"reason" validate:"max=500"`
}

// File files a rebate for the actor's own hostel. The date range is
// inclusive on both ends; an inverted range is rejected outright so
// the day arithmetic never sees a negative span.
func (s *RebateService) File(ctx context.Context, actor domain.Actor, input *FileRebateInput) (*models.Rebate, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if actor.HostelID == nil {
		return nil, ErrNoHostelAssigned
	}

	from, err := time.Parse("2006-01-02", input.FromDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid from_date, use YYYY-MM-DD", domain.ErrInvalidInput)
	}
	to, err := time.Parse("2006-01-02", input.ToDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid to_date, use YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	status := domain.RebatePending
	if s.autoApprove {
		status = domain.RebateApproved
	}

	rebate := &models.Rebate{
		UserID:   actor.UserID,
		HostelID: *actor.HostelID,
		FromDate: from,
		ToDate:   to,
		Reason:   input.Reason,
		Status:   string(status),
	}

	if err := s.rebateRepo.Create(ctx, rebate); err != nil {
		return nil, err
	}

	return rebate, nil
}

// ListForUser lists the actor's own rebates, newest first
func (s *RebateService) ListForUser(ctx context.Context, userID uint) ([]*models.Rebate, error) {
	return s.rebateRepo.ListByUser(ctx, userID)
}

// ListForHostelOrAll lists rebates visible to the actor: admins see
// every hostel, mhmc and munimji see their own hostel only.
func (s *RebateService) ListForHostelOrAll(ctx context.Context, actor domain.Actor) ([]*models.Rebate, error) {
	if !domain.CanDeleteOrListRebates(actor.Role) {
		return nil, ErrNotPermitted
	}
	if domain.CanViewAllHostels(actor.Role) {
		return s.rebateRepo.ListAll(ctx)
	}
	if actor.HostelID == nil {
		return nil, ErrNoHostelAssigned
	}
	return s.rebateRepo.ListByHostel(ctx, *actor.HostelID)
}

// UpdateStatusInput represents a rebate review decision
type UpdateStatusInput struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment" validate:"max=500"`
}

// UpdateStatus applies a review decision. Only admin and mhmc may
// review; mhmc only within their own hostel. The permission check
// happens before any write.
func (s *RebateService) UpdateStatus(ctx context.Context, actor domain.Actor, rebateID uint, input *UpdateStatusInput) (*models.Rebate, error) {
	if !domain.CanManageRebateStatus(actor.Role) {
		return nil, ErrNotPermitted
	}

	status := domain.RebateStatus(input.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, input.Status)
	}

	rebate, err := s.rebateRepo.GetByID(ctx, rebateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRebateNotFound
		}
		return nil, err
	}

	if !actor.SameHostel(rebate.HostelID) {
		return nil, ErrHostelMismatch
	}

	rebate.Status = string(status)
	rebate.Comment = input.Comment

	if err := s.rebateRepo.Update(ctx, rebate); err != nil {
		return nil, err
	}

	return rebate, nil
}

// Remove deletes a rebate. Admin, mhmc and munimji may delete;
// non-admins only within their own hostel.
func (s *RebateService) Remove(ctx context.Context, actor domain.Actor, rebateID uint) error {
	if !domain.CanDeleteOrListRebates(actor.Role) {
		return ErrNotPermitted
	}

	rebate, err := s.rebateRepo.GetByID(ctx, rebateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRebateNotFound
		}
		return err
	}

	if !actor.SameHostel(rebate.HostelID) {
		return ErrHostelMismatch
	}

	return s.rebateRepo.Delete(ctx, rebateID)
}

// RebateTotal holds the approved rebate aggregate for one user
type RebateTotal struct {
	Days   int     `json:"days"`
	Amount float64 `json:"amount"`
}

// TotalDaysAndAmount counts approved rebate days for a user and
// prices them at the given daily rate. Pending and rejected rebates
// contribute nothing. A rebate covering a single day counts as 1.
func (s *RebateService) TotalDaysAndAmount(ctx context.Context, userID uint, dailyRate float64) (*RebateTotal, error) {
	rebates, err := s.rebateRepo.ListApprovedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := &RebateTotal{}
	for _, rebate := range rebates {
		days := domain.RebateDays(rebate.FromDate, rebate.ToDate)
		total.Days += days
		total.Amount += float64(days) * dailyRate
	}
	return total, nil
}
