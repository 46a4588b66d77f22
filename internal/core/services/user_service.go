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

// UserService handles profile and user administration logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile gets a user with profile by ID
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput represents self-service profile edits. Role,
// hostel and blocked state are deliberately absent.
type UpdateProfileInput struct {
	FullName   string `json:"full_name" validate:"max=100"`
	RollNumber string `json:"roll_number" validate:"max=30"`
	RoomNumber string `json:"room_number" validate:"max=20"`
	Phone      string `json:"phone" validate:"max=20"`
}

// UpdateProfile applies self-service edits to the actor's own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.Profile, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.FullName != "" {
		profile.FullName = input.FullName
	}
	if input.RollNumber != "" {
		profile.RollNumber = input.RollNumber
	}
	if input.RoomNumber != "" {
		profile.RoomNumber = input.RoomNumber
	}
	if input.Phone != "" {
		profile.Phone = input.Phone
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListUsers lists users. Admins see all hostels; mhmc and munimji see
// their own hostel.
func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor, offset, limit int) ([]*models.User, int64, error) {
	if domain.CanViewAllHostels(actor.Role) {
		return s.userRepo.List(ctx, nil, offset, limit)
	}
	if !domain.CanDeleteOrListRebates(actor.Role) {
		return nil, 0, ErrNotPermitted
	}
	if actor.HostelID == nil {
		return nil, 0, ErrNoHostelAssigned
	}
	return s.userRepo.List(ctx, actor.HostelID, offset, limit)
}

// SetRole changes a user's role. Admin only; the role must be one of
// the closed set.
func (s *UserService) SetRole(ctx context.Context, actor domain.Actor, userID uint, role string) (*models.Profile, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrNotPermitted
	}
	if !domain.Role(role).Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile.Role = role
	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetBlocked blocks or unblocks a user. Admin and mhmc; mhmc only
// within their own hostel.
func (s *UserService) SetBlocked(ctx context.Context, actor domain.Actor, userID uint, blocked bool) (*models.Profile, error) {
	if !domain.CanModerate(actor.Role) {
		return nil, ErrNotPermitted
	}

	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if actor.Role != domain.RoleAdmin {
		// Admins are never subject to mhmc moderation, and a target
		// without a hostel is outside any mhmc's scope.
		if profile.Role == string(domain.RoleAdmin) {
			return nil, ErrNotPermitted
		}
		if profile.HostelID == nil || !actor.SameHostel(*profile.HostelID) {
			return nil, ErrHostelMismatch
		}
	}

	profile.IsBlocked = blocked
	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteUser removes a user and profile. Admin only.
func (s *UserService) DeleteUser(ctx context.Context, actor domain.Actor, userID uint) error {
	if actor.Role != domain.RoleAdmin {
		return ErrNotPermitted
	}
	return s.userRepo.Delete(ctx, userID)
}
