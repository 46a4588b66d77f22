package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/adapters/persistence/repositories"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Allowlist errors
var (
	ErrAllowedEmailExists   = errors.New("email already on the allowlist")
	ErrAllowedEmailNotFound = errors.New("allowlist entry not found")
)

// AllowedEmailService manages the signup allowlist
type AllowedEmailService struct {
	allowedEmailRepo repositories.AllowedEmailRepository
	hostelRepo       repositories.HostelRepository
}

// NewAllowedEmailService creates a new allowed email service
func NewAllowedEmailService(allowedEmailRepo repositories.AllowedEmailRepository, hostelRepo repositories.HostelRepository) *AllowedEmailService {
	return &AllowedEmailService{
		allowedEmailRepo: allowedEmailRepo,
		hostelRepo:       hostelRepo,
	}
}

// AddInput represents a single allowlist addition
type AddInput struct {
	Email    string `json:"email" validate:"required,email"`
	HostelID uint   `json:"hostel_id" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// Add puts one email on the allowlist. Admin only.
func (s *AllowedEmailService) Add(ctx context.Context, actor domain.Actor, input *AddInput) (*models.AllowedEmail, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrNotPermitted
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !domain.Role(input.Role).Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, input.Role)
	}
	if _, err := s.hostelRepo.GetByID(ctx, input.HostelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostelNotFound
		}
		return nil, err
	}

	entry := &models.AllowedEmail{
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		HostelID: input.HostelID,
		Role:     input.Role,
	}
	if err := s.allowedEmailRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAllowedEmailExists
		}
		return nil, err
	}
	return entry, nil
}

// ImportInput represents a bulk allowlist import
type ImportInput struct {
	HostelID uint   `json:"hostel_id" validate:"required"`
	CSV      string `json:"csv" validate:"required"`
}

// ImportResult summarizes one bulk import
type ImportResult struct {
	BatchID  string `json:"batch_id"`
	Parsed   int    `json:"parsed"`
	Inserted int64  `json:"inserted"`
	Skipped  int    `json:"skipped"`
}

// Import bulk-adds allowlist entries from CSV lines of the form
// "email" or "email,role" (role defaults to student). Parsing is
// deliberately minimal; malformed lines are skipped, duplicates are
// ignored at the storage layer in one conditional insert.
func (s *AllowedEmailService) Import(ctx context.Context, actor domain.Actor, input *ImportInput) (*ImportResult, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrNotPermitted
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if _, err := s.hostelRepo.GetByID(ctx, input.HostelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostelNotFound
		}
		return nil, err
	}

	batchID := uuid.New().String()
	result := &ImportResult{BatchID: batchID}

	var entries []*models.AllowedEmail
	for _, line := range strings.Split(input.CSV, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		email := strings.ToLower(strings.TrimSpace(fields[0]))
		if !strings.Contains(email, "@") {
			result.Skipped++
			continue
		}
		role := string(domain.RoleStudent)
		if len(fields) > 1 {
			candidate := strings.ToLower(strings.TrimSpace(fields[1]))
			if domain.Role(candidate).Valid() {
				role = candidate
			}
		}
		entries = append(entries, &models.AllowedEmail{
			Email:    email,
			HostelID: input.HostelID,
			Role:     role,
			BatchID:  batchID,
		})
		result.Parsed++
	}

	inserted, err := s.allowedEmailRepo.CreateBatch(ctx, entries)
	if err != nil {
		return nil, err
	}
	result.Inserted = inserted
	return result, nil
}

// List lists allowlist entries. Admin only.
func (s *AllowedEmailService) List(ctx context.Context, actor domain.Actor, hostelID *uint, offset, limit int) ([]*models.AllowedEmail, int64, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, 0, ErrNotPermitted
	}
	return s.allowedEmailRepo.List(ctx, hostelID, offset, limit)
}

// Delete removes an allowlist entry. Admin only.
func (s *AllowedEmailService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if actor.Role != domain.RoleAdmin {
		return ErrNotPermitted
	}
	return s.allowedEmailRepo.Delete(ctx, id)
}
