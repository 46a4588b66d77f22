package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/pkg/validation"

	"gorm.io/gorm"
)

// ErrNotificationNotFound is returned when a notice does not exist
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService handles mess notices
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// CreateNotificationInput represents a new notice. A nil HostelID
// publishes to every hostel; only admin may do that.
type CreateNotificationInput struct {
	HostelID  *uint      `json:"hostel_id"`
	Title     string     `json:"title" validate:"required,max=200"`
	Message   string     `json:"message" validate:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Create publishes a notice. MHMC and admin only.
func (s *NotificationService) Create(ctx context.Context, actor domain.Actor, input *CreateNotificationInput) (*models.Notification, error) {
	if !domain.CanModerate(actor.Role) {
		return nil, ErrNotPermitted
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if input.HostelID == nil {
		if actor.Role != domain.RoleAdmin {
			return nil, ErrNotPermitted
		}
	} else if !actor.SameHostel(*input.HostelID) {
		return nil, ErrHostelMismatch
	}
	if input.ExpiresAt != nil && input.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: expiry must be in the future", domain.ErrInvalidInput)
	}

	notification := &models.Notification{
		HostelID:  input.HostelID,
		Title:     input.Title,
		Message:   input.Message,
		CreatedBy: actor.UserID,
		ExpiresAt: input.ExpiresAt,
	}
	if err := s.db.WithContext(ctx).Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

// ListActive returns unexpired notices visible to the actor: global
// notices plus their hostel's own, newest first.
func (s *NotificationService) ListActive(ctx context.Context, actor domain.Actor) ([]*models.Notification, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("expires_at IS NULL OR expires_at > ?", time.Now())

	if !domain.CanViewAllHostels(actor.Role) {
		if actor.HostelID == nil {
			return nil, ErrNoHostelAssigned
		}
		query = query.Where("hostel_id IS NULL OR hostel_id = ?", *actor.HostelID)
	}

	var notifications []*models.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// Delete removes a notice. MHMC may delete their hostel's notices,
// admin any notice.
func (s *NotificationService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if !domain.CanModerate(actor.Role) {
		return ErrNotPermitted
	}

	var notification models.Notification
	if err := s.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if notification.HostelID == nil {
		if actor.Role != domain.RoleAdmin {
			return ErrNotPermitted
		}
	} else if !actor.SameHostel(*notification.HostelID) {
		return ErrHostelMismatch
	}

	return s.db.WithContext(ctx).Delete(&notification).Error
}

// PurgeExpired deletes notices past their expiry. Called from the
// scheduler, not from handlers.
func (s *NotificationService) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now()).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
