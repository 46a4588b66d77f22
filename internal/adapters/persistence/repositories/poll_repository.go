package repositories

import (
	"context"
	"errors"

	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/core/domain"

	"gorm.io/gorm"
)

// pollRepository implements PollRepository interface
type pollRepository struct {
	db *gorm.DB
}

// NewPollRepository creates a new poll repository
func NewPollRepository(db *gorm.DB) PollRepository {
	return &pollRepository{db: db}
}

// Create creates a new poll
func (r *pollRepository) Create(ctx context.Context, poll *models.Poll) error {
	return r.db.WithContext(ctx).Create(poll).Error
}

// GetByID gets a poll by ID
func (r *pollRepository) GetByID(ctx context.Context, id uint) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&poll).Error
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// ListByHostel lists a hostel's polls, newest first
func (r *pollRepository) ListByHostel(ctx context.Context, hostelID uint) ([]*models.Poll, error) {
	var polls []*models.Poll
	err := r.db.WithContext(ctx).
		Where("hostel_id = ?", hostelID).
		Order("created_at DESC").
		Find(&polls).Error
	return polls, err
}

// Update updates a poll
func (r *pollRepository) Update(ctx context.Context, poll *models.Poll) error {
	return r.db.WithContext(ctx).Save(poll).Error
}

// Vote records one user's vote. The unique (poll_id, user_id) index
// makes this a single atomic check-then-act: a racing second vote
// surfaces as a duplicate-key error and is mapped to ErrAlreadyVoted.
func (r *pollRepository) Vote(ctx context.Context, vote *models.PollVote) error {
	err := r.db.WithContext(ctx).Create(vote).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyVoted
	}
	return err
}

// CountVotes tallies a poll's votes
func (r *pollRepository) CountVotes(ctx context.Context, pollID uint) (int64, int64, error) {
	var inFavor, against int64
	if err := r.db.WithContext(ctx).Model(&models.PollVote{}).
		Where("poll_id = ? AND in_favor = ?", pollID, true).
		Count(&inFavor).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.PollVote{}).
		Where("poll_id = ? AND in_favor = ?", pollID, false).
		Count(&against).Error; err != nil {
		return 0, 0, err
	}
	return inFavor, against, nil
}
