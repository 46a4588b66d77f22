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

// PollService handles menu-change polls and voting
type PollService struct {
	pollRepo repositories.PollRepository
	menuRepo repositories.MenuRepository
}

// NewPollService creates a new poll service
func NewPollService(pollRepo repositories.PollRepository, menuRepo repositories.MenuRepository) *PollService {
	return &PollService{pollRepo: pollRepo, menuRepo: menuRepo}
}

// CreatePollInput represents a menu-change proposal
type CreatePollInput struct {
	Day           int    `json:"day" validate:"gte=0,lte=6"`
	Meal          string `json:"meal" validate:"required"`
	ProposedItems string `json:"proposed_items" validate:"required"`
	Description   string `json:"description"`
}

// Create opens a new poll in the actor's hostel. MHMC and admin only;
// an admin with no hostel assignment cannot open hostel-scoped polls.
func (s *PollService) Create(ctx context.Context, actor domain.Actor, input *CreatePollInput) (*models.Poll, error) {
	if !domain.CanModerate(actor.Role) {
		return nil, ErrNotPermitted
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !models.ValidMeal(input.Meal) {
		return nil, ErrInvalidMealSlot
	}
	if actor.HostelID == nil {
		return nil, ErrNoHostelAssigned
	}

	poll := &models.Poll{
		HostelID:      *actor.HostelID,
		Day:           input.Day,
		Meal:          input.Meal,
		ProposedItems: input.ProposedItems,
		Description:   input.Description,
		Status:        string(domain.PollOpen),
		CreatedBy:     actor.UserID,
	}
	if err := s.pollRepo.Create(ctx, poll); err != nil {
		return nil, err
	}
	return poll, nil
}

// Vote records the actor's vote on an open poll in their hostel.
// Double votes surface as domain.ErrAlreadyVoted regardless of
// concurrency; the check lives in the unique index, not here.
func (s *PollService) Vote(ctx context.Context, actor domain.Actor, pollID uint, inFavor bool) error {
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if !actor.SameHostel(poll.HostelID) {
		return ErrHostelMismatch
	}
	if poll.Status != string(domain.PollOpen) {
		return domain.ErrPollClosed
	}

	vote := &models.PollVote{
		PollID:  poll.ID,
		UserID:  actor.UserID,
		InFavor: inFavor,
	}
	return s.pollRepo.Vote(ctx, vote)
}

// Get returns one poll with its vote tallies
func (s *PollService) Get(ctx context.Context, actor domain.Actor, pollID uint) (*models.PollResponse, error) {
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if !actor.SameHostel(poll.HostelID) {
		return nil, ErrHostelMismatch
	}
	return s.toResponse(ctx, poll)
}

// ListForHostel returns all polls of one hostel, newest first
func (s *PollService) ListForHostel(ctx context.Context, actor domain.Actor, hostelID uint) ([]*models.PollResponse, error) {
	if !actor.SameHostel(hostelID) {
		return nil, ErrHostelMismatch
	}
	polls, err := s.pollRepo.ListByHostel(ctx, hostelID)
	if err != nil {
		return nil, err
	}
	out := make([]*models.PollResponse, 0, len(polls))
	for _, p := range polls {
		resp, err := s.toResponse(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Close settles an open poll. Approving writes the proposed items
// into the menu slot; rejecting leaves the menu untouched.
func (s *PollService) Close(ctx context.Context, actor domain.Actor, pollID uint, approve bool) (*models.Poll, error) {
	if !domain.CanModerate(actor.Role) {
		return nil, ErrNotPermitted
	}
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if !actor.SameHostel(poll.HostelID) {
		return nil, ErrHostelMismatch
	}
	if poll.Status != string(domain.PollOpen) {
		return nil, domain.ErrPollClosed
	}

	now := time.Now()
	if approve {
		poll.Status = string(domain.PollApproved)
	} else {
		poll.Status = string(domain.PollRejected)
	}
	poll.ClosedBy = &actor.UserID
	poll.ClosedAt = &now
	if err := s.pollRepo.Update(ctx, poll); err != nil {
		return nil, err
	}

	if approve {
		menu := &models.Menu{
			HostelID:  poll.HostelID,
			Day:       poll.Day,
			Meal:      poll.Meal,
			Items:     poll.ProposedItems,
			UpdatedBy: actor.UserID,
		}
		if err := s.menuRepo.Upsert(ctx, menu); err != nil {
			return nil, err
		}
	}
	return poll, nil
}

func (s *PollService) getPoll(ctx context.Context, id uint) (*models.Poll, error) {
	poll, err := s.pollRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPollNotFound
		}
		return nil, err
	}
	return poll, nil
}

func (s *PollService) toResponse(ctx context.Context, poll *models.Poll) (*models.PollResponse, error) {
	votesFor, votesAgainst, err := s.pollRepo.CountVotes(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	return &models.PollResponse{
		ID:            poll.ID,
		HostelID:      poll.HostelID,
		Day:           poll.Day,
		Meal:          poll.Meal,
		ProposedItems: poll.ProposedItems,
		Description:   poll.Description,
		Status:        poll.Status,
		VotesFor:      votesFor,
		VotesAgainst:  votesAgainst,
		ClosedAt:      poll.ClosedAt,
		CreatedAt:     poll.CreatedAt,
	}, nil
}
