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

// ExtrasService handles extra-item billing and the recent-activity view
type ExtrasService struct {
	extrasRepo repositories.ExtrasRepository
	userRepo   repositories.UserRepository
}

// NewExtrasService creates a new extras service
func NewExtrasService(extrasRepo repositories.ExtrasRepository, userRepo repositories.UserRepository) *ExtrasService {
	return &ExtrasService{
		extrasRepo: extrasRepo,
		userRepo:   userRepo,
	}
}

// BillItem represents one extra item in a billing call
type BillItem struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

// BillItemsInput represents bulk billing input
type BillItemsInput struct {
	StudentID uint       `json:"student_id" validate:"required"`
	Items     []BillItem `json:"items" validate:"required,min=1,dive"`
}

// BillItems records extra purchases against a student. Only admin and
// munimji may bill; non-admins only students of their own hostel.
// Every item of the call shares one timestamp so the recent-activity
// view can group them back into a single transaction.
func (s *ExtrasService) BillItems(ctx context.Context, actor domain.Actor, input *BillItemsInput) error {
	if !domain.CanBillExtras(actor.Role) {
		return ErrNotPermitted
	}
	if err := validation.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	student, err := s.userRepo.GetProfileByUserID(ctx, input.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if student.HostelID == nil {
		return ErrNoHostelAssigned
	}
	if !actor.SameHostel(*student.HostelID) {
		return ErrHostelMismatch
	}

	now := time.Now()
	purchases := make([]*models.ExtraPurchase, 0, len(input.Items))
	for _, item := range input.Items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		purchases = append(purchases, &models.ExtraPurchase{
			UserID:    input.StudentID,
			HostelID:  *student.HostelID,
			ItemName:  item.Name,
			Price:     item.Price,
			Quantity:  qty,
			CreatedAt: now,
		})
	}

	return s.extrasRepo.CreateBatch(ctx, purchases)
}

// ListForUser lists a user's purchases, newest first
func (s *ExtrasService) ListForUser(ctx context.Context, userID uint) ([]*models.ExtraPurchase, error) {
	return s.extrasRepo.ListByUser(ctx, userID)
}

// TotalAmount sums a user's purchases, optionally from a point in time
func (s *ExtrasService) TotalAmount(ctx context.Context, userID uint, since *time.Time) (float64, error) {
	return s.extrasRepo.TotalAmount(ctx, userID, since)
}

// GroupedTransaction is one display transaction in the recent view:
// all items billed to one student in one call.
type GroupedTransaction struct {
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	RollNumber  string    `json:"roll_number,omitempty"`
	Items       []string  `json:"items"`
	Total       float64   `json:"total"`
	Time        time.Time `json:"time"`
}

// RecentGrouped returns the latest billing transactions visible to
// the actor (admin: all hostels, others: own hostel). Consecutive raw
// rows sharing the same student and the same minute-granularity
// timestamp collapse into one transaction; rows from different calls
// never merge because their timestamps differ.
func (s *ExtrasService) RecentGrouped(ctx context.Context, actor domain.Actor, limit int) ([]*GroupedTransaction, error) {
	if !domain.CanBillExtras(actor.Role) && !domain.CanModerate(actor.Role) {
		return nil, ErrNotPermitted
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var hostelID *uint
	if !domain.CanViewAllHostels(actor.Role) {
		if actor.HostelID == nil {
			return nil, ErrNoHostelAssigned
		}
		hostelID = actor.HostelID
	}

	purchases, err := s.extrasRepo.ListRecent(ctx, hostelID, limit)
	if err != nil {
		return nil, err
	}

	grouped := make([]*GroupedTransaction, 0, len(purchases))
	var current *GroupedTransaction
	for _, p := range purchases {
		minute := p.CreatedAt.Truncate(time.Minute)
		if current == nil || current.StudentID != p.UserID || !current.Time.Truncate(time.Minute).Equal(minute) {
			current = &GroupedTransaction{
				StudentID: p.UserID,
				Items:     []string{},
				Time:      p.CreatedAt,
			}
			if p.User != nil && p.User.Profile != nil {
				current.StudentName = p.User.Profile.FullName
				current.RollNumber = p.User.Profile.RollNumber
			}
			grouped = append(grouped, current)
		}
		current.Items = append(current.Items, itemLabel(p))
		current.Total += p.Total()
	}

	return grouped, nil
}

// itemLabel renders an item for the recent view: the bare name, or
// "name ×q" when more than one was billed.
func itemLabel(p *models.ExtraPurchase) string {
	if p.Quantity > 1 {
		return fmt.Sprintf("%s ×%d", p.ItemName, p.Quantity)
	}
	return p.ItemName
}
