package repositories

import (
	"context"
	"time"

	"hmc-messhub/internal/adapters/persistence/models"
)

// UserRepository defines user + profile repository interface
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	List(ctx context.Context, hostelID *uint, offset, limit int) ([]*models.User, int64, error)
	Delete(ctx context.Context, id uint) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// AllowedEmailRepository defines the signup allowlist repository interface
type AllowedEmailRepository interface {
	Create(ctx context.Context, entry *models.AllowedEmail) error
	CreateBatch(ctx context.Context, entries []*models.AllowedEmail) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.AllowedEmail, error)
	List(ctx context.Context, hostelID *uint, offset, limit int) ([]*models.AllowedEmail, int64, error)
	Delete(ctx context.Context, id uint) error
}

// HostelRepository defines hostel repository interface
type HostelRepository interface {
	Create(ctx context.Context, hostel *models.Hostel) error
	GetByID(ctx context.Context, id uint) (*models.Hostel, error)
	List(ctx context.Context) ([]*models.Hostel, error)
	Update(ctx context.Context, hostel *models.Hostel) error
	CascadeDelete(ctx context.Context, id uint) error
}

// RebateRepository defines rebate repository interface
type RebateRepository interface {
	Create(ctx context.Context, rebate *models.Rebate) error
	GetByID(ctx context.Context, id uint) (*models.Rebate, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Rebate, error)
	ListByHostel(ctx context.Context, hostelID uint) ([]*models.Rebate, error)
	ListAll(ctx context.Context) ([]*models.Rebate, error)
	ListApprovedByUser(ctx context.Context, userID uint) ([]*models.Rebate, error)
	Update(ctx context.Context, rebate *models.Rebate) error
	Delete(ctx context.Context, id uint) error
}

// ExtrasRepository defines extra-purchase repository interface.
// Rows are insert-only; no update or single-row delete is exposed.
type ExtrasRepository interface {
	CreateBatch(ctx context.Context, purchases []*models.ExtraPurchase) error
	ListByUser(ctx context.Context, userID uint) ([]*models.ExtraPurchase, error)
	TotalAmount(ctx context.Context, userID uint, since *time.Time) (float64, error)
	ListRecent(ctx context.Context, hostelID *uint, limit int) ([]*models.ExtraPurchase, error)
}

// MenuRepository defines menu repository interface
type MenuRepository interface {
	Upsert(ctx context.Context, menu *models.Menu) error
	GetSlot(ctx context.Context, hostelID uint, day int, meal string) (*models.Menu, error)
	GetWeek(ctx context.Context, hostelID uint) ([]*models.Menu, error)
}

// PollRepository defines poll repository interface
type PollRepository interface {
	Create(ctx context.Context, poll *models.Poll) error
	GetByID(ctx context.Context, id uint) (*models.Poll, error)
	ListByHostel(ctx context.Context, hostelID uint) ([]*models.Poll, error)
	Update(ctx context.Context, poll *models.Poll) error
	Vote(ctx context.Context, vote *models.PollVote) error
	CountVotes(ctx context.Context, pollID uint) (inFavor int64, against int64, err error)
}
