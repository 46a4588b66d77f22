package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Menu & Poll Tables
// ============================================================

// Meal slots
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealSnacks    = "snacks"
	MealDinner    = "dinner"
)

// ValidMeal reports whether meal names a known meal slot.
func ValidMeal(meal string) bool {
	switch meal {
	case MealBreakfast, MealLunch, MealSnacks, MealDinner:
		return true
	}
	return false
}

// Menu represents the mess menu for one hostel/day/meal slot
type Menu struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HostelID  uint      `gorm:"not null;uniqueIndex:idx_menu_slot" json:"hostel_id"`
	Day       int       `gorm:"not null;uniqueIndex:idx_menu_slot" json:"day"` // 0=Sunday .. 6=Saturday
	Meal      string    `gorm:"size:20;not null;uniqueIndex:idx_menu_slot" json:"meal"`
	Items     string    `gorm:"type:text" json:"items"`
	UpdatedBy uint      `json:"updated_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Menu) TableName() string {
	return "menus"
}

// Poll represents a menu-change proposal put to student vote
type Poll struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	HostelID      uint       `gorm:"index;not null" json:"hostel_id"`
	Day           int        `gorm:"not null" json:"day"`
	Meal          string     `gorm:"size:20;not null" json:"meal"`
	ProposedItems string     `gorm:"type:text;not null" json:"proposed_items"`
	Description   string     `gorm:"type:text" json:"description"`
	Status        string     `gorm:"size:20;not null;default:'open';index" json:"status"`
	CreatedBy     uint       `gorm:"not null" json:"created_by"`
	ClosedBy      *uint      `json:"closed_by"`
	ClosedAt      *time.Time `json:"closed_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Votes []PollVote `gorm:"foreignKey:PollID" json:"-"`
}

func (Poll) TableName() string {
	return "polls"
}

// PollVote represents one user's vote on a poll. The composite
// unique index makes the already-voted check atomic: a second vote
// is a duplicate-key error, not a read-then-write race.
type PollVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PollID    uint      `gorm:"not null;uniqueIndex:idx_poll_voter" json:"poll_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_poll_voter" json:"user_id"`
	InFavor   bool      `gorm:"not null" json:"in_favor"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PollVote) TableName() string {
	return "poll_votes"
}

// PollResponse DTO with vote tallies
type PollResponse struct {
	ID            uint       `json:"id"`
	HostelID      uint       `json:"hostel_id"`
	Day           int        `json:"day"`
	Meal          string     `json:"meal"`
	ProposedItems string     `json:"proposed_items"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	VotesFor      int64      `json:"votes_for"`
	VotesAgainst  int64      `json:"votes_against"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ============================================================
// Forum & Notification Tables
// ============================================================

// ForumPost represents forum_posts table
type ForumPost struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	HostelID  uint           `gorm:"index;not null" json:"hostel_id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User     *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments []ForumComment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}

// ForumComment represents forum_comments table
type ForumComment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"index;not null" json:"post_id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ForumComment) TableName() string {
	return "forum_comments"
}

// Notification represents notifications table. HostelID nil means
// the notice is visible to every hostel.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	HostelID  *uint      `gorm:"index" json:"hostel_id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	CreatedBy uint       `gorm:"not null" json:"created_by"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth & identity
		&User{},
		&Profile{},
		&RefreshToken{},
		&AllowedEmail{},
		// Hostel & billing
		&Hostel{},
		&Rebate{},
		&ExtraPurchase{},
		// Menu & polls
		&Menu{},
		&Poll{},
		&PollVote{},
		// Forum & notifications
		&ForumPost{},
		&ForumComment{},
		&Notification{},
	)
}
