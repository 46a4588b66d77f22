package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Identity Tables
// ============================================================

// User represents users table (credentials only; see Profile)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Profile represents profiles table (1:1 with users)
type Profile struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	HostelID   *uint          `gorm:"index" json:"hostel_id"` // nil = super admin
	Role       string         `gorm:"size:20;not null;default:'student'" json:"role"`
	FullName   string         `gorm:"size:100" json:"full_name"`
	RollNumber string         `gorm:"size:30" json:"roll_number"`
	RoomNumber string         `gorm:"size:20" json:"room_number"`
	Phone      string         `gorm:"size:20" json:"phone"`
	IsBlocked  bool           `gorm:"default:false" json:"is_blocked"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Hostel *Hostel `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}

// UserResponse DTO
type UserResponse struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	HostelID   *uint     `json:"hostel_id"`
	HostelName string    `json:"hostel_name,omitempty"`
	FullName   string    `json:"full_name,omitempty"`
	RollNumber string    `json:"roll_number,omitempty"`
	RoomNumber string    `json:"room_number,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	IsBlocked  bool      `json:"is_blocked"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToResponse flattens a user and its profile into a response DTO
func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
	if u.Profile != nil {
		resp.Role = u.Profile.Role
		resp.HostelID = u.Profile.HostelID
		resp.FullName = u.Profile.FullName
		resp.RollNumber = u.Profile.RollNumber
		resp.RoomNumber = u.Profile.RoomNumber
		resp.Phone = u.Profile.Phone
		resp.IsBlocked = u.Profile.IsBlocked
		if u.Profile.Hostel != nil {
			resp.HostelName = u.Profile.Hostel.Name
		}
	}
	return resp
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// AllowedEmail represents the signup allowlist
type AllowedEmail struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"` // stored lowercase
	HostelID  uint      `gorm:"index;not null" json:"hostel_id"`
	Role      string    `gorm:"size:20;not null;default:'student'" json:"role"`
	BatchID   string    `gorm:"size:40;index" json:"batch_id,omitempty"` // bulk-import batch
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Hostel *Hostel `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
}

func (AllowedEmail) TableName() string {
	return "allowed_emails"
}

// ============================================================
// Hostel & Billing Tables
// ============================================================

// Hostel represents hostels table
type Hostel struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Code              string         `gorm:"uniqueIndex;size:20;not null" json:"code"`
	MonthlyMessFee    float64        `gorm:"type:decimal(10,2)" json:"monthly_mess_fee"`
	DailyRebateRate   float64        `gorm:"type:decimal(10,2)" json:"daily_rebate_rate"`
	SemesterStartDate *time.Time     `gorm:"type:date" json:"semester_start_date"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Hostel) TableName() string {
	return "hostels"
}

// Rebate represents rebates table
type Rebate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	HostelID  uint      `gorm:"index;not null" json:"hostel_id"`
	FromDate  time.Time `gorm:"type:date;not null" json:"from_date"`
	ToDate    time.Time `gorm:"type:date;not null" json:"to_date"`
	Reason    string    `gorm:"type:text" json:"reason"`
	Status    string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hostel *Hostel `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
}

func (Rebate) TableName() string {
	return "rebates"
}

// RebateResponse DTO
type RebateResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	StudentName string    `json:"student_name,omitempty"`
	RollNumber  string    `json:"roll_number,omitempty"`
	HostelID    uint      `json:"hostel_id"`
	HostelName  string    `json:"hostel_name,omitempty"`
	FromDate    string    `json:"from_date"`
	ToDate      string    `json:"to_date"`
	Days        int       `json:"days"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts a rebate to its response DTO. Days is the
// inclusive day count of the range.
func (r *Rebate) ToResponse() *RebateResponse {
	resp := &RebateResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		HostelID:  r.HostelID,
		FromDate:  r.FromDate.Format("2006-01-02"),
		ToDate:    r.ToDate.Format("2006-01-02"),
		Days:      int(r.ToDate.Sub(r.FromDate).Hours()/24) + 1,
		Reason:    r.Reason,
		Status:    r.Status,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.User != nil && r.User.Profile != nil {
		resp.StudentName = r.User.Profile.FullName
		resp.RollNumber = r.User.Profile.RollNumber
	}
	if r.Hostel != nil {
		resp.HostelName = r.Hostel.Name
	}
	return resp
}

// ExtraPurchase represents extra_purchases table. Rows are
// insert-only; every item of one billing call shares CreatedAt.
type ExtraPurchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	HostelID  uint      `gorm:"index;not null" json:"hostel_id"`
	ItemName  string    `gorm:"size:100;not null" json:"item_name"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ExtraPurchase) TableName() string {
	return "extra_purchases"
}

// Total returns price x quantity for one row.
func (e *ExtraPurchase) Total() float64 {
	return e.Price * float64(e.Quantity)
}
