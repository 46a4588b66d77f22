package services

import (
	"context"
	"time"

	"hmc-messhub/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db      *gorm.DB
	billing *BillingService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, billing *BillingService) *DashboardService {
	return &DashboardService{db: db, billing: billing}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents system-wide dashboard data
type AdminDashboardData struct {
	// User Statistics
	TotalUsers    int64 `json:"total_users"`
	TotalStudents int64 `json:"total_students"`
	TotalMHMC     int64 `json:"total_mhmc"`
	TotalMunimji  int64 `json:"total_munimji"`
	BlockedUsers  int64 `json:"blocked_users"`

	// Hostel Statistics
	TotalHostels int64 `json:"total_hostels"`

	// Rebate Statistics
	TotalRebates    int64 `json:"total_rebates"`
	PendingRebates  int64 `json:"pending_rebates"`
	ApprovedRebates int64 `json:"approved_rebates"`
	RejectedRebates int64 `json:"rejected_rebates"`

	// Extras Statistics
	ExtrasThisMonth float64 `json:"extras_this_month"`
	ExtrasAllTime   float64 `json:"extras_all_time"`

	// Poll Statistics
	OpenPolls int64 `json:"open_polls"`

	// Per-hostel breakdown
	Hostels []HostelStats `json:"hostels"`
}

// HostelStats represents per-hostel aggregates
type HostelStats struct {
	HostelID       uint    `json:"hostel_id"`
	Name           string  `json:"name"`
	Students       int64   `json:"students"`
	PendingRebates int64   `json:"pending_rebates"`
	ExtrasTotal    float64 `json:"extras_total"`
}

// GetAdminDashboard returns system-wide dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	// User counts by role
	s.db.WithContext(ctx).Table("profiles").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("profiles").Where("role = ? AND deleted_at IS NULL", "student").Count(&data.TotalStudents)
	s.db.WithContext(ctx).Table("profiles").Where("role = ? AND deleted_at IS NULL", "mhmc").Count(&data.TotalMHMC)
	s.db.WithContext(ctx).Table("profiles").Where("role = ? AND deleted_at IS NULL", "munimji").Count(&data.TotalMunimji)
	s.db.WithContext(ctx).Table("profiles").Where("is_blocked = ? AND deleted_at IS NULL", true).Count(&data.BlockedUsers)

	s.db.WithContext(ctx).Table("hostels").Count(&data.TotalHostels)

	// Rebate counts by status
	s.db.WithContext(ctx).Table("rebates").Count(&data.TotalRebates)
	s.db.WithContext(ctx).Table("rebates").Where("status = ?", "pending").Count(&data.PendingRebates)
	s.db.WithContext(ctx).Table("rebates").Where("status = ?", "approved").Count(&data.ApprovedRebates)
	s.db.WithContext(ctx).Table("rebates").Where("status = ?", "rejected").Count(&data.RejectedRebates)

	// Extras totals
	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("extra_purchases").
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&data.ExtrasAllTime)
	s.db.WithContext(ctx).Table("extra_purchases").
		Where("created_at >= ?", startOfMonth).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&data.ExtrasThisMonth)

	s.db.WithContext(ctx).Table("polls").Where("status = ?", "open").Count(&data.OpenPolls)

	// Per-hostel breakdown
	var hostels []struct {
		HostelID       uint
		Name           string
		Students       int64
		PendingRebates int64
		ExtrasTotal    float64
	}
	s.db.WithContext(ctx).Table("hostels").
		Select(`
			hostels.id as hostel_id,
			hostels.name,
			(SELECT COUNT(*) FROM profiles WHERE profiles.hostel_id = hostels.id AND profiles.role = 'student' AND profiles.deleted_at IS NULL) as students,
			(SELECT COUNT(*) FROM rebates WHERE rebates.hostel_id = hostels.id AND rebates.status = 'pending') as pending_rebates,
			(SELECT COALESCE(SUM(price * quantity), 0) FROM extra_purchases WHERE extra_purchases.hostel_id = hostels.id) as extras_total
		`).
		Order("hostels.name ASC").
		Scan(&hostels)

	data.Hostels = make([]HostelStats, len(hostels))
	for i, h := range hostels {
		data.Hostels[i] = HostelStats{
			HostelID:       h.HostelID,
			Name:           h.Name,
			Students:       h.Students,
			PendingRebates: h.PendingRebates,
			ExtrasTotal:    h.ExtrasTotal,
		}
	}

	return data, nil
}

// ============================================================
// Staff Dashboard
// ============================================================

// StaffDashboardData represents one hostel's dashboard for mhmc
// and munimji users
type StaffDashboardData struct {
	HostelID uint   `json:"hostel_id"`
	Hostel   string `json:"hostel"`

	Students       int64 `json:"students"`
	BlockedUsers   int64 `json:"blocked_users"`
	PendingRebates int64 `json:"pending_rebates"`
	OpenPolls      int64 `json:"open_polls"`
	ForumPosts     int64 `json:"forum_posts"`

	ExtrasThisMonth float64 `json:"extras_this_month"`
	RebateDaysTotal int64   `json:"rebate_days_total"`
}

// GetStaffDashboard returns one hostel's dashboard data
func (s *DashboardService) GetStaffDashboard(ctx context.Context, actor domain.Actor) (*StaffDashboardData, error) {
	if actor.HostelID == nil {
		return nil, ErrNoHostelAssigned
	}
	hostelID := *actor.HostelID

	data := &StaffDashboardData{HostelID: hostelID}
	s.db.WithContext(ctx).Table("hostels").Where("id = ?", hostelID).Select("name").Scan(&data.Hostel)

	s.db.WithContext(ctx).Table("profiles").
		Where("hostel_id = ? AND role = ? AND deleted_at IS NULL", hostelID, "student").
		Count(&data.Students)
	s.db.WithContext(ctx).Table("profiles").
		Where("hostel_id = ? AND is_blocked = ? AND deleted_at IS NULL", hostelID, true).
		Count(&data.BlockedUsers)
	s.db.WithContext(ctx).Table("rebates").
		Where("hostel_id = ? AND status = ?", hostelID, "pending").
		Count(&data.PendingRebates)
	s.db.WithContext(ctx).Table("polls").
		Where("hostel_id = ? AND status = ?", hostelID, "open").
		Count(&data.OpenPolls)
	s.db.WithContext(ctx).Table("forum_posts").
		Where("hostel_id = ? AND deleted_at IS NULL", hostelID).
		Count(&data.ForumPosts)

	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("extra_purchases").
		Where("hostel_id = ? AND created_at >= ?", hostelID, startOfMonth).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&data.ExtrasThisMonth)

	var ranges []struct {
		FromDate time.Time
		ToDate   time.Time
	}
	s.db.WithContext(ctx).Table("rebates").
		Select("from_date, to_date").
		Where("hostel_id = ? AND status = ?", hostelID, "approved").
		Scan(&ranges)
	for _, r := range ranges {
		data.RebateDaysTotal += int64(domain.RebateDays(r.FromDate, r.ToDate))
	}

	return data, nil
}

// ============================================================
// Student Dashboard
// ============================================================

// StudentDashboardData represents a student's own dashboard
type StudentDashboardData struct {
	Bill *BillSummary `json:"bill"`

	PendingRebates int64 `json:"pending_rebates"`
	OpenPolls      int64 `json:"open_polls"`
	ActiveNotices  int64 `json:"active_notices"`
}

// GetStudentDashboard returns the actor's own dashboard data
func (s *DashboardService) GetStudentDashboard(ctx context.Context, actor domain.Actor) (*StudentDashboardData, error) {
	bill, err := s.billing.ComputeSummary(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	data := &StudentDashboardData{Bill: bill}
	s.db.WithContext(ctx).Table("rebates").
		Where("user_id = ? AND status = ?", actor.UserID, "pending").
		Count(&data.PendingRebates)
	if actor.HostelID != nil {
		s.db.WithContext(ctx).Table("polls").
			Where("hostel_id = ? AND status = ?", *actor.HostelID, "open").
			Count(&data.OpenPolls)
		s.db.WithContext(ctx).Table("notifications").
			Where("(hostel_id IS NULL OR hostel_id = ?) AND (expires_at IS NULL OR expires_at > ?)", *actor.HostelID, time.Now()).
			Count(&data.ActiveNotices)
	}

	return data, nil
}
