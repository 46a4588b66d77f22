package domain

import "time"

// Role represents a user role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleMHMC    Role = "mhmc"
	RoleStudent Role = "student"
	RoleMunimji Role = "munimji"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMHMC, RoleStudent, RoleMunimji:
		return true
	}
	return false
}

// Actor is the resolved identity of a caller, passed explicitly into
// every service operation. HostelID is nil for super admins.
type Actor struct {
	UserID   uint
	Role     Role
	HostelID *uint
}

// RebateStatus represents the review state of a rebate
type RebateStatus string

const (
	RebatePending  RebateStatus = "pending"
	RebateApproved RebateStatus = "approved"
	RebateRejected RebateStatus = "rejected"
)

// Valid reports whether s is a known rebate status.
func (s RebateStatus) Valid() bool {
	switch s {
	case RebatePending, RebateApproved, RebateRejected:
		return true
	}
	return false
}

// PollStatus represents the lifecycle state of a menu poll
type PollStatus string

const (
	PollOpen     PollStatus = "open"
	PollApproved PollStatus = "approved"
	PollRejected PollStatus = "rejected"
)

// Hostel fee defaults, applied when a hostel record omits them
const (
	DefaultMonthlyMessFee  = 4000.0
	DefaultDailyRebateRate = 140.0
)

// Currency is the fixed reporting currency; no multi-currency support.
const Currency = "INR"

// FeePolicy holds the per-hostel billing constants.
type FeePolicy struct {
	MonthlyMessFee  float64 `json:"monthly_mess_fee"`
	DailyRebateRate float64 `json:"daily_rebate_rate"`
}

// RebateDays counts the inclusive days of a rebate range.
// A single-day rebate (from == to) counts as 1. The count is taken
// on calendar dates, so DST transitions inside the range do not
// shift it.
func RebateDays(from, to time.Time) int {
	from = midnightUTC(from)
	to = midnightUTC(to)
	return int(to.Sub(from).Hours()/24) + 1
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
