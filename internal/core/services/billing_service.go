package services

import (
	"context"
	"errors"

	"hmc-messhub/internal/adapters/persistence/repositories"
	"hmc-messhub/internal/core/domain"

	"gorm.io/gorm"
)

// BillingService combines the fee policy, rebate ledger and extras
// ledger into a net-payable figure for one student.
type BillingService struct {
	userRepo   repositories.UserRepository
	hostelRepo repositories.HostelRepository
	rebates    *RebateService
	extras     *ExtrasService
}

// NewBillingService creates a new billing service
func NewBillingService(
	userRepo repositories.UserRepository,
	hostelRepo repositories.HostelRepository,
	rebates *RebateService,
	extras *ExtrasService,
) *BillingService {
	return &BillingService{
		userRepo:   userRepo,
		hostelRepo: hostelRepo,
		rebates:    rebates,
		extras:     extras,
	}
}

// BillSummary is the billing result for one student
type BillSummary struct {
	BaseFee     float64 `json:"base_fee"`
	ExtrasTotal float64 `json:"extras_total"`
	RebateDays  int     `json:"rebate_days"`
	RebateTotal float64 `json:"rebate_total"`
	NetBill     float64 `json:"net_bill"`
	HostelName  string  `json:"hostel_name"`
	Currency    string  `json:"currency"`
}

// FeePolicyFor returns the billing constants for a hostel, falling
// back to the defaults for fields the record omits.
func FeePolicyFor(monthlyFee, dailyRate float64) domain.FeePolicy {
	policy := domain.FeePolicy{
		MonthlyMessFee:  monthlyFee,
		DailyRebateRate: dailyRate,
	}
	if policy.MonthlyMessFee <= 0 {
		policy.MonthlyMessFee = domain.DefaultMonthlyMessFee
	}
	if policy.DailyRebateRate <= 0 {
		policy.DailyRebateRate = domain.DefaultDailyRebateRate
	}
	return policy
}

// ComputeSummaryFor is the actor-scoped entry point: everyone may
// read their own bill, admin anyone's, other staff only students of
// their own hostel.
func (s *BillingService) ComputeSummaryFor(ctx context.Context, actor domain.Actor, userID uint) (*BillSummary, error) {
	if actor.UserID != userID {
		if actor.Role == domain.RoleStudent {
			return nil, ErrNotPermitted
		}
		if actor.Role != domain.RoleAdmin {
			profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrUserNotFound
				}
				return nil, err
			}
			if profile.HostelID == nil || !actor.SameHostel(*profile.HostelID) {
				return nil, ErrHostelMismatch
			}
		}
	}
	return s.ComputeSummary(ctx, userID)
}

// ComputeSummary produces the net-payable figure for one student.
// Rebate and extras totals are all-time sums: no monthly reset exists
// in the billing model, and the net bill is not floored at zero.
func (s *BillingService) ComputeSummary(ctx context.Context, userID uint) (*BillSummary, error) {
	profile, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if profile.HostelID == nil {
		return nil, ErrNoHostelAssigned
	}

	hostel, err := s.hostelRepo.GetByID(ctx, *profile.HostelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	policy := FeePolicyFor(hostel.MonthlyMessFee, hostel.DailyRebateRate)

	rebateTotal, err := s.rebates.TotalDaysAndAmount(ctx, userID, policy.DailyRebateRate)
	if err != nil {
		return nil, err
	}

	extrasTotal, err := s.extras.TotalAmount(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	return &BillSummary{
		BaseFee:     policy.MonthlyMessFee,
		ExtrasTotal: extrasTotal,
		RebateDays:  rebateTotal.Days,
		RebateTotal: rebateTotal.Amount,
		NetBill:     policy.MonthlyMessFee + extrasTotal - rebateTotal.Amount,
		HostelName:  hostel.Name,
		Currency:    domain.Currency,
	}, nil
}
