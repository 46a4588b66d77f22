package services_test

import (
	"context"
	"testing"

	"hmc-messhub/internal/adapters/persistence/repositories"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRebateService(t *testing.T, db *gorm.DB, autoApprove bool) *services.RebateService {
	t.Helper()
	return services.NewRebateService(
		repositories.NewRebateRepository(db),
		repositories.NewUserRepository(db),
		autoApprove,
	)
}

func TestRebateFile_AutoApprove(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	svc := newRebateService(t, db, true)

	rebate, err := svc.File(context.Background(), actorFor(student), &services.FileRebateInput{
		FromDate: "2026-03-10",
		ToDate:   "2026-03-14",
		Reason:   "home visit",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RebateApproved), rebate.Status)
	assert.Equal(t, hostel.ID, rebate.HostelID)
}

func TestRebateFile_ReviewMode(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	svc := newRebateService(t, db, false)

	rebate, err := svc.File(context.Background(), actorFor(student), &services.FileRebateInput{
		FromDate: "2026-03-10",
		ToDate:   "2026-03-14",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RebatePending), rebate.Status)
}

func TestRebateFile_InvertedRange_Rejected(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	svc := newRebateService(t, db, true)

	_, err := svc.File(context.Background(), actorFor(student), &services.FileRebateInput{
		FromDate: "2026-03-14",
		ToDate:   "2026-03-10",
	})
	assert.ErrorIs(t, err, services.ErrInvalidDateRange)
}

func TestRebateFile_NoHostel_Rejected(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@test.local", "admin", nil)
	svc := newRebateService(t, db, true)

	_, err := svc.File(context.Background(), actorFor(admin), &services.FileRebateInput{
		FromDate: "2026-03-10",
		ToDate:   "2026-03-10",
	})
	assert.ErrorIs(t, err, services.ErrNoHostelAssigned)
}

func TestRebateTotal_InclusiveDays(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	svc := newRebateService(t, db, true)
	ctx := context.Background()

	// Single day counts as 1, a 5-day span as 5
	_, err := svc.File(ctx, actorFor(student), &services.FileRebateInput{
		FromDate: "2026-03-10", ToDate: "2026-03-10",
	})
	require.NoError(t, err)
	_, err = svc.File(ctx, actorFor(student), &services.FileRebateInput{
		FromDate: "2026-04-01", ToDate: "2026-04-05",
	})
	require.NoError(t, err)

	total, err := svc.TotalDaysAndAmount(ctx, student.ID, 140)
	require.NoError(t, err)
	assert.Equal(t, 6, total.Days)
	assert.Equal(t, 840.0, total.Amount)
}

func TestRebateTotal_OnlyApprovedCounts(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostel.ID)
	svc := newRebateService(t, db, false)
	ctx := context.Background()

	_, err := svc.File(ctx, actorFor(student), &services.FileRebateInput{
		FromDate: "2026-03-10", ToDate: "2026-03-14",
	})
	require.NoError(t, err)
	rejected, err := svc.File(ctx, actorFor(student), &services.FileRebateInput{
		FromDate: "2026-04-01", ToDate: "2026-04-02",
	})
	require.NoError(t, err)
	approved, err := svc.File(ctx, actorFor(student), &services.FileRebateInput{
		FromDate: "2026-05-01", ToDate: "2026-05-03",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, actorFor(mhmc), rejected.ID, &services.UpdateStatusInput{Status: "rejected"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, actorFor(mhmc), approved.ID, &services.UpdateStatusInput{Status: "approved"})
	require.NoError(t, err)

	total, err := svc.TotalDaysAndAmount(ctx, student.ID, 140)
	require.NoError(t, err)
	assert.Equal(t, 3, total.Days, "only the approved rebate should count")
	assert.Equal(t, 420.0, total.Amount)
}

func TestRebateUpdateStatus_Permissions(t *testing.T) {
	db := newTestDB(t)
	hostelA := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	hostelB := seedHostel(t, db, "Shivalik", "SHV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostelA.ID)
	munimji := seedUser(t, db, "mj@test.local", "munimji", &hostelA.ID)
	otherMHMC := seedUser(t, db, "m2@test.local", "mhmc", &hostelB.ID)
	admin := seedUser(t, db, "admin@test.local", "admin", nil)
	svc := newRebateService(t, db, false)
	ctx := context.Background()

	rebate, err := svc.File(ctx, actorFor(student), &services.FileRebateInput{
		FromDate: "2026-03-10", ToDate: "2026-03-14",
	})
	require.NoError(t, err)

	// Munimji may not review at all
	_, err = svc.UpdateStatus(ctx, actorFor(munimji), rebate.ID, &services.UpdateStatusInput{Status: "approved"})
	assert.ErrorIs(t, err, services.ErrNotPermitted)

	// MHMC of another hostel may not review this one
	_, err = svc.UpdateStatus(ctx, actorFor(otherMHMC), rebate.ID, &services.UpdateStatusInput{Status: "approved"})
	assert.ErrorIs(t, err, services.ErrHostelMismatch)

	// Admin may review anywhere
	updated, err := svc.UpdateStatus(ctx, actorFor(admin), rebate.ID, &services.UpdateStatusInput{Status: "approved", Comment: "ok"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RebateApproved), updated.Status)
}

func TestRebateUpdateStatus_UnknownStatus_Rejected(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostel.ID)
	svc := newRebateService(t, db, false)
	ctx := context.Background()

	rebate, err := svc.File(ctx, actorFor(student), &services.FileRebateInput{
		FromDate: "2026-03-10", ToDate: "2026-03-14",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, actorFor(mhmc), rebate.ID, &services.UpdateStatusInput{Status: "maybe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRebateRemove_ScopedToHostel(t *testing.T) {
	db := newTestDB(t)
	hostelA := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	hostelB := seedHostel(t, db, "Shivalik", "SHV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostelA.ID)
	otherMunimji := seedUser(t, db, "mj@test.local", "munimji", &hostelB.ID)
	svc := newRebateService(t, db, true)
	ctx := context.Background()

	rebate, err := svc.File(ctx, actorFor(student), &services.FileRebateInput{
		FromDate: "2026-03-10", ToDate: "2026-03-14",
	})
	require.NoError(t, err)

	// Students cannot delete
	err = svc.Remove(ctx, actorFor(student), rebate.ID)
	assert.ErrorIs(t, err, services.ErrNotPermitted)

	// Staff of another hostel cannot delete
	err = svc.Remove(ctx, actorFor(otherMunimji), rebate.ID)
	assert.ErrorIs(t, err, services.ErrHostelMismatch)
}

func TestRebateListForHostelOrAll(t *testing.T) {
	db := newTestDB(t)
	hostelA := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	hostelB := seedHostel(t, db, "Shivalik", "SHV", 4000, 140)
	s1 := seedUser(t, db, "s1@test.local", "student", &hostelA.ID)
	s2 := seedUser(t, db, "s2@test.local", "student", &hostelB.ID)
	mhmcA := seedUser(t, db, "m1@test.local", "mhmc", &hostelA.ID)
	admin := seedUser(t, db, "admin@test.local", "admin", nil)
	svc := newRebateService(t, db, true)
	ctx := context.Background()

	_, err := svc.File(ctx, actorFor(s1), &services.FileRebateInput{FromDate: "2026-03-10", ToDate: "2026-03-12"})
	require.NoError(t, err)
	_, err = svc.File(ctx, actorFor(s2), &services.FileRebateInput{FromDate: "2026-03-10", ToDate: "2026-03-12"})
	require.NoError(t, err)

	mine, err := svc.ListForHostelOrAll(ctx, actorFor(mhmcA))
	require.NoError(t, err)
	assert.Len(t, mine, 1, "mhmc only sees their own hostel")

	all, err := svc.ListForHostelOrAll(ctx, actorFor(admin))
	require.NoError(t, err)
	assert.Len(t, all, 2, "admin sees every hostel")

	_, err = svc.ListForHostelOrAll(ctx, actorFor(s1))
	assert.ErrorIs(t, err, services.ErrNotPermitted)
}
