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

func newUserService(db *gorm.DB) *services.UserService {
	return services.NewUserService(repositories.NewUserRepository(db))
}

func TestUpdateProfile_OnlyTouchesGivenFields(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	svc := newUserService(db)

	profile, err := svc.UpdateProfile(context.Background(), student.ID, &services.UpdateProfileInput{
		RoomNumber: "B-214",
	})
	require.NoError(t, err)
	assert.Equal(t, "B-214", profile.RoomNumber)
	assert.Equal(t, student.Profile.FullName, profile.FullName)
	assert.Equal(t, "student", profile.Role)
}

func TestListUsers_ScopedToHostelForStaff(t *testing.T) {
	db := newTestDB(t)
	hostelA := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	hostelB := seedHostel(t, db, "Shivalik", "SHV", 4000, 140)
	seedUser(t, db, "s1@test.local", "student", &hostelA.ID)
	seedUser(t, db, "s2@test.local", "student", &hostelB.ID)
	munimji := seedUser(t, db, "c1@test.local", "munimji", &hostelA.ID)
	admin := seedUser(t, db, "a1@test.local", "admin", nil)
	student := seedUser(t, db, "s3@test.local", "student", &hostelA.ID)
	svc := newUserService(db)
	ctx := context.Background()

	scoped, total, err := svc.ListUsers(ctx, actorFor(munimji), 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for _, u := range scoped {
		require.NotNil(t, u.Profile.HostelID)
		assert.Equal(t, hostelA.ID, *u.Profile.HostelID)
	}

	_, total, err = svc.ListUsers(ctx, actorFor(admin), 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	_, _, err = svc.ListUsers(ctx, actorFor(student), 0, 50)
	assert.ErrorIs(t, err, services.ErrNotPermitted)
}

func TestSetRole_AdminOnlyAndClosedSet(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostel.ID)
	admin := seedUser(t, db, "a1@test.local", "admin", nil)
	svc := newUserService(db)
	ctx := context.Background()

	_, err := svc.SetRole(ctx, actorFor(mhmc), student.ID, "mhmc")
	assert.ErrorIs(t, err, services.ErrNotPermitted)

	_, err = svc.SetRole(ctx, actorFor(admin), student.ID, "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	profile, err := svc.SetRole(ctx, actorFor(admin), student.ID, "munimji")
	require.NoError(t, err)
	assert.Equal(t, "munimji", profile.Role)
}

func TestSetBlocked_MHMCScopedToOwnHostel(t *testing.T) {
	db := newTestDB(t)
	hostelA := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	hostelB := seedHostel(t, db, "Shivalik", "SHV", 4000, 140)
	studentA := seedUser(t, db, "s1@test.local", "student", &hostelA.ID)
	studentB := seedUser(t, db, "s2@test.local", "student", &hostelB.ID)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostelA.ID)
	munimji := seedUser(t, db, "c1@test.local", "munimji", &hostelA.ID)
	svc := newUserService(db)
	ctx := context.Background()

	_, err := svc.SetBlocked(ctx, actorFor(munimji), studentA.ID, true)
	assert.ErrorIs(t, err, services.ErrNotPermitted)

	_, err = svc.SetBlocked(ctx, actorFor(mhmc), studentB.ID, true)
	assert.ErrorIs(t, err, services.ErrHostelMismatch)

	profile, err := svc.SetBlocked(ctx, actorFor(mhmc), studentA.ID, true)
	require.NoError(t, err)
	assert.True(t, profile.IsBlocked)

	profile, err = svc.SetBlocked(ctx, actorFor(mhmc), studentA.ID, false)
	require.NoError(t, err)
	assert.False(t, profile.IsBlocked)
}

func TestSetBlocked_AdminsOffLimitsToMHMC(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostel.ID)
	superAdmin := seedUser(t, db, "a1@test.local", "admin", nil)
	hostelAdmin := seedUser(t, db, "a2@test.local", "admin", &hostel.ID)
	svc := newUserService(db)
	ctx := context.Background()

	// A hostel-less super admin is not in any mhmc's reach
	_, err := svc.SetBlocked(ctx, actorFor(mhmc), superAdmin.ID, true)
	assert.ErrorIs(t, err, services.ErrNotPermitted)

	// Nor is an admin who happens to share the hostel
	_, err = svc.SetBlocked(ctx, actorFor(mhmc), hostelAdmin.ID, true)
	assert.ErrorIs(t, err, services.ErrNotPermitted)

	var profile struct{ IsBlocked bool }
	require.NoError(t, db.Table("profiles").
		Select("is_blocked").
		Where("user_id = ?", superAdmin.ID).
		Scan(&profile).Error)
	assert.False(t, profile.IsBlocked)

	// An admin can still block another admin
	blocked, err := svc.SetBlocked(ctx, actorFor(superAdmin), hostelAdmin.ID, true)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)
}

func TestDeleteUser_AdminOnly(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostel.ID)
	admin := seedUser(t, db, "a1@test.local", "admin", nil)
	svc := newUserService(db)
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteUser(ctx, actorFor(mhmc), student.ID), services.ErrNotPermitted)

	require.NoError(t, svc.DeleteUser(ctx, actorFor(admin), student.ID))
	_, err := svc.GetProfile(ctx, student.ID)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
