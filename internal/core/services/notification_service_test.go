package services_test

import (
	"context"
	"testing"
	"time"

	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationCreate_GlobalNeedsAdmin(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostel.ID)
	admin := seedUser(t, db, "a1@test.local", "admin", nil)
	svc := services.NewNotificationService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, actorFor(mhmc), &services.CreateNotificationInput{
		Title: "Campus-wide", Message: "Mess closed on holiday",
	})
	assert.ErrorIs(t, err, services.ErrNotPermitted)

	notice, err := svc.Create(ctx, actorFor(admin), &services.CreateNotificationInput{
		Title: "Campus-wide", Message: "Mess closed on holiday",
	})
	require.NoError(t, err)
	assert.Nil(t, notice.HostelID)
}

func TestNotificationCreate_MHMCOwnHostelOnly(t *testing.T) {
	db := newTestDB(t)
	hostelA := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	hostelB := seedHostel(t, db, "Shivalik", "SHV", 4000, 140)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostelA.ID)
	svc := services.NewNotificationService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, actorFor(mhmc), &services.CreateNotificationInput{
		HostelID: &hostelB.ID, Title: "Wrong board", Message: "msg",
	})
	assert.ErrorIs(t, err, services.ErrHostelMismatch)

	notice, err := svc.Create(ctx, actorFor(mhmc), &services.CreateNotificationInput{
		HostelID: &hostelA.ID, Title: "Feast on Friday", Message: "Special dinner",
	})
	require.NoError(t, err)
	require.NotNil(t, notice.HostelID)
	assert.Equal(t, hostelA.ID, *notice.HostelID)
}

func TestNotificationCreate_PastExpiryRejected(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "a1@test.local", "admin", nil)
	svc := services.NewNotificationService(db)

	yesterday := time.Now().Add(-24 * time.Hour)
	_, err := svc.Create(context.Background(), actorFor(admin), &services.CreateNotificationInput{
		Title: "Stale", Message: "msg", ExpiresAt: &yesterday,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNotificationListActive_GlobalPlusOwnHostel(t *testing.T) {
	db := newTestDB(t)
	hostelA := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	hostelB := seedHostel(t, db, "Shivalik", "SHV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostelA.ID)
	admin := seedUser(t, db, "a1@test.local", "admin", nil)
	svc := services.NewNotificationService(db)
	ctx := context.Background()

	soon := time.Now().Add(time.Hour)
	require.NoError(t, db.Create(&models.Notification{
		Title: "Global", Message: "m", CreatedBy: admin.ID,
	}).Error)
	require.NoError(t, db.Create(&models.Notification{
		HostelID: &hostelA.ID, Title: "Aravali", Message: "m", CreatedBy: admin.ID, ExpiresAt: &soon,
	}).Error)
	require.NoError(t, db.Create(&models.Notification{
		HostelID: &hostelB.ID, Title: "Shivalik", Message: "m", CreatedBy: admin.ID,
	}).Error)

	visible, err := svc.ListActive(ctx, actorFor(student))
	require.NoError(t, err)
	require.Len(t, visible, 2)
	for _, n := range visible {
		assert.NotEqual(t, "Shivalik", n.Title)
	}

	all, err := svc.ListActive(ctx, actorFor(admin))
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestNotificationListActive_HidesExpired(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	svc := services.NewNotificationService(db)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&models.Notification{
		HostelID: &hostel.ID, Title: "Old", Message: "m", CreatedBy: 1, ExpiresAt: &past,
	}).Error)

	visible, err := svc.ListActive(context.Background(), actorFor(student))
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestNotificationDelete_Scoping(t *testing.T) {
	db := newTestDB(t)
	hostelA := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	hostelB := seedHostel(t, db, "Shivalik", "SHV", 4000, 140)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostelA.ID)
	admin := seedUser(t, db, "a1@test.local", "admin", nil)
	svc := services.NewNotificationService(db)
	ctx := context.Background()

	global := &models.Notification{Title: "Global", Message: "m", CreatedBy: admin.ID}
	require.NoError(t, db.Create(global).Error)
	foreign := &models.Notification{HostelID: &hostelB.ID, Title: "Shivalik", Message: "m", CreatedBy: admin.ID}
	require.NoError(t, db.Create(foreign).Error)
	own := &models.Notification{HostelID: &hostelA.ID, Title: "Aravali", Message: "m", CreatedBy: mhmc.ID}
	require.NoError(t, db.Create(own).Error)

	assert.ErrorIs(t, svc.Delete(ctx, actorFor(mhmc), global.ID), services.ErrNotPermitted)
	assert.ErrorIs(t, svc.Delete(ctx, actorFor(mhmc), foreign.ID), services.ErrHostelMismatch)
	require.NoError(t, svc.Delete(ctx, actorFor(mhmc), own.ID))
	require.NoError(t, svc.Delete(ctx, actorFor(admin), global.ID))

	assert.ErrorIs(t, svc.Delete(ctx, actorFor(admin), own.ID), services.ErrNotificationNotFound)
}

func TestNotificationPurgeExpired(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	svc := services.NewNotificationService(db)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	require.NoError(t, db.Create(&models.Notification{
		HostelID: &hostel.ID, Title: "Expired", Message: "m", CreatedBy: 1, ExpiresAt: &past,
	}).Error)
	require.NoError(t, db.Create(&models.Notification{
		HostelID: &hostel.ID, Title: "Live", Message: "m", CreatedBy: 1, ExpiresAt: &future,
	}).Error)
	require.NoError(t, db.Create(&models.Notification{
		HostelID: &hostel.ID, Title: "Evergreen", Message: "m", CreatedBy: 1,
	}).Error)

	purged, err := svc.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var remaining int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&remaining).Error)
	assert.Equal(t, int64(2), remaining)
}
