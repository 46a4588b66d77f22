package services_test

import (
	"testing"

	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// newTestDB opens an in-memory store with the same error translation
// the production connection uses, so duplicate-key behavior matches.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func seedHostel(t *testing.T, db *gorm.DB, name, code string, fee, rate float64) *models.Hostel {
	t.Helper()

	hostel := &models.Hostel{
		Name:            name,
		Code:            code,
		MonthlyMessFee:  fee,
		DailyRebateRate: rate,
	}
	require.NoError(t, db.Create(hostel).Error)
	return hostel
}

func seedUser(t *testing.T, db *gorm.DB, email, role string, hostelID *uint) *models.User {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	user := &models.User{Email: email, Password: hashed}
	require.NoError(t, db.Create(user).Error)

	profile := &models.Profile{
		UserID:   user.ID,
		HostelID: hostelID,
		Role:     role,
		FullName: email,
	}
	require.NoError(t, db.Create(profile).Error)
	user.Profile = profile
	return user
}

func actorFor(u *models.User) domain.Actor {
	return domain.Actor{
		UserID:   u.ID,
		Role:     domain.Role(u.Profile.Role),
		HostelID: u.Profile.HostelID,
	}
}
