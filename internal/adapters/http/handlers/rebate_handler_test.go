package handlers_test

import (
	"net/http/httptest"
	"testing"

	"hmc-messhub/internal/adapters/http/handlers"
	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/adapters/persistence/repositories"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newRebateApp mounts the rebate delete route behind a stand-in for
// the auth middleware that injects the given actor.
func newRebateApp(t *testing.T, db *gorm.DB, actor domain.Actor) *fiber.App {
	t.Helper()

	svc := services.NewRebateService(
		repositories.NewRebateRepository(db),
		repositories.NewUserRepository(db),
		true,
	)
	handler := handlers.NewRebateHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("actor", actor)
		return c.Next()
	})
	app.Delete("/rebates/:id", handler.Remove)
	return app
}

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func TestRebateRemove_CrossHostelReturns403(t *testing.T) {
	db := newHandlerTestDB(t)

	hostelA := &models.Hostel{Name: "Aravali", Code: "ARV"}
	hostelB := &models.Hostel{Name: "Shivalik", Code: "SHV"}
	require.NoError(t, db.Create(hostelA).Error)
	require.NoError(t, db.Create(hostelB).Error)

	rebate := &models.Rebate{UserID: 1, HostelID: hostelB.ID, Status: "approved"}
	require.NoError(t, db.Create(rebate).Error)

	munimjiA := domain.Actor{UserID: 2, Role: domain.RoleMunimji, HostelID: &hostelA.ID}
	app := newRebateApp(t, db, munimjiA)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/rebates/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// The row survives the refused delete
	var count int64
	require.NoError(t, db.Model(&models.Rebate{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRebateRemove_OwnHostelSucceeds(t *testing.T) {
	db := newHandlerTestDB(t)

	hostel := &models.Hostel{Name: "Aravali", Code: "ARV"}
	require.NoError(t, db.Create(hostel).Error)
	rebate := &models.Rebate{UserID: 1, HostelID: hostel.ID, Status: "approved"}
	require.NoError(t, db.Create(rebate).Error)

	munimji := domain.Actor{UserID: 2, Role: domain.RoleMunimji, HostelID: &hostel.ID}
	app := newRebateApp(t, db, munimji)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/rebates/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Rebate{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRebateRemove_StudentReturns403(t *testing.T) {
	db := newHandlerTestDB(t)

	hostel := &models.Hostel{Name: "Aravali", Code: "ARV"}
	require.NoError(t, db.Create(hostel).Error)
	require.NoError(t, db.Create(&models.Rebate{UserID: 1, HostelID: hostel.ID, Status: "approved"}).Error)

	student := domain.Actor{UserID: 1, Role: domain.RoleStudent, HostelID: &hostel.ID}
	app := newRebateApp(t, db, student)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/rebates/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
