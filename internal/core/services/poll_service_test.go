package services_test

import (
	"context"
	"testing"

	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/adapters/persistence/repositories"
	"hmc-messhub/internal/core/domain"
	"hmc-messhub/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPollServices(t *testing.T, db *gorm.DB) (*services.PollService, *services.MenuService) {
	t.Helper()
	menuRepo := repositories.NewMenuRepository(db)
	return services.NewPollService(repositories.NewPollRepository(db), menuRepo),
		services.NewMenuService(menuRepo)
}

func TestPollVote_OncePerUser(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostel.ID)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	pollSvc, _ := newPollServices(t, db)
	ctx := context.Background()

	poll, err := pollSvc.Create(ctx, actorFor(mhmc), &services.CreatePollInput{
		Day: 3, Meal: "dinner", ProposedItems: "Paneer, Rice, Dal",
	})
	require.NoError(t, err)

	require.NoError(t, pollSvc.Vote(ctx, actorFor(student), poll.ID, true))

	// Second vote hits the unique index, whatever the direction
	err = pollSvc.Vote(ctx, actorFor(student), poll.ID, false)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	resp, err := pollSvc.Get(ctx, actorFor(student), poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.VotesFor)
	assert.Equal(t, int64(0), resp.VotesAgainst)
}

func TestPollVote_ClosedPollRejected(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostel.ID)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	pollSvc, _ := newPollServices(t, db)
	ctx := context.Background()

	poll, err := pollSvc.Create(ctx, actorFor(mhmc), &services.CreatePollInput{
		Day: 3, Meal: "dinner", ProposedItems: "Paneer, Rice, Dal",
	})
	require.NoError(t, err)

	_, err = pollSvc.Close(ctx, actorFor(mhmc), poll.ID, false)
	require.NoError(t, err)

	err = pollSvc.Vote(ctx, actorFor(student), poll.ID, true)
	assert.ErrorIs(t, err, domain.ErrPollClosed)
}

func TestPollVote_OtherHostelRejected(t *testing.T) {
	db := newTestDB(t)
	hostelA := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	hostelB := seedHostel(t, db, "Shivalik", "SHV", 4000, 140)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostelA.ID)
	outsider := seedUser(t, db, "s2@test.local", "student", &hostelB.ID)
	pollSvc, _ := newPollServices(t, db)
	ctx := context.Background()

	poll, err := pollSvc.Create(ctx, actorFor(mhmc), &services.CreatePollInput{
		Day: 3, Meal: "dinner", ProposedItems: "Paneer, Rice, Dal",
	})
	require.NoError(t, err)

	err = pollSvc.Vote(ctx, actorFor(outsider), poll.ID, true)
	assert.ErrorIs(t, err, services.ErrHostelMismatch)
}

func TestPollClose_ApproveAppliesMenu(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostel.ID)
	pollSvc, menuSvc := newPollServices(t, db)
	ctx := context.Background()

	// An existing slot gets replaced by the approved proposal
	_, err := menuSvc.SetSlot(ctx, actorFor(mhmc), &services.SetMenuInput{
		HostelID: hostel.ID, Day: 3, Meal: models.MealDinner, Items: "Aloo Gobi, Roti",
	})
	require.NoError(t, err)

	poll, err := pollSvc.Create(ctx, actorFor(mhmc), &services.CreatePollInput{
		Day: 3, Meal: models.MealDinner, ProposedItems: "Paneer, Rice, Dal",
	})
	require.NoError(t, err)

	closed, err := pollSvc.Close(ctx, actorFor(mhmc), poll.ID, true)
	require.NoError(t, err)
	assert.Equal(t, string(domain.PollApproved), closed.Status)
	require.NotNil(t, closed.ClosedAt)

	menu, err := menuSvc.Slot(ctx, actorFor(mhmc), hostel.ID, 3, models.MealDinner)
	require.NoError(t, err)
	assert.Equal(t, "Paneer, Rice, Dal", menu.Items)
}

func TestPollClose_RejectLeavesMenu(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostel.ID)
	pollSvc, menuSvc := newPollServices(t, db)
	ctx := context.Background()

	_, err := menuSvc.SetSlot(ctx, actorFor(mhmc), &services.SetMenuInput{
		HostelID: hostel.ID, Day: 3, Meal: models.MealDinner, Items: "Aloo Gobi, Roti",
	})
	require.NoError(t, err)

	poll, err := pollSvc.Create(ctx, actorFor(mhmc), &services.CreatePollInput{
		Day: 3, Meal: models.MealDinner, ProposedItems: "Paneer, Rice, Dal",
	})
	require.NoError(t, err)

	closed, err := pollSvc.Close(ctx, actorFor(mhmc), poll.ID, false)
	require.NoError(t, err)
	assert.Equal(t, string(domain.PollRejected), closed.Status)

	menu, err := menuSvc.Slot(ctx, actorFor(mhmc), hostel.ID, 3, models.MealDinner)
	require.NoError(t, err)
	assert.Equal(t, "Aloo Gobi, Roti", menu.Items)

	// A settled poll cannot be closed again
	_, err = pollSvc.Close(ctx, actorFor(mhmc), poll.ID, true)
	assert.ErrorIs(t, err, domain.ErrPollClosed)
}

func TestPollCreate_StudentRejected(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	student := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	pollSvc, _ := newPollServices(t, db)

	_, err := pollSvc.Create(context.Background(), actorFor(student), &services.CreatePollInput{
		Day: 3, Meal: "dinner", ProposedItems: "Paneer",
	})
	assert.ErrorIs(t, err, services.ErrNotPermitted)
}

func TestMenuUpsert_ReplacesSlot(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	mhmc := seedUser(t, db, "m1@test.local", "mhmc", &hostel.ID)
	_, menuSvc := newPollServices(t, db)
	ctx := context.Background()

	_, err := menuSvc.SetSlot(ctx, actorFor(mhmc), &services.SetMenuInput{
		HostelID: hostel.ID, Day: 1, Meal: models.MealBreakfast, Items: "Poha",
	})
	require.NoError(t, err)
	_, err = menuSvc.SetSlot(ctx, actorFor(mhmc), &services.SetMenuInput{
		HostelID: hostel.ID, Day: 1, Meal: models.MealBreakfast, Items: "Idli, Sambar",
	})
	require.NoError(t, err)

	week, err := menuSvc.Week(ctx, actorFor(mhmc), hostel.ID)
	require.NoError(t, err)
	require.Len(t, week, 1, "upsert must not duplicate the slot")
	assert.Equal(t, "Idli, Sambar", week[0].Items)
}
