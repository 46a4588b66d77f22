package services_test

import (
	"context"
	"testing"

	"hmc-messhub/internal/adapters/persistence/models"
	"hmc-messhub/internal/adapters/persistence/repositories"
	"hmc-messhub/internal/config"
	"hmc-messhub/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB) *services.AuthService {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "access-secret-for-tests",
			RefreshSecret:    "refresh-secret-for-tests",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return services.NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		repositories.NewAllowedEmailRepository(db),
		cfg,
	)
}

func allowEmail(t *testing.T, db *gorm.DB, email, role string, hostelID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.AllowedEmail{
		Email:    email,
		HostelID: hostelID,
		Role:     role,
	}).Error)
}

func TestSignup_RequiresAllowlistEntry(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.Signup(context.Background(), &services.SignupInput{
		Email:    "stranger@test.local",
		Password: "password123",
		FullName: "Total Stranger",
	})
	assert.ErrorIs(t, err, services.ErrEmailNotAllowed)
}

func TestSignup_RoleAndHostelComeFromAllowlist(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	allowEmail(t, db, "new.mhmc@test.local", "mhmc", hostel.ID)
	svc := newAuthService(t, db)

	resp, err := svc.Signup(context.Background(), &services.SignupInput{
		Email:    "New.MHMC@test.local", // case must not matter
		Password: "password123",
		FullName: "Mess Secretary",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "new.mhmc@test.local", resp.User.Email)
	assert.Equal(t, "mhmc", resp.User.Role)
	require.NotNil(t, resp.User.HostelID)
	assert.Equal(t, hostel.ID, *resp.User.HostelID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestSignup_DuplicateEmailRejected(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	allowEmail(t, db, "s1@test.local", "student", hostel.ID)
	seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	svc := newAuthService(t, db)

	_, err := svc.Signup(context.Background(), &services.SignupInput{
		Email:    "s1@test.local",
		Password: "password123",
		FullName: "Second Attempt",
	})
	assert.ErrorIs(t, err, services.ErrUserAlreadyExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	svc := newAuthService(t, db)

	_, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    "s1@test.local",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    "nobody@test.local",
		Password: "password123",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLogin_BlockedUserRejected(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	user := seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	require.NoError(t, db.Model(&models.Profile{}).
		Where("user_id = ?", user.ID).
		Update("is_blocked", true).Error)
	svc := newAuthService(t, db)

	_, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    "s1@test.local",
		Password: "password123",
	})
	assert.ErrorIs(t, err, services.ErrUserBlocked)
}

func TestRefreshToken_RotatesAndRevokesOld(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	svc := newAuthService(t, db)
	ctx := context.Background()

	login, err := svc.Login(ctx, &services.LoginInput{
		Email:    "s1@test.local",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The rotated-out token is revoked, not merely superseded
	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)
}

func TestRefreshToken_GarbageRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.RefreshToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestLogout_RevokesToken(t *testing.T) {
	db := newTestDB(t)
	hostel := seedHostel(t, db, "Aravali", "ARV", 4000, 140)
	seedUser(t, db, "s1@test.local", "student", &hostel.ID)
	svc := newAuthService(t, db)
	ctx := context.Background()

	login, err := svc.Login(ctx, &services.LoginInput{
		Email:    "s1@test.local",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)
}
