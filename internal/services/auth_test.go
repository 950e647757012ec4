package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manualdesk/internal/models"
	"manualdesk/internal/repository"
	"manualdesk/internal/utils"
)

const testSecret = "test-secret"

func newSettingsRepo(t *testing.T) repository.SettingsRepo {
	t.Helper()
	users, err := SeedPasswords([]models.User{
		{ID: "u1", Name: "Alice Johnson", Email: "alice@heavyind.com", Role: models.RoleSuperAdmin, Status: models.StatusActive},
		{ID: "u2", Name: "Bob Smith", Email: "bob@heavyind.com", Role: models.RoleTechnician, Status: models.StatusActive},
		{ID: "u3", Name: "Diana Prince", Email: "diana@heavyind.com", Role: models.RoleReadOnly, Status: models.StatusInvited},
	}, "s3cret")
	require.NoError(t, err)
	return repository.NewSettingsRepo(repository.SettingsSeed{
		Users:    users,
		Plans:    []models.SubscriptionPlan{{ID: "p1", Name: "Basic"}},
		Invoices: []models.Invoice{{ID: "inv1", Number: "INV-1"}},
		Branding: models.BrandingConfig{ProductName: "Manuals", PrimaryColor: "#0D1B2A", AccentColor: "#415A77"},
	})
}

func TestSeedPasswordsKeepsExistingHash(t *testing.T) {
	users, err := SeedPasswords([]models.User{{ID: "a"}, {ID: "b", PasswordHash: "kept"}}, "pw")
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(users[0].PasswordHash, "pw"))
	assert.Equal(t, "kept", users[1].PasswordHash)
}

func TestAuth_Login(t *testing.T) {
	repo := newSettingsRepo(t)
	settings := NewSettingsService(repo)
	auth := NewAuthService(repo, settings, testSecret, time.Minute)
	ctx := context.Background()

	resp, err := auth.Login(ctx, models.LoginRequest{Email: " BOB@heavyind.com ", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "u2", resp.User.ID)
	assert.Equal(t, models.RoleTechnician, resp.Role)
	assert.NotEmpty(t, resp.User.LastLogin)

	claims, err := utils.ParseToken(testSecret, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u2", claims.UserID)
	assert.Equal(t, string(models.RoleTechnician), claims.Role)

	audit, err := settings.ListAudit(ctx, 1)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, "User Login", audit[0].Action)
	assert.Equal(t, "Bob Smith", audit[0].User)
}

func TestAuth_LoginRejected(t *testing.T) {
	repo := newSettingsRepo(t)
	settings := NewSettingsService(repo)
	auth := NewAuthService(repo, settings, testSecret, time.Minute)
	ctx := context.Background()

	cases := []models.LoginRequest{
		{Email: "bob@heavyind.com", Password: "wrong"},
		{Email: "nobody@heavyind.com", Password: "s3cret"},
		{Email: "diana@heavyind.com", Password: "s3cret"},
	}
	for _, c := range cases {
		_, err := auth.Login(ctx, c)
		assert.ErrorIs(t, err, ErrInvalidCredentials, c.Email)
	}

	audit, err := settings.ListAudit(ctx, 0)
	require.NoError(t, err)
	require.Len(t, audit, 3)
	for _, e := range audit {
		assert.Equal(t, "Failed Login", e.Action)
		assert.Equal(t, "Failed", e.Status)
	}
	assert.Equal(t, "Unknown", audit[1].User)
}
