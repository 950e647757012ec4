package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manualdesk/internal/models"
	"manualdesk/internal/repository"
	"manualdesk/internal/reqctx"
)

func adminCtx() context.Context {
	ctx := reqctx.WithUserID(context.Background(), "u1")
	return reqctx.WithClientIP(ctx, "10.0.0.1")
}

func TestSettings_InviteUser(t *testing.T) {
	svc := NewSettingsService(newSettingsRepo(t))
	fixed := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := adminCtx()

	u, err := svc.InviteUser(ctx, models.InviteUserRequest{Name: "Eve", Email: "eve@heavyind.com", Role: models.RoleBillingAdmin})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.ID, "u-"))
	assert.Equal(t, models.StatusInvited, u.Status)
	assert.Empty(t, u.PasswordHash)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	audit, err := svc.ListAudit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.AuditLogEntry{
		ID:        audit[0].ID,
		Action:    "Invite User",
		User:      "Alice Johnson",
		UserRole:  string(models.RoleSuperAdmin),
		Target:    "eve@heavyind.com",
		Timestamp: fixed,
		IPAddress: "10.0.0.1",
		Status:    "Success",
	}, audit[0])

	_, err = svc.InviteUser(ctx, models.InviteUserRequest{Name: "Dup", Email: "EVE@heavyind.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)
	audit, _ = svc.ListAudit(ctx, 1)
	assert.Equal(t, "Failed", audit[0].Status)
}

func TestSettings_InviteUserValidation(t *testing.T) {
	svc := NewSettingsService(newSettingsRepo(t))
	ctx := adminCtx()

	for _, req := range []models.InviteUserRequest{
		{Name: "", Email: "a@b.c"},
		{Name: "X", Email: "not-an-email"},
		{Name: "X", Email: "x@b.c", Role: "Janitor"},
	} {
		_, err := svc.InviteUser(ctx, req)
		assert.ErrorIs(t, err, ErrValidation, "%+v", req)
	}
}

func TestSettings_UpdateUser(t *testing.T) {
	svc := NewSettingsService(newSettingsRepo(t))
	ctx := adminCtx()

	role := models.RoleBillingAdmin
	status := models.StatusDeactivated
	u, err := svc.UpdateUser(ctx, "u2", models.UpdateUserRequest{Role: &role, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", u.Name)
	assert.Equal(t, role, u.Role)
	assert.Equal(t, status, u.Status)

	bad := models.UserRole("Owner")
	_, err = svc.UpdateUser(ctx, "u2", models.UpdateUserRequest{Role: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateUser(ctx, "ghost", models.UpdateUserRequest{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSettings_Branding(t *testing.T) {
	svc := NewSettingsService(newSettingsRepo(t))
	ctx := adminCtx()

	b, err := svc.GetBranding(ctx)
	require.NoError(t, err)

	b.PrimaryColor = "#abcdef"
	saved, err := svc.UpdateBranding(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "#abcdef", saved.PrimaryColor)

	for _, c := range []string{"abcdef", "#abc", "#GGGGGG", "#abcdef0"} {
		b.AccentColor = c
		_, err = svc.UpdateBranding(ctx, b)
		assert.ErrorIs(t, err, ErrValidation, c)
	}

	got, _ := svc.GetBranding(ctx)
	assert.Equal(t, "#415A77", got.AccentColor)
}

func TestSettings_RecordWithoutUser(t *testing.T) {
	svc := NewSettingsService(newSettingsRepo(t))
	svc.Record(context.Background(), "Add Machine", "EX-200", true)

	audit, err := svc.ListAudit(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, "Unknown", audit[0].User)
	assert.Equal(t, "-", audit[0].UserRole)
}
