package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliquemap/internal/models/db_models"
	"cliquemap/internal/models/request_models"
	"cliquemap/internal/services"
	"cliquemap/pkg/utils"
)

const masterEmail = "master@example.com"

func newAccountService(f *fixtures) services.AccountServiceInterface {
	return services.NewAccountService(
		f.accounts, f.cliques, f.markers, f.reviews, f.events, f.bans,
		f.lifecycle, masterEmail)
}

func TestRegisterValidatesEmailAndPassword(t *testing.T) {
	f := newFixtures(t)
	svc := newAccountService(f)
	ctx := context.Background()

	_, err := svc.Register(ctx, request_models.SignUpRequest{
		Name: "Ana", Email: "not-an-email", Password: "Str0ng!pass",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidEmail)

	_, err = svc.Register(ctx, request_models.SignUpRequest{
		Name: "Ana", Email: "ana@example.com", Password: "weak",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidPassword)
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	f := newFixtures(t)
	svc := newAccountService(f)
	ctx := context.Background()

	created, err := svc.Register(ctx, request_models.SignUpRequest{
		Name: "Ana", Email: "Ana@Example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, utils.RoleUser, created.Role)

	_, err = svc.Register(ctx, request_models.SignUpRequest{
		Name: "Other", Email: "ana@example.com", Password: "Str0ng!pass",
	})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	logged, err := svc.Login(ctx, request_models.LoginRequest{
		Email: "ana@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, logged.Token)

	_, err = svc.Login(ctx, request_models.LoginRequest{
		Email: "ana@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLoginGrantsMasterRole(t *testing.T) {
	f := newFixtures(t)
	svc := newAccountService(f)
	ctx := context.Background()

	result, err := svc.Register(ctx, request_models.SignUpRequest{
		Name: "Root", Email: masterEmail, Password: "Str0ng!pass",
	})
	require.NoError(t, err)
	assert.Equal(t, utils.RoleMaster, result.Role)
}

func TestChangePasswordRules(t *testing.T) {
	f := newFixtures(t)
	svc := newAccountService(f)
	ctx := context.Background()

	created, err := svc.Register(ctx, request_models.SignUpRequest{
		Name: "Ana", Email: "ana@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)
	claims, err := utils.ValidateToken(created.Token)
	require.NoError(t, err)
	userID, err := uuid.Parse(claims.UserID)
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, userID, request_models.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "N3w!passwd", ConfirmPassword: "N3w!passwd",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, userID, request_models.ChangePasswordRequest{
		CurrentPassword: "Str0ng!pass", NewPassword: "N3w!passwd", ConfirmPassword: "other",
	})
	assert.ErrorIs(t, err, utils.ErrPasswordMismatch)

	err = svc.ChangePassword(ctx, userID, request_models.ChangePasswordRequest{
		CurrentPassword: "Str0ng!pass", NewPassword: "Str0ng!pass", ConfirmPassword: "Str0ng!pass",
	})
	assert.ErrorIs(t, err, utils.ErrPasswordUnchanged)

	err = svc.ChangePassword(ctx, userID, request_models.ChangePasswordRequest{
		CurrentPassword: "Str0ng!pass", NewPassword: "N3w!passwd", ConfirmPassword: "N3w!passwd",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "N3w!passwd"})
	require.NoError(t, err)
}

func TestOverviewCollectsMembershipsReviewsAndEvents(t *testing.T) {
	f := newFixtures(t)
	svc := newAccountService(f)
	ctx := context.Background()

	user := f.createUser("ana")
	clique := f.createClique("hikers", user.ID, "2026-01-10")
	markerID := f.addMarker(user.ID, clique.ID, "old oak", 4)
	require.NoError(t, f.events.Create(ctx, &db_models.Event{
		Date: "2099-05-01", Time: "18:00", Description: "picnic",
		MarkerID: markerID, UserID: user.ID, CliqueID: clique.ID,
	}))

	overview, err := svc.Overview(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.Name, overview.Profile.Name)
	require.Len(t, overview.Cliques, 1)
	assert.Equal(t, "Admin", overview.Cliques[0].Status)
	assert.EqualValues(t, 1, overview.Cliques[0].ReviewsAdded)
	require.Len(t, overview.Reviews, 1)
	assert.Equal(t, "hikers", overview.Reviews[0].CliqueName)
	require.Len(t, overview.Events, 1)
	assert.Equal(t, "picnic", overview.Events[0].Description)
}

func TestDeleteAccountNeedsConfirmation(t *testing.T) {
	f := newFixtures(t)
	svc := newAccountService(f)
	ctx := context.Background()

	user := f.createUser("ana")
	assert.ErrorIs(t, svc.DeleteAccount(ctx, user.ID, false), utils.ErrNotConfirmed)

	require.NoError(t, svc.DeleteAccount(ctx, user.ID, true))
	gone, err := f.accounts.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestListUsersIncludesBanRecords(t *testing.T) {
	f := newFixtures(t)
	svc := newAccountService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	banned := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	require.NoError(t, f.bans.Create(ctx, &db_models.BannedUser{
		UserID: banned.ID, CliqueID: clique.ID, Reason: "spam",
	}))

	dir, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, dir.Users, 2)
	require.Len(t, dir.Banned, 1)
	assert.Equal(t, banned.Name, dir.Banned[0].UserName)
	assert.Equal(t, clique.Name, dir.Banned[0].CliqueName)
	assert.Equal(t, admin.Name, dir.Banned[0].AdminName)
}
