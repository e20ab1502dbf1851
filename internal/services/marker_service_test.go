package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliquemap/internal/models/request_models"
	"cliquemap/internal/models/response_models"
	"cliquemap/internal/services"
	"cliquemap/pkg/utils"
)

func newMarkerService(f *fixtures) services.MarkerServiceInterface {
	return services.NewMarkerService(
		f.markers, f.reviews, f.events, f.cliques, f.accounts, f.lifecycle)
}

func TestAddMarkerRequiresMembership(t *testing.T) {
	f := newFixtures(t)
	svc := newMarkerService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	outsider := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")

	_, err := svc.AddMarker(ctx, outsider.ID, request_models.AddMarkerRequest{
		Latitude: 48.2, Longitude: 16.37, Title: "old oak", Rating: 4, CliqueID: clique.ID,
	})
	assert.ErrorIs(t, err, utils.ErrNotCliqueMember)
}

func TestRateMarkerRejectsSecondReview(t *testing.T) {
	f := newFixtures(t)
	svc := newMarkerService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")
	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)

	require.NoError(t, svc.RateMarker(ctx, other.ID, markerID, request_models.RateMarkerRequest{
		Rating: 3, Commentary: "fine",
	}))
	err := svc.RateMarker(ctx, other.ID, markerID, request_models.RateMarkerRequest{
		Rating: 5, Commentary: "changed my mind",
	})
	assert.ErrorIs(t, err, utils.ErrAlreadyReviewed)

	err = svc.RateMarker(ctx, other.ID, markerID, request_models.RateMarkerRequest{Rating: 9})
	assert.ErrorIs(t, err, utils.ErrInvalidRating)
}

func TestDeleteOwnReviewChecksOwnership(t *testing.T) {
	f := newFixtures(t)
	svc := newMarkerService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")
	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)

	review := f.ownReview(markerID, admin.ID)
	assert.ErrorIs(t, svc.DeleteOwnReview(ctx, other.ID, review.ID), utils.ErrUnauthorized)
	require.NoError(t, svc.DeleteOwnReview(ctx, admin.ID, review.ID))
}

func TestIsOnlyReviewFlagsLastOne(t *testing.T) {
	f := newFixtures(t)
	svc := newMarkerService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")
	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)

	review := f.ownReview(markerID, admin.ID)
	only, err := svc.IsOnlyReview(ctx, review.ID)
	require.NoError(t, err)
	assert.True(t, only)

	require.NoError(t, f.lifecycle.AddReview(ctx, other.ID, markerID, 3, "fine"))
	only, err = svc.IsOnlyReview(ctx, review.ID)
	require.NoError(t, err)
	assert.False(t, only)
}

func TestMemberMapSplitsOwnReviewAndColorsCliques(t *testing.T) {
	f := newFixtures(t)
	svc := newMarkerService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")
	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)
	require.NoError(t, f.lifecycle.AddReview(ctx, other.ID, markerID, 3, "fine"))

	features, err := svc.MemberMap(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, features, 1)

	feature := features[0]
	assert.Equal(t, "Feature", feature.Type)
	assert.Equal(t, [2]float64{16.37, 48.2}, feature.Geometry.Coordinates)

	props, ok := feature.Properties.(response_models.MarkerProperties)
	require.True(t, ok)
	assert.NotEmpty(t, props.Color)
	require.NotNil(t, props.OwnReview)
	assert.Equal(t, 4.0, props.OwnReview.Stars)
	require.Len(t, props.Reviews, 1)
	assert.Equal(t, other.ID.String(), props.Reviews[0].UserID)
}

func TestUserReviewsMapScopesToClique(t *testing.T) {
	f := newFixtures(t)
	svc := newMarkerService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	cliqueA := f.createClique("hikers", admin.ID, "2026-01-10")
	cliqueB := f.createClique("bikers", admin.ID, "2026-01-10")
	f.addMarker(admin.ID, cliqueA.ID, "old oak", 4)
	f.addMarker(admin.ID, cliqueB.ID, "steep hill", 5)

	features, err := svc.UserReviewsMap(ctx, admin.ID, cliqueA.ID)
	require.NoError(t, err)
	require.Len(t, features, 1)

	props, ok := features[0].Properties.(response_models.UserReviewProperties)
	require.True(t, ok)
	assert.Equal(t, "old oak", props.Description)
}
