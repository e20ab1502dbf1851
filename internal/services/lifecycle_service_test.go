package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliquemap/internal/models/db_models"
)

func TestCreateMarkerSeedsAggregates(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)

	marker := f.marker(markerID)
	require.NotNil(t, marker)
	assert.Equal(t, 1, marker.TotalReviews)
	assert.Equal(t, 4.0, marker.AverageReview)

	review := f.ownReview(markerID, admin.ID)
	require.NotNil(t, review)
	assert.Equal(t, 4, review.Stars)

	link, err := f.markers.FirstLinkByMarker(ctx, markerID)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, admin.ID, link.UserID)
}

func TestAddAndEditReviewKeepAverageConsistent(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")

	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)
	require.NoError(t, f.lifecycle.AddReview(ctx, other.ID, markerID, 2, "meh"))

	marker := f.marker(markerID)
	assert.Equal(t, 2, marker.TotalReviews)
	assert.Equal(t, 3.0, marker.AverageReview)

	review := f.ownReview(markerID, other.ID)
	require.NoError(t, f.lifecycle.EditReview(ctx, review.ID, 5, "grew on me"))

	marker = f.marker(markerID)
	assert.Equal(t, 2, marker.TotalReviews)
	assert.Equal(t, 4.5, marker.AverageReview)
}

func TestRetractReviewRecomputesFromRemaining(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	third := f.createUser("cleo")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")
	f.addMember(clique.ID, third.ID, "2026-01-12")

	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)
	require.NoError(t, f.lifecycle.AddReview(ctx, other.ID, markerID, 2, "meh"))
	require.NoError(t, f.lifecycle.AddReview(ctx, third.ID, markerID, 3, "fine"))

	review := f.ownReview(markerID, other.ID)
	require.NoError(t, f.lifecycle.RetractReview(ctx, review.ID))

	marker := f.marker(markerID)
	assert.Equal(t, 2, marker.TotalReviews)
	assert.Equal(t, 3.5, marker.AverageReview)

	gone := f.ownReview(markerID, other.ID)
	assert.Nil(t, gone)
}

func TestRetractLastReviewDestroysMarker(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)

	require.NoError(t, f.events.Create(ctx, &db_models.Event{
		Date: "2099-05-01", Time: "18:00", Description: "picnic",
		MarkerID: markerID, UserID: admin.ID, CliqueID: clique.ID,
	}))

	review := f.ownReview(markerID, admin.ID)
	require.NoError(t, f.lifecycle.RetractReview(ctx, review.ID))

	assert.Nil(t, f.marker(markerID))

	link, err := f.markers.FirstLinkByMarker(ctx, markerID)
	require.NoError(t, err)
	assert.Nil(t, link)

	events, err := f.events.ListByMarker(ctx, markerID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDestroyMarkerRemovesAllContent(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")

	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)
	require.NoError(t, f.lifecycle.AddReview(ctx, other.ID, markerID, 2, "meh"))
	require.NoError(t, f.events.Create(ctx, &db_models.Event{
		Date: "2099-05-01", Time: "18:00", Description: "picnic",
		MarkerID: markerID, UserID: other.ID, CliqueID: clique.ID,
	}))

	require.NoError(t, f.lifecycle.DestroyMarker(ctx, markerID))

	assert.Nil(t, f.marker(markerID))
	reviews, err := f.reviews.ListByMarker(ctx, markerID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
	events, err := f.events.ListByMarker(ctx, markerID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRemoveMemberRetractsReviewsAndEvents(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")

	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)
	require.NoError(t, f.lifecycle.AddReview(ctx, other.ID, markerID, 2, "meh"))
	require.NoError(t, f.events.Create(ctx, &db_models.Event{
		Date: "2099-05-01", Time: "18:00", Description: "picnic",
		MarkerID: markerID, UserID: other.ID, CliqueID: clique.ID,
	}))

	require.NoError(t, f.lifecycle.RemoveMember(ctx, clique.ID, other.ID))

	member, err := f.cliques.FindMembership(ctx, clique.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, member)

	marker := f.marker(markerID)
	require.NotNil(t, marker)
	assert.Equal(t, 1, marker.TotalReviews)
	assert.Equal(t, 4.0, marker.AverageReview)

	events, err := f.events.ListByUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRemoveMemberTakesSoleAuthoredMarkerAlong(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")

	markerID := f.addMarker(other.ID, clique.ID, "hidden bench", 5)
	require.NoError(t, f.lifecycle.RemoveMember(ctx, clique.ID, other.ID))

	assert.Nil(t, f.marker(markerID))
}

func TestNonAdminLeaveNeverChangesAdmin(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")

	found, err := f.lifecycle.LeaveClique(ctx, clique.ID, other.ID)
	require.NoError(t, err)
	assert.True(t, found)

	got := f.clique(clique.ID)
	require.NotNil(t, got)
	assert.Equal(t, admin.ID, got.AdminID)
}

func TestAdminLeavePromotesEarliestJoinedMember(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	late := f.createUser("bob")
	early := f.createUser("cleo")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, late.ID, "2026-02-01")
	f.addMember(clique.ID, early.ID, "2026-01-15")

	found, err := f.lifecycle.LeaveClique(ctx, clique.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, found)

	got := f.clique(clique.ID)
	require.NotNil(t, got)
	assert.Equal(t, early.ID, got.AdminID)

	note, err := f.notifications.FindTyped(ctx, early.ID, clique.ID, db_models.NotificationAdminReplacement)
	require.NoError(t, err)
	assert.NotNil(t, note)
}

func TestAdminLeaveTieBreaksByInsertionOrder(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	first := f.createUser("bob")
	second := f.createUser("cleo")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, first.ID, "2026-01-15")
	f.addMember(clique.ID, second.ID, "2026-01-15")

	_, err := f.lifecycle.LeaveClique(ctx, clique.ID, admin.ID)
	require.NoError(t, err)

	got := f.clique(clique.ID)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.AdminID)
}

func TestSoleMemberLeaveDestroysCliqueSilently(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)

	found, err := f.lifecycle.LeaveClique(ctx, clique.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, found)

	assert.Nil(t, f.clique(clique.ID))
	assert.Nil(t, f.marker(markerID))

	var count int64
	require.NoError(t, f.db.Model(&db_models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLeaveMissingCliqueReportsNotFound(t *testing.T) {
	f := newFixtures(t)

	user := f.createUser("ana")
	found, err := f.lifecycle.LeaveClique(context.Background(), uuid.New(), user.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDestroyCliquePurgesEverything(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")

	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)
	require.NoError(t, f.notifications.Create(ctx, &db_models.Notification{
		Type: db_models.NotificationKick, UserID: other.ID, CliqueID: clique.ID,
	}))
	require.NoError(t, f.bans.Create(ctx, &db_models.BannedUser{
		UserID: other.ID, CliqueID: clique.ID, Reason: "spam",
	}))

	require.NoError(t, f.lifecycle.DestroyClique(ctx, clique.ID))

	assert.Nil(t, f.clique(clique.ID))
	assert.Nil(t, f.marker(markerID))

	members, err := f.cliques.ListMembershipsByClique(ctx, clique.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	bans, err := f.bans.ListByClique(ctx, clique.ID)
	require.NoError(t, err)
	assert.Empty(t, bans)

	var count int64
	require.NoError(t, f.db.Model(&db_models.Notification{}).Where("clique_id = ?", clique.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDestroyUserReassignsMarkersWithOtherReviews(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	creator := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, creator.ID, "2026-01-11")

	markerID := f.addMarker(creator.ID, clique.ID, "old oak", 4)
	require.NoError(t, f.lifecycle.AddReview(ctx, admin.ID, markerID, 2, "meh"))

	require.NoError(t, f.lifecycle.DestroyUser(ctx, creator.ID))

	user, err := f.accounts.FindByID(ctx, creator.ID)
	require.NoError(t, err)
	assert.Nil(t, user)

	marker := f.marker(markerID)
	require.NotNil(t, marker)
	assert.Equal(t, 1, marker.TotalReviews)
	assert.Equal(t, 2.0, marker.AverageReview)

	link, err := f.markers.FirstLinkByMarker(ctx, markerID)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, db_models.DeletedUserID, link.UserID)
}

func TestDestroyUserDropsSoleReviewedMarkers(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	creator := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, creator.ID, "2026-01-11")

	markerID := f.addMarker(creator.ID, clique.ID, "hidden bench", 5)

	require.NoError(t, f.lifecycle.DestroyUser(ctx, creator.ID))

	assert.Nil(t, f.marker(markerID))
}

func TestDestroyAdminUserPromotesOrDestroysCliques(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	admin := f.createUser("ana")
	member := f.createUser("bob")

	shared := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(shared.ID, member.ID, "2026-01-11")
	solo := f.createClique("loners", admin.ID, "2026-01-10")

	require.NoError(t, f.lifecycle.DestroyUser(ctx, admin.ID))

	kept := f.clique(shared.ID)
	require.NotNil(t, kept)
	assert.Equal(t, member.ID, kept.AdminID)

	assert.Nil(t, f.clique(solo.ID))
}
