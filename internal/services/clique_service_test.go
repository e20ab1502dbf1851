package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliquemap/internal/models/db_models"
	"cliquemap/internal/models/request_models"
	"cliquemap/internal/services"
	"cliquemap/pkg/utils"
)

func newCliqueService(f *fixtures) services.CliqueServiceInterface {
	return services.NewCliqueService(
		f.cliques, f.accounts, f.markers, f.reviews, f.events,
		f.notifications, f.bans, f.lifecycle)
}

func TestCreateCliqueRejectsUnknownVisibility(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)

	user := f.createUser("ana")
	_, err := svc.CreateClique(context.Background(), user.ID, request_models.CreateCliqueRequest{
		Name:       "hikers",
		Visibility: "Secret",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidVisibility)
}

func TestCreateCliqueMakesFounderAdminAndMember(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	user := f.createUser("ana")
	id, err := svc.CreateClique(ctx, user.ID, request_models.CreateCliqueRequest{
		Name:       "hikers",
		Visibility: db_models.VisibilityPublic,
	})
	require.NoError(t, err)

	clique := f.clique(id)
	require.NotNil(t, clique)
	assert.Equal(t, user.ID, clique.AdminID)

	member, err := f.cliques.FindMembership(ctx, id, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, member)
}

func TestJoinRejectsBannedAndDuplicate(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	banned := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")

	require.NoError(t, f.bans.Create(ctx, &db_models.BannedUser{
		UserID: banned.ID, CliqueID: clique.ID, Reason: "spam",
	}))
	assert.ErrorIs(t, svc.Join(ctx, banned.ID, clique.ID), utils.ErrBannedFromClique)

	assert.ErrorIs(t, svc.Join(ctx, admin.ID, clique.ID), utils.ErrAlreadyMember)
}

func TestJoinOnlyAllowedForPublicCliques(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	user := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	clique.Visibility = db_models.VisibilityPrivate
	require.NoError(t, f.cliques.Save(ctx, clique))

	assert.ErrorIs(t, svc.Join(ctx, user.ID, clique.ID), utils.ErrUnauthorized)
}

func TestSendInviteBranchesOnVisibilityAndSender(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	member := f.createUser("bob")
	invitee := f.createUser("cleo")

	cases := []struct {
		name       string
		visibility string
		sender     *db_models.User
		want       db_models.NotificationType
	}{
		{"public member invite", db_models.VisibilityPublic, member, db_models.NotificationInvitation},
		{"public admin invite", db_models.VisibilityPublic, admin, db_models.NotificationInvitation},
		{"protected member invite", db_models.VisibilityProtected, member, db_models.NotificationInvitationProtected},
		{"protected admin invite", db_models.VisibilityProtected, admin, db_models.NotificationInvitationAdmin},
		{"private admin invite", db_models.VisibilityPrivate, admin, db_models.NotificationInvitation},
		{"private member invite", db_models.VisibilityPrivate, member, db_models.NotificationInvitation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clique := f.createClique("hikers "+tc.name, admin.ID, "2026-01-10")
			clique.Visibility = tc.visibility
			require.NoError(t, f.cliques.Save(ctx, clique))
			f.addMember(clique.ID, member.ID, "2026-01-11")

			got, err := svc.SendInvite(ctx, tc.sender.ID, request_models.InviteRequest{
				Email:    invitee.Email,
				CliqueID: clique.ID,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSendInviteUpgradesPlainInviteToAdminInvite(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	member := f.createUser("bob")
	invitee := f.createUser("cleo")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, member.ID, "2026-01-11")

	first, err := svc.SendInvite(ctx, member.ID, request_models.InviteRequest{Email: invitee.Email, CliqueID: clique.ID})
	require.NoError(t, err)
	assert.Equal(t, db_models.NotificationInvitation, first)

	// Once the clique goes protected, the admin's invite outranks the
	// pending plain one.
	clique.Visibility = db_models.VisibilityProtected
	require.NoError(t, f.cliques.Save(ctx, clique))

	second, err := svc.SendInvite(ctx, admin.ID, request_models.InviteRequest{Email: invitee.Email, CliqueID: clique.ID})
	require.NoError(t, err)
	assert.Equal(t, db_models.NotificationInvitationAdmin, second)

	// Re-sending the same invite is rejected.
	_, err = svc.SendInvite(ctx, admin.ID, request_models.InviteRequest{Email: invitee.Email, CliqueID: clique.ID})
	assert.ErrorIs(t, err, utils.ErrAlreadyInvited)

	note, err := f.notifications.FindByUserAndClique(ctx, invitee.ID, clique.ID)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, db_models.NotificationInvitationAdmin, note.Type)
}

func TestSendInviteRejectsSelfAndMembers(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	member := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, member.ID, "2026-01-11")

	_, err := svc.SendInvite(ctx, admin.ID, request_models.InviteRequest{Email: admin.Email, CliqueID: clique.ID})
	assert.ErrorIs(t, err, utils.ErrSelfInvite)

	_, err = svc.SendInvite(ctx, admin.ID, request_models.InviteRequest{Email: member.Email, CliqueID: clique.ID})
	assert.ErrorIs(t, err, utils.ErrAlreadyMember)
}

func TestAcceptInviteJoinsAndClearsNotification(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	invitee := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")

	_, err := svc.SendInvite(ctx, admin.ID, request_models.InviteRequest{Email: invitee.Email, CliqueID: clique.ID})
	require.NoError(t, err)
	note, err := f.notifications.FindByUserAndClique(ctx, invitee.ID, clique.ID)
	require.NoError(t, err)
	require.NotNil(t, note)

	require.NoError(t, svc.AcceptInvite(ctx, invitee.ID, note.ID))

	member, err := f.cliques.FindMembership(ctx, clique.ID, invitee.ID)
	require.NoError(t, err)
	assert.NotNil(t, member)

	gone, err := f.notifications.FindByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAcceptInviteRejectsOtherUsersNotification(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	invitee := f.createUser("bob")
	stranger := f.createUser("cleo")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")

	_, err := svc.SendInvite(ctx, admin.ID, request_models.InviteRequest{Email: invitee.Email, CliqueID: clique.ID})
	require.NoError(t, err)
	note, err := f.notifications.FindByUserAndClique(ctx, invitee.ID, clique.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AcceptInvite(ctx, stranger.ID, note.ID), utils.ErrUnauthorized)
}

func TestJoinRequestLifecycle(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	user := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	clique.Visibility = db_models.VisibilityProtected
	require.NoError(t, f.cliques.Save(ctx, clique))

	require.NoError(t, svc.RequestJoin(ctx, user.ID, clique.ID))
	assert.ErrorIs(t, svc.RequestJoin(ctx, user.ID, clique.ID), utils.ErrAlreadyRequested)

	note, err := f.notifications.FindTyped(ctx, user.ID, clique.ID, db_models.NotificationJoinRequest)
	require.NoError(t, err)
	require.NotNil(t, note)

	require.NoError(t, svc.AcceptJoinRequest(ctx, admin.ID, note.ID))

	member, err := f.cliques.FindMembership(ctx, clique.ID, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, member)

	accepted, err := f.notifications.FindTyped(ctx, user.ID, clique.ID, db_models.NotificationAcceptInvitation)
	require.NoError(t, err)
	assert.NotNil(t, accepted)
}

func TestBanRemovesMemberAndBlocksRejoin(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	member := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, member.ID, "2026-01-11")

	require.NoError(t, svc.Ban(ctx, admin.ID, false, clique.ID, member.ID, "spam"))

	ban, err := f.bans.Find(ctx, clique.ID, member.ID)
	require.NoError(t, err)
	require.NotNil(t, ban)
	assert.Equal(t, "spam", ban.Reason)
	assert.Equal(t, utils.Today(), ban.BanDate)

	gone, err := f.cliques.FindMembership(ctx, clique.ID, member.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, svc.Join(ctx, member.ID, clique.ID), utils.ErrBannedFromClique)

	note, err := f.notifications.FindTyped(ctx, member.ID, clique.ID, db_models.NotificationBan)
	require.NoError(t, err)
	assert.NotNil(t, note)

	require.NoError(t, svc.Unban(ctx, admin.ID, false, clique.ID, member.ID))
	require.NoError(t, svc.Join(ctx, member.ID, clique.ID))
}

func TestBanRequiresAdminOrMaster(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	member := f.createUser("bob")
	victim := f.createUser("cleo")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, member.ID, "2026-01-11")
	f.addMember(clique.ID, victim.ID, "2026-01-12")

	assert.ErrorIs(t, svc.Ban(ctx, member.ID, false, clique.ID, victim.ID, ""), utils.ErrUnauthorized)
	require.NoError(t, svc.Ban(ctx, member.ID, true, clique.ID, victim.ID, ""))
}

func TestAdminInvitationTransfersOnAccept(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	member := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, member.ID, "2026-01-11")

	require.NoError(t, svc.SendAdminInvitation(ctx, admin.ID, clique.ID, member.ID))

	note, err := f.notifications.FindTyped(ctx, member.ID, clique.ID, db_models.NotificationInvitationBecomeAdmin)
	require.NoError(t, err)
	require.NotNil(t, note)

	require.NoError(t, svc.AcceptInvite(ctx, member.ID, note.ID))

	got := f.clique(clique.ID)
	require.NotNil(t, got)
	assert.Equal(t, member.ID, got.AdminID)
}

func TestSearchMatchesFuzzyAndRanksNameHits(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	f.createClique("Vienna Hikers", admin.ID, "2026-01-10")
	f.createClique("Runners", admin.ID, "2026-01-10")
	hidden := f.createClique("Hiking Crew", admin.ID, "2026-01-10")
	hidden.Visibility = db_models.VisibilityPrivate
	require.NoError(t, f.cliques.Save(ctx, hidden))

	results, err := svc.Search(ctx, admin.ID, "hike")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Vienna Hikers", results[0].Name)
	for _, r := range results {
		assert.NotEqual(t, "Hiking Crew", r.Name)
	}
}

func TestAutocompleteDedupesAndMatchesDescriptions(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	f.createClique("Hikers", admin.ID, "2026-01-10")
	f.createClique("Hikers", admin.ID, "2026-01-10")
	runners := f.createClique("Runners", admin.ID, "2026-01-10")
	runners.Description = "hiking on rest days"
	require.NoError(t, f.cliques.Save(ctx, runners))
	f.createClique("Swimmers", admin.ID, "2026-01-10")

	names, err := svc.Autocomplete(ctx, "hik")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Hikers", "Runners"}, names)
}

func TestDashboardSplitsAdminFromMembers(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	member := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, utils.Today())
	f.addMember(clique.ID, member.ID, utils.Today())
	f.addMarker(admin.ID, clique.ID, "old oak", 4)

	dash, err := svc.AdminDashboard(ctx, admin.ID, false, clique.ID, "week")
	require.NoError(t, err)

	assert.Equal(t, admin.ID.String(), dash.Admin.UserID)
	require.Len(t, dash.Members, 1)
	assert.Equal(t, member.ID.String(), dash.Members[0].UserID)
	assert.Len(t, dash.Labels, 7)
	assert.EqualValues(t, 2, dash.JoinedCount)
	assert.EqualValues(t, 1, dash.MarkerCount)
	assert.Equal(t, 1, dash.MarkersSeries[len(dash.MarkersSeries)-1])
}

func TestDashboardRequiresAdmin(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	member := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, member.ID, "2026-01-11")

	_, err := svc.AdminDashboard(ctx, member.ID, false, clique.ID, "week")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, err = svc.AdminDashboard(ctx, member.ID, true, clique.ID, "week")
	require.NoError(t, err)
}

func TestFeedCollectsUpdatesAndScoresMembers(t *testing.T) {
	f := newFixtures(t)
	svc := newCliqueService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	member := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, utils.Today())
	f.addMember(clique.ID, member.ID, utils.Today())

	markerID := f.addMarker(admin.ID, clique.ID, "viewpoint", 4)
	require.NoError(t, f.lifecycle.AddReview(ctx, member.ID, markerID, 3, "good spot for a picnic"))

	feed, err := svc.Feed(ctx, member.ID)
	require.NoError(t, err)

	require.Len(t, feed.Cliques, 1)
	assert.Equal(t, "Member", feed.Cliques[0].Status)
	assert.Equal(t, 1, feed.Cliques[0].MarkerCount)
	assert.EqualValues(t, 1, feed.Cliques[0].ReviewsAdded)

	// one marker update plus both fresh reviews, all dated today
	require.Len(t, feed.Updates, 3)
	for _, u := range feed.Updates {
		assert.Equal(t, utils.Today(), u.Date)
		assert.Equal(t, "hikers", u.CliqueName)
	}

	// admin: 2-word commentary scores 1, plus the created-marker bonus;
	// member: 5-word commentary scores 2
	require.Len(t, feed.Scoreboards, 1)
	ranking := feed.Scoreboards[0].Ranking
	require.Len(t, ranking, 2)
	assert.Equal(t, admin.ID.String(), ranking[0].UserID)
	assert.Equal(t, 3, ranking[0].Score)
	assert.Equal(t, member.ID.String(), ranking[1].UserID)
	assert.Equal(t, 2, ranking[1].Score)
	assert.Equal(t, 1, ranking[0].Rank)
	assert.Equal(t, 2, ranking[1].Rank)
}
