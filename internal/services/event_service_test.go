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

func newEventService(f *fixtures) services.EventServiceInterface {
	return services.NewEventService(f.events, f.markers, f.cliques)
}

func TestAddEventChecksMarkerAndMembership(t *testing.T) {
	f := newFixtures(t)
	svc := newEventService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	outsider := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)

	_, err := svc.Add(ctx, outsider.ID, markerID, clique.ID, request_models.AddEventRequest{
		Date: "2099-05-01", Time: "18:00", Description: "picnic",
	})
	assert.ErrorIs(t, err, utils.ErrNotCliqueMember)

	_, err = svc.Add(ctx, admin.ID, markerID, clique.ID, request_models.AddEventRequest{
		Date: "2099-05-01", Time: "", Description: "picnic",
	})
	assert.ErrorIs(t, err, utils.ErrMissingEventFields)

	id, err := svc.Add(ctx, admin.ID, markerID, clique.ID, request_models.AddEventRequest{
		Date: "2099-05-01", Time: "18:00", Description: "picnic",
	})
	require.NoError(t, err)

	events, err := svc.ListOwnForMarker(ctx, admin.ID, markerID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
}

func TestUpdateAndDeleteEventEnforceOwnership(t *testing.T) {
	f := newFixtures(t)
	svc := newEventService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	other := f.createUser("bob")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	f.addMember(clique.ID, other.ID, "2026-01-11")
	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)

	id, err := svc.Add(ctx, admin.ID, markerID, clique.ID, request_models.AddEventRequest{
		Date: "2099-05-01", Time: "18:00", Description: "picnic",
	})
	require.NoError(t, err)

	err = svc.Update(ctx, other.ID, false, id, request_models.UpdateEventRequest{
		Date: "2099-05-02", Time: "19:00", Description: "moved",
	})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	require.NoError(t, svc.Update(ctx, admin.ID, false, id, request_models.UpdateEventRequest{
		Date: "2099-05-02", Time: "19:00", Description: "moved",
	}))

	assert.ErrorIs(t, svc.Delete(ctx, other.ID, false, id), utils.ErrUnauthorized)
	require.NoError(t, svc.Delete(ctx, other.ID, true, id))
}

func TestPurgeExpiredDropsOnlyPastEvents(t *testing.T) {
	f := newFixtures(t)
	svc := newEventService(f)
	ctx := context.Background()

	admin := f.createUser("ana")
	clique := f.createClique("hikers", admin.ID, "2026-01-10")
	markerID := f.addMarker(admin.ID, clique.ID, "old oak", 4)

	require.NoError(t, f.events.Create(ctx, &db_models.Event{
		Date: "2000-01-01", Time: "10:00", Description: "long gone",
		MarkerID: markerID, UserID: admin.ID, CliqueID: clique.ID,
	}))
	require.NoError(t, f.events.Create(ctx, &db_models.Event{
		Date: utils.Today(), Time: "10:00", Description: "today",
		MarkerID: markerID, UserID: admin.ID, CliqueID: clique.ID,
	}))
	require.NoError(t, f.events.Create(ctx, &db_models.Event{
		Date: "2099-01-01", Time: "10:00", Description: "future",
		MarkerID: markerID, UserID: admin.ID, CliqueID: clique.ID,
	}))

	purged, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	left, err := f.events.ListByUser(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, left, 2)
}
