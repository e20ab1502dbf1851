package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliquemap/internal/models/db_models"
	"cliquemap/internal/models/request_models"
)

type purgeCounter struct {
	calls atomic.Int64
}

func (p *purgeCounter) Add(ctx context.Context, actorID, markerID, cliqueID uuid.UUID, req request_models.AddEventRequest) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (p *purgeCounter) ListOwnForMarker(ctx context.Context, actorID, markerID uuid.UUID) ([]db_models.Event, error) {
	return nil, nil
}

func (p *purgeCounter) Update(ctx context.Context, actorID uuid.UUID, isMaster bool, eventID uuid.UUID, req request_models.UpdateEventRequest) error {
	return nil
}

func (p *purgeCounter) Delete(ctx context.Context, actorID uuid.UUID, isMaster bool, eventID uuid.UUID) error {
	return nil
}

func (p *purgeCounter) PurgeExpired(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	return 0, nil
}

func TestJanitorSweepsOnStartAndOnTick(t *testing.T) {
	counter := &purgeCounter{}
	janitor := NewEventJanitor(counter, 10*time.Millisecond)

	janitor.Start()
	defer janitor.Stop()

	require.Eventually(t, func() bool {
		return counter.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestJanitorStopIsIdempotentBeforeStart(t *testing.T) {
	janitor := NewEventJanitor(&purgeCounter{}, time.Minute)
	janitor.Stop()
}

func TestJanitorStopTerminatesSweeps(t *testing.T) {
	counter := &purgeCounter{}
	janitor := NewEventJanitor(counter, 5*time.Millisecond)

	janitor.Start()
	require.Eventually(t, func() bool {
		return counter.calls.Load() >= 1
	}, time.Second, time.Millisecond)
	janitor.Stop()

	settled := counter.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, counter.calls.Load())
}
