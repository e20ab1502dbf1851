package scheduler

import (
	"context"
	"log"
	"time"

	"cliquemap/internal/services"
)

// EventJanitor periodically drops events whose date has passed. It runs one
// sweep immediately on start so a restart never serves stale events.
type EventJanitor struct {
	events   services.EventServiceInterface
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewEventJanitor(events services.EventServiceInterface, interval time.Duration) *EventJanitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &EventJanitor{
		events:   events,
		interval: interval,
	}
}

func (j *EventJanitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.done = make(chan struct{})

	go func() {
		defer close(j.done)
		j.sweep(ctx)
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.sweep(ctx)
			}
		}
	}()
}

func (j *EventJanitor) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	<-j.done
}

func (j *EventJanitor) sweep(ctx context.Context) {
	purged, err := j.events.PurgeExpired(ctx)
	if err != nil {
		log.Printf("event janitor: purge failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("event janitor: purged %d expired events", purged)
	}
}
