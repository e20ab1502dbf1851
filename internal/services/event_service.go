package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cliquemap/internal/models/db_models"
	"cliquemap/internal/models/request_models"
	"cliquemap/internal/repositories"
	"cliquemap/pkg/utils"
)

type EventServiceInterface interface {
	Add(ctx context.Context, actorID, markerID, cliqueID uuid.UUID, req request_models.AddEventRequest) (uuid.UUID, error)
	ListOwnForMarker(ctx context.Context, actorID, markerID uuid.UUID) ([]db_models.Event, error)
	Update(ctx context.Context, actorID uuid.UUID, isMaster bool, eventID uuid.UUID, req request_models.UpdateEventRequest) error
	Delete(ctx context.Context, actorID uuid.UUID, isMaster bool, eventID uuid.UUID) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type EventService struct {
	eventRepo  repositories.EventRepository
	markerRepo repositories.MarkerRepository
	cliqueRepo repositories.CliqueRepository
}

func NewEventService(
	eventRepo repositories.EventRepository,
	markerRepo repositories.MarkerRepository,
	cliqueRepo repositories.CliqueRepository,
) EventServiceInterface {
	return &EventService{
		eventRepo:  eventRepo,
		markerRepo: markerRepo,
		cliqueRepo: cliqueRepo,
	}
}

func (s *EventService) Add(ctx context.Context, actorID, markerID, cliqueID uuid.UUID, req request_models.AddEventRequest) (uuid.UUID, error) {
	if req.Date == "" || req.Time == "" || req.Description == "" {
		return uuid.Nil, utils.ErrMissingEventFields
	}
	marker, err := s.markerRepo.FindByID(ctx, markerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup marker: %w", err)
	}
	if marker == nil {
		return uuid.Nil, utils.ErrMarkerNotFound
	}
	member, err := s.cliqueRepo.FindMembership(ctx, cliqueID, actorID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check membership: %w", err)
	}
	if member == nil {
		return uuid.Nil, utils.ErrNotCliqueMember
	}

	event := &db_models.Event{
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		MarkerID:    markerID,
		UserID:      actorID,
		CliqueID:    cliqueID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return uuid.Nil, fmt.Errorf("create event: %w", err)
	}
	return event.ID, nil
}

func (s *EventService) ListOwnForMarker(ctx context.Context, actorID, markerID uuid.UUID) ([]db_models.Event, error) {
	events, err := s.eventRepo.ListOwnByMarker(ctx, markerID, actorID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *EventService) Update(ctx context.Context, actorID uuid.UUID, isMaster bool, eventID uuid.UUID, req request_models.UpdateEventRequest) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("lookup event: %w", err)
	}
	if event == nil {
		return utils.ErrEventNotFound
	}
	if !isMaster && event.UserID != actorID {
		return utils.ErrUnauthorized
	}
	if req.Date == "" || req.Time == "" || req.Description == "" {
		return utils.ErrMissingEventFields
	}
	event.Date = req.Date
	event.Time = req.Time
	event.Description = req.Description
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

func (s *EventService) Delete(ctx context.Context, actorID uuid.UUID, isMaster bool, eventID uuid.UUID) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("lookup event: %w", err)
	}
	if event == nil {
		return utils.ErrEventNotFound
	}
	if !isMaster && event.UserID != actorID {
		return utils.ErrUnauthorized
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// PurgeExpired drops events dated strictly before today.
func (s *EventService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.eventRepo.DeleteExpired(ctx, utils.Today())
}
