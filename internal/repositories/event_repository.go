package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cliquemap/internal/models/db_models"
)

type EventRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Event, error)
	Create(ctx context.Context, event *db_models.Event) error
	Save(ctx context.Context, event *db_models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Event, error)
	ListByClique(ctx context.Context, cliqueID uuid.UUID) ([]db_models.Event, error)
	ListOwnByMarker(ctx context.Context, markerID, userID uuid.UUID) ([]db_models.Event, error)
	ListByMarker(ctx context.Context, markerID uuid.UUID) ([]db_models.Event, error)
	DeleteExpired(ctx context.Context, beforeDate string) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Event, error) {
	var event db_models.Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *db_models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Save(ctx context.Context, event *db_models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Event{}, "id = ?", id).Error
}

func (r *eventRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Event, error) {
	var events []db_models.Event
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&events).Error
	return events, err
}

func (r *eventRepository) ListByClique(ctx context.Context, cliqueID uuid.UUID) ([]db_models.Event, error) {
	var events []db_models.Event
	err := r.db.WithContext(ctx).Where("clique_id = ?", cliqueID).Find(&events).Error
	return events, err
}

func (r *eventRepository) ListOwnByMarker(ctx context.Context, markerID, userID uuid.UUID) ([]db_models.Event, error) {
	var events []db_models.Event
	err := r.db.WithContext(ctx).
		Where("marker_id = ? AND user_id = ?", markerID, userID).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) ListByMarker(ctx context.Context, markerID uuid.UUID) ([]db_models.Event, error) {
	var events []db_models.Event
	err := r.db.WithContext(ctx).Where("marker_id = ?", markerID).Find(&events).Error
	return events, err
}

// DeleteExpired removes events dated strictly before beforeDate. Dates are
// YYYY-MM-DD strings, so string comparison is date comparison.
func (r *eventRepository) DeleteExpired(ctx context.Context, beforeDate string) (int64, error) {
	res := r.db.WithContext(ctx).Where("date < ?", beforeDate).Delete(&db_models.Event{})
	return res.RowsAffected, res.Error
}
