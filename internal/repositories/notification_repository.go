package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cliquemap/internal/models/db_models"
)

type NotificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Notification, error)
	FindByUserAndClique(ctx context.Context, userID, cliqueID uuid.UUID) (*db_models.Notification, error)
	FindTyped(ctx context.Context, userID, cliqueID uuid.UUID, t db_models.NotificationType) (*db_models.Notification, error)
	Create(ctx context.Context, note *db_models.Notification) error
	Save(ctx context.Context, note *db_models.Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPersonal(ctx context.Context, userID uuid.UUID) ([]db_models.Notification, error)
	ListJoinRequests(ctx context.Context) ([]db_models.Notification, error)
	ListReports(ctx context.Context) ([]db_models.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Notification, error) {
	var note db_models.Notification
	err := r.db.WithContext(ctx).First(&note, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *notificationRepository) FindByUserAndClique(ctx context.Context, userID, cliqueID uuid.UUID) (*db_models.Notification, error) {
	var note db_models.Notification
	err := r.db.WithContext(ctx).First(&note, "user_id = ? AND clique_id = ?", userID, cliqueID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *notificationRepository) FindTyped(ctx context.Context, userID, cliqueID uuid.UUID, t db_models.NotificationType) (*db_models.Notification, error) {
	var note db_models.Notification
	err := r.db.WithContext(ctx).
		First(&note, "user_id = ? AND clique_id = ? AND type = ?", userID, cliqueID, t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *notificationRepository) Create(ctx context.Context, note *db_models.Notification) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *notificationRepository) Save(ctx context.Context, note *db_models.Notification) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Notification{}, "id = ?", id).Error
}

// ListPersonal returns notifications addressed to the user, excluding join
// requests, which are routed to clique admins instead.
func (r *notificationRepository) ListPersonal(ctx context.Context, userID uuid.UUID) ([]db_models.Notification, error) {
	var notes []db_models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type <> ?", userID, db_models.NotificationJoinRequest).
		Find(&notes).Error
	return notes, err
}

func (r *notificationRepository) ListJoinRequests(ctx context.Context) ([]db_models.Notification, error) {
	var notes []db_models.Notification
	err := r.db.WithContext(ctx).
		Where("type = ?", db_models.NotificationJoinRequest).
		Find(&notes).Error
	return notes, err
}

func (r *notificationRepository) ListReports(ctx context.Context) ([]db_models.Notification, error) {
	var notes []db_models.Notification
	err := r.db.WithContext(ctx).
		Where("type LIKE ?", "% report").
		Find(&notes).Error
	return notes, err
}
