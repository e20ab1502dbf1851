package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cliquemap/internal/models/db_models"
)

type MarkerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Marker, error)

	ListLinksByClique(ctx context.Context, cliqueID uuid.UUID) ([]db_models.UserMarker, error)
	FirstLinkByMarker(ctx context.Context, markerID uuid.UUID) (*db_models.UserMarker, error)
	CountLinksByUser(ctx context.Context, cliqueID, userID uuid.UUID) (int64, error)
	CountLinksSince(ctx context.Context, cliqueID uuid.UUID, sinceDate string) (int64, error)
}

type markerRepository struct {
	db *gorm.DB
}

func NewMarkerRepository(db *gorm.DB) MarkerRepository {
	return &markerRepository{db: db}
}

func (r *markerRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Marker, error) {
	var marker db_models.Marker
	err := r.db.WithContext(ctx).First(&marker, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &marker, nil
}

func (r *markerRepository) ListLinksByClique(ctx context.Context, cliqueID uuid.UUID) ([]db_models.UserMarker, error) {
	var links []db_models.UserMarker
	err := r.db.WithContext(ctx).Where("clique_id = ?", cliqueID).Find(&links).Error
	return links, err
}

func (r *markerRepository) FirstLinkByMarker(ctx context.Context, markerID uuid.UUID) (*db_models.UserMarker, error) {
	var link db_models.UserMarker
	err := r.db.WithContext(ctx).First(&link, "marker_id = ?", markerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *markerRepository) CountLinksByUser(ctx context.Context, cliqueID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.UserMarker{}).
		Where("clique_id = ? AND user_id = ?", cliqueID, userID).
		Count(&count).Error
	return count, err
}

func (r *markerRepository) CountLinksSince(ctx context.Context, cliqueID uuid.UUID, sinceDate string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.UserMarker{}).
		Where("clique_id = ? AND creation_date >= ?", cliqueID, sinceDate).
		Count(&count).Error
	return count, err
}
