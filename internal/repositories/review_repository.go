package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cliquemap/internal/models/db_models"
)

type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Review, error)
	FindByMarkerAndUser(ctx context.Context, markerID, userID uuid.UUID) (*db_models.Review, error)
	ListByMarker(ctx context.Context, markerID uuid.UUID) ([]db_models.Review, error)
	ListByMarkerExcludingUser(ctx context.Context, markerID, userID uuid.UUID) ([]db_models.Review, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Review, error)
	ListByUserAndMarkers(ctx context.Context, userID uuid.UUID, markerIDs []uuid.UUID) ([]db_models.Review, error)
	ListByMarkers(ctx context.Context, markerIDs []uuid.UUID) ([]db_models.Review, error)
	ListRecentByMarkers(ctx context.Context, markerIDs []uuid.UUID, sinceDate string) ([]db_models.Review, error)
	CountByUserAndMarkers(ctx context.Context, userID uuid.UUID, markerIDs []uuid.UUID) (int64, error)
	CountRecentByMarkers(ctx context.Context, markerIDs []uuid.UUID, sinceDate string) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Review, error) {
	var review db_models.Review
	err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByMarkerAndUser(ctx context.Context, markerID, userID uuid.UUID) (*db_models.Review, error) {
	var review db_models.Review
	err := r.db.WithContext(ctx).First(&review, "marker_id = ? AND user_id = ?", markerID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByMarker(ctx context.Context, markerID uuid.UUID) ([]db_models.Review, error) {
	var reviews []db_models.Review
	err := r.db.WithContext(ctx).Where("marker_id = ?", markerID).Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListByMarkerExcludingUser(ctx context.Context, markerID, userID uuid.UUID) ([]db_models.Review, error) {
	var reviews []db_models.Review
	err := r.db.WithContext(ctx).
		Where("marker_id = ? AND user_id <> ?", markerID, userID).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Review, error) {
	var reviews []db_models.Review
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListByUserAndMarkers(ctx context.Context, userID uuid.UUID, markerIDs []uuid.UUID) ([]db_models.Review, error) {
	if len(markerIDs) == 0 {
		return nil, nil
	}
	var reviews []db_models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND marker_id IN ?", userID, markerIDs).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListByMarkers(ctx context.Context, markerIDs []uuid.UUID) ([]db_models.Review, error) {
	if len(markerIDs) == 0 {
		return nil, nil
	}
	var reviews []db_models.Review
	err := r.db.WithContext(ctx).Where("marker_id IN ?", markerIDs).Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListRecentByMarkers(ctx context.Context, markerIDs []uuid.UUID, sinceDate string) ([]db_models.Review, error) {
	if len(markerIDs) == 0 {
		return nil, nil
	}
	var reviews []db_models.Review
	err := r.db.WithContext(ctx).
		Where("marker_id IN ? AND creation_date >= ?", markerIDs, sinceDate).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) CountByUserAndMarkers(ctx context.Context, userID uuid.UUID, markerIDs []uuid.UUID) (int64, error) {
	if len(markerIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Review{}).
		Where("user_id = ? AND marker_id IN ?", userID, markerIDs).
		Count(&count).Error
	return count, err
}

func (r *reviewRepository) CountRecentByMarkers(ctx context.Context, markerIDs []uuid.UUID, sinceDate string) (int64, error) {
	if len(markerIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Review{}).
		Where("marker_id IN ? AND creation_date >= ?", markerIDs, sinceDate).
		Count(&count).Error
	return count, err
}
