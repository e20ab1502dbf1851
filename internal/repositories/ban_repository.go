package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cliquemap/internal/models/db_models"
)

type BanRepository interface {
	Find(ctx context.Context, cliqueID, userID uuid.UUID) (*db_models.BannedUser, error)
	Create(ctx context.Context, ban *db_models.BannedUser) error
	Delete(ctx context.Context, cliqueID, userID uuid.UUID) error
	ListByClique(ctx context.Context, cliqueID uuid.UUID) ([]db_models.BannedUser, error)
	ListAll(ctx context.Context) ([]db_models.BannedUser, error)
}

type banRepository struct {
	db *gorm.DB
}

func NewBanRepository(db *gorm.DB) BanRepository {
	return &banRepository{db: db}
}

func (r *banRepository) Find(ctx context.Context, cliqueID, userID uuid.UUID) (*db_models.BannedUser, error) {
	var ban db_models.BannedUser
	err := r.db.WithContext(ctx).First(&ban, "clique_id = ? AND user_id = ?", cliqueID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ban, nil
}

func (r *banRepository) Create(ctx context.Context, ban *db_models.BannedUser) error {
	return r.db.WithContext(ctx).Create(ban).Error
}

func (r *banRepository) Delete(ctx context.Context, cliqueID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&db_models.BannedUser{}, "clique_id = ? AND user_id = ?", cliqueID, userID).Error
}

func (r *banRepository) ListByClique(ctx context.Context, cliqueID uuid.UUID) ([]db_models.BannedUser, error) {
	var bans []db_models.BannedUser
	err := r.db.WithContext(ctx).Where("clique_id = ?", cliqueID).Find(&bans).Error
	return bans, err
}

func (r *banRepository) ListAll(ctx context.Context) ([]db_models.BannedUser, error) {
	var bans []db_models.BannedUser
	err := r.db.WithContext(ctx).Find(&bans).Error
	return bans, err
}
