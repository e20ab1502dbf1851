package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cliquemap/internal/models/db_models"
)

type CliqueRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Clique, error)
	CreateWithFounder(ctx context.Context, clique *db_models.Clique, joinedDate string) error
	Save(ctx context.Context, clique *db_models.Clique) error
	ListAll(ctx context.Context) ([]db_models.Clique, error)
	ListDiscoverable(ctx context.Context) ([]db_models.Clique, error)

	FindMembership(ctx context.Context, cliqueID, userID uuid.UUID) (*db_models.CliqueUser, error)
	CreateMembership(ctx context.Context, link *db_models.CliqueUser) error
	ListMembershipsByUser(ctx context.Context, userID uuid.UUID) ([]db_models.CliqueUser, error)
	ListMembershipsByClique(ctx context.Context, cliqueID uuid.UUID) ([]db_models.CliqueUser, error)
	CountMembers(ctx context.Context, cliqueID uuid.UUID) (int64, error)
	CountJoinedSince(ctx context.Context, cliqueID uuid.UUID, sinceDate string) (int64, error)
}

type cliqueRepository struct {
	db *gorm.DB
}

func NewCliqueRepository(db *gorm.DB) CliqueRepository {
	return &cliqueRepository{db: db}
}

func (r *cliqueRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Clique, error) {
	var clique db_models.Clique
	err := r.db.WithContext(ctx).First(&clique, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clique, nil
}

// CreateWithFounder inserts the clique together with its admin's membership
// so a clique never exists without at least one member.
func (r *cliqueRepository) CreateWithFounder(ctx context.Context, clique *db_models.Clique, joinedDate string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clique).Error; err != nil {
			return err
		}
		return tx.Create(&db_models.CliqueUser{
			UserID:     clique.AdminID,
			CliqueID:   clique.ID,
			JoinedDate: joinedDate,
		}).Error
	})
}

func (r *cliqueRepository) Save(ctx context.Context, clique *db_models.Clique) error {
	return r.db.WithContext(ctx).Save(clique).Error
}

func (r *cliqueRepository) ListAll(ctx context.Context) ([]db_models.Clique, error) {
	var cliques []db_models.Clique
	err := r.db.WithContext(ctx).Order("name").Find(&cliques).Error
	return cliques, err
}

// ListDiscoverable returns cliques that show up in search and autocomplete:
// Public and Protected, never Private.
func (r *cliqueRepository) ListDiscoverable(ctx context.Context) ([]db_models.Clique, error) {
	var cliques []db_models.Clique
	err := r.db.WithContext(ctx).
		Where("visibility IN ?", []string{db_models.VisibilityPublic, db_models.VisibilityProtected}).
		Find(&cliques).Error
	return cliques, err
}

func (r *cliqueRepository) FindMembership(ctx context.Context, cliqueID, userID uuid.UUID) (*db_models.CliqueUser, error) {
	var link db_models.CliqueUser
	err := r.db.WithContext(ctx).
		First(&link, "clique_id = ? AND user_id = ?", cliqueID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *cliqueRepository) CreateMembership(ctx context.Context, link *db_models.CliqueUser) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *cliqueRepository) ListMembershipsByUser(ctx context.Context, userID uuid.UUID) ([]db_models.CliqueUser, error) {
	var links []db_models.CliqueUser
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&links).Error
	return links, err
}

func (r *cliqueRepository) ListMembershipsByClique(ctx context.Context, cliqueID uuid.UUID) ([]db_models.CliqueUser, error) {
	var links []db_models.CliqueUser
	err := r.db.WithContext(ctx).Where("clique_id = ?", cliqueID).Find(&links).Error
	return links, err
}

func (r *cliqueRepository) CountMembers(ctx context.Context, cliqueID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.CliqueUser{}).
		Where("clique_id = ?", cliqueID).Count(&count).Error
	return count, err
}

func (r *cliqueRepository) CountJoinedSince(ctx context.Context, cliqueID uuid.UUID, sinceDate string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.CliqueUser{}).
		Where("clique_id = ? AND joined_date >= ?", cliqueID, sinceDate).
		Count(&count).Error
	return count, err
}
