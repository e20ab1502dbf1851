package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cliquemap/internal/infra"
	"cliquemap/internal/models/db_models"
	"cliquemap/internal/models/request_models"
	"cliquemap/internal/repositories"
	"cliquemap/internal/services"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.AutoMigrate(db))
	return db
}

type fixtures struct {
	t  *testing.T
	db *gorm.DB

	lifecycle services.LifecycleServiceInterface

	accounts      repositories.AccountRepository
	cliques       repositories.CliqueRepository
	markers       repositories.MarkerRepository
	reviews       repositories.ReviewRepository
	events        repositories.EventRepository
	notifications repositories.NotificationRepository
	bans          repositories.BanRepository
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()
	db := setupDB(t)
	return &fixtures{
		t:             t,
		db:            db,
		lifecycle:     services.NewLifecycleService(db),
		accounts:      repositories.NewAccountRepository(db),
		cliques:       repositories.NewCliqueRepository(db),
		markers:       repositories.NewMarkerRepository(db),
		reviews:       repositories.NewReviewRepository(db),
		events:        repositories.NewEventRepository(db),
		notifications: repositories.NewNotificationRepository(db),
		bans:          repositories.NewBanRepository(db),
	}
}

var userSeq int

func (f *fixtures) createUser(name string) *db_models.User {
	f.t.Helper()
	userSeq++
	user := &db_models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s%d@example.com", name, userSeq),
		PasswordHash: "x",
	}
	require.NoError(f.t, f.accounts.Insert(context.Background(), user))
	return user
}

func (f *fixtures) createClique(name string, admin uuid.UUID, joinedDate string) *db_models.Clique {
	f.t.Helper()
	clique := &db_models.Clique{
		Name:        name,
		Visibility:  db_models.VisibilityPublic,
		DateCreated: joinedDate,
		AdminID:     admin,
	}
	require.NoError(f.t, f.cliques.CreateWithFounder(context.Background(), clique, joinedDate))
	return clique
}

func (f *fixtures) addMember(cliqueID, userID uuid.UUID, joinedDate string) {
	f.t.Helper()
	require.NoError(f.t, f.cliques.CreateMembership(context.Background(), &db_models.CliqueUser{
		UserID:     userID,
		CliqueID:   cliqueID,
		JoinedDate: joinedDate,
	}))
}

func (f *fixtures) addMarker(creator, cliqueID uuid.UUID, title string, rating int) uuid.UUID {
	f.t.Helper()
	id, err := f.lifecycle.CreateMarker(context.Background(), creator, request_models.AddMarkerRequest{
		Latitude:   48.2,
		Longitude:  16.37,
		Title:      title,
		Commentary: "first impression",
		Rating:     rating,
		CliqueID:   cliqueID,
	})
	require.NoError(f.t, err)
	return id
}

func (f *fixtures) marker(id uuid.UUID) *db_models.Marker {
	f.t.Helper()
	m, err := f.markers.FindByID(context.Background(), id)
	require.NoError(f.t, err)
	return m
}

func (f *fixtures) ownReview(markerID, userID uuid.UUID) *db_models.Review {
	f.t.Helper()
	r, err := f.reviews.FindByMarkerAndUser(context.Background(), markerID, userID)
	require.NoError(f.t, err)
	return r
}

func (f *fixtures) clique(id uuid.UUID) *db_models.Clique {
	f.t.Helper()
	c, err := f.cliques.FindByID(context.Background(), id)
	require.NoError(f.t, err)
	return c
}
