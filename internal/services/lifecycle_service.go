package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cliquemap/internal/models/db_models"
	"cliquemap/internal/models/request_models"
	"cliquemap/pkg/utils"
)

// LifecycleServiceInterface owns every multi-entity cascade and every write
// to the marker review aggregates. Operations run as one transaction each;
// a failure mid-cascade leaves the store unchanged. Authorization is the
// caller's job: these operations trust their inputs.
type LifecycleServiceInterface interface {
	CreateMarker(ctx context.Context, actorID uuid.UUID, req request_models.AddMarkerRequest) (uuid.UUID, error)
	AddReview(ctx context.Context, actorID, markerID uuid.UUID, stars int, commentary string) error
	EditReview(ctx context.Context, reviewID uuid.UUID, stars int, commentary string) error
	RetractReview(ctx context.Context, reviewID uuid.UUID) error
	RemoveMember(ctx context.Context, cliqueID, userID uuid.UUID) error
	LeaveClique(ctx context.Context, cliqueID, userID uuid.UUID) (bool, error)
	DestroyClique(ctx context.Context, cliqueID uuid.UUID) error
	DestroyMarker(ctx context.Context, markerID uuid.UUID) error
	DestroyUser(ctx context.Context, userID uuid.UUID) error
}

type LifecycleService struct {
	db *gorm.DB
}

func NewLifecycleService(db *gorm.DB) LifecycleServiceInterface {
	return &LifecycleService{db: db}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// purgeStep is one ordered deletion inside a cascade. Expressing cascades as
// plans keeps the ordering contract visible and testable apart from the
// storage engine.
type purgeStep struct {
	name  string
	model interface{}
	query string
	args  []interface{}
}

// markerPurgePlan deletes everything referencing a marker, then the marker.
// Reviews go first so no review ever references a missing marker.
func markerPurgePlan(markerID uuid.UUID) []purgeStep {
	return []purgeStep{
		{"reviews", &db_models.Review{}, "marker_id = ?", []interface{}{markerID}},
		{"events", &db_models.Event{}, "marker_id = ?", []interface{}{markerID}},
		{"creation-links", &db_models.UserMarker{}, "marker_id = ?", []interface{}{markerID}},
		{"marker", &db_models.Marker{}, "id = ?", []interface{}{markerID}},
	}
}

// cliquePurgePlan removes the clique-owned record sets, then the clique
// itself. Markers are destroyed individually before this plan runs; the
// creation-links step doubles as a safety net for links those cascades
// already removed.
func cliquePurgePlan(cliqueID uuid.UUID) []purgeStep {
	return []purgeStep{
		{"notifications", &db_models.Notification{}, "clique_id = ?", []interface{}{cliqueID}},
		{"creation-links", &db_models.UserMarker{}, "clique_id = ?", []interface{}{cliqueID}},
		{"memberships", &db_models.CliqueUser{}, "clique_id = ?", []interface{}{cliqueID}},
		{"bans", &db_models.BannedUser{}, "clique_id = ?", []interface{}{cliqueID}},
		{"clique", &db_models.Clique{}, "id = ?", []interface{}{cliqueID}},
	}
}

func runPurgePlan(tx *gorm.DB, steps []purgeStep) error {
	for _, step := range steps {
		if err := tx.Where(step.query, step.args...).Delete(step.model).Error; err != nil {
			return fmt.Errorf("purge %s: %w", step.name, err)
		}
	}
	return nil
}

// CreateMarker inserts a marker together with its creation link and first
// review. A marker never exists without a review, so the aggregate starts at
// total=1, average=rating.
func (s *LifecycleService) CreateMarker(ctx context.Context, actorID uuid.UUID, req request_models.AddMarkerRequest) (uuid.UUID, error) {
	var markerID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		marker := db_models.Marker{
			Lat:           req.Latitude,
			Long:          req.Longitude,
			Description:   req.Title,
			TotalReviews:  1,
			AverageReview: float64(req.Rating),
		}
		if err := tx.Create(&marker).Error; err != nil {
			return err
		}
		markerID = marker.ID

		link := db_models.UserMarker{
			UserID:       actorID,
			MarkerID:     marker.ID,
			CliqueID:     req.CliqueID,
			CreationDate: utils.Today(),
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}

		firstReview := db_models.Review{
			Stars:        req.Rating,
			Commentary:   req.Commentary,
			MarkerID:     marker.ID,
			UserID:       actorID,
			CreationDate: utils.Today(),
		}
		return tx.Create(&firstReview).Error
	})
	return markerID, err
}

// AddReview appends a review to an existing marker with an O(1) incremental
// aggregate update.
func (s *LifecycleService) AddReview(ctx context.Context, actorID, markerID uuid.UUID, stars int, commentary string) error {
	if stars < 1 || stars > 5 {
		return utils.ErrInvalidRating
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var marker db_models.Marker
		if err := tx.First(&marker, "id = ?", markerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrMarkerNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&db_models.Review{}).
			Where("marker_id = ? AND user_id = ?", markerID, actorID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return utils.ErrAlreadyReviewed
		}

		newAvg := (marker.AverageReview*float64(marker.TotalReviews) + float64(stars)) / float64(marker.TotalReviews+1)
		marker.TotalReviews++
		marker.AverageReview = round2(newAvg)
		if err := tx.Save(&marker).Error; err != nil {
			return err
		}

		review := db_models.Review{
			Stars:        stars,
			Commentary:   commentary,
			MarkerID:     markerID,
			UserID:       actorID,
			CreationDate: utils.Today(),
		}
		return tx.Create(&review).Error
	})
}

// EditReview changes a review's stars and commentary; the aggregate average
// is adjusted at constant review count.
func (s *LifecycleService) EditReview(ctx context.Context, reviewID uuid.UUID, stars int, commentary string) error {
	if stars < 1 || stars > 5 {
		return utils.ErrInvalidRating
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review db_models.Review
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrReviewNotFound
			}
			return err
		}

		var marker db_models.Marker
		if err := tx.First(&marker, "id = ?", review.MarkerID).Error; err != nil {
			return err
		}

		total := float64(marker.TotalReviews)
		newAvg := (marker.AverageReview*total - float64(review.Stars) + float64(stars)) / total
		marker.AverageReview = round2(newAvg)
		if err := tx.Save(&marker).Error; err != nil {
			return err
		}

		review.Stars = stars
		review.Commentary = commentary
		return tx.Save(&review).Error
	})
}

func (s *LifecycleService) RetractReview(ctx context.Context, reviewID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return retractReview(tx, reviewID)
	})
}

// retractReview deletes a review and recomputes the marker aggregate from
// the remaining set (full recompute, not incremental, so rounding drift
// cannot accumulate). Deleting the last review deletes the marker and its
// events and creation links with it.
func retractReview(tx *gorm.DB, reviewID uuid.UUID) error {
	var review db_models.Review
	if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to clean up
		}
		return err
	}

	if err := tx.Delete(&db_models.Review{}, "id = ?", review.ID).Error; err != nil {
		return err
	}

	var remaining []db_models.Review
	if err := tx.Where("marker_id = ?", review.MarkerID).Find(&remaining).Error; err != nil {
		return err
	}

	if len(remaining) > 0 {
		sum := 0
		for _, r := range remaining {
			sum += r.Stars
		}
		return tx.Model(&db_models.Marker{}).
			Where("id = ?", review.MarkerID).
			Updates(map[string]interface{}{
				"total_reviews":  len(remaining),
				"average_review": round2(float64(sum) / float64(len(remaining))),
			}).Error
	}

	// last review gone: the marker is no longer viable
	plan := markerPurgePlan(review.MarkerID)
	return runPurgePlan(tx, plan[1:]) // reviews step already done
}

func (s *LifecycleService) DestroyMarker(ctx context.Context, markerID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return destroyMarker(tx, markerID)
	})
}

func destroyMarker(tx *gorm.DB, markerID uuid.UUID) error {
	return runPurgePlan(tx, markerPurgePlan(markerID))
}

func (s *LifecycleService) RemoveMember(ctx context.Context, cliqueID, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return removeMember(tx, cliqueID, userID)
	})
}

// removeMember severs a membership: the link, the member's reviews on the
// clique's markers (keeping aggregates correct), and the member's events in
// the clique. Markers the member created stay with the clique; creation
// links are only reassigned on full account deletion.
func removeMember(tx *gorm.DB, cliqueID, userID uuid.UUID) error {
	if err := tx.Delete(&db_models.CliqueUser{}, "clique_id = ? AND user_id = ?", cliqueID, userID).Error; err != nil {
		return err
	}

	var links []db_models.UserMarker
	if err := tx.Where("clique_id = ?", cliqueID).Find(&links).Error; err != nil {
		return err
	}
	markerIDs := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		markerIDs = append(markerIDs, l.MarkerID)
	}

	if len(markerIDs) > 0 {
		var reviews []db_models.Review
		if err := tx.Where("user_id = ? AND marker_id IN ?", userID, markerIDs).Find(&reviews).Error; err != nil {
			return err
		}
		for _, r := range reviews {
			if err := retractReview(tx, r.ID); err != nil {
				return err
			}
		}
	}

	return tx.Delete(&db_models.Event{}, "user_id = ? AND clique_id = ?", userID, cliqueID).Error
}

// LeaveClique removes the user from the clique. A departing admin hands the
// clique to the earliest-joined remaining member (who is notified); if no
// member remains the clique is destroyed outright. Returns false only when
// the clique does not exist.
func (s *LifecycleService) LeaveClique(ctx context.Context, cliqueID, userID uuid.UUID) (bool, error) {
	left := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		left, err = leaveClique(tx, cliqueID, userID)
		return err
	})
	return left, err
}

func leaveClique(tx *gorm.DB, cliqueID, userID uuid.UUID) (bool, error) {
	var clique db_models.Clique
	if err := tx.First(&clique, "id = ?", cliqueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if clique.AdminID == userID {
		newAdminID, found, err := earliestOtherMember(tx, cliqueID, userID)
		if err != nil {
			return false, err
		}
		if !found {
			// sole member leaving: the clique goes with them
			return true, destroyClique(tx, cliqueID)
		}
		if err := promoteAdmin(tx, &clique, newAdminID); err != nil {
			return false, err
		}
	}

	return true, removeMember(tx, cliqueID, userID)
}

// earliestOtherMember picks the longest-standing member other than userID:
// joined date first, insertion order as tie-break.
func earliestOtherMember(tx *gorm.DB, cliqueID, userID uuid.UUID) (uuid.UUID, bool, error) {
	var link db_models.CliqueUser
	err := tx.Where("clique_id = ? AND user_id <> ?", cliqueID, userID).
		Order("joined_date ASC, created_at ASC").
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return link.UserID, true, nil
}

func promoteAdmin(tx *gorm.DB, clique *db_models.Clique, newAdminID uuid.UUID) error {
	clique.AdminID = newAdminID
	if err := tx.Save(clique).Error; err != nil {
		return err
	}
	return tx.Create(&db_models.Notification{
		Type:     db_models.NotificationAdminReplacement,
		UserID:   newAdminID,
		CliqueID: clique.ID,
	}).Error
}

func (s *LifecycleService) DestroyClique(ctx context.Context, cliqueID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return destroyClique(tx, cliqueID)
	})
}

// destroyClique tears down every marker created in the clique, then the
// clique-owned record sets, then the clique row.
func destroyClique(tx *gorm.DB, cliqueID uuid.UUID) error {
	var links []db_models.UserMarker
	if err := tx.Where("clique_id = ?", cliqueID).Find(&links).Error; err != nil {
		return err
	}
	for _, l := range links {
		if err := destroyMarker(tx, l.MarkerID); err != nil {
			return err
		}
	}
	return runPurgePlan(tx, cliquePurgePlan(cliqueID))
}

func (s *LifecycleService) DestroyUser(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return destroyUser(tx, userID)
	})
}

// destroyUser is the full account teardown. Order matters: reviews are
// retracted while marker and clique context is intact, creation links are
// reassigned to the sentinel owner (never deleted), admin roles are handed
// over before the generic membership sweep, and only then do the blanket
// per-user deletes run.
func destroyUser(tx *gorm.DB, userID uuid.UUID) error {
	var user db_models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	var reviews []db_models.Review
	if err := tx.Where("user_id = ?", userID).Find(&reviews).Error; err != nil {
		return err
	}
	for _, r := range reviews {
		if err := retractReview(tx, r.ID); err != nil {
			return err
		}
	}

	// markers the user created outlive the account under the sentinel owner
	if err := tx.Model(&db_models.UserMarker{}).
		Where("user_id = ?", userID).
		Update("user_id", db_models.DeletedUserID).Error; err != nil {
		return err
	}

	var adminCliques []db_models.Clique
	if err := tx.Where("admin_id = ?", userID).Find(&adminCliques).Error; err != nil {
		return err
	}
	for i := range adminCliques {
		clique := adminCliques[i]
		newAdminID, found, err := earliestOtherMember(tx, clique.ID, userID)
		if err != nil {
			return err
		}
		if !found {
			if err := destroyClique(tx, clique.ID); err != nil {
				return err
			}
			continue
		}
		if err := promoteAdmin(tx, &clique, newAdminID); err != nil {
			return err
		}
	}

	var memberships []db_models.CliqueUser
	if err := tx.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return err
	}
	for _, link := range memberships {
		if err := tx.Delete(&db_models.Event{}, "clique_id = ? AND user_id = ?", link.CliqueID, userID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&db_models.CliqueUser{}, "clique_id = ? AND user_id = ?", link.CliqueID, userID).Error; err != nil {
			return err
		}
	}

	// blanket sweeps; creation links were reassigned above so that delete is
	// a no-op kept as a safety net
	if err := tx.Delete(&db_models.Event{}, "user_id = ?", userID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&db_models.UserMarker{}, "user_id = ?", userID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&db_models.Notification{}, "user_id = ?", userID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&db_models.BannedUser{}, "user_id = ?", userID).Error; err != nil {
		return err
	}

	return tx.Delete(&db_models.User{}, "id = ?", userID).Error
}
