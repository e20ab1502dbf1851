package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cliquemap/internal/models/db_models"
	"cliquemap/internal/models/request_models"
	"cliquemap/internal/models/response_models"
	"cliquemap/internal/repositories"
	"cliquemap/pkg/utils"
)

type MarkerServiceInterface interface {
	MemberMap(ctx context.Context, actorID uuid.UUID) ([]response_models.Feature, error)
	CliqueMap(ctx context.Context, cliqueID uuid.UUID) ([]response_models.Feature, error)
	UserReviewsMap(ctx context.Context, userID, cliqueID uuid.UUID) ([]response_models.Feature, error)
	UserEventsMap(ctx context.Context, userID, cliqueID uuid.UUID) ([]response_models.Feature, error)

	AddMarker(ctx context.Context, actorID uuid.UUID, req request_models.AddMarkerRequest) (uuid.UUID, error)
	RateMarker(ctx context.Context, actorID, markerID uuid.UUID, req request_models.RateMarkerRequest) error
	UpdateReview(ctx context.Context, actorID, markerID uuid.UUID, req request_models.UpdateReviewRequest) error
	DeleteOwnReview(ctx context.Context, actorID, reviewID uuid.UUID) error
	IsOnlyReview(ctx context.Context, reviewID uuid.UUID) (bool, error)

	RemoveMarker(ctx context.Context, markerID uuid.UUID) error
	RemoveReview(ctx context.Context, reviewID uuid.UUID) error
}

type MarkerService struct {
	markerRepo  repositories.MarkerRepository
	reviewRepo  repositories.ReviewRepository
	eventRepo   repositories.EventRepository
	cliqueRepo  repositories.CliqueRepository
	accountRepo repositories.AccountRepository
	lifecycle   LifecycleServiceInterface
}

func NewMarkerService(
	markerRepo repositories.MarkerRepository,
	reviewRepo repositories.ReviewRepository,
	eventRepo repositories.EventRepository,
	cliqueRepo repositories.CliqueRepository,
	accountRepo repositories.AccountRepository,
	lifecycle LifecycleServiceInterface,
) MarkerServiceInterface {
	return &MarkerService{
		markerRepo:  markerRepo,
		reviewRepo:  reviewRepo,
		eventRepo:   eventRepo,
		cliqueRepo:  cliqueRepo,
		accountRepo: accountRepo,
		lifecycle:   lifecycle,
	}
}

func (s *MarkerService) userInfo(ctx context.Context, id uuid.UUID) (name, picture string) {
	if id == db_models.DeletedUserID {
		return "Deleted user", db_models.DefaultPicture
	}
	u, err := s.accountRepo.FindByID(ctx, id)
	if err != nil || u == nil {
		return "Deleted user", db_models.DefaultPicture
	}
	return u.Name, u.Picture
}

func (s *MarkerService) userName(ctx context.Context, id uuid.UUID) string {
	name, _ := s.userInfo(ctx, id)
	return name
}

func (s *MarkerService) reviewViews(ctx context.Context, reviews []db_models.Review) []response_models.ReviewView {
	views := make([]response_models.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		name, picture := s.userInfo(ctx, r.UserID)
		views = append(views, response_models.ReviewView{
			ReviewID:   r.ID.String(),
			UserID:     r.UserID.String(),
			UserName:   name,
			Picture:    picture,
			Stars:      float64(r.Stars),
			Commentary: r.Commentary,
			Date:       r.CreationDate,
		})
	}
	return views
}

func (s *MarkerService) eventViews(ctx context.Context, events []db_models.Event) []response_models.EventView {
	views := make([]response_models.EventView, 0, len(events))
	for _, e := range events {
		views = append(views, response_models.EventView{
			EventID:     e.ID.String(),
			Date:        e.Date,
			Time:        e.Time,
			Description: e.Description,
			UserID:      e.UserID.String(),
			UserName:    s.userName(ctx, e.UserID),
		})
	}
	return views
}

// MemberMap builds one GeoJSON layer over every clique the user belongs to,
// with a stable per-clique color and the user's own review split from the
// rest so the client can render the editable card.
func (s *MarkerService) MemberMap(ctx context.Context, actorID uuid.UUID) ([]response_models.Feature, error) {
	memberships, err := s.cliqueRepo.ListMembershipsByUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	cliqueIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		cliqueIDs = append(cliqueIDs, m.CliqueID)
	}
	colors := utils.AssignCliqueColors(cliqueIDs)

	features := []response_models.Feature{}
	for _, cliqueID := range cliqueIDs {
		clique, err := s.cliqueRepo.FindByID(ctx, cliqueID)
		if err != nil {
			return nil, fmt.Errorf("lookup clique: %w", err)
		}
		if clique == nil {
			continue
		}
		links, err := s.markerRepo.ListLinksByClique(ctx, cliqueID)
		if err != nil {
			return nil, fmt.Errorf("list marker links: %w", err)
		}
		seen := map[uuid.UUID]struct{}{}
		for _, l := range links {
			if _, ok := seen[l.MarkerID]; ok {
				continue
			}
			seen[l.MarkerID] = struct{}{}

			marker, err := s.markerRepo.FindByID(ctx, l.MarkerID)
			if err != nil {
				return nil, fmt.Errorf("lookup marker: %w", err)
			}
			if marker == nil {
				continue
			}
			others, err := s.reviewRepo.ListByMarkerExcludingUser(ctx, marker.ID, actorID)
			if err != nil {
				return nil, fmt.Errorf("list reviews: %w", err)
			}
			own, err := s.reviewRepo.FindByMarkerAndUser(ctx, marker.ID, actorID)
			if err != nil {
				return nil, fmt.Errorf("lookup review: %w", err)
			}
			events, err := s.eventRepo.ListByMarker(ctx, marker.ID)
			if err != nil {
				return nil, fmt.Errorf("list events: %w", err)
			}
			ownEvents := make([]db_models.Event, 0, len(events))
			otherEvents := make([]db_models.Event, 0, len(events))
			for _, e := range events {
				if e.UserID == actorID {
					ownEvents = append(ownEvents, e)
				} else {
					otherEvents = append(otherEvents, e)
				}
			}

			props := response_models.MarkerProperties{
				MarkerID:      marker.ID.String(),
				Description:   marker.Description,
				AverageReview: marker.AverageReview,
				TotalReviews:  marker.TotalReviews,
				CliqueID:      clique.ID.String(),
				CliqueName:    clique.Name,
				Color:         colors[cliqueID],
				Reviews:       s.reviewViews(ctx, others),
				OwnEvents:     s.eventViews(ctx, ownEvents),
				Events:        s.eventViews(ctx, otherEvents),
			}
			if own != nil {
				v := s.reviewViews(ctx, []db_models.Review{*own})
				props.OwnReview = &v[0]
			}
			features = append(features, response_models.PointFeature(marker.Lat, marker.Long, props))
		}
	}
	return features, nil
}

func (s *MarkerService) CliqueMap(ctx context.Context, cliqueID uuid.UUID) ([]response_models.Feature, error) {
	clique, err := s.cliqueRepo.FindByID(ctx, cliqueID)
	if err != nil {
		return nil, fmt.Errorf("lookup clique: %w", err)
	}
	if clique == nil {
		return nil, utils.ErrCliqueNotFound
	}

	links, err := s.markerRepo.ListLinksByClique(ctx, cliqueID)
	if err != nil {
		return nil, fmt.Errorf("list marker links: %w", err)
	}
	features := []response_models.Feature{}
	seen := map[uuid.UUID]struct{}{}
	for _, l := range links {
		if _, ok := seen[l.MarkerID]; ok {
			continue
		}
		seen[l.MarkerID] = struct{}{}

		marker, err := s.markerRepo.FindByID(ctx, l.MarkerID)
		if err != nil {
			return nil, fmt.Errorf("lookup marker: %w", err)
		}
		if marker == nil {
			continue
		}
		reviews, err := s.reviewRepo.ListByMarker(ctx, marker.ID)
		if err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}
		events, err := s.eventRepo.ListByMarker(ctx, marker.ID)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		features = append(features, response_models.PointFeature(marker.Lat, marker.Long, response_models.CliqueMarkerProperties{
			MarkerID:      marker.ID.String(),
			Description:   marker.Description,
			AverageReview: marker.AverageReview,
			TotalReviews:  marker.TotalReviews,
			CreatorID:     l.UserID.String(),
			CreatorName:   s.userName(ctx, l.UserID),
			Reviews:       s.reviewViews(ctx, reviews),
			Events:        s.eventViews(ctx, events),
		}))
	}
	return features, nil
}

func (s *MarkerService) UserReviewsMap(ctx context.Context, userID, cliqueID uuid.UUID) ([]response_models.Feature, error) {
	markerIDs, err := s.cliqueMarkerIDs(ctx, cliqueID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByUserAndMarkers(ctx, userID, markerIDs)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	features := []response_models.Feature{}
	for _, r := range reviews {
		marker, err := s.markerRepo.FindByID(ctx, r.MarkerID)
		if err != nil {
			return nil, fmt.Errorf("lookup marker: %w", err)
		}
		if marker == nil {
			continue
		}
		features = append(features, response_models.PointFeature(marker.Lat, marker.Long, response_models.UserReviewProperties{
			MarkerID:    marker.ID.String(),
			Description: marker.Description,
			IsCreator:   s.isCreator(ctx, marker.ID, userID),
			ReviewID:    r.ID.String(),
			Stars:       float64(r.Stars),
			Commentary:  r.Commentary,
			Date:        r.CreationDate,
		}))
	}
	return features, nil
}

func (s *MarkerService) UserEventsMap(ctx context.Context, userID, cliqueID uuid.UUID) ([]response_models.Feature, error) {
	markerIDs, err := s.cliqueMarkerIDs(ctx, cliqueID)
	if err != nil {
		return nil, err
	}
	features := []response_models.Feature{}
	for _, markerID := range markerIDs {
		events, err := s.eventRepo.ListOwnByMarker(ctx, markerID, userID)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		if len(events) == 0 {
			continue
		}
		marker, err := s.markerRepo.FindByID(ctx, markerID)
		if err != nil {
			return nil, fmt.Errorf("lookup marker: %w", err)
		}
		if marker == nil {
			continue
		}
		features = append(features, response_models.PointFeature(marker.Lat, marker.Long, response_models.UserEventProperties{
			MarkerID:    marker.ID.String(),
			Description: marker.Description,
			IsCreator:   s.isCreator(ctx, markerID, userID),
			Events:      s.eventViews(ctx, events),
		}))
	}
	return features, nil
}

func (s *MarkerService) isCreator(ctx context.Context, markerID, userID uuid.UUID) bool {
	link, err := s.markerRepo.FirstLinkByMarker(ctx, markerID)
	return err == nil && link != nil && link.UserID == userID
}

func (s *MarkerService) cliqueMarkerIDs(ctx context.Context, cliqueID uuid.UUID) ([]uuid.UUID, error) {
	links, err := s.markerRepo.ListLinksByClique(ctx, cliqueID)
	if err != nil {
		return nil, fmt.Errorf("list marker links: %w", err)
	}
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		if _, ok := seen[l.MarkerID]; ok {
			continue
		}
		seen[l.MarkerID] = struct{}{}
		ids = append(ids, l.MarkerID)
	}
	return ids, nil
}

func (s *MarkerService) AddMarker(ctx context.Context, actorID uuid.UUID, req request_models.AddMarkerRequest) (uuid.UUID, error) {
	member, err := s.cliqueRepo.FindMembership(ctx, req.CliqueID, actorID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check membership: %w", err)
	}
	if member == nil {
		return uuid.Nil, utils.ErrNotCliqueMember
	}
	if req.Rating < 1 || req.Rating > 5 {
		return uuid.Nil, utils.ErrInvalidRating
	}
	return s.lifecycle.CreateMarker(ctx, actorID, req)
}

func (s *MarkerService) RateMarker(ctx context.Context, actorID, markerID uuid.UUID, req request_models.RateMarkerRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return utils.ErrInvalidRating
	}
	existing, err := s.reviewRepo.FindByMarkerAndUser(ctx, markerID, actorID)
	if err != nil {
		return fmt.Errorf("lookup review: %w", err)
	}
	if existing != nil {
		return utils.ErrAlreadyReviewed
	}
	return s.lifecycle.AddReview(ctx, actorID, markerID, req.Rating, req.Commentary)
}

func (s *MarkerService) UpdateReview(ctx context.Context, actorID, markerID uuid.UUID, req request_models.UpdateReviewRequest) error {
	if req.Stars < 1 || req.Stars > 5 {
		return utils.ErrInvalidRating
	}
	review, err := s.reviewRepo.FindByMarkerAndUser(ctx, markerID, actorID)
	if err != nil {
		return fmt.Errorf("lookup review: %w", err)
	}
	if review == nil {
		return utils.ErrReviewNotFound
	}
	return s.lifecycle.EditReview(ctx, review.ID, req.Stars, req.Commentary)
}

func (s *MarkerService) DeleteOwnReview(ctx context.Context, actorID, reviewID uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("lookup review: %w", err)
	}
	if review == nil {
		return utils.ErrReviewNotFound
	}
	if review.UserID != actorID {
		return utils.ErrUnauthorized
	}
	return s.lifecycle.RetractReview(ctx, reviewID)
}

// IsOnlyReview lets the client warn that deleting the last review removes
// the marker itself.
func (s *MarkerService) IsOnlyReview(ctx context.Context, reviewID uuid.UUID) (bool, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return false, fmt.Errorf("lookup review: %w", err)
	}
	if review == nil {
		return false, utils.ErrReviewNotFound
	}
	marker, err := s.markerRepo.FindByID(ctx, review.MarkerID)
	if err != nil {
		return false, fmt.Errorf("lookup marker: %w", err)
	}
	if marker == nil {
		return false, utils.ErrMarkerNotFound
	}
	return marker.TotalReviews == 1, nil
}

func (s *MarkerService) RemoveMarker(ctx context.Context, markerID uuid.UUID) error {
	marker, err := s.markerRepo.FindByID(ctx, markerID)
	if err != nil {
		return fmt.Errorf("lookup marker: %w", err)
	}
	if marker == nil {
		return utils.ErrMarkerNotFound
	}
	return s.lifecycle.DestroyMarker(ctx, markerID)
}

func (s *MarkerService) RemoveReview(ctx context.Context, reviewID uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("lookup review: %w", err)
	}
	if review == nil {
		return utils.ErrReviewNotFound
	}
	return s.lifecycle.RetractReview(ctx, reviewID)
}
