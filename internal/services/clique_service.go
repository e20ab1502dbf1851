package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"cliquemap/internal/models/db_models"
	"cliquemap/internal/models/request_models"
	"cliquemap/internal/models/response_models"
	"cliquemap/internal/repositories"
	"cliquemap/pkg/utils"
)

const (
	searchThreshold = 60
	feedWindowDays  = 7
	feedUpdateLimit = 20
	banReasonLimit  = 100
	markerBonus     = 2
)

type CliqueServiceInterface interface {
	CreateClique(ctx context.Context, actorID uuid.UUID, req request_models.CreateCliqueRequest) (uuid.UUID, error)
	Feed(ctx context.Context, actorID uuid.UUID) (*response_models.Feed, error)
	Search(ctx context.Context, actorID uuid.UUID, query string) ([]response_models.SearchResult, error)
	Autocomplete(ctx context.Context, term string) ([]string, error)

	Join(ctx context.Context, actorID, cliqueID uuid.UUID) error
	RequestJoin(ctx context.Context, actorID, cliqueID uuid.UUID) error
	SendInvite(ctx context.Context, actorID uuid.UUID, req request_models.InviteRequest) (db_models.NotificationType, error)
	AcceptInvite(ctx context.Context, actorID, noteID uuid.UUID) error
	AcceptJoinRequest(ctx context.Context, actorID, noteID uuid.UUID) error
	Leave(ctx context.Context, actorID, cliqueID uuid.UUID) error

	Kick(ctx context.Context, actorID uuid.UUID, isMaster bool, cliqueID, userID uuid.UUID) error
	Ban(ctx context.Context, actorID uuid.UUID, isMaster bool, cliqueID, userID uuid.UUID, reason string) error
	Unban(ctx context.Context, actorID uuid.UUID, isMaster bool, cliqueID, userID uuid.UUID) error
	SendAdminInvitation(ctx context.Context, actorID, cliqueID, userID uuid.UUID) error
	TransferAdmin(ctx context.Context, cliqueID, userID uuid.UUID) error

	UpdateIcon(ctx context.Context, actorID, cliqueID uuid.UUID, icon string) error
	UpdateVisibility(ctx context.Context, actorID, cliqueID uuid.UUID, visibility string) error
	Delete(ctx context.Context, actorID uuid.UUID, isMaster bool, cliqueID uuid.UUID) error

	AdminDashboard(ctx context.Context, actorID uuid.UUID, isMaster bool, cliqueID uuid.UUID, timeRange string) (*response_models.AdminDashboard, error)
	ListAll(ctx context.Context) ([]response_models.CliqueDetail, error)
}

type CliqueService struct {
	cliqueRepo       repositories.CliqueRepository
	accountRepo      repositories.AccountRepository
	markerRepo       repositories.MarkerRepository
	reviewRepo       repositories.ReviewRepository
	eventRepo        repositories.EventRepository
	notificationRepo repositories.NotificationRepository
	banRepo          repositories.BanRepository
	lifecycle        LifecycleServiceInterface
}

func NewCliqueService(
	cliqueRepo repositories.CliqueRepository,
	accountRepo repositories.AccountRepository,
	markerRepo repositories.MarkerRepository,
	reviewRepo repositories.ReviewRepository,
	eventRepo repositories.EventRepository,
	notificationRepo repositories.NotificationRepository,
	banRepo repositories.BanRepository,
	lifecycle LifecycleServiceInterface,
) CliqueServiceInterface {
	return &CliqueService{
		cliqueRepo:       cliqueRepo,
		accountRepo:      accountRepo,
		markerRepo:       markerRepo,
		reviewRepo:       reviewRepo,
		eventRepo:        eventRepo,
		notificationRepo: notificationRepo,
		banRepo:          banRepo,
		lifecycle:        lifecycle,
	}
}

func (s *CliqueService) CreateClique(ctx context.Context, actorID uuid.UUID, req request_models.CreateCliqueRequest) (uuid.UUID, error) {
	if !db_models.ValidVisibility(req.Visibility) {
		return uuid.Nil, utils.ErrInvalidVisibility
	}
	clique := &db_models.Clique{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Visibility:  req.Visibility,
		Icon:        req.Icon,
		DateCreated: utils.Today(),
		AdminID:     actorID,
	}
	if err := s.cliqueRepo.CreateWithFounder(ctx, clique, utils.Today()); err != nil {
		return uuid.Nil, fmt.Errorf("create clique: %w", err)
	}
	return clique.ID, nil
}

func (s *CliqueService) requireClique(ctx context.Context, cliqueID uuid.UUID) (*db_models.Clique, error) {
	clique, err := s.cliqueRepo.FindByID(ctx, cliqueID)
	if err != nil {
		return nil, fmt.Errorf("lookup clique: %w", err)
	}
	if clique == nil {
		return nil, utils.ErrCliqueNotFound
	}
	return clique, nil
}

func (s *CliqueService) requireAdmin(clique *db_models.Clique, actorID uuid.UUID, isMaster bool) error {
	if isMaster || clique.AdminID == actorID {
		return nil
	}
	return utils.ErrUnauthorized
}

func (s *CliqueService) Join(ctx context.Context, actorID, cliqueID uuid.UUID) error {
	clique, err := s.requireClique(ctx, cliqueID)
	if err != nil {
		return err
	}
	if clique.Visibility != db_models.VisibilityPublic {
		return utils.ErrUnauthorized
	}
	return s.admit(ctx, clique.ID, actorID)
}

// admit performs the shared membership checks and inserts the link, clearing
// any invitation that was pending for the same clique.
func (s *CliqueService) admit(ctx context.Context, cliqueID, userID uuid.UUID) error {
	ban, err := s.banRepo.Find(ctx, cliqueID, userID)
	if err != nil {
		return fmt.Errorf("check ban: %w", err)
	}
	if ban != nil {
		return utils.ErrBannedFromClique
	}
	member, err := s.cliqueRepo.FindMembership(ctx, cliqueID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if member != nil {
		return utils.ErrAlreadyMember
	}
	link := &db_models.CliqueUser{
		UserID:     userID,
		CliqueID:   cliqueID,
		JoinedDate: utils.Today(),
	}
	if err := s.cliqueRepo.CreateMembership(ctx, link); err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	pending, err := s.notificationRepo.FindByUserAndClique(ctx, userID, cliqueID)
	if err != nil {
		return fmt.Errorf("check notification: %w", err)
	}
	if pending != nil && pending.Type.IsInvitation() {
		if err := s.notificationRepo.Delete(ctx, pending.ID); err != nil {
			return fmt.Errorf("delete notification: %w", err)
		}
	}
	return nil
}

func (s *CliqueService) RequestJoin(ctx context.Context, actorID, cliqueID uuid.UUID) error {
	clique, err := s.requireClique(ctx, cliqueID)
	if err != nil {
		return err
	}
	if clique.Visibility != db_models.VisibilityProtected {
		return utils.ErrUnauthorized
	}
	ban, err := s.banRepo.Find(ctx, cliqueID, actorID)
	if err != nil {
		return fmt.Errorf("check ban: %w", err)
	}
	if ban != nil {
		return utils.ErrBannedFromClique
	}
	member, err := s.cliqueRepo.FindMembership(ctx, cliqueID, actorID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if member != nil {
		return utils.ErrAlreadyMember
	}
	existing, err := s.notificationRepo.FindTyped(ctx, actorID, cliqueID, db_models.NotificationJoinRequest)
	if err != nil {
		return fmt.Errorf("check notification: %w", err)
	}
	if existing != nil {
		return utils.ErrAlreadyRequested
	}
	note := &db_models.Notification{
		Type:     db_models.NotificationJoinRequest,
		UserID:   actorID,
		CliqueID: cliqueID,
	}
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// SendInvite resolves the invitee by email and picks the invitation flavor
// from the clique visibility and the sender's standing. Only a protected
// clique distinguishes the sender: its admin sends "invitation admin"
// (joinable outright), any other member "invitation protected" (accept
// converts to a join request). Everything else is a plain "invitation".
func (s *CliqueService) SendInvite(ctx context.Context, actorID uuid.UUID, req request_models.InviteRequest) (db_models.NotificationType, error) {
	invitee, err := s.accountRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return "", fmt.Errorf("lookup invitee: %w", err)
	}
	if invitee == nil {
		return "", utils.ErrUserNotFound
	}
	if invitee.ID == actorID {
		return "", utils.ErrSelfInvite
	}
	clique, err := s.requireClique(ctx, req.CliqueID)
	if err != nil {
		return "", err
	}
	sender, err := s.cliqueRepo.FindMembership(ctx, clique.ID, actorID)
	if err != nil {
		return "", fmt.Errorf("check membership: %w", err)
	}
	if sender == nil {
		return "", utils.ErrNotCliqueMember
	}
	member, err := s.cliqueRepo.FindMembership(ctx, clique.ID, invitee.ID)
	if err != nil {
		return "", fmt.Errorf("check membership: %w", err)
	}
	if member != nil {
		return "", utils.ErrAlreadyMember
	}
	ban, err := s.banRepo.Find(ctx, clique.ID, invitee.ID)
	if err != nil {
		return "", fmt.Errorf("check ban: %w", err)
	}
	if ban != nil {
		return "", utils.ErrBannedFromClique
	}

	isAdmin := clique.AdminID == actorID
	isProtected := clique.Visibility == db_models.VisibilityProtected
	var inviteType db_models.NotificationType
	switch {
	case isAdmin && isProtected:
		inviteType = db_models.NotificationInvitationAdmin
	case isProtected:
		inviteType = db_models.NotificationInvitationProtected
	default:
		inviteType = db_models.NotificationInvitation
	}

	existing, err := s.notificationRepo.FindByUserAndClique(ctx, invitee.ID, clique.ID)
	if err != nil {
		return "", fmt.Errorf("check notification: %w", err)
	}
	if existing != nil {
		switch {
		case existing.Type == db_models.NotificationInvitationAdmin:
			return "", utils.ErrAlreadyInvited
		case existing.Type == db_models.NotificationInvitation && inviteType == db_models.NotificationInvitationAdmin:
			existing.Type = inviteType
			if err := s.notificationRepo.Save(ctx, existing); err != nil {
				return "", fmt.Errorf("save notification: %w", err)
			}
			return inviteType, nil
		case existing.Type == inviteType:
			return "", utils.ErrAlreadyInvited
		}
	}

	note := &db_models.Notification{
		Type:     inviteType,
		UserID:   invitee.ID,
		CliqueID: clique.ID,
	}
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		return "", fmt.Errorf("create notification: %w", err)
	}
	return inviteType, nil
}

func (s *CliqueService) AcceptInvite(ctx context.Context, actorID, noteID uuid.UUID) error {
	note, err := s.notificationRepo.FindByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("lookup notification: %w", err)
	}
	if note == nil {
		return utils.ErrNotificationNotFound
	}
	if note.UserID != actorID {
		return utils.ErrUnauthorized
	}

	switch note.Type {
	case db_models.NotificationInvitation, db_models.NotificationInvitationAdmin:
		if err := s.admit(ctx, note.CliqueID, actorID); err != nil {
			return err
		}
	case db_models.NotificationInvitationProtected:
		// Turns the invite into a join request for the admin to approve.
		if err := s.notificationRepo.Delete(ctx, note.ID); err != nil {
			return fmt.Errorf("delete notification: %w", err)
		}
		return s.RequestJoin(ctx, actorID, note.CliqueID)
	case db_models.NotificationInvitationBecomeAdmin:
		clique, err := s.requireClique(ctx, note.CliqueID)
		if err != nil {
			return err
		}
		clique.AdminID = actorID
		if err := s.cliqueRepo.Save(ctx, clique); err != nil {
			return fmt.Errorf("save clique: %w", err)
		}
	default:
		return utils.ErrNotificationNotFound
	}

	if err := s.notificationRepo.Delete(ctx, note.ID); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

func (s *CliqueService) AcceptJoinRequest(ctx context.Context, actorID, noteID uuid.UUID) error {
	note, err := s.notificationRepo.FindByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("lookup notification: %w", err)
	}
	if note == nil || note.Type != db_models.NotificationJoinRequest {
		return utils.ErrNotificationNotFound
	}
	clique, err := s.requireClique(ctx, note.CliqueID)
	if err != nil {
		return err
	}
	if clique.AdminID != actorID {
		return utils.ErrUnauthorized
	}
	if err := s.admit(ctx, clique.ID, note.UserID); err != nil {
		return err
	}
	if err := s.notificationRepo.Delete(ctx, note.ID); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	accepted := &db_models.Notification{
		Type:     db_models.NotificationAcceptInvitation,
		UserID:   note.UserID,
		CliqueID: clique.ID,
	}
	if err := s.notificationRepo.Create(ctx, accepted); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *CliqueService) Leave(ctx context.Context, actorID, cliqueID uuid.UUID) error {
	member, err := s.cliqueRepo.FindMembership(ctx, cliqueID, actorID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if member == nil {
		return utils.ErrNotCliqueMember
	}
	found, err := s.lifecycle.LeaveClique(ctx, cliqueID, actorID)
	if err != nil {
		return err
	}
	if !found {
		return utils.ErrCliqueNotFound
	}
	return nil
}

func (s *CliqueService) Kick(ctx context.Context, actorID uuid.UUID, isMaster bool, cliqueID, userID uuid.UUID) error {
	clique, err := s.requireClique(ctx, cliqueID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(clique, actorID, isMaster); err != nil {
		return err
	}
	if clique.AdminID == userID {
		return utils.ErrUnauthorized
	}
	member, err := s.cliqueRepo.FindMembership(ctx, cliqueID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if member == nil {
		return utils.ErrNotCliqueMember
	}
	if err := s.lifecycle.RemoveMember(ctx, cliqueID, userID); err != nil {
		return err
	}
	note := &db_models.Notification{
		Type:     db_models.NotificationKick,
		UserID:   userID,
		CliqueID: cliqueID,
	}
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *CliqueService) Ban(ctx context.Context, actorID uuid.UUID, isMaster bool, cliqueID, userID uuid.UUID, reason string) error {
	clique, err := s.requireClique(ctx, cliqueID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(clique, actorID, isMaster); err != nil {
		return err
	}
	if clique.AdminID == userID {
		return utils.ErrUnauthorized
	}
	member, err := s.cliqueRepo.FindMembership(ctx, cliqueID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if member == nil {
		return utils.ErrNotCliqueMember
	}
	if len(reason) > banReasonLimit {
		reason = reason[:banReasonLimit]
	}
	ban := &db_models.BannedUser{
		UserID:   userID,
		CliqueID: cliqueID,
		Reason:   reason,
		BanDate:  utils.Today(),
	}
	if err := s.banRepo.Create(ctx, ban); err != nil {
		return fmt.Errorf("create ban: %w", err)
	}
	if err := s.lifecycle.RemoveMember(ctx, cliqueID, userID); err != nil {
		return err
	}
	note := &db_models.Notification{
		Type:     db_models.NotificationBan,
		UserID:   userID,
		CliqueID: cliqueID,
	}
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *CliqueService) Unban(ctx context.Context, actorID uuid.UUID, isMaster bool, cliqueID, userID uuid.UUID) error {
	clique, err := s.requireClique(ctx, cliqueID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(clique, actorID, isMaster); err != nil {
		return err
	}
	ban, err := s.banRepo.Find(ctx, cliqueID, userID)
	if err != nil {
		return fmt.Errorf("lookup ban: %w", err)
	}
	if ban == nil {
		return utils.ErrUserNotFound
	}
	if err := s.banRepo.Delete(ctx, cliqueID, userID); err != nil {
		return fmt.Errorf("delete ban: %w", err)
	}
	note := &db_models.Notification{
		Type:     db_models.NotificationUnban,
		UserID:   userID,
		CliqueID: cliqueID,
	}
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *CliqueService) SendAdminInvitation(ctx context.Context, actorID, cliqueID, userID uuid.UUID) error {
	clique, err := s.requireClique(ctx, cliqueID)
	if err != nil {
		return err
	}
	if clique.AdminID != actorID {
		return utils.ErrUnauthorized
	}
	member, err := s.cliqueRepo.FindMembership(ctx, cliqueID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if member == nil {
		return utils.ErrNotCliqueMember
	}
	existing, err := s.notificationRepo.FindTyped(ctx, userID, cliqueID, db_models.NotificationInvitationBecomeAdmin)
	if err != nil {
		return fmt.Errorf("check notification: %w", err)
	}
	if existing != nil {
		return utils.ErrAlreadyInvited
	}
	note := &db_models.Notification{
		Type:     db_models.NotificationInvitationBecomeAdmin,
		UserID:   userID,
		CliqueID: cliqueID,
	}
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *CliqueService) TransferAdmin(ctx context.Context, cliqueID, userID uuid.UUID) error {
	clique, err := s.requireClique(ctx, cliqueID)
	if err != nil {
		return err
	}
	member, err := s.cliqueRepo.FindMembership(ctx, cliqueID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if member == nil {
		return utils.ErrNotCliqueMember
	}
	if clique.AdminID == userID {
		return nil
	}
	clique.AdminID = userID
	if err := s.cliqueRepo.Save(ctx, clique); err != nil {
		return fmt.Errorf("save clique: %w", err)
	}
	return nil
}

func (s *CliqueService) UpdateIcon(ctx context.Context, actorID, cliqueID uuid.UUID, icon string) error {
	clique, err := s.requireClique(ctx, cliqueID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(clique, actorID, false); err != nil {
		return err
	}
	clique.Icon = icon
	if err := s.cliqueRepo.Save(ctx, clique); err != nil {
		return fmt.Errorf("save clique: %w", err)
	}
	return nil
}

func (s *CliqueService) UpdateVisibility(ctx context.Context, actorID, cliqueID uuid.UUID, visibility string) error {
	if !db_models.ValidVisibility(visibility) {
		return utils.ErrInvalidVisibility
	}
	clique, err := s.requireClique(ctx, cliqueID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(clique, actorID, false); err != nil {
		return err
	}
	clique.Visibility = visibility
	if err := s.cliqueRepo.Save(ctx, clique); err != nil {
		return fmt.Errorf("save clique: %w", err)
	}
	return nil
}

func (s *CliqueService) Delete(ctx context.Context, actorID uuid.UUID, isMaster bool, cliqueID uuid.UUID) error {
	clique, err := s.requireClique(ctx, cliqueID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(clique, actorID, isMaster); err != nil {
		return err
	}
	return s.lifecycle.DestroyClique(ctx, cliqueID)
}

// reviewScore rewards commentary length but not padding: very short and very
// long texts earn little, the sweet spot sits between 16 and 25 words.
func reviewScore(commentary string) int {
	wc := len(strings.Fields(commentary))
	switch {
	case wc <= 3 || wc > 40:
		return 1
	case wc <= 7 || wc > 35:
		return 2
	case wc <= 10 || wc > 30:
		return 3
	case wc <= 15 || wc > 25:
		return 4
	default:
		return 5
	}
}

func (s *CliqueService) Feed(ctx context.Context, actorID uuid.UUID) (*response_models.Feed, error) {
	memberships, err := s.cliqueRepo.ListMembershipsByUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	feed := &response_models.Feed{
		Cliques:     []response_models.MembershipSummary{},
		Updates:     []response_models.FeedUpdate{},
		Scoreboards: []response_models.Scoreboard{},
	}
	since := utils.DaysAgo(feedWindowDays)
	today := utils.Today()
	userNames := map[uuid.UUID]*db_models.User{}

	lookupUser := func(id uuid.UUID) *db_models.User {
		if u, ok := userNames[id]; ok {
			return u
		}
		u, err := s.accountRepo.FindByID(ctx, id)
		if err != nil || u == nil {
			u = &db_models.User{ID: id, Name: "Deleted user", Picture: db_models.DefaultPicture}
		}
		userNames[id] = u
		return u
	}

	for _, m := range memberships {
		clique, err := s.cliqueRepo.FindByID(ctx, m.CliqueID)
		if err != nil {
			return nil, fmt.Errorf("lookup clique: %w", err)
		}
		if clique == nil {
			continue
		}

		links, err := s.markerRepo.ListLinksByClique(ctx, clique.ID)
		if err != nil {
			return nil, fmt.Errorf("list marker links: %w", err)
		}
		markerIDs := make([]uuid.UUID, 0, len(links))
		markerNames := map[uuid.UUID]string{}
		for _, l := range links {
			if _, ok := markerNames[l.MarkerID]; ok {
				continue
			}
			marker, err := s.markerRepo.FindByID(ctx, l.MarkerID)
			if err != nil {
				return nil, fmt.Errorf("lookup marker: %w", err)
			}
			if marker == nil {
				continue
			}
			markerIDs = append(markerIDs, marker.ID)
			markerNames[marker.ID] = marker.Description
		}

		reviewsAdded, err := s.reviewRepo.CountByUserAndMarkers(ctx, actorID, markerIDs)
		if err != nil {
			return nil, fmt.Errorf("count reviews: %w", err)
		}
		status := "Member"
		if clique.AdminID == actorID {
			status = "Admin"
		}
		feed.Cliques = append(feed.Cliques, response_models.MembershipSummary{
			CliqueID:     clique.ID.String(),
			Name:         clique.Name,
			Description:  clique.Description,
			Visibility:   clique.Visibility,
			Icon:         clique.Icon,
			Status:       status,
			JoinedDate:   m.JoinedDate,
			ReviewsAdded: reviewsAdded,
			MarkerCount:  len(markerIDs),
		})

		// Fresh markers.
		for _, l := range links {
			if l.CreationDate < since {
				continue
			}
			u := lookupUser(l.UserID)
			feed.Updates = append(feed.Updates, response_models.FeedUpdate{
				Kind:       "marker",
				Date:       l.CreationDate,
				CliqueName: clique.Name,
				MarkerName: markerNames[l.MarkerID],
				UserID:     u.ID.String(),
				UserName:   u.Name,
				Picture:    u.Picture,
			})
		}

		// Fresh reviews.
		recent, err := s.reviewRepo.ListRecentByMarkers(ctx, markerIDs, since)
		if err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}
		for _, r := range recent {
			u := lookupUser(r.UserID)
			feed.Updates = append(feed.Updates, response_models.FeedUpdate{
				Kind:       "review",
				Date:       r.CreationDate,
				CliqueName: clique.Name,
				MarkerName: markerNames[r.MarkerID],
				UserID:     u.ID.String(),
				UserName:   u.Name,
				Picture:    u.Picture,
				Stars:      float64(r.Stars),
				Commentary: r.Commentary,
			})
		}

		// Upcoming events.
		events, err := s.eventRepo.ListByClique(ctx, clique.ID)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		for _, e := range events {
			if e.Date < today {
				continue
			}
			u := lookupUser(e.UserID)
			feed.Updates = append(feed.Updates, response_models.FeedUpdate{
				Kind:       "event",
				Date:       e.Date,
				Time:       e.Time,
				CliqueName: clique.Name,
				MarkerName: markerNames[e.MarkerID],
				UserID:     u.ID.String(),
				UserName:   u.Name,
				Picture:    u.Picture,
				Commentary: e.Description,
			})
		}

		board, err := s.scoreboard(ctx, clique, markerIDs, lookupUser)
		if err != nil {
			return nil, err
		}
		feed.Scoreboards = append(feed.Scoreboards, *board)
	}

	sort.SliceStable(feed.Updates, func(i, j int) bool {
		return feed.Updates[i].Date > feed.Updates[j].Date
	})
	if len(feed.Updates) > feedUpdateLimit {
		feed.Updates = feed.Updates[:feedUpdateLimit]
	}
	return feed, nil
}

func (s *CliqueService) scoreboard(ctx context.Context, clique *db_models.Clique, markerIDs []uuid.UUID, lookupUser func(uuid.UUID) *db_models.User) (*response_models.Scoreboard, error) {
	members, err := s.cliqueRepo.ListMembershipsByClique(ctx, clique.ID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	reviews, err := s.reviewRepo.ListByMarkers(ctx, markerIDs)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	scores := map[uuid.UUID]int{}
	for _, r := range reviews {
		scores[r.UserID] += reviewScore(r.Commentary)
	}

	board := &response_models.Scoreboard{
		CliqueID:   clique.ID.String(),
		CliqueName: clique.Name,
		Ranking:    make([]response_models.RankEntry, 0, len(members)),
	}
	for _, m := range members {
		u := lookupUser(m.UserID)
		created, err := s.markerRepo.CountLinksByUser(ctx, clique.ID, m.UserID)
		if err != nil {
			return nil, fmt.Errorf("count markers: %w", err)
		}
		board.Ranking = append(board.Ranking, response_models.RankEntry{
			UserID: m.UserID.String(),
			Name:   u.Name,
			Score:  scores[m.UserID] + markerBonus*int(created),
		})
	}
	sort.SliceStable(board.Ranking, func(i, j int) bool {
		return board.Ranking[i].Score > board.Ranking[j].Score
	})
	for i := range board.Ranking {
		board.Ranking[i].Rank = i + 1
	}
	return board, nil
}

func (s *CliqueService) Search(ctx context.Context, actorID uuid.UUID, query string) ([]response_models.SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []response_models.SearchResult{}, nil
	}
	cliques, err := s.cliqueRepo.ListDiscoverable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cliques: %w", err)
	}

	type scored struct {
		clique db_models.Clique
		score  int
	}
	matches := []scored{}
	for _, c := range cliques {
		nameScore := fuzzy.PartialRatio(query, strings.ToLower(c.Name))
		descScore := fuzzy.PartialRatio(query, strings.ToLower(c.Description))
		if nameScore < searchThreshold && descScore < searchThreshold {
			continue
		}
		// name hits sort ahead of description-only hits
		score := nameScore
		if nameScore >= descScore {
			score += 10
		}
		matches = append(matches, scored{clique: c, score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	results := make([]response_models.SearchResult, 0, len(matches))
	for _, m := range matches {
		detail, err := s.describe(ctx, &m.clique)
		if err != nil {
			return nil, err
		}
		member, err := s.cliqueRepo.FindMembership(ctx, m.clique.ID, actorID)
		if err != nil {
			return nil, fmt.Errorf("check membership: %w", err)
		}
		results = append(results, response_models.SearchResult{
			CliqueID:    detail.CliqueID,
			Name:        detail.Name,
			Description: detail.Description,
			Visibility:  detail.Visibility,
			Icon:        detail.Icon,
			AdminName:   detail.AdminName,
			MemberCount: detail.MemberCount,
			MarkerCount: detail.MarkerCount,
			IsMember:    member != nil,
		})
	}
	return results, nil
}

func (s *CliqueService) Autocomplete(ctx context.Context, term string) ([]string, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	names := []string{}
	if term == "" {
		return names, nil
	}
	cliques, err := s.cliqueRepo.ListDiscoverable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cliques: %w", err)
	}
	seen := map[string]struct{}{}
	for _, c := range cliques {
		if !strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) {
			continue
		}
		if _, dup := seen[c.Name]; dup {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
		if len(names) == 10 {
			break
		}
	}
	return names, nil
}

func (s *CliqueService) describe(ctx context.Context, clique *db_models.Clique) (*response_models.CliqueDetail, error) {
	memberCount, err := s.cliqueRepo.CountMembers(ctx, clique.ID)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	links, err := s.markerRepo.ListLinksByClique(ctx, clique.ID)
	if err != nil {
		return nil, fmt.Errorf("list marker links: %w", err)
	}
	seen := map[uuid.UUID]struct{}{}
	for _, l := range links {
		seen[l.MarkerID] = struct{}{}
	}
	adminName := ""
	if admin, err := s.accountRepo.FindByID(ctx, clique.AdminID); err == nil && admin != nil {
		adminName = admin.Name
	}
	return &response_models.CliqueDetail{
		CliqueID:    clique.ID.String(),
		Name:        clique.Name,
		Description: clique.Description,
		Visibility:  clique.Visibility,
		Icon:        clique.Icon,
		AdminID:     clique.AdminID.String(),
		AdminName:   adminName,
		MemberCount: memberCount,
		MarkerCount: len(seen),
	}, nil
}

func (s *CliqueService) ListAll(ctx context.Context) ([]response_models.CliqueDetail, error) {
	cliques, err := s.cliqueRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cliques: %w", err)
	}
	details := make([]response_models.CliqueDetail, 0, len(cliques))
	for i := range cliques {
		d, err := s.describe(ctx, &cliques[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

// dashboardWindow maps the requested range onto a since-date, bucket labels
// and the prefix length used to assign a date to a bucket.
func dashboardWindow(timeRange string) (since string, labels []string, prefix int) {
	switch timeRange {
	case "month":
		since = utils.MonthsBack(11)
		labels = make([]string, 0, 12)
		for i := 11; i >= 0; i-- {
			labels = append(labels, utils.MonthsBack(i)[:7])
		}
		return since, labels, 7
	case "year":
		since = utils.MonthsBack(35)
		labels = make([]string, 0, 3)
		for i := 2; i >= 0; i-- {
			labels = append(labels, utils.MonthsBack(i*12)[:4])
		}
		return since, labels, 4
	default:
		since = utils.DaysAgo(6)
		labels = make([]string, 0, 7)
		for i := 6; i >= 0; i-- {
			labels = append(labels, utils.DaysAgo(i))
		}
		return since, labels, 10
	}
}

func (s *CliqueService) AdminDashboard(ctx context.Context, actorID uuid.UUID, isMaster bool, cliqueID uuid.UUID, timeRange string) (*response_models.AdminDashboard, error) {
	clique, err := s.requireClique(ctx, cliqueID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAdmin(clique, actorID, isMaster); err != nil {
		return nil, err
	}

	markerIDs, err := s.distinctMarkerIDs(ctx, cliqueID)
	if err != nil {
		return nil, err
	}
	members, err := s.cliqueRepo.ListMembershipsByClique(ctx, cliqueID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	dash := &response_models.AdminDashboard{
		CliqueID:   clique.ID.String(),
		CliqueName: clique.Name,
		Members:    []response_models.MemberStat{},
		Banned:     []response_models.BannedRecord{},
		TimeRange:  timeRange,
	}

	for _, m := range members {
		stat, err := s.memberStat(ctx, m, markerIDs)
		if err != nil {
			return nil, err
		}
		if m.UserID == clique.AdminID {
			dash.Admin = *stat
			continue
		}
		dash.Members = append(dash.Members, *stat)
	}

	bans, err := s.banRepo.ListByClique(ctx, cliqueID)
	if err != nil {
		return nil, fmt.Errorf("list bans: %w", err)
	}
	for _, b := range bans {
		name := ""
		if u, err := s.accountRepo.FindByID(ctx, b.UserID); err == nil && u != nil {
			name = u.Name
		}
		dash.Banned = append(dash.Banned, response_models.BannedRecord{
			UserID:     b.UserID.String(),
			UserName:   name,
			CliqueID:   cliqueID.String(),
			CliqueName: clique.Name,
			Reason:     b.Reason,
		})
	}

	since, labels, prefix := dashboardWindow(timeRange)
	dash.Labels = labels

	if dash.JoinedCount, err = s.cliqueRepo.CountJoinedSince(ctx, cliqueID, since); err != nil {
		return nil, fmt.Errorf("count joins: %w", err)
	}
	if dash.MarkerCount, err = s.markerRepo.CountLinksSince(ctx, cliqueID, since); err != nil {
		return nil, fmt.Errorf("count markers: %w", err)
	}
	if dash.ReviewCount, err = s.reviewRepo.CountRecentByMarkers(ctx, markerIDs, since); err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	bucket := func(dates []string) []int {
		idx := map[string]int{}
		for i, l := range labels {
			idx[l] = i
		}
		series := make([]int, len(labels))
		for _, d := range dates {
			key := d
			if len(key) > prefix {
				key = key[:prefix]
			}
			if i, ok := idx[key]; ok {
				series[i]++
			}
		}
		return series
	}

	joinDates := make([]string, 0, len(members))
	for _, m := range members {
		joinDates = append(joinDates, m.JoinedDate)
	}
	dash.MembersSeries = bucket(joinDates)

	links, err := s.markerRepo.ListLinksByClique(ctx, cliqueID)
	if err != nil {
		return nil, fmt.Errorf("list marker links: %w", err)
	}
	linkDates := make([]string, 0, len(links))
	for _, l := range links {
		linkDates = append(linkDates, l.CreationDate)
	}
	dash.MarkersSeries = bucket(linkDates)

	reviews, err := s.reviewRepo.ListByMarkers(ctx, markerIDs)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	reviewDates := make([]string, 0, len(reviews))
	for _, r := range reviews {
		reviewDates = append(reviewDates, r.CreationDate)
	}
	dash.ReviewsSeries = bucket(reviewDates)

	return dash, nil
}

func (s *CliqueService) distinctMarkerIDs(ctx context.Context, cliqueID uuid.UUID) ([]uuid.UUID, error) {
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

func (s *CliqueService) memberStat(ctx context.Context, m db_models.CliqueUser, markerIDs []uuid.UUID) (*response_models.MemberStat, error) {
	user, err := s.accountRepo.FindByID(ctx, m.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		user = &db_models.User{ID: m.UserID, Name: "Deleted user", Picture: db_models.DefaultPicture}
	}
	reviews, err := s.reviewRepo.ListByUserAndMarkers(ctx, m.UserID, markerIDs)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	markersAdded, err := s.markerRepo.CountLinksByUser(ctx, m.CliqueID, m.UserID)
	if err != nil {
		return nil, fmt.Errorf("count markers: %w", err)
	}
	avg := 0.0
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Stars
		}
		avg = round2(float64(total) / float64(len(reviews)))
	}
	return &response_models.MemberStat{
		UserID:        user.ID.String(),
		Name:          user.Name,
		Picture:       user.Picture,
		JoinedDate:    m.JoinedDate,
		MarkersAdded:  markersAdded,
		ReviewsAdded:  int64(len(reviews)),
		AverageRating: avg,
	}, nil
}
