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

type NotificationServiceInterface interface {
	List(ctx context.Context, actorID uuid.UUID) ([]response_models.NotificationView, error)
	Delete(ctx context.Context, actorID uuid.UUID, isMaster bool, noteID uuid.UUID) error
	Report(ctx context.Context, req request_models.ReportRequest) error
	ListReports(ctx context.Context) ([]response_models.ReportView, error)
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	cliqueRepo       repositories.CliqueRepository
	accountRepo      repositories.AccountRepository
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	cliqueRepo repositories.CliqueRepository,
	accountRepo repositories.AccountRepository,
) NotificationServiceInterface {
	return &NotificationService{
		notificationRepo: notificationRepo,
		cliqueRepo:       cliqueRepo,
		accountRepo:      accountRepo,
	}
}

// List returns the user's own notifications plus, when the user administers
// cliques, the pending join requests for those cliques.
func (s *NotificationService) List(ctx context.Context, actorID uuid.UUID) ([]response_models.NotificationView, error) {
	views := []response_models.NotificationView{}

	personal, err := s.notificationRepo.ListPersonal(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	for _, n := range personal {
		if n.Type.IsReport() {
			continue
		}
		view := response_models.NotificationView{
			NotificationID: n.ID.String(),
			Type:           string(n.Type),
			CliqueID:       n.CliqueID.String(),
		}
		clique, err := s.cliqueRepo.FindByID(ctx, n.CliqueID)
		if err != nil {
			return nil, fmt.Errorf("lookup clique: %w", err)
		}
		if clique != nil {
			view.CliqueName = clique.Name
			if n.Type.IsInvitation() {
				view.CliqueVisibility = clique.Visibility
			}
		}
		views = append(views, view)
	}

	requests, err := s.notificationRepo.ListJoinRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list join requests: %w", err)
	}
	for _, n := range requests {
		clique, err := s.cliqueRepo.FindByID(ctx, n.CliqueID)
		if err != nil {
			return nil, fmt.Errorf("lookup clique: %w", err)
		}
		if clique == nil || clique.AdminID != actorID {
			continue
		}
		view := response_models.NotificationView{
			NotificationID: n.ID.String(),
			Type:           string(n.Type),
			CliqueID:       clique.ID.String(),
			CliqueName:     clique.Name,
			UserID:         n.UserID.String(),
		}
		if u, err := s.accountRepo.FindByID(ctx, n.UserID); err == nil && u != nil {
			view.UserName = u.Name
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *NotificationService) Delete(ctx context.Context, actorID uuid.UUID, isMaster bool, noteID uuid.UUID) error {
	note, err := s.notificationRepo.FindByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("lookup notification: %w", err)
	}
	if note == nil {
		return utils.ErrNotificationNotFound
	}

	if note.Type.IsReport() {
		if !isMaster {
			return utils.ErrUnauthorized
		}
		return s.notificationRepo.Delete(ctx, noteID)
	}

	if note.UserID == actorID || isMaster {
		return s.notificationRepo.Delete(ctx, noteID)
	}
	clique, err := s.cliqueRepo.FindByID(ctx, note.CliqueID)
	if err != nil {
		return fmt.Errorf("lookup clique: %w", err)
	}
	if clique != nil && clique.AdminID == actorID {
		return s.notificationRepo.Delete(ctx, noteID)
	}
	return utils.ErrUnauthorized
}

// Report files one notification per reason against the reported user, scoped
// to the clique the behavior was seen in. Reasons outside the known report
// set are rejected wholesale.
func (s *NotificationService) Report(ctx context.Context, req request_models.ReportRequest) error {
	types := make([]db_models.NotificationType, 0, len(req.Reasons))
	for _, reason := range req.Reasons {
		t, ok := db_models.ParseNotificationType(reason)
		if !ok || !t.IsReport() {
			return utils.ErrInvalidReportType
		}
		types = append(types, t)
	}

	user, err := s.accountRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return utils.ErrUserNotFound
	}
	clique, err := s.cliqueRepo.FindByID(ctx, req.CliqueID)
	if err != nil {
		return fmt.Errorf("lookup clique: %w", err)
	}
	if clique == nil {
		return utils.ErrCliqueNotFound
	}

	for _, t := range types {
		existing, err := s.notificationRepo.FindTyped(ctx, req.UserID, req.CliqueID, t)
		if err != nil {
			return fmt.Errorf("check notification: %w", err)
		}
		if existing != nil {
			continue
		}
		note := &db_models.Notification{
			Type:     t,
			UserID:   req.UserID,
			CliqueID: req.CliqueID,
		}
		if err := s.notificationRepo.Create(ctx, note); err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
	}
	return nil
}

func (s *NotificationService) ListReports(ctx context.Context) ([]response_models.ReportView, error) {
	reports, err := s.notificationRepo.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	views := make([]response_models.ReportView, 0, len(reports))
	for _, n := range reports {
		view := response_models.ReportView{
			NotificationID: n.ID.String(),
			Type:           string(n.Type),
			UserID:         n.UserID.String(),
			CliqueID:       n.CliqueID.String(),
		}
		if u, err := s.accountRepo.FindByID(ctx, n.UserID); err == nil && u != nil {
			view.UserName = u.Name
		}
		if c, err := s.cliqueRepo.FindByID(ctx, n.CliqueID); err == nil && c != nil {
			view.CliqueName = c.Name
		}
		views = append(views, view)
	}
	return views, nil
}
