package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"cliquemap/internal/models/db_models"
	"cliquemap/internal/models/request_models"
	"cliquemap/internal/models/response_models"
	"cliquemap/internal/repositories"
	"cliquemap/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.LoginResult, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResult, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req request_models.ChangePasswordRequest) error
	VerifyPassword(ctx context.Context, userID uuid.UUID, password string) error
	UpdatePicture(ctx context.Context, userID uuid.UUID, req request_models.UpdatePictureRequest) error
	Overview(ctx context.Context, userID uuid.UUID) (*response_models.SettingsOverview, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID, confirmed bool) error

	ListUsers(ctx context.Context) (*response_models.UserDirectory, error)
	EditUser(ctx context.Context, userID uuid.UUID, req request_models.EditUserRequest) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	cliqueRepo  repositories.CliqueRepository
	markerRepo  repositories.MarkerRepository
	reviewRepo  repositories.ReviewRepository
	eventRepo   repositories.EventRepository
	banRepo     repositories.BanRepository
	lifecycle   LifecycleServiceInterface
	masterEmail string
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	cliqueRepo repositories.CliqueRepository,
	markerRepo repositories.MarkerRepository,
	reviewRepo repositories.ReviewRepository,
	eventRepo repositories.EventRepository,
	banRepo repositories.BanRepository,
	lifecycle LifecycleServiceInterface,
	masterEmail string,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		cliqueRepo:  cliqueRepo,
		markerRepo:  markerRepo,
		reviewRepo:  reviewRepo,
		eventRepo:   eventRepo,
		banRepo:     banRepo,
		lifecycle:   lifecycle,
		masterEmail: masterEmail,
	}
}

func (s *AccountService) roleFor(email string) string {
	if s.masterEmail != "" && strings.EqualFold(email, s.masterEmail) {
		return utils.RoleMaster
	}
	return utils.RoleUser
}

func (s *AccountService) Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.IsValidEmail(email) {
		return nil, utils.ErrInvalidEmail
	}
	if !utils.IsValidPassword(req.Password) {
		return nil, utils.ErrInvalidPassword
	}

	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db_models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.accountRepo.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	role := s.roleFor(email)
	token, err := utils.CreateToken(user.ID, role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &response_models.LoginResult{Token: token, Role: role}, nil
}

func (s *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	role := s.roleFor(user.Email)
	token, err := utils.CreateToken(user.ID, role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &response_models.LoginResult{Token: token, Role: role}, nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.UserProfile, error) {
	user, err := s.accountRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return &response_models.UserProfile{
		ID:      user.ID.String(),
		Name:    user.Name,
		Email:   user.Email,
		Picture: user.Picture,
	}, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) error {
	user, err := s.accountRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.IsValidEmail(email) {
		return utils.ErrInvalidEmail
	}
	taken, err := s.accountRepo.EmailTakenByOther(ctx, email, userID)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return utils.ErrEmailAlreadyExists
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = email
	if err := s.accountRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, req request_models.ChangePasswordRequest) error {
	user, err := s.accountRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return utils.ErrUserNotFound
	}
	if err := utils.ComparePasswords(user.PasswordHash, req.CurrentPassword); err != nil {
		return utils.ErrInvalidCredentials
	}
	if req.NewPassword != req.ConfirmPassword {
		return utils.ErrPasswordMismatch
	}
	if req.NewPassword == req.CurrentPassword {
		return utils.ErrPasswordUnchanged
	}
	if !utils.IsValidPassword(req.NewPassword) {
		return utils.ErrInvalidPassword
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.accountRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *AccountService) VerifyPassword(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := s.accountRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return utils.ErrUserNotFound
	}
	if err := utils.ComparePasswords(user.PasswordHash, password); err != nil {
		return utils.ErrInvalidCredentials
	}
	return nil
}

func (s *AccountService) UpdatePicture(ctx context.Context, userID uuid.UUID, req request_models.UpdatePictureRequest) error {
	user, err := s.accountRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	switch req.Action {
	case "delete":
		user.Picture = db_models.DefaultPicture
	case "edit":
		if req.Picture == "" {
			user.Picture = db_models.DefaultPicture
		} else {
			user.Picture = req.Picture
		}
	}
	if err := s.accountRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Overview collects everything the settings page shows in one shot: the
// profile, per-clique membership stats and every review and event the user
// still has on the map.
func (s *AccountService) Overview(ctx context.Context, userID uuid.UUID) (*response_models.SettingsOverview, error) {
	user, err := s.accountRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	out := &response_models.SettingsOverview{
		Profile: response_models.UserProfile{
			ID:      user.ID.String(),
			Name:    user.Name,
			Email:   user.Email,
			Picture: user.Picture,
		},
		Cliques: []response_models.MembershipSummary{},
		Reviews: []response_models.ReviewSummary{},
		Events:  []response_models.EventSummary{},
	}

	memberships, err := s.cliqueRepo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	cliqueNames := map[uuid.UUID]string{}
	for _, m := range memberships {
		clique, err := s.cliqueRepo.FindByID(ctx, m.CliqueID)
		if err != nil {
			return nil, fmt.Errorf("lookup clique: %w", err)
		}
		if clique == nil {
			continue
		}
		cliqueNames[clique.ID] = clique.Name

		markerIDs, err := s.cliqueMarkerIDs(ctx, clique.ID)
		if err != nil {
			return nil, err
		}
		reviewsAdded, err := s.reviewRepo.CountByUserAndMarkers(ctx, userID, markerIDs)
		if err != nil {
			return nil, fmt.Errorf("count reviews: %w", err)
		}

		status := "Member"
		if clique.AdminID == userID {
			status = "Admin"
		}
		out.Cliques = append(out.Cliques, response_models.MembershipSummary{
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
	}

	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	for _, r := range reviews {
		marker, err := s.markerRepo.FindByID(ctx, r.MarkerID)
		if err != nil {
			return nil, fmt.Errorf("lookup marker: %w", err)
		}
		if marker == nil {
			continue
		}
		out.Reviews = append(out.Reviews, response_models.ReviewSummary{
			ReviewID:   r.ID.String(),
			MarkerID:   marker.ID.String(),
			MarkerName: marker.Description,
			CliqueName: s.markerCliqueName(ctx, marker.ID, cliqueNames),
			Stars:      float64(r.Stars),
			Commentary: r.Commentary,
			Date:       r.CreationDate,
		})
	}

	events, err := s.eventRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	for _, e := range events {
		marker, err := s.markerRepo.FindByID(ctx, e.MarkerID)
		if err != nil {
			return nil, fmt.Errorf("lookup marker: %w", err)
		}
		if marker == nil {
			continue
		}
		out.Events = append(out.Events, response_models.EventSummary{
			EventID:     e.ID.String(),
			MarkerID:    marker.ID.String(),
			MarkerName:  marker.Description,
			CliqueName:  cliqueNames[e.CliqueID],
			Date:        e.Date,
			Time:        e.Time,
			Description: e.Description,
		})
	}

	return out, nil
}

func (s *AccountService) cliqueMarkerIDs(ctx context.Context, cliqueID uuid.UUID) ([]uuid.UUID, error) {
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

func (s *AccountService) markerCliqueName(ctx context.Context, markerID uuid.UUID, names map[uuid.UUID]string) string {
	link, err := s.markerRepo.FirstLinkByMarker(ctx, markerID)
	if err != nil || link == nil {
		return ""
	}
	return names[link.CliqueID]
}

func (s *AccountService) DeleteAccount(ctx context.Context, userID uuid.UUID, confirmed bool) error {
	if !confirmed {
		return utils.ErrNotConfirmed
	}
	return s.lifecycle.DestroyUser(ctx, userID)
}

func (s *AccountService) ListUsers(ctx context.Context) (*response_models.UserDirectory, error) {
	users, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	bans, err := s.banRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bans: %w", err)
	}

	dir := &response_models.UserDirectory{
		Users:  make([]response_models.UserProfile, 0, len(users)),
		Banned: []response_models.BannedRecord{},
	}
	names := map[uuid.UUID]string{}
	for _, u := range users {
		names[u.ID] = u.Name
		dir.Users = append(dir.Users, response_models.UserProfile{
			ID:      u.ID.String(),
			Name:    u.Name,
			Email:   u.Email,
			Picture: u.Picture,
		})
	}
	for _, b := range bans {
		clique, err := s.cliqueRepo.FindByID(ctx, b.CliqueID)
		if err != nil {
			return nil, fmt.Errorf("lookup clique: %w", err)
		}
		rec := response_models.BannedRecord{
			UserID:   b.UserID.String(),
			UserName: names[b.UserID],
			CliqueID: b.CliqueID.String(),
			Reason:   b.Reason,
		}
		if clique != nil {
			rec.CliqueName = clique.Name
			rec.AdminName = names[clique.AdminID]
		}
		dir.Banned = append(dir.Banned, rec)
	}
	return dir, nil
}

func (s *AccountService) EditUser(ctx context.Context, userID uuid.UUID, req request_models.EditUserRequest) error {
	return s.UpdateProfile(ctx, userID, request_models.UpdateProfileRequest{
		Name:  req.Name,
		Email: req.Email,
	})
}

func (s *AccountService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.accountRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return utils.ErrUserNotFound
	}
	return s.lifecycle.DestroyUser(ctx, userID)
}
