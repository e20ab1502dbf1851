package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cliquemap/internal/models/request_models"
	"cliquemap/internal/services"
	"cliquemap/pkg/utils"
)

// MasterController bundles the moderation surface reserved for the master
// account: user and clique directories, per-clique maps and the report queue.
type MasterController struct {
	accountService      services.AccountServiceInterface
	cliqueService       services.CliqueServiceInterface
	markerService       services.MarkerServiceInterface
	notificationService services.NotificationServiceInterface
}

func NewMasterController(
	accountService services.AccountServiceInterface,
	cliqueService services.CliqueServiceInterface,
	markerService services.MarkerServiceInterface,
	notificationService services.NotificationServiceInterface,
) *MasterController {
	return &MasterController{
		accountService:      accountService,
		cliqueService:       cliqueService,
		markerService:       markerService,
		notificationService: notificationService,
	}
}

func (m *MasterController) ListUsers(c *gin.Context) {
	dir, err := m.accountService.ListUsers(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, dir, "Users fetched successfully")
}

func (m *MasterController) EditUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req request_models.EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := m.accountService.EditUser(c.Request.Context(), userID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "User updated successfully")
}

func (m *MasterController) DeleteUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := m.accountService.DeleteUser(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "User deleted successfully")
}

func (m *MasterController) ListCliques(c *gin.Context) {
	cliques, err := m.cliqueService.ListAll(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, cliques, "Cliques fetched successfully")
}

func (m *MasterController) CliqueMap(c *gin.Context) {
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}

	features, err := m.markerService.CliqueMap(c.Request.Context(), cliqueID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, features, "Clique map fetched successfully")
}

func (m *MasterController) UserReviewsMap(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}

	features, err := m.markerService.UserReviewsMap(c.Request.Context(), userID, cliqueID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, features, "User reviews fetched successfully")
}

func (m *MasterController) UserEventsMap(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}

	features, err := m.markerService.UserEventsMap(c.Request.Context(), userID, cliqueID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, features, "User events fetched successfully")
}

func (m *MasterController) TransferAdmin(c *gin.Context) {
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := m.cliqueService.TransferAdmin(c.Request.Context(), cliqueID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Admin transferred successfully")
}

func (m *MasterController) RemoveMarker(c *gin.Context) {
	markerID, ok := pathID(c, "markerId")
	if !ok {
		return
	}

	if err := m.markerService.RemoveMarker(c.Request.Context(), markerID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Marker removed successfully")
}

func (m *MasterController) RemoveReview(c *gin.Context) {
	reviewID, ok := pathID(c, "reviewId")
	if !ok {
		return
	}

	if err := m.markerService.RemoveReview(c.Request.Context(), reviewID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Review removed successfully")
}

func (m *MasterController) ListReports(c *gin.Context) {
	reports, err := m.notificationService.ListReports(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reports, "Reports fetched successfully")
}
