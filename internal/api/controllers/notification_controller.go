package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cliquemap/internal/models/request_models"
	"cliquemap/internal/services"
	"cliquemap/pkg/middleware"
	"cliquemap/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
}

func NewNotificationController(notificationService services.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

func (n *NotificationController) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}

	notifications, err := n.notificationService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, notifications, "Notifications fetched successfully")
}

func (n *NotificationController) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	noteID, ok := pathID(c, "notificationId")
	if !ok {
		return
	}

	err := n.notificationService.Delete(c.Request.Context(), userID, middleware.IsMaster(c), noteID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Notification deleted successfully")
}

// Report godoc
// @Summary Report a user for behavior in a clique
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body request_models.ReportRequest true "Report payload"
// @Success 200 {object} utils.APIResponse
// @Router /notifications/report [post]
func (n *NotificationController) Report(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}

	var req request_models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := n.notificationService.Report(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Report submitted successfully")
}
