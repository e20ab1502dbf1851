package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cliquemap/internal/models/request_models"
	"cliquemap/internal/services"
	"cliquemap/pkg/middleware"
	"cliquemap/pkg/utils"
)

type CliqueController struct {
	cliqueService services.CliqueServiceInterface
}

func NewCliqueController(cliqueService services.CliqueServiceInterface) *CliqueController {
	return &CliqueController{
		cliqueService: cliqueService,
	}
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// Create godoc
// @Summary Create a clique
// @Tags Cliques
// @Accept json
// @Produce json
// @Param request body request_models.CreateCliqueRequest true "Clique payload"
// @Success 201 {object} utils.APIResponse
// @Router /cliques [post]
func (cc *CliqueController) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}

	var req request_models.CreateCliqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := cc.cliqueService.CreateClique(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{"clique_id": id.String()}, "Clique created successfully")
}

// Feed godoc
// @Summary Activity feed across the user's cliques
// @Tags Cliques
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /cliques/feed [get]
func (cc *CliqueController) Feed(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}

	feed, err := cc.cliqueService.Feed(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, feed, "Feed fetched successfully")
}

func (cc *CliqueController) Search(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}

	results, err := cc.cliqueService.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, results, "Search completed")
}

func (cc *CliqueController) Autocomplete(c *gin.Context) {
	names, err := cc.cliqueService.Autocomplete(c.Request.Context(), c.Query("term"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, names, "Suggestions fetched")
}

func (cc *CliqueController) Join(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}

	if err := cc.cliqueService.Join(c.Request.Context(), userID, cliqueID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Joined clique successfully")
}

func (cc *CliqueController) RequestJoin(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}

	if err := cc.cliqueService.RequestJoin(c.Request.Context(), userID, cliqueID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Join request sent")
}

// Invite godoc
// @Summary Invite a user to a clique by email
// @Tags Cliques
// @Accept json
// @Produce json
// @Param request body request_models.InviteRequest true "Invite payload"
// @Success 200 {object} utils.APIResponse
// @Router /cliques/invite [post]
func (cc *CliqueController) Invite(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}

	var req request_models.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	inviteType, err := cc.cliqueService.SendInvite(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"invite_type": string(inviteType)}, "Invitation sent")
}

func (cc *CliqueController) AcceptInvite(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	noteID, ok := pathID(c, "notificationId")
	if !ok {
		return
	}

	if err := cc.cliqueService.AcceptInvite(c.Request.Context(), userID, noteID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Invitation accepted")
}

func (cc *CliqueController) AcceptJoinRequest(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	noteID, ok := pathID(c, "notificationId")
	if !ok {
		return
	}

	if err := cc.cliqueService.AcceptJoinRequest(c.Request.Context(), userID, noteID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Join request accepted")
}

func (cc *CliqueController) Leave(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}

	if err := cc.cliqueService.Leave(c.Request.Context(), userID, cliqueID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Left clique successfully")
}

func (cc *CliqueController) Kick(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}
	targetID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	err := cc.cliqueService.Kick(c.Request.Context(), userID, middleware.IsMaster(c), cliqueID, targetID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Member removed")
}

func (cc *CliqueController) Ban(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}
	targetID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req request_models.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := cc.cliqueService.Ban(c.Request.Context(), userID, middleware.IsMaster(c), cliqueID, targetID, req.Reason)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Member banned")
}

func (cc *CliqueController) Unban(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}
	targetID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	err := cc.cliqueService.Unban(c.Request.Context(), userID, middleware.IsMaster(c), cliqueID, targetID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Member unbanned")
}

func (cc *CliqueController) InviteAdmin(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}
	targetID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := cc.cliqueService.SendAdminInvitation(c.Request.Context(), userID, cliqueID, targetID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Admin invitation sent")
}

func (cc *CliqueController) UpdateIcon(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}

	var req request_models.UpdateIconRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := cc.cliqueService.UpdateIcon(c.Request.Context(), userID, cliqueID, req.Icon); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Icon updated")
}

func (cc *CliqueController) UpdateVisibility(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}

	var req request_models.UpdateVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := cc.cliqueService.UpdateVisibility(c.Request.Context(), userID, cliqueID, req.Visibility); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Visibility updated")
}

func (cc *CliqueController) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}

	err := cc.cliqueService.Delete(c.Request.Context(), userID, middleware.IsMaster(c), cliqueID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Clique deleted")
}

// Dashboard godoc
// @Summary Admin dashboard for a clique
// @Description Member stats, bans and activity series over a time range
// @Tags Cliques
// @Produce json
// @Param cliqueId path string true "Clique id"
// @Param range query string false "week, month or year"
// @Success 200 {object} utils.APIResponse
// @Router /cliques/{cliqueId}/dashboard [get]
func (cc *CliqueController) Dashboard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}

	timeRange := c.DefaultQuery("range", "week")
	dash, err := cc.cliqueService.AdminDashboard(c.Request.Context(), userID, middleware.IsMaster(c), cliqueID, timeRange)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, dash, "Dashboard fetched successfully")
}
