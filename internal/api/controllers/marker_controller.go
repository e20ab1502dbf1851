package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cliquemap/internal/models/request_models"
	"cliquemap/internal/services"
	"cliquemap/pkg/middleware"
	"cliquemap/pkg/utils"
)

type MarkerController struct {
	markerService services.MarkerServiceInterface
}

func NewMarkerController(markerService services.MarkerServiceInterface) *MarkerController {
	return &MarkerController{
		markerService: markerService,
	}
}

// Map godoc
// @Summary GeoJSON markers across the user's cliques
// @Tags Markers
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /markers/map [get]
func (m *MarkerController) Map(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}

	features, err := m.markerService.MemberMap(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, features, "Map fetched successfully")
}

func (m *MarkerController) Add(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}

	var req request_models.AddMarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := m.markerService.AddMarker(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{"marker_id": id.String()}, "Marker added successfully")
}

func (m *MarkerController) Rate(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	markerID, ok := pathID(c, "markerId")
	if !ok {
		return
	}

	var req request_models.RateMarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := m.markerService.RateMarker(c.Request.Context(), userID, markerID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, nil, "Review added successfully")
}

func (m *MarkerController) UpdateReview(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	markerID, ok := pathID(c, "markerId")
	if !ok {
		return
	}

	var req request_models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := m.markerService.UpdateReview(c.Request.Context(), userID, markerID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Review updated successfully")
}

func (m *MarkerController) DeleteReview(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	reviewID, ok := pathID(c, "reviewId")
	if !ok {
		return
	}

	if err := m.markerService.DeleteOwnReview(c.Request.Context(), userID, reviewID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Review deleted successfully")
}

// IsOnlyReview lets the client confirm before a delete that would take the
// marker with it.
func (m *MarkerController) IsOnlyReview(c *gin.Context) {
	reviewID, ok := pathID(c, "reviewId")
	if !ok {
		return
	}

	only, err := m.markerService.IsOnlyReview(c.Request.Context(), reviewID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"is_only_review": only}, "Checked successfully")
}
