package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cliquemap/internal/models/request_models"
	"cliquemap/internal/services"
	"cliquemap/pkg/middleware"
	"cliquemap/pkg/utils"
)

type EventController struct {
	eventService services.EventServiceInterface
}

func NewEventController(eventService services.EventServiceInterface) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

func (e *EventController) Add(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	markerID, ok := pathID(c, "markerId")
	if !ok {
		return
	}
	cliqueID, ok := pathID(c, "cliqueId")
	if !ok {
		return
	}

	var req request_models.AddEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := e.eventService.Add(c.Request.Context(), userID, markerID, cliqueID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{"event_id": id.String()}, "Event created successfully")
}

func (e *EventController) ListOwnForMarker(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	markerID, ok := pathID(c, "markerId")
	if !ok {
		return
	}

	events, err := e.eventService.ListOwnForMarker(c.Request.Context(), userID, markerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, events, "Events fetched successfully")
}

func (e *EventController) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}

	var req request_models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := e.eventService.Update(c.Request.Context(), userID, middleware.IsMaster(c), eventID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Event updated successfully")
}

func (e *EventController) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}

	err := e.eventService.Delete(c.Request.Context(), userID, middleware.IsMaster(c), eventID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Event deleted successfully")
}
