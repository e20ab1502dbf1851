package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError translates sentinel service errors into HTTP responses.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCliqueNotFound),
		errors.Is(err, ErrMarkerNotFound),
		errors.Is(err, ErrReviewNotFound),
		errors.Is(err, ErrEventNotFound),
		errors.Is(err, ErrNotificationNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrAlreadyMember),
		errors.Is(err, ErrAlreadyReviewed),
		errors.Is(err, ErrAlreadyInvited),
		errors.Is(err, ErrAlreadyRequested),
		errors.Is(err, ErrSelfInvite),
		errors.Is(err, ErrBannedFromClique):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrPasswordUnchanged),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrInvalidVisibility),
		errors.Is(err, ErrNotCliqueMember),
		errors.Is(err, ErrNotConfirmed),
		errors.Is(err, ErrInvalidReportType),
		errors.Is(err, ErrMissingEventFields):
		RespondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("internal error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
