package utils

import "errors"

var (
	// not found: lifecycle cascades treat most of these as "nothing to
	// clean up" and return early; route-facing services surface them.
	ErrUserNotFound         = errors.New("user not found")
	ErrCliqueNotFound       = errors.New("clique not found")
	ErrMarkerNotFound       = errors.New("marker not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// authorization
	ErrUnauthorized       = errors.New("insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// conflict
	ErrEmailAlreadyExists = errors.New("email already in use")
	ErrAlreadyMember      = errors.New("already a member of this clique")
	ErrAlreadyReviewed    = errors.New("marker already reviewed by this user")
	ErrAlreadyInvited     = errors.New("user already invited to this clique")
	ErrAlreadyRequested   = errors.New("join request already sent")
	ErrSelfInvite         = errors.New("cannot invite yourself")
	ErrBannedFromClique   = errors.New("user is banned from this clique")

	// validation
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPassword    = errors.New("password must be at least 8 characters long and include an uppercase letter, a digit, and a special character")
	ErrPasswordMismatch   = errors.New("new password and confirmation do not match")
	ErrPasswordUnchanged  = errors.New("new password must differ from the current password")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidVisibility  = errors.New("visibility must be Private, Public or Protected")
	ErrNotCliqueMember    = errors.New("not a member of this clique")
	ErrNotConfirmed       = errors.New("action not confirmed")
	ErrInvalidReportType  = errors.New("unrecognized report reason")
	ErrMissingEventFields = errors.New("date, time and description are required")
)
