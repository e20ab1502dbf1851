package request_models

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type VerifyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// UpdatePictureRequest either selects a new avatar ("edit") or resets to the
// default one ("delete").
type UpdatePictureRequest struct {
	Action  string `json:"action" binding:"required,oneof=edit delete"`
	Picture string `json:"picture"`
}

type DeleteAccountRequest struct {
	Confirmed bool `json:"confirmed"`
}

type EditUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}
