package request_models

import "github.com/google/uuid"

type CreateCliqueRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Visibility  string `json:"visibility" binding:"required"`
	Icon        string `json:"icon"`
}

type InviteRequest struct {
	Email    string    `json:"email" binding:"required"`
	CliqueID uuid.UUID `json:"clique_id" binding:"required"`
}

type BanRequest struct {
	Reason string `json:"reason"`
}

type UpdateIconRequest struct {
	Icon string `json:"icon" binding:"required"`
}

type UpdateVisibilityRequest struct {
	Visibility string `json:"visibility" binding:"required"`
}
