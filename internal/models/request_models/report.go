package request_models

import "github.com/google/uuid"

type ReportRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	CliqueID uuid.UUID `json:"clique_id" binding:"required"`
	Reasons  []string  `json:"reasons" binding:"required,min=1"`
}
