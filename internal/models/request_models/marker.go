package request_models

import "github.com/google/uuid"

type AddMarkerRequest struct {
	Latitude   float64   `json:"latitude" binding:"required"`
	Longitude  float64   `json:"longitude" binding:"required"`
	Title      string    `json:"title" binding:"required"`
	Commentary string    `json:"commentary"`
	Rating     int       `json:"rating" binding:"required,min=1,max=5"`
	CliqueID   uuid.UUID `json:"clique_id" binding:"required"`
}

type RateMarkerRequest struct {
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Commentary string `json:"commentary"`
}

type UpdateReviewRequest struct {
	Stars      int    `json:"stars" binding:"required,min=1,max=5"`
	Commentary string `json:"commentary"`
}
