package response_models

// Geometry follows the GeoJSON point layout, coordinates are
// [longitude, latitude].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type Feature struct {
	Type       string      `json:"type"`
	Geometry   Geometry    `json:"geometry"`
	Properties interface{} `json:"properties"`
}

func PointFeature(lat, long float64, props interface{}) Feature {
	return Feature{
		Type:       "Feature",
		Geometry:   Geometry{Type: "Point", Coordinates: [2]float64{long, lat}},
		Properties: props,
	}
}

// MarkerProperties backs the member map, one feature per marker with the
// caller's own review pulled out of the list.
type MarkerProperties struct {
	MarkerID      string       `json:"marker_id"`
	Description   string       `json:"description"`
	AverageReview float64      `json:"average_review"`
	TotalReviews  int          `json:"total_reviews"`
	CliqueID      string       `json:"clique_id"`
	CliqueName    string       `json:"clique_name"`
	Color         string       `json:"color"`
	OwnReview     *ReviewView  `json:"own_review,omitempty"`
	Reviews       []ReviewView `json:"reviews"`
	OwnEvents     []EventView  `json:"own_events"`
	Events        []EventView  `json:"events"`
}

type ReviewView struct {
	ReviewID   string  `json:"review_id"`
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	Picture    string  `json:"picture"`
	Stars      float64 `json:"stars"`
	Commentary string  `json:"commentary"`
	Date       string  `json:"date"`
}

// UserReviewProperties backs the per-user review map in the admin views.
type UserReviewProperties struct {
	MarkerID    string  `json:"marker_id"`
	Description string  `json:"description"`
	IsCreator   bool    `json:"is_creator"`
	ReviewID    string  `json:"review_id"`
	Stars       float64 `json:"stars"`
	Commentary  string  `json:"commentary"`
	Date        string  `json:"date"`
}

type UserEventProperties struct {
	MarkerID    string      `json:"marker_id"`
	Description string      `json:"description"`
	IsCreator   bool        `json:"is_creator"`
	Events      []EventView `json:"events"`
}

type EventView struct {
	EventID     string `json:"event_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
}

// CliqueMarkerProperties backs the master map of a single clique.
type CliqueMarkerProperties struct {
	MarkerID      string       `json:"marker_id"`
	Description   string       `json:"description"`
	AverageReview float64      `json:"average_review"`
	TotalReviews  int          `json:"total_reviews"`
	CreatorID     string       `json:"creator_id"`
	CreatorName   string       `json:"creator_name"`
	Reviews       []ReviewView `json:"reviews"`
	Events        []EventView  `json:"events"`
}
