package response_models

type UserProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type MembershipSummary struct {
	CliqueID     string `json:"clique_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Visibility   string `json:"visibility"`
	Icon         string `json:"icon"`
	Status       string `json:"status"`
	JoinedDate   string `json:"joined_date"`
	ReviewsAdded int64  `json:"reviews_added"`
	MarkerCount  int    `json:"marker_count"`
}

type ReviewSummary struct {
	ReviewID   string  `json:"review_id"`
	MarkerID   string  `json:"marker_id"`
	MarkerName string  `json:"marker_name"`
	CliqueName string  `json:"clique_name"`
	Stars      float64 `json:"stars"`
	Commentary string  `json:"commentary"`
	Date       string  `json:"date"`
}

type EventSummary struct {
	EventID     string `json:"event_id"`
	MarkerID    string `json:"marker_id"`
	MarkerName  string `json:"marker_name"`
	CliqueName  string `json:"clique_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// SettingsOverview aggregates everything the account settings page shows.
type SettingsOverview struct {
	Profile UserProfile         `json:"profile"`
	Cliques []MembershipSummary `json:"cliques"`
	Reviews []ReviewSummary     `json:"reviews"`
	Events  []EventSummary      `json:"events"`
}

type BannedRecord struct {
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	CliqueID   string `json:"clique_id"`
	CliqueName string `json:"clique_name"`
	Reason     string `json:"reason"`
	AdminName  string `json:"admin_name"`
}

type UserDirectory struct {
	Users  []UserProfile  `json:"users"`
	Banned []BannedRecord `json:"banned"`
}
