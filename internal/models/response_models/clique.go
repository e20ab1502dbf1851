package response_models

type SearchResult struct {
	CliqueID    string `json:"clique_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
	Icon        string `json:"icon"`
	AdminName   string `json:"admin_name"`
	MemberCount int64  `json:"member_count"`
	MarkerCount int    `json:"marker_count"`
	IsMember    bool   `json:"is_member"`
}

type CliqueDetail struct {
	CliqueID    string `json:"clique_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
	Icon        string `json:"icon"`
	AdminID     string `json:"admin_id"`
	AdminName   string `json:"admin_name"`
	MemberCount int64  `json:"member_count"`
	MarkerCount int    `json:"marker_count"`
}

type FeedUpdate struct {
	Kind       string  `json:"kind"`
	Date       string  `json:"date"`
	CliqueName string  `json:"clique_name"`
	MarkerName string  `json:"marker_name"`
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	Picture    string  `json:"picture"`
	Stars      float64 `json:"stars,omitempty"`
	Commentary string  `json:"commentary,omitempty"`
	Time       string  `json:"time,omitempty"`
}

type RankEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

type Scoreboard struct {
	CliqueID   string      `json:"clique_id"`
	CliqueName string      `json:"clique_name"`
	Ranking    []RankEntry `json:"ranking"`
}

type Feed struct {
	Cliques     []MembershipSummary `json:"cliques"`
	Updates     []FeedUpdate        `json:"updates"`
	Scoreboards []Scoreboard        `json:"scoreboards"`
}

type MemberStat struct {
	UserID        string  `json:"user_id"`
	Name          string  `json:"name"`
	Picture       string  `json:"picture"`
	JoinedDate    string  `json:"joined_date"`
	MarkersAdded  int64   `json:"markers_added"`
	ReviewsAdded  int64   `json:"reviews_added"`
	AverageRating float64 `json:"average_rating"`
}

type AdminDashboard struct {
	CliqueID      string         `json:"clique_id"`
	CliqueName    string         `json:"clique_name"`
	Admin         MemberStat     `json:"admin"`
	Members       []MemberStat   `json:"members"`
	Banned        []BannedRecord `json:"banned"`
	TimeRange     string         `json:"time_range"`
	JoinedCount   int64          `json:"joined_count"`
	MarkerCount   int64          `json:"marker_count"`
	ReviewCount   int64          `json:"review_count"`
	Labels        []string       `json:"labels"`
	MembersSeries []int          `json:"members_series"`
	MarkersSeries []int          `json:"markers_series"`
	ReviewsSeries []int          `json:"reviews_series"`
}
