package response_models

type NotificationView struct {
	NotificationID   string `json:"notification_id"`
	Type             string `json:"type"`
	CliqueID         string `json:"clique_id"`
	CliqueName       string `json:"clique_name"`
	CliqueVisibility string `json:"clique_visibility,omitempty"`
	UserID           string `json:"user_id,omitempty"`
	UserName         string `json:"user_name,omitempty"`
}

type ReportView struct {
	NotificationID string `json:"notification_id"`
	Type           string `json:"type"`
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	CliqueID       string `json:"clique_id"`
	CliqueName     string `json:"clique_name"`
}
