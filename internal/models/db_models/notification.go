package db_models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType is the closed set of signals the app emits, plus a
// catch-all for free-form report reasons ("... report"). The column stays a
// string; ParseNotificationType validates values at the boundary.
type NotificationType string

const (
	NotificationBan                   NotificationType = "ban"
	NotificationUnban                 NotificationType = "unban"
	NotificationKick                  NotificationType = "kick"
	NotificationInvitation            NotificationType = "invitation"
	NotificationInvitationAdmin       NotificationType = "invitation admin"
	NotificationInvitationProtected   NotificationType = "invitation protected"
	NotificationInvitationBecomeAdmin NotificationType = "invitation to become admin"
	NotificationAdminReplacement      NotificationType = "admin replacement"
	NotificationAcceptInvitation      NotificationType = "accept invitation"
	NotificationJoinRequest           NotificationType = "request to join protected"
)

// Report reasons a member can file against another member.
const (
	ReportBotLike          NotificationType = "bot like report"
	ReportOverwhelmingBias NotificationType = "overwhelming bias report"
	ReportHurtfulLanguage  NotificationType = "hurtful language report"
)

var knownNotificationTypes = map[NotificationType]struct{}{
	NotificationBan:                   {},
	NotificationUnban:                 {},
	NotificationKick:                  {},
	NotificationInvitation:            {},
	NotificationInvitationAdmin:       {},
	NotificationInvitationProtected:   {},
	NotificationInvitationBecomeAdmin: {},
	NotificationAdminReplacement:      {},
	NotificationAcceptInvitation:      {},
	NotificationJoinRequest:           {},
}

// IsReport reports whether t is a report-type signal, including free-form
// reasons that end in " report".
func (t NotificationType) IsReport() bool {
	return strings.HasSuffix(string(t), " report")
}

func (t NotificationType) IsInvitation() bool {
	return t == NotificationInvitation || t == NotificationInvitationAdmin || t == NotificationInvitationProtected
}

// ParseNotificationType returns the typed value for s, accepting the closed
// set plus report reasons. ok is false for anything else.
func ParseNotificationType(s string) (NotificationType, bool) {
	t := NotificationType(s)
	if _, known := knownNotificationTypes[t]; known {
		return t, true
	}
	if t.IsReport() {
		return t, true
	}
	return "", false
}

type Notification struct {
	ID       uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Type     NotificationType `gorm:"size:100;not null"`
	UserID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	CliqueID uuid.UUID        `gorm:"type:uuid;not null;index"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
