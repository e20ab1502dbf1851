package db_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNotificationType(t *testing.T) {
	known := []string{
		"ban", "unban", "kick", "invitation", "invitation admin",
		"invitation protected", "invitation to become admin",
		"admin replacement", "accept invitation", "request to join protected",
		"bot like report", "overwhelming bias report", "hurtful language report",
	}
	for _, s := range known {
		got, ok := ParseNotificationType(s)
		assert.True(t, ok, s)
		assert.Equal(t, NotificationType(s), got)
	}

	for _, s := range []string{"", "party", "reportage", "invitation x"} {
		_, ok := ParseNotificationType(s)
		assert.False(t, ok, s)
	}
}

func TestIsReportMatchesSuffix(t *testing.T) {
	assert.True(t, ReportBotLike.IsReport())
	assert.True(t, ReportHurtfulLanguage.IsReport())
	assert.True(t, NotificationType("made up report").IsReport())
	assert.False(t, NotificationInvitation.IsReport())
	assert.False(t, NotificationType("reportage").IsReport())
}

func TestIsInvitation(t *testing.T) {
	assert.True(t, NotificationInvitation.IsInvitation())
	assert.True(t, NotificationInvitationAdmin.IsInvitation())
	assert.True(t, NotificationInvitationProtected.IsInvitation())
	assert.False(t, NotificationKick.IsInvitation())
	assert.False(t, NotificationJoinRequest.IsInvitation())
}
