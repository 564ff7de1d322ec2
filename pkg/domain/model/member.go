package model

import (
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// Member is a person who may receive approval tickets. Managed entirely
// in the record store; read-only from this service.
type Member struct {
	ID              types.MemberID
	DisplayName     string
	IsBoardDirector bool
	IsGeneralMember bool
	// NotificationChannelID is the recipient identifier on the messaging
	// platform (a LINE user ID or Slack user ID). Empty means the member
	// cannot receive notifications.
	NotificationChannelID string
	ServiceStatus         types.ServiceStatus
}

// HasRole reports whether the member's role flag matches the audience
// target. The flags are not mutually exclusive.
func (m *Member) HasRole(target types.AudienceTarget) bool {
	switch target {
	case types.AudienceBoardOfDirectors:
		return m.IsBoardDirector
	case types.AudienceGeneralMembers:
		return m.IsGeneralMember
	default:
		return false
	}
}

// EligibleFor reports whether the member should receive a ticket for a
// proposal with the given audience target: matching role flag, Production
// service status, and a notification channel present.
func (m *Member) EligibleFor(target types.AudienceTarget) bool {
	return m.HasRole(target) &&
		m.ServiceStatus.IsProduction() &&
		m.NotificationChannelID != ""
}
