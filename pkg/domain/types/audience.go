package types

import "fmt"

// AudienceTarget represents which population of members must respond to a
// proposal.
type AudienceTarget string

const (
	AudienceBoardOfDirectors AudienceTarget = "BOARD_OF_DIRECTORS"
	AudienceGeneralMembers   AudienceTarget = "GENERAL_MEMBERS"
)

// AllAudienceTargets returns all valid audience targets
func AllAudienceTargets() []AudienceTarget {
	return []AudienceTarget{
		AudienceBoardOfDirectors,
		AudienceGeneralMembers,
	}
}

// IsValid checks if the audience target is valid
func (a AudienceTarget) IsValid() bool {
	switch a {
	case AudienceBoardOfDirectors,
		AudienceGeneralMembers:
		return true
	default:
		return false
	}
}

// String returns the string representation of the audience target
func (a AudienceTarget) String() string {
	return string(a)
}

// ParseAudienceTarget parses a string into an AudienceTarget
func ParseAudienceTarget(s string) (AudienceTarget, error) {
	target := AudienceTarget(s)
	if !target.IsValid() {
		return "", fmt.Errorf("invalid audience target: %s", s)
	}
	return target, nil
}
