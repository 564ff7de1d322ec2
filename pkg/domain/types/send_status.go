package types

import "fmt"

// SendStatus tracks whether tickets and notifications have been issued
// for a proposal. Used by the pending sweep to pick up new proposals.
type SendStatus string

const (
	SendStatusPending SendStatus = "PENDING"
	SendStatusSent    SendStatus = "SENT"
)

// AllSendStatuses returns all valid send statuses
func AllSendStatuses() []SendStatus {
	return []SendStatus{
		SendStatusPending,
		SendStatusSent,
	}
}

// IsValid checks if the send status is valid
func (s SendStatus) IsValid() bool {
	switch s {
	case SendStatusPending,
		SendStatusSent:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as SendStatusPending so
// that proposals created before the field existed are still swept.
func (s SendStatus) Normalize() SendStatus {
	if s == "" {
		return SendStatusPending
	}
	return s
}

// String returns the string representation of the send status
func (s SendStatus) String() string {
	return string(s)
}

// ParseSendStatus parses a string into a SendStatus
func ParseSendStatus(s string) (SendStatus, error) {
	status := SendStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid send status: %s", s)
	}
	return status, nil
}
