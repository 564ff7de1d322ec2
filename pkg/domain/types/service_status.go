package types

import "fmt"

// ServiceStatus represents a member's enrollment status in the approval
// service. Only Production members receive tickets and notifications.
type ServiceStatus string

const (
	ServiceStatusProduction ServiceStatus = "PRODUCTION"
	ServiceStatusTest       ServiceStatus = "TEST"
	ServiceStatusSuspended  ServiceStatus = "SUSPENDED"
)

// AllServiceStatuses returns all valid service statuses
func AllServiceStatuses() []ServiceStatus {
	return []ServiceStatus{
		ServiceStatusProduction,
		ServiceStatusTest,
		ServiceStatusSuspended,
	}
}

// IsValid checks if the service status is valid
func (s ServiceStatus) IsValid() bool {
	switch s {
	case ServiceStatusProduction,
		ServiceStatusTest,
		ServiceStatusSuspended:
		return true
	default:
		return false
	}
}

// IsProduction reports whether the member is enrolled for real deliveries
func (s ServiceStatus) IsProduction() bool {
	return s == ServiceStatusProduction
}

// String returns the string representation of the service status
func (s ServiceStatus) String() string {
	return string(s)
}

// ParseServiceStatus parses a string into a ServiceStatus
func ParseServiceStatus(s string) (ServiceStatus, error) {
	status := ServiceStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid service status: %s", s)
	}
	return status, nil
}
