package types

import "fmt"

// Decision represents a recorded answer on an approval ticket. A ticket
// without a decision carries the empty value.
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionDenied   Decision = "DENIED"
)

// AllDecisions returns all valid decisions
func AllDecisions() []Decision {
	return []Decision{
		DecisionApproved,
		DecisionDenied,
	}
}

// IsValid checks if the decision is valid
func (d Decision) IsValid() bool {
	switch d {
	case DecisionApproved,
		DecisionDenied:
		return true
	default:
		return false
	}
}

// String returns the string representation of the decision
func (d Decision) String() string {
	return string(d)
}

// ParseDecision parses a string into a Decision
func ParseDecision(s string) (Decision, error) {
	decision := Decision(s)
	if !decision.IsValid() {
		return "", fmt.Errorf("invalid decision: %s", s)
	}
	return decision, nil
}
