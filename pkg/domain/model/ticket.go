package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// NewTicketID generates a UUID v4 TicketID. The Notion backend ignores
// this and uses the store-assigned page ID instead.
func NewTicketID() types.TicketID {
	return types.TicketID(uuid.New().String())
}

// ApprovalTicket is one member's pending or decided response to one
// proposal. At most one ticket exists per (proposal, member) pair, and
// the decision is write-once.
type ApprovalTicket struct {
	ID         types.TicketID
	ProposalID types.ProposalID
	MemberID   types.MemberID
	Decision   types.Decision // empty until decided
	DecidedAt  *time.Time
	Comment    string
	CreatedAt  time.Time

	// URLs of the approval form written back after issuance so that the
	// record store shows where each ticket can be answered.
	FormURL    string
	ApproveURL string
	DenyURL    string
}

// IsDecided reports whether a decision has been recorded. Decided is
// terminal: no transition back to open exists.
func (t *ApprovalTicket) IsDecided() bool {
	return t.Decision != ""
}
