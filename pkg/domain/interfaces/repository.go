package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// Repository defines the interface for record store access. All durable
// state lives behind this interface; the service holds no local state.
type Repository interface {
	Proposal() ProposalRepository
	Member() MemberRepository
	Ticket() TicketRepository

	Close() error
}

// ProposalRepository defines the interface for Proposal data access
type ProposalRepository interface {
	// Get retrieves a proposal by ID
	Get(ctx context.Context, id types.ProposalID) (*model.Proposal, error)

	// ListByMonth retrieves proposals created within the bucket's calendar
	// month with a matching audience target. Category filtering is the
	// caller's responsibility: category keys may come from fallback
	// properties the store cannot filter on server-side.
	ListByMonth(ctx context.Context, bucket model.SequenceBucket) ([]*model.Proposal, error)

	// ListPending retrieves proposals whose send status is pending
	ListPending(ctx context.Context) ([]*model.Proposal, error)

	// SetIssueNumber persists the assigned issue number
	SetIssueNumber(ctx context.Context, id types.ProposalID, n int) error

	// SetSendStatus persists the send status
	SetSendStatus(ctx context.Context, id types.ProposalID, status types.SendStatus) error
}

// MemberRepository defines the interface for Member data access.
// Members are managed externally and read-only here.
type MemberRepository interface {
	// Get retrieves a member by ID
	Get(ctx context.Context, id types.MemberID) (*model.Member, error)

	// ListAudience retrieves members whose role flag matches the audience
	// target and whose service status is Production. Notification channel
	// presence is not part of this contract; the caller filters it.
	ListAudience(ctx context.Context, target types.AudienceTarget) ([]*model.Member, error)
}

// TicketRepository defines the interface for ApprovalTicket data access
type TicketRepository interface {
	// Get retrieves a ticket by ID
	Get(ctx context.Context, id types.TicketID) (*model.ApprovalTicket, error)

	// Find retrieves the ticket for a (proposal, member) pair. Returns
	// nil, nil when no such ticket exists.
	Find(ctx context.Context, proposalID types.ProposalID, memberID types.MemberID) (*model.ApprovalTicket, error)

	// Create creates a new ticket with an empty decision
	Create(ctx context.Context, ticket *model.ApprovalTicket) (*model.ApprovalTicket, error)

	// SetURLs writes the approval form URLs onto the ticket
	SetURLs(ctx context.Context, id types.TicketID, formURL, approveURL, denyURL string) error

	// SetDecision records the decision in a single conditional write.
	// Fails with the backend's ErrAlreadyDecided when a decision is
	// already present; the existing record is never overwritten.
	SetDecision(ctx context.Context, id types.TicketID, decision types.Decision, comment string, decidedAt time.Time) (*model.ApprovalTicket, error)
}
