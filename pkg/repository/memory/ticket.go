package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

type ticketRepository struct {
	mu      sync.RWMutex
	tickets map[types.TicketID]*model.ApprovalTicket
}

func newTicketRepository() *ticketRepository {
	return &ticketRepository{
		tickets: make(map[types.TicketID]*model.ApprovalTicket),
	}
}

func copyTicket(t *model.ApprovalTicket) *model.ApprovalTicket {
	copied := *t
	if t.DecidedAt != nil {
		decidedAt := *t.DecidedAt
		copied.DecidedAt = &decidedAt
	}
	return &copied
}

func (r *ticketRepository) Get(ctx context.Context, id types.TicketID) (*model.ApprovalTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tickets[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "ticket not found", goerr.V("id", id))
	}
	return copyTicket(t), nil
}

func (r *ticketRepository) Find(ctx context.Context, proposalID types.ProposalID, memberID types.MemberID) (*model.ApprovalTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tickets {
		if t.ProposalID == proposalID && t.MemberID == memberID {
			return copyTicket(t), nil
		}
	}
	return nil, nil
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.ApprovalTicket) (*model.ApprovalTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyTicket(ticket)
	if created.ID == "" {
		created.ID = model.NewTicketID()
	}
	created.Decision = ""
	created.DecidedAt = nil
	created.Comment = ""
	created.CreatedAt = time.Now().UTC()

	r.tickets[created.ID] = created
	return copyTicket(created), nil
}

func (r *ticketRepository) SetURLs(ctx context.Context, id types.TicketID, formURL, approveURL, denyURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.tickets[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "ticket not found", goerr.V("id", id))
	}
	t.FormURL = formURL
	t.ApproveURL = approveURL
	t.DenyURL = denyURL
	return nil
}

func (r *ticketRepository) SetDecision(ctx context.Context, id types.TicketID, decision types.Decision, comment string, decidedAt time.Time) (*model.ApprovalTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.tickets[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "ticket not found", goerr.V("id", id))
	}
	if t.IsDecided() {
		return nil, goerr.Wrap(ErrAlreadyDecided, "decision is write-once", goerr.V("id", id), goerr.V("decision", t.Decision))
	}

	t.Decision = decision
	at := decidedAt.UTC()
	t.DecidedAt = &at
	t.Comment = comment
	return copyTicket(t), nil
}
