package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

type proposalRepository struct {
	mu        sync.RWMutex
	proposals map[types.ProposalID]*model.Proposal
}

func newProposalRepository() *proposalRepository {
	return &proposalRepository{
		proposals: make(map[types.ProposalID]*model.Proposal),
	}
}

func copyProposal(p *model.Proposal) *model.Proposal {
	copied := *p
	if p.Deadline != nil {
		deadline := *p.Deadline
		copied.Deadline = &deadline
	}
	copied.ProposerNames = append([]string(nil), p.ProposerNames...)
	copied.AttachmentURLs = append([]string(nil), p.AttachmentURLs...)
	return &copied
}

// Put stores a proposal as-is. Proposals are created externally in
// production; this is the seam for tests and development seeding.
func (r *proposalRepository) Put(p *model.Proposal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.proposals[p.ID] = copyProposal(p)
}

func (r *proposalRepository) Get(ctx context.Context, id types.ProposalID) (*model.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.proposals[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "proposal not found", goerr.V("id", id))
	}
	return copyProposal(p), nil
}

func (r *proposalRepository) ListByMonth(ctx context.Context, bucket model.SequenceBucket) ([]*model.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start, end := bucket.MonthRange()

	result := make([]*model.Proposal, 0)
	for _, p := range r.proposals {
		created := p.CreatedAt.UTC()
		if created.Before(start) || !created.Before(end) {
			continue
		}
		if p.AudienceTarget != bucket.Audience {
			continue
		}
		result = append(result, copyProposal(p))
	}
	return result, nil
}

func (r *proposalRepository) ListPending(ctx context.Context) ([]*model.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Proposal, 0)
	for _, p := range r.proposals {
		if p.SendStatus.Normalize() == types.SendStatusPending {
			result = append(result, copyProposal(p))
		}
	}
	return result, nil
}

func (r *proposalRepository) SetIssueNumber(ctx context.Context, id types.ProposalID, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.proposals[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "proposal not found", goerr.V("id", id))
	}
	p.IssueNumber = n
	return nil
}

func (r *proposalRepository) SetSendStatus(ctx context.Context, id types.ProposalID, status types.SendStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.proposals[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "proposal not found", goerr.V("id", id))
	}
	p.SendStatus = status
	return nil
}
