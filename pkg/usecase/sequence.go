package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// EnsureIssueNumber assigns the proposal's sequential issue number and
// returns it. Numbering is scoped to the (month, audience, category)
// bucket and starts at 1. A proposal that already carries a number keeps
// it; re-running never renumbers.
func (uc *UseCases) EnsureIssueNumber(ctx context.Context, id types.ProposalID) (int, error) {
	if err := id.Validate(); err != nil {
		return 0, goerr.Wrap(ErrMissingRequiredField, "proposal ID is required")
	}

	proposal, err := uc.repo.Proposal().Get(ctx, id)
	if err != nil {
		return 0, upstream(goerr.Wrap(err, "failed to get proposal", goerr.V("id", id)))
	}

	if proposal.HasIssueNumber() {
		return proposal.IssueNumber, nil
	}

	if !proposal.AudienceTarget.IsValid() {
		return 0, goerr.Wrap(ErrMissingRequiredField, "proposal has no audience target", goerr.V("id", id))
	}
	if proposal.CreatedAt.IsZero() {
		return 0, goerr.Wrap(ErrMissingRequiredField, "proposal has no creation time", goerr.V("id", id))
	}

	next, err := uc.nextIssueNumber(ctx, proposal)
	if err != nil {
		return 0, err
	}

	if err := uc.repo.Proposal().SetIssueNumber(ctx, id, next); err != nil {
		return 0, upstream(goerr.Wrap(err, "failed to set issue number", goerr.V("id", id), goerr.V("number", next)))
	}

	return next, nil
}

// nextIssueNumber scans the proposal's bucket and returns max assigned
// number + 1. Category matching happens here because category keys can
// come from fallback properties the store cannot filter on.
func (uc *UseCases) nextIssueNumber(ctx context.Context, proposal *model.Proposal) (int, error) {
	bucket := proposal.Bucket()

	siblings, err := uc.repo.Proposal().ListByMonth(ctx, bucket)
	if err != nil {
		return 0, upstream(goerr.Wrap(err, "failed to list bucket proposals", goerr.V("bucket", bucket)))
	}

	max := 0
	for _, sibling := range siblings {
		if sibling.ID == proposal.ID {
			continue
		}
		if sibling.CategoryKey() != bucket.Category {
			continue
		}
		if sibling.IssueNumber > max {
			max = sibling.IssueNumber
		}
	}

	return max + 1, nil
}
