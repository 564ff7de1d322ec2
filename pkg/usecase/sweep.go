package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
)

// SweepPending processes every proposal still marked pending: assigns
// its issue number, issues tickets, and marks it sent. One failing
// proposal does not stop the sweep; it stays pending and is retried on
// the next run.
func (uc *UseCases) SweepPending(ctx context.Context) (*model.SweepResult, error) {
	pending, err := uc.repo.Proposal().ListPending(ctx)
	if err != nil {
		return nil, upstream(goerr.Wrap(err, "failed to list pending proposals"))
	}

	result := &model.SweepResult{}
	for _, proposal := range pending {
		if _, err := uc.ProcessProposal(ctx, proposal.ID); err != nil {
			logging.From(ctx).Error("failed to process pending proposal",
				"proposalID", proposal.ID, "error", err)
			result.Failed = append(result.Failed, model.SweepFailure{
				ProposalID: proposal.ID,
				Err:        err,
			})
			continue
		}
		result.Processed = append(result.Processed, proposal.ID)
	}

	return result, nil
}
