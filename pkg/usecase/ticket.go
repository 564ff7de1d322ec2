package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// GetTicketDetail fetches a ticket together with its proposal, for
// rendering the approval form.
func (uc *UseCases) GetTicketDetail(ctx context.Context, id types.TicketID) (*model.ApprovalTicket, *model.Proposal, error) {
	if err := id.Validate(); err != nil {
		return nil, nil, goerr.Wrap(ErrMissingRequiredField, "ticket ID is required")
	}

	ticket, err := uc.repo.Ticket().Get(ctx, id)
	if err != nil {
		return nil, nil, upstream(goerr.Wrap(err, "failed to get ticket", goerr.V("id", id)))
	}

	proposal, err := uc.repo.Proposal().Get(ctx, ticket.ProposalID)
	if err != nil {
		return nil, nil, upstream(goerr.Wrap(err, "failed to get ticket proposal",
			goerr.V("ticketID", id), goerr.V("proposalID", ticket.ProposalID)))
	}

	return ticket, proposal, nil
}
