package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// RecordDecision records an approve/deny decision on a ticket. The
// decision is write-once: if one is already present the existing record
// is returned with AlreadyDecided set and nothing is modified. Losing a
// race to another recorder is reported the same way, not as an error.
func (uc *UseCases) RecordDecision(ctx context.Context, id types.TicketID, decision types.Decision, comment string) (*model.DecisionResult, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrMissingRequiredField, "ticket ID is required")
	}
	if !decision.IsValid() {
		return nil, goerr.Wrap(ErrMissingRequiredField, "decision is required", goerr.V("decision", decision))
	}

	ticket, err := uc.repo.Ticket().Get(ctx, id)
	if err != nil {
		return nil, upstream(goerr.Wrap(err, "failed to get ticket", goerr.V("id", id)))
	}

	if ticket.IsDecided() {
		return decidedResult(ticket), nil
	}

	updated, err := uc.repo.Ticket().SetDecision(ctx, id, decision, comment, time.Now())
	if err != nil {
		if errors.Is(err, ErrAlreadyDecided) {
			existing, getErr := uc.repo.Ticket().Get(ctx, id)
			if getErr != nil {
				return nil, upstream(goerr.Wrap(getErr, "failed to re-read decided ticket", goerr.V("id", id)))
			}
			return decidedResult(existing), nil
		}
		return nil, upstream(goerr.Wrap(err, "failed to set decision", goerr.V("id", id)))
	}

	return &model.DecisionResult{
		TicketID:  updated.ID,
		Decision:  updated.Decision,
		Comment:   updated.Comment,
		DecidedAt: decidedAt(updated),
	}, nil
}

// decidedResult builds the success-shaped outcome for a ticket whose
// decision already exists: the original values, untouched.
func decidedResult(ticket *model.ApprovalTicket) *model.DecisionResult {
	return &model.DecisionResult{
		TicketID:       ticket.ID,
		Decision:       ticket.Decision,
		Comment:        ticket.Comment,
		DecidedAt:      decidedAt(ticket),
		AlreadyDecided: true,
	}
}

func decidedAt(ticket *model.ApprovalTicket) time.Time {
	if ticket.DecidedAt != nil {
		return *ticket.DecidedAt
	}
	return time.Time{}
}
