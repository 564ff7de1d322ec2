package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// IssueTickets creates one approval ticket per eligible member of the
// proposal's audience and pushes a notification for each new ticket.
// Members who already have a ticket for the proposal are skipped, so
// re-running after a partial failure only fills the gaps. Notification
// failures are collected in the result, never raised.
func (uc *UseCases) IssueTickets(ctx context.Context, id types.ProposalID) (*model.IssueResult, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrMissingRequiredField, "proposal ID is required")
	}

	proposal, err := uc.repo.Proposal().Get(ctx, id)
	if err != nil {
		return nil, upstream(goerr.Wrap(err, "failed to get proposal", goerr.V("id", id)))
	}
	if !proposal.AudienceTarget.IsValid() {
		return nil, goerr.Wrap(ErrMissingRequiredField, "proposal has no audience target", goerr.V("id", id))
	}

	members, err := uc.repo.Member().ListAudience(ctx, proposal.AudienceTarget)
	if err != nil {
		return nil, upstream(goerr.Wrap(err, "failed to list audience members", goerr.V("audience", proposal.AudienceTarget)))
	}

	result := &model.IssueResult{ProposalID: id}
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.concurrency)

	for _, member := range members {
		if !member.EligibleFor(proposal.AudienceTarget) {
			continue
		}

		eg.Go(func() error {
			return uc.issueOne(egCtx, proposal, member, result, &mu)
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// issueOne handles a single member: find-or-create the ticket, write
// back the approval URLs, and push the notification.
func (uc *UseCases) issueOne(ctx context.Context, proposal *model.Proposal, member *model.Member, result *model.IssueResult, mu *sync.Mutex) error {
	existing, err := uc.repo.Ticket().Find(ctx, proposal.ID, member.ID)
	if err != nil {
		return upstream(goerr.Wrap(err, "failed to find ticket",
			goerr.V("proposalID", proposal.ID), goerr.V("memberID", member.ID)))
	}
	if existing != nil {
		mu.Lock()
		result.Skipped = append(result.Skipped, member.ID)
		mu.Unlock()
		return nil
	}

	ticket := &model.ApprovalTicket{
		ID:         model.NewTicketID(),
		ProposalID: proposal.ID,
		MemberID:   member.ID,
		CreatedAt:  time.Now(),
	}

	created, err := uc.repo.Ticket().Create(ctx, ticket)
	if err != nil {
		return upstream(goerr.Wrap(err, "failed to create ticket",
			goerr.V("proposalID", proposal.ID), goerr.V("memberID", member.ID)))
	}

	formURL, approveURL, denyURL := uc.ticketURLs(created.ID)
	if formURL != "" {
		if err := uc.repo.Ticket().SetURLs(ctx, created.ID, formURL, approveURL, denyURL); err != nil {
			logging.From(ctx).Warn("failed to write ticket URLs",
				"ticketID", created.ID, "error", err)
		}
	}

	notification := buildNotification(proposal, created.ID, formURL, approveURL, denyURL)
	notifyErr := uc.notify(ctx, member, notification)

	mu.Lock()
	defer mu.Unlock()
	result.Created = append(result.Created, created.ID)
	if notifyErr != nil {
		result.NotifyFailures = append(result.NotifyFailures, model.NotifyFailure{
			MemberID: member.ID,
			TicketID: created.ID,
			Err:      notifyErr,
		})
	}
	return nil
}

func (uc *UseCases) notify(ctx context.Context, member *model.Member, n *model.TicketNotification) error {
	if uc.notifier == nil {
		return goerr.New("notifier not configured", goerr.V("memberID", member.ID))
	}
	return uc.notifier.Notify(ctx, member.NotificationChannelID, n)
}

// ticketURLs builds the approval form URLs for a ticket. Empty baseURL
// means no form is exposed and nothing is written back.
func (uc *UseCases) ticketURLs(id types.TicketID) (formURL, approveURL, denyURL string) {
	if uc.baseURL == "" {
		return "", "", ""
	}
	formURL = strings.TrimRight(uc.baseURL, "/") + "/approval/" + string(id)
	return formURL, formURL + "?action=approve", formURL + "?action=deny"
}

func buildNotification(proposal *model.Proposal, ticketID types.TicketID, formURL, approveURL, denyURL string) *model.TicketNotification {
	return &model.TicketNotification{
		TicketID:      ticketID,
		ProposalTitle: proposal.Title,
		IssueLabel:    issueLabel(proposal),
		Description:   proposal.Description,
		ProposerNames: proposal.ProposerNames,
		Deadline:      proposal.Deadline,
		Attachments:   model.AttachmentsFromURLs(proposal.AttachmentURLs),
		FormURL:       formURL,
		ApproveURL:    approveURL,
		DenyURL:       denyURL,
	}
}

// issueLabel renders a short display label for the proposal's position
// in its monthly sequence, empty when no number has been assigned.
func issueLabel(proposal *model.Proposal) string {
	if !proposal.HasIssueNumber() {
		return ""
	}
	created := proposal.CreatedAt.UTC()
	return fmt.Sprintf("%04d-%02d #%d", created.Year(), int(created.Month()), proposal.IssueNumber)
}

// ProcessProposal runs the full pipeline for one proposal: ensure the
// issue number, issue tickets to the audience, then mark the proposal
// sent. The proposal is marked sent even when some pushes failed; the
// failures stay visible in the result.
func (uc *UseCases) ProcessProposal(ctx context.Context, id types.ProposalID) (*model.IssueResult, error) {
	if _, err := uc.EnsureIssueNumber(ctx, id); err != nil {
		return nil, err
	}

	result, err := uc.IssueTickets(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Proposal().SetSendStatus(ctx, id, types.SendStatusSent); err != nil {
		return nil, upstream(goerr.Wrap(err, "failed to mark proposal sent", goerr.V("id", id)))
	}

	return result, nil
}
