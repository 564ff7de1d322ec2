package notion

import (
	"context"
	"time"

	"github.com/jomei/notionapi"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

type ticketRepository struct {
	client *Client
}

func (r *ticketRepository) Get(ctx context.Context, id types.TicketID) (*model.ApprovalTicket, error) {
	page, err := r.client.getPage(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return r.fromPage(page), nil
}

func (r *ticketRepository) Find(ctx context.Context, proposalID types.ProposalID, memberID types.MemberID) (*model.ApprovalTicket, error) {
	// Ticket pages are created by this service, so the primary schema
	// names are reliable for server-side relation filters.
	schema := r.client.schema.Ticket
	pages, err := r.client.queryAll(ctx, r.client.dbs.Ticket, notionapi.AndCompoundFilter{
		notionapi.PropertyFilter{
			Property: canonical(schema.Proposal),
			Relation: &notionapi.RelationFilterCondition{Contains: proposalID.String()},
		},
		notionapi.PropertyFilter{
			Property: canonical(schema.Member),
			Relation: &notionapi.RelationFilterCondition{Contains: memberID.String()},
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query tickets",
			goerr.V("proposalID", proposalID), goerr.V("memberID", memberID))
	}

	if len(pages) == 0 {
		return nil, nil
	}
	return r.fromPage(&pages[0]), nil
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.ApprovalTicket) (*model.ApprovalTicket, error) {
	schema := r.client.schema.Ticket

	page, err := r.client.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(r.client.dbs.Ticket),
		},
		Properties: notionapi.Properties{
			canonical(schema.Proposal): notionapi.RelationProperty{
				Type:     notionapi.PropertyTypeRelation,
				Relation: []notionapi.Relation{{ID: notionapi.PageID(ticket.ProposalID)}},
			},
			canonical(schema.Member): notionapi.RelationProperty{
				Type:     notionapi.PropertyTypeRelation,
				Relation: []notionapi.Relation{{ID: notionapi.PageID(ticket.MemberID)}},
			},
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create ticket",
			goerr.V("proposalID", ticket.ProposalID), goerr.V("memberID", ticket.MemberID))
	}

	created := *ticket
	created.ID = types.TicketID(page.ID.String())
	created.Decision = ""
	created.DecidedAt = nil
	created.Comment = ""
	created.CreatedAt = page.CreatedTime
	return &created, nil
}

func (r *ticketRepository) SetURLs(ctx context.Context, id types.TicketID, formURL, approveURL, denyURL string) error {
	page, err := r.client.getPage(ctx, id.String())
	if err != nil {
		return err
	}

	schema := r.client.schema.Ticket
	props := notionapi.Properties{}
	for _, target := range []struct {
		candidates []string
		url        string
	}{
		{schema.FormURL, formURL},
		{schema.ApproveURL, approveURL},
		{schema.DenyURL, denyURL},
	} {
		name, ok := pickName(page.Properties, target.candidates)
		if !ok || target.url == "" {
			continue
		}
		props[name] = notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  target.url,
		}
	}
	if len(props) == 0 {
		return nil
	}

	_, err = r.client.api.Page.Update(ctx, notionapi.PageID(id), &notionapi.PageUpdateRequest{
		Properties: props,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to set ticket URLs", goerr.V("id", id))
	}
	return nil
}

func (r *ticketRepository) SetDecision(ctx context.Context, id types.TicketID, decision types.Decision, comment string, decidedAt time.Time) (*model.ApprovalTicket, error) {
	page, err := r.client.getPage(ctx, id.String())
	if err != nil {
		return nil, err
	}

	// The Notion API has no compare-and-swap; this read-then-write is the
	// documented best effort for the write-once invariant.
	existing := r.fromPage(page)
	if existing.IsDecided() {
		return nil, goerr.Wrap(ErrAlreadyDecided, "decision is write-once",
			goerr.V("id", id), goerr.V("decision", existing.Decision))
	}

	schema := r.client.schema.Ticket
	opts := r.client.schema.Options

	optionName := canonical(opts.DecisionApproved)
	if decision == types.DecisionDenied {
		optionName = canonical(opts.DecisionDenied)
	}

	decisionName, ok := pickName(page.Properties, schema.Decision)
	if !ok {
		return nil, goerr.New("ticket has no decision property", goerr.V("id", id))
	}
	decidedAtName, ok := pickName(page.Properties, schema.DecidedAt)
	if !ok {
		return nil, goerr.New("ticket has no decided-at property", goerr.V("id", id))
	}

	at := notionapi.Date(decidedAt.UTC())
	props := notionapi.Properties{
		decisionName: notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: optionName},
		},
		decidedAtName: notionapi.DateProperty{
			Type: notionapi.PropertyTypeDate,
			Date: &notionapi.DateObject{Start: &at},
		},
	}

	// Comment is written only when the workspace has a matching property
	if commentName, ok := pickName(page.Properties, schema.Comment); ok {
		var rts []notionapi.RichText
		if comment != "" {
			rts = []notionapi.RichText{{Text: &notionapi.Text{Content: comment}}}
		}
		props[commentName] = notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: rts,
		}
	}

	if _, err := r.client.api.Page.Update(ctx, notionapi.PageID(id), &notionapi.PageUpdateRequest{
		Properties: props,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to record decision", goerr.V("id", id))
	}

	updated := *existing
	updated.Decision = decision
	decidedAtUTC := decidedAt.UTC()
	updated.DecidedAt = &decidedAtUTC
	updated.Comment = comment
	return &updated, nil
}

func (r *ticketRepository) fromPage(page *notionapi.Page) *model.ApprovalTicket {
	schema := r.client.schema.Ticket
	opts := r.client.schema.Options
	props := page.Properties

	t := &model.ApprovalTicket{
		ID:         types.TicketID(page.ID.String()),
		Comment:    textOf(props, schema.Comment),
		CreatedAt:  page.CreatedTime,
		DecidedAt:  dateOf(props, schema.DecidedAt),
		FormURL:    urlOf(props, schema.FormURL),
		ApproveURL: urlOf(props, schema.ApproveURL),
		DenyURL:    urlOf(props, schema.DenyURL),
	}

	if ids := relationIDs(props, schema.Proposal); len(ids) > 0 {
		t.ProposalID = types.ProposalID(ids[0])
	}
	if ids := relationIDs(props, schema.Member); len(ids) > 0 {
		t.MemberID = types.MemberID(ids[0])
	}

	switch name := selectOf(props, schema.Decision); {
	case matchesAlias(opts.DecisionApproved, name):
		t.Decision = types.DecisionApproved
	case matchesAlias(opts.DecisionDenied, name):
		t.Decision = types.DecisionDenied
	}

	return t
}
