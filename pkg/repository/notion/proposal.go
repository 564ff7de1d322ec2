package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
)

type proposalRepository struct {
	client *Client
}

func (r *proposalRepository) Get(ctx context.Context, id types.ProposalID) (*model.Proposal, error) {
	page, err := r.client.getPage(ctx, id.String())
	if err != nil {
		return nil, err
	}

	p := r.fromPage(page)
	r.resolveProposerNames(ctx, page, p)
	return p, nil
}

func (r *proposalRepository) ListByMonth(ctx context.Context, bucket model.SequenceBucket) ([]*model.Proposal, error) {
	start, end := bucket.MonthRange()
	onOrAfter := notionapi.Date(start)
	before := notionapi.Date(end)

	// The created-time range is the only server-side filterable part of
	// the bucket: audience and category may live under fallback property
	// names the API cannot filter on, so they are matched client-side.
	pages, err := r.client.queryAll(ctx, r.client.dbs.Proposal, &notionapi.TimestampFilter{
		Timestamp: "created_time",
		CreatedTime: &notionapi.DateFilterCondition{
			OnOrAfter: &onOrAfter,
			Before:    &before,
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query proposals by month", goerr.V("bucket", bucket))
	}

	result := make([]*model.Proposal, 0, len(pages))
	for i := range pages {
		p := r.fromPage(&pages[i])
		if p.AudienceTarget != bucket.Audience {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *proposalRepository) ListPending(ctx context.Context) ([]*model.Proposal, error) {
	pages, err := r.client.queryAll(ctx, r.client.dbs.Proposal, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query proposals")
	}

	result := make([]*model.Proposal, 0)
	for i := range pages {
		p := r.fromPage(&pages[i])
		if p.SendStatus.Normalize() == types.SendStatusPending {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *proposalRepository) SetIssueNumber(ctx context.Context, id types.ProposalID, n int) error {
	page, err := r.client.getPage(ctx, id.String())
	if err != nil {
		return err
	}

	name, ok := pickName(page.Properties, r.client.schema.Proposal.IssueNumber)
	if !ok {
		return goerr.New("proposal has no issue number property",
			goerr.V("id", id), goerr.V("candidates", r.client.schema.Proposal.IssueNumber))
	}

	_, err = r.client.api.Page.Update(ctx, notionapi.PageID(id), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{
			name: notionapi.NumberProperty{
				Type:   notionapi.PropertyTypeNumber,
				Number: float64(n),
			},
		},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to set issue number", goerr.V("id", id), goerr.V("number", n))
	}
	return nil
}

func (r *proposalRepository) SetSendStatus(ctx context.Context, id types.ProposalID, status types.SendStatus) error {
	page, err := r.client.getPage(ctx, id.String())
	if err != nil {
		return err
	}

	name, ok := pickName(page.Properties, r.client.schema.Proposal.SendStatus)
	if !ok {
		return goerr.New("proposal has no send status property", goerr.V("id", id))
	}

	optionName := canonical(r.client.schema.Options.SendSent)
	if status == types.SendStatusPending {
		optionName = canonical(r.client.schema.Options.SendPending)
	}

	_, err = r.client.api.Page.Update(ctx, notionapi.PageID(id), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{
			name: notionapi.SelectProperty{
				Type:   notionapi.PropertyTypeSelect,
				Select: notionapi.Option{Name: optionName},
			},
		},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to set send status", goerr.V("id", id), goerr.V("status", status))
	}
	return nil
}

// fromPage converts a proposal page into the internal model. All
// property-name and option-name normalization happens here.
func (r *proposalRepository) fromPage(page *notionapi.Page) *model.Proposal {
	schema := r.client.schema.Proposal
	opts := r.client.schema.Options
	props := page.Properties

	p := &model.Proposal{
		ID:             types.ProposalID(page.ID.String()),
		Title:          textOf(props, schema.Title),
		Description:    textOf(props, schema.Description),
		Category:       r.categoryKey(props),
		IssueNumber:    numberOf(props, schema.IssueNumber),
		Deadline:       dateOf(props, schema.Deadline),
		AttachmentURLs: urlsByPrefix(props, schema.AttachmentPrefixes),
	}

	switch name := selectOf(props, schema.Audience); {
	case matchesAlias(opts.AudienceBoard, name):
		p.AudienceTarget = types.AudienceBoardOfDirectors
	case matchesAlias(opts.AudienceGeneral, name):
		p.AudienceTarget = types.AudienceGeneralMembers
	}

	switch name := selectOf(props, schema.SendStatus); {
	case matchesAlias(opts.SendSent, name):
		p.SendStatus = types.SendStatusSent
	case matchesAlias(opts.SendPending, name):
		p.SendStatus = types.SendStatusPending
	}

	if created, ok := createdTimeOf(props, schema.CreatedAt); ok {
		p.CreatedAt = created
	} else {
		p.CreatedAt = page.CreatedTime
	}

	return p
}

// categoryKey resolves the numbering bucket's category component: the
// category-code property, else the category select name, else the first
// category relation ID. Empty means uncategorized, never an error.
func (r *proposalRepository) categoryKey(props notionapi.Properties) string {
	schema := r.client.schema.Proposal

	if code := textOf(props, schema.CategoryCode); code != "" {
		return code
	}
	if name := selectOf(props, schema.Category); name != "" {
		return name
	}
	if ids := relationIDs(props, schema.Category); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// resolveProposerNames fetches the display names behind the proposer
// relation. Best-effort: a failed member fetch drops that name only.
func (r *proposalRepository) resolveProposerNames(ctx context.Context, page *notionapi.Page, p *model.Proposal) {
	for _, memberID := range relationIDs(page.Properties, r.client.schema.Proposal.Proposers) {
		member, err := r.client.member.Get(ctx, types.MemberID(memberID))
		if err != nil {
			logging.From(ctx).Warn("failed to resolve proposer", "memberID", memberID, "error", err)
			continue
		}
		if member.DisplayName != "" {
			p.ProposerNames = append(p.ProposerNames, member.DisplayName)
		}
	}
}
