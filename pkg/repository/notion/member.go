package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

type memberRepository struct {
	client *Client
}

func (r *memberRepository) Get(ctx context.Context, id types.MemberID) (*model.Member, error) {
	page, err := r.client.getPage(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return r.fromPage(page), nil
}

func (r *memberRepository) ListAudience(ctx context.Context, target types.AudienceTarget) ([]*model.Member, error) {
	// Role and status may live under fallback property names, which the
	// API cannot filter on server-side. Member databases are small, so
	// the full scan is acceptable.
	pages, err := r.client.queryAll(ctx, r.client.dbs.Member, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query members", goerr.V("target", target))
	}

	result := make([]*model.Member, 0, len(pages))
	for i := range pages {
		m := r.fromPage(&pages[i])
		if !m.HasRole(target) || !m.ServiceStatus.IsProduction() {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func (r *memberRepository) fromPage(page *notionapi.Page) *model.Member {
	schema := r.client.schema.Member
	opts := r.client.schema.Options
	props := page.Properties

	m := &model.Member{
		ID:                    types.MemberID(page.ID.String()),
		DisplayName:           textOf(props, schema.Name),
		IsBoardDirector:       checkboxOf(props, schema.BoardDirector),
		IsGeneralMember:       checkboxOf(props, schema.GeneralMember),
		NotificationChannelID: textOf(props, schema.Channel),
	}

	switch name := selectOf(props, schema.ServiceStatus); {
	case matchesAlias(opts.StatusProduction, name):
		m.ServiceStatus = types.ServiceStatusProduction
	case name != "":
		m.ServiceStatus = types.ServiceStatusSuspended
	}

	return m
}
