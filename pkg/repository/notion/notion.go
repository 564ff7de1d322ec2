package notion

import (
	"context"
	"errors"
	"net/http"

	"github.com/jomei/notionapi"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/interfaces"
	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// Sentinel errors shared by all collections in this backend
var (
	ErrNotFound       = types.ErrNotFound
	ErrAlreadyDecided = types.ErrAlreadyDecided
)

// DatabaseIDs holds the IDs of the three Notion databases
type DatabaseIDs struct {
	Proposal string
	Member   string
	Ticket   string
}

// Validate checks that all database IDs are present
func (d DatabaseIDs) Validate() error {
	if d.Proposal == "" {
		return goerr.New("proposal database ID is required")
	}
	if d.Member == "" {
		return goerr.New("member database ID is required")
	}
	if d.Ticket == "" {
		return goerr.New("ticket database ID is required")
	}
	return nil
}

// Client is a Notion-backed repository
type Client struct {
	api    *notionapi.Client
	dbs    DatabaseIDs
	schema *Schema

	proposal *proposalRepository
	member   *memberRepository
	ticket   *ticketRepository
}

var _ interfaces.Repository = &Client{}

// New creates a Notion repository with the provided API token
func New(token string, dbs DatabaseIDs, schema *Schema) (*Client, error) {
	if token == "" {
		return nil, goerr.New("Notion API token is required")
	}
	if err := dbs.Validate(); err != nil {
		return nil, err
	}
	if schema == nil {
		schema = DefaultSchema()
	}

	c := &Client{
		api: notionapi.NewClient(
			notionapi.Token(token),
			notionapi.WithRetry(3), // Retry up to 3 times on rate limit (HTTP 429)
		),
		dbs:    dbs,
		schema: schema,
	}
	c.proposal = &proposalRepository{client: c}
	c.member = &memberRepository{client: c}
	c.ticket = &ticketRepository{client: c}

	return c, nil
}

func (c *Client) Proposal() interfaces.ProposalRepository {
	return c.proposal
}

func (c *Client) Member() interfaces.MemberRepository {
	return c.member
}

func (c *Client) Ticket() interfaces.TicketRepository {
	return c.ticket
}

func (c *Client) Close() error {
	return nil
}

// queryAll runs a database query and collects all pages across cursors
func (c *Client) queryAll(ctx context.Context, dbID string, filter notionapi.Filter) ([]notionapi.Page, error) {
	var pages []notionapi.Page
	var cursor notionapi.Cursor

	for {
		resp, err := c.api.Database.Query(ctx, notionapi.DatabaseID(dbID), &notionapi.DatabaseQueryRequest{
			Filter:      filter,
			StartCursor: cursor,
			PageSize:    100,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to query database", goerr.V("dbID", dbID))
		}

		pages = append(pages, resp.Results...)

		if !resp.HasMore {
			return pages, nil
		}
		cursor = resp.NextCursor
	}
}

// getPage fetches a page, mapping Notion's object_not_found onto the
// backend sentinel so callers can use errors.Is.
func (c *Client) getPage(ctx context.Context, pageID string) (*notionapi.Page, error) {
	page, err := c.api.Page.Get(ctx, notionapi.PageID(pageID))
	if err != nil {
		var apiErr *notionapi.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, goerr.Wrap(ErrNotFound, "page not found", goerr.V("pageID", pageID))
		}
		return nil, goerr.Wrap(err, "failed to get page", goerr.V("pageID", pageID))
	}
	return page, nil
}
