package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/interfaces"
	"github.com/secmon-lab/ringi/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Client pushes approval requests as Slack DMs. The recipient channel
// ID is the member's Slack user ID; chat.postMessage opens the DM on
// demand.
type Client struct {
	api *slack.Client
}

var _ interfaces.Notifier = &Client{}

func New(token string) (*Client, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	return &Client{api: slack.New(token)}, nil
}

func (c *Client) Notify(ctx context.Context, channelID string, n *model.TicketNotification) error {
	if channelID == "" {
		return goerr.New("recipient Slack user ID is required", goerr.V("ticketID", n.TicketID))
	}

	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(buildMessage(n), false),
		slack.MsgOptionDisableLinkUnfurl(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack message",
			goerr.V("to", channelID), goerr.V("ticketID", n.TicketID))
	}

	return nil
}
