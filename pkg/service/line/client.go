package line

import (
	"context"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/interfaces"
	"github.com/secmon-lab/ringi/pkg/domain/model"
)

// Client pushes approval requests to members over LINE. The recipient
// channel ID is the member's LINE user ID.
type Client struct {
	bot *linebot.Client
}

var _ interfaces.Notifier = &Client{}

func New(channelSecret, channelToken string) (*Client, error) {
	if channelSecret == "" {
		return nil, goerr.New("LINE channel secret is required")
	}
	if channelToken == "" {
		return nil, goerr.New("LINE channel access token is required")
	}

	bot, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LINE client")
	}

	return &Client{bot: bot}, nil
}

func (c *Client) Notify(ctx context.Context, channelID string, n *model.TicketNotification) error {
	if channelID == "" {
		return goerr.New("recipient LINE user ID is required", goerr.V("ticketID", n.TicketID))
	}

	msg := linebot.NewTextMessage(buildMessage(n))
	if _, err := c.bot.PushMessage(channelID, msg).WithContext(ctx).Do(); err != nil {
		return goerr.Wrap(err, "failed to push LINE message",
			goerr.V("to", channelID), goerr.V("ticketID", n.TicketID))
	}

	return nil
}
