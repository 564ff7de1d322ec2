package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/domain/interfaces"
	"github.com/secmon-lab/ringi/pkg/service/line"
	"github.com/secmon-lab/ringi/pkg/service/slack"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Notifier holds CLI flags for the messaging platform configuration
type Notifier struct {
	backend    string
	lineSecret string
	lineToken  string
	slackToken string
}

// Flags returns CLI flags for notifier configuration
func (n *Notifier) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "notifier-backend",
			Usage:       "Notification backend (line, slack or none)",
			Value:       "line",
			Sources:     cli.EnvVars("RINGI_NOTIFIER_BACKEND"),
			Destination: &n.backend,
		},
		&cli.StringFlag{
			Name:        "line-channel-secret",
			Usage:       "LINE Messaging API channel secret",
			Sources:     cli.EnvVars("RINGI_LINE_CHANNEL_SECRET"),
			Destination: &n.lineSecret,
		},
		&cli.StringFlag{
			Name:        "line-channel-token",
			Usage:       "LINE Messaging API channel access token",
			Sources:     cli.EnvVars("RINGI_LINE_CHANNEL_TOKEN"),
			Destination: &n.lineToken,
		},
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token (required when using slack backend)",
			Sources:     cli.EnvVars("RINGI_SLACK_BOT_TOKEN"),
			Destination: &n.slackToken,
		},
	}
}

// Configure builds the notifier client. The "none" backend returns nil:
// tickets are still issued but every push is reported as failed.
func (n *Notifier) Configure() (interfaces.Notifier, error) {
	switch n.backend {
	case "line":
		client, err := line.New(n.lineSecret, n.lineToken)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize LINE notifier")
		}
		logging.Default().Info("Using LINE notifier")
		return client, nil

	case "slack":
		client, err := slack.New(n.slackToken)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize Slack notifier")
		}
		logging.Default().Info("Using Slack notifier")
		return client, nil

	case "none":
		logging.Default().Warn("Notifier disabled; ticket pushes will be reported as failures")
		return nil, nil

	default:
		return nil, goerr.New("invalid notifier backend", goerr.V("backend", n.backend))
	}
}
