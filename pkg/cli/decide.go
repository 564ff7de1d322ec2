package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/cli/config"
	"github.com/secmon-lab/ringi/pkg/domain/types"
	"github.com/secmon-lab/ringi/pkg/usecase"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
	"github.com/secmon-lab/ringi/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdDecide() *cli.Command {
	var comment string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "comment",
			Usage:       "Optional comment recorded with the decision",
			Destination: &comment,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:      "decide",
		Aliases:   []string{"d"},
		Usage:     "Record an approve or deny decision on a ticket",
		ArgsUsage: "<ticket-id> <approve|deny>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ticketID := c.Args().Get(0)
			action := c.Args().Get(1)
			if ticketID == "" || action == "" {
				return goerr.New("ticket ID and decision arguments are required")
			}

			var decision types.Decision
			switch action {
			case "approve":
				decision = types.DecisionApproved
			case "deny":
				decision = types.DecisionDenied
			default:
				return goerr.New("decision must be approve or deny", goerr.V("decision", action))
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo)
			result, err := uc.RecordDecision(ctx, types.TicketID(ticketID), decision, comment)
			if err != nil {
				return goerr.Wrap(err, "failed to record decision")
			}

			if result.AlreadyDecided {
				logging.Default().Info("Ticket was already decided; existing decision kept",
					"ticketID", result.TicketID,
					"decision", result.Decision,
					"decidedAt", result.DecidedAt,
				)
				return nil
			}

			logging.Default().Info("Decision recorded",
				"ticketID", result.TicketID,
				"decision", result.Decision,
				"decidedAt", result.DecidedAt,
			)
			return nil
		},
	}
}
