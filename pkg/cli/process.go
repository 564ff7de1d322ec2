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

func cmdProcess() *cli.Command {
	var baseURL string
	var repoCfg config.Repository
	var notifierCfg config.Notifier

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "External base URL of the approval form",
			Sources:     cli.EnvVars("RINGI_BASE_URL"),
			Destination: &baseURL,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, notifierCfg.Flags()...)

	return &cli.Command{
		Name:      "process",
		Aliases:   []string{"p"},
		Usage:     "Assign the issue number, issue tickets and mark one proposal sent",
		ArgsUsage: "<proposal-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			proposalID := c.Args().First()
			if proposalID == "" {
				return goerr.New("proposal ID argument is required")
			}

			uc, closer, err := buildUseCases(ctx, &repoCfg, &notifierCfg, baseURL)
			if err != nil {
				return err
			}
			defer closer()

			result, err := uc.ProcessProposal(ctx, types.ProposalID(proposalID))
			if err != nil {
				return goerr.Wrap(err, "failed to process proposal")
			}

			logger := logging.Default()
			logger.Info("Proposal processed",
				"proposalID", result.ProposalID,
				"created", len(result.Created),
				"skipped", len(result.Skipped),
			)
			for _, f := range result.NotifyFailures {
				logger.Warn("notification failed",
					"memberID", f.MemberID,
					"ticketID", f.TicketID,
					"error", f.Err.Error(),
				)
			}
			return nil
		},
	}
}

// buildUseCases wires the repository and notifier from flags. The
// returned closer releases the repository.
func buildUseCases(ctx context.Context, repoCfg *config.Repository, notifierCfg *config.Notifier, baseURL string) (*usecase.UseCases, func(), error) {
	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}

	notifier, err := notifierCfg.Configure()
	if err != nil {
		safe.Close(ctx, repo)
		return nil, nil, goerr.Wrap(err, "failed to initialize notifier")
	}

	uc := usecase.New(repo,
		usecase.WithNotifier(notifier),
		usecase.WithBaseURL(baseURL),
	)
	closer := func() {
		safe.Close(ctx, repo)
	}
	return uc, closer, nil
}
