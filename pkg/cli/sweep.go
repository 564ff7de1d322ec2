package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringi/pkg/cli/config"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSweep() *cli.Command {
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
		Name:  "sweep",
		Usage: "Process every proposal still marked pending",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := buildUseCases(ctx, &repoCfg, &notifierCfg, baseURL)
			if err != nil {
				return err
			}
			defer closer()

			result, err := uc.SweepPending(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to sweep pending proposals")
			}

			logger := logging.Default()
			logger.Info("Sweep completed",
				"processed", len(result.Processed),
				"failed", len(result.Failed),
			)
			for _, f := range result.Failed {
				logger.Warn("proposal left pending",
					"proposalID", f.ProposalID,
					"error", f.Err.Error(),
				)
			}
			return nil
		},
	}
}
