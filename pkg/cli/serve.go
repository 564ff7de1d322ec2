package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/ringi/pkg/cli/config"
	httpctrl "github.com/secmon-lab/ringi/pkg/controller/http"
	"github.com/secmon-lab/ringi/pkg/usecase"
	"github.com/secmon-lab/ringi/pkg/utils/logging"
	"github.com/secmon-lab/ringi/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var baseURL string
	var sweepSecret string
	var concurrency int
	var repoCfg config.Repository
	var notifierCfg config.Notifier

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RINGI_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "External base URL of the approval form (e.g., https://your-domain.com)",
			Sources:     cli.EnvVars("RINGI_BASE_URL"),
			Destination: &baseURL,
		},
		&cli.StringFlag{
			Name:        "sweep-secret",
			Usage:       "Bearer token protecting the /hooks/sweep endpoint (endpoint disabled when empty)",
			Sources:     cli.EnvVars("RINGI_SWEEP_SECRET"),
			Destination: &sweepSecret,
		},
		&cli.IntFlag{
			Name:        "notify-concurrency",
			Usage:       "Max concurrent ticket issuance per proposal",
			Value:       4,
			Sources:     cli.EnvVars("RINGI_NOTIFY_CONCURRENCY"),
			Destination: &concurrency,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, notifierCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			notifier, err := notifierCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize notifier")
			}

			uc := usecase.New(repo,
				usecase.WithNotifier(notifier),
				usecase.WithBaseURL(baseURL),
				usecase.WithConcurrency(concurrency),
			)

			httpOpts := []httpctrl.Options{}
			if sweepSecret != "" {
				httpOpts = append(httpOpts, httpctrl.WithSweepSecret(sweepSecret))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "base_url", baseURL)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
