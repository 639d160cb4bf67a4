package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/cli/config"
	httpctrl "github.com/mohamed-gudle/funder-portal-sub000/pkg/controller/http"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/service/directory"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/service/notify"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/logging"
)

const shutdownTimeout = 15 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var baseURL string
	var configPath string
	var repoCfg config.Repository
	var mailCfg config.Mail
	var storageCfg config.Storage
	var geminiCfg config.Gemini
	var authCfg config.Auth
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("FUNDER_PORTAL_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL of the portal (e.g., https://portal.example.org)",
			Sources:     cli.EnvVars("FUNDER_PORTAL_BASE_URL"),
			Destination: &baseURL,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to the portal TOML configuration",
			Sources:     cli.EnvVars("FUNDER_PORTAL_CONFIG"),
			Destination: &configPath,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, mailCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			appCfg, err := config.LoadAppConfiguration(configPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load portal configuration")
			}

			if err := slackCfg.Validate(); err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			authUC, err := authCfg.Configure(repo, baseURL, appCfg.Admins)
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}
			if authCfg.IsNoAuthMode() {
				logger.Warn("Running in no-auth mode (development only)")
			}

			ucOpts := []usecase.Option{
				usecase.WithAuth(authUC),
			}

			mailer, err := mailCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure mailer")
			}
			if mailer != nil {
				notifyOpts := []notify.Option{
					notify.WithBaseURL(baseURL),
				}
				if slackCfg.IsConfigured() {
					notifyOpts = append(notifyOpts,
						notify.WithSlack(slackCfg.BotToken(), slackCfg.ChannelID()))
					logger.Info("Slack announcements enabled", "channel", slackCfg.ChannelID())
				}

				resolver := directory.New(repo.Member())
				ucOpts = append(ucOpts, usecase.WithNotifier(notify.New(mailer, resolver, notifyOpts...)))
				logger.Info("Mail notifications enabled")
			} else {
				logger.Info("SMTP host not configured, notifications disabled")
			}

			store, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure object storage")
			}
			if store != nil {
				ucOpts = append(ucOpts, usecase.WithStorage(store))
				logger.Info("Document uploads enabled")
			} else {
				logger.Info("Storage bucket not configured, document uploads disabled")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				ucOpts = append(ucOpts, usecase.WithLLM(llmClient))
				logger.Info("Drafting assistant enabled")
			} else {
				logger.Info("Gemini project not configured, drafting assistant disabled")
			}

			uc := usecase.New(repo, ucOpts...)
			server := httpctrl.New(uc, httpctrl.WithAuth(authUC))

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "HTTP server failed")
					return
				}
				errCh <- nil
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logger.Info("Shutting down HTTP server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shut down HTTP server")
				}
				return <-errCh
			}
		},
	}
}
