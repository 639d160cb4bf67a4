package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/service/mail"
	"github.com/urfave/cli/v3"
)

// Mail holds CLI flags for the SMTP notification relay
type Mail struct {
	host     string
	port     int
	username string
	password string
	from     string
	noTLS    bool
}

// Flags returns CLI flags for mail configuration
func (m *Mail) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "smtp-host",
			Usage:       "SMTP relay host (notifications disabled when empty)",
			Category:    "Mail",
			Sources:     cli.EnvVars("FUNDER_PORTAL_SMTP_HOST"),
			Destination: &m.host,
		},
		&cli.IntFlag{
			Name:        "smtp-port",
			Usage:       "SMTP relay port",
			Value:       587,
			Category:    "Mail",
			Sources:     cli.EnvVars("FUNDER_PORTAL_SMTP_PORT"),
			Destination: &m.port,
		},
		&cli.StringFlag{
			Name:        "smtp-username",
			Usage:       "SMTP auth username",
			Category:    "Mail",
			Sources:     cli.EnvVars("FUNDER_PORTAL_SMTP_USERNAME"),
			Destination: &m.username,
		},
		&cli.StringFlag{
			Name:        "smtp-password",
			Usage:       "SMTP auth password",
			Category:    "Mail",
			Sources:     cli.EnvVars("FUNDER_PORTAL_SMTP_PASSWORD"),
			Destination: &m.password,
		},
		&cli.StringFlag{
			Name:        "mail-from",
			Usage:       "Sender address of notification mail",
			Category:    "Mail",
			Sources:     cli.EnvVars("FUNDER_PORTAL_MAIL_FROM"),
			Destination: &m.from,
		},
		&cli.BoolFlag{
			Name:        "smtp-no-tls",
			Usage:       "Disable STARTTLS (local relays only)",
			Category:    "Mail",
			Sources:     cli.EnvVars("FUNDER_PORTAL_SMTP_NO_TLS"),
			Destination: &m.noTLS,
		},
	}
}

// LogAttrs returns log attributes for the mail configuration
func (m *Mail) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("host", m.host),
		slog.Int("port", m.port),
		slog.String("from", m.from),
	}
}

// Configure creates the SMTP mailer. Returns nil when no host is set, which
// disables email notification.
func (m *Mail) Configure() (interfaces.Mailer, error) {
	if m.host == "" {
		return nil, nil
	}
	if m.from == "" {
		return nil, goerr.New("mail-from is required when smtp-host is set")
	}

	opts := []mail.Option{
		mail.WithPort(m.port),
	}
	if m.username != "" {
		opts = append(opts, mail.WithAuth(m.username, m.password))
	}
	if m.noTLS {
		opts = append(opts, mail.WithoutTLS())
	}

	mailer, err := mail.New(m.host, m.from, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure SMTP mailer")
	}
	return mailer, nil
}
