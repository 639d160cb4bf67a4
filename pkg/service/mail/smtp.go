package mail

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	gomail "github.com/wneessen/go-mail"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
)

// SMTP sends HTML notification email through a plain SMTP relay
type SMTP struct {
	client *gomail.Client
	from   string
}

// Option is a functional option for SMTP configuration
type Option func(*config)

type config struct {
	port     int
	username string
	password string
	tls      bool
}

// WithPort sets the SMTP port (default 587)
func WithPort(port int) Option {
	return func(c *config) {
		c.port = port
	}
}

// WithAuth sets SMTP PLAIN auth credentials
func WithAuth(username, password string) Option {
	return func(c *config) {
		c.username = username
		c.password = password
	}
}

// WithoutTLS disables STARTTLS, for local relays such as mailpit
func WithoutTLS() Option {
	return func(c *config) {
		c.tls = false
	}
}

// New creates an SMTP mailer sending from the given address
func New(host, from string, opts ...Option) (*SMTP, error) {
	if host == "" {
		return nil, goerr.New("SMTP host is required")
	}
	if from == "" {
		return nil, goerr.New("sender address is required")
	}

	cfg := &config{
		port: 587,
		tls:  true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	clientOpts := []gomail.Option{
		gomail.WithPort(cfg.port),
	}
	if cfg.tls {
		clientOpts = append(clientOpts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		clientOpts = append(clientOpts, gomail.WithTLSPolicy(gomail.NoTLS))
	}
	if cfg.username != "" {
		clientOpts = append(clientOpts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.username),
			gomail.WithPassword(cfg.password),
		)
	}

	client, err := gomail.NewClient(host, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create SMTP client", goerr.V("host", host))
	}

	return &SMTP{client: client, from: from}, nil
}

var _ interfaces.Mailer = &SMTP{}

// Send delivers one message to all recipients
func (s *SMTP) Send(ctx context.Context, mail interfaces.Mail) error {
	if len(mail.To) == 0 {
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return goerr.Wrap(err, "invalid sender address", goerr.V("from", s.from))
	}
	if err := msg.To(mail.To...); err != nil {
		return goerr.Wrap(err, "invalid recipient address", goerr.V("to", mail.To))
	}
	msg.Subject(mail.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, mail.HTML)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to send mail", goerr.V("subject", mail.Subject))
	}

	return nil
}
