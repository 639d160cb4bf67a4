// Package notify turns workflow events into email and Slack messages.
// Delivery failures are logged and swallowed: a lost notification must never
// roll back or fail the entity update that triggered it.
package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/m-mizutani/goerr/v2"
	slackapi "github.com/slack-go/slack"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/service/directory"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/async"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Target identifies the workflow entity a notification is about
type Target struct {
	Parent types.ParentRef
	Title  string
}

func (t Target) kindLabel() string {
	switch t.Parent.Kind {
	case types.ParentKindOpenCall:
		return "open call"
	case types.ParentKindEngagement:
		return "engagement"
	default:
		return "entity"
	}
}

// Service sends workflow notifications
type Service struct {
	mailer   interfaces.Mailer
	resolver *directory.Resolver
	baseURL  string

	slack        *slackapi.Client
	slackChannel string
}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithBaseURL sets the portal base URL used to build entity links
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.baseURL = baseURL
	}
}

// WithSlack enables posting a summary of each stage advance to a channel
func WithSlack(token, channelID string) Option {
	return func(s *Service) {
		s.slack = slackapi.New(token)
		s.slackChannel = channelID
	}
}

// New creates a notification service
func New(mailer interfaces.Mailer, resolver *directory.Resolver, opts ...Option) *Service {
	s := &Service{
		mailer:   mailer,
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) link(target Target) string {
	if s.baseURL == "" {
		return ""
	}
	switch target.Parent.Kind {
	case types.ParentKindOpenCall:
		return fmt.Sprintf("%s/calls/%d", s.baseURL, target.Parent.ID)
	case types.ParentKindEngagement:
		return fmt.Sprintf("%s/engagements/%d", s.baseURL, target.Parent.ID)
	default:
		return s.baseURL
	}
}

type templateData struct {
	KindLabel string
	Title     string
	Stage     string
	PrevStage string
	NextStage string
	Link      string
}

func render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", goerr.Wrap(err, "failed to render mail template", goerr.V("template", name))
	}
	return buf.String(), nil
}

// NotifyAssignments mails each assignee added by an update, one message per
// stage entry, in the stage table's order. Each send failure is logged and
// the remaining messages still go out.
func (s *Service) NotifyAssignments(ctx context.Context, target Target, changes []model.AssignmentChange) {
	logger := logging.From(ctx)

	for _, change := range changes {
		emails, err := s.resolver.Emails(ctx, change.Added)
		if err != nil {
			logger.Error("failed to resolve assignees for notification",
				"error", err, "stage", change.Stage, "parent", target.Parent)
			continue
		}
		if len(emails) == 0 {
			continue
		}

		html, err := render("assignment.html", templateData{
			KindLabel: target.kindLabel(),
			Title:     target.Title,
			Stage:     change.Stage,
			Link:      s.link(target),
		})
		if err != nil {
			logger.Error("failed to render assignment mail", "error", err)
			continue
		}

		mail := interfaces.Mail{
			To:      emails,
			Subject: fmt.Sprintf("[Funder Portal] Assigned to %s: %s", change.Stage, target.Title),
			HTML:    html,
		}
		if err := s.mailer.Send(ctx, mail); err != nil {
			logger.Error("failed to send assignment mail",
				"error", err, "stage", change.Stage, "recipients", len(emails))
		}
	}
}

// NotifyStageChange mails the destination stage's assignees that the entity
// advanced, and announces the advance on Slack when configured. Called only
// for forward-eligible transitions.
func (s *Service) NotifyStageChange(ctx context.Context, target Target, prevStage, nextStage string, assignees []string) {
	logger := logging.From(ctx)

	emails, err := s.resolver.Emails(ctx, assignees)
	if err != nil {
		logger.Error("failed to resolve stage assignees for notification",
			"error", err, "stage", nextStage, "parent", target.Parent)
	} else if len(emails) > 0 {
		html, renderErr := render("stage_change.html", templateData{
			KindLabel: target.kindLabel(),
			Title:     target.Title,
			PrevStage: prevStage,
			NextStage: nextStage,
			Link:      s.link(target),
		})
		if renderErr != nil {
			logger.Error("failed to render stage change mail", "error", renderErr)
		} else {
			mail := interfaces.Mail{
				To:      emails,
				Subject: fmt.Sprintf("[Funder Portal] %s moved to %s", target.Title, nextStage),
				HTML:    html,
			}
			if sendErr := s.mailer.Send(ctx, mail); sendErr != nil {
				logger.Error("failed to send stage change mail",
					"error", sendErr, "stage", nextStage, "recipients", len(emails))
			}
		}
	}

	if s.slack == nil {
		return
	}

	text := fmt.Sprintf("*%s* `%s` moved from _%s_ to _%s_",
		target.Title, target.kindLabel(), prevStage, nextStage)
	async.Dispatch(ctx, func(ctx context.Context) error {
		_, _, err := s.slack.PostMessageContext(ctx, s.slackChannel,
			slackapi.MsgOptionText(text, false))
		if err != nil {
			return goerr.Wrap(err, "failed to post stage change to Slack",
				goerr.V("channel", s.slackChannel))
		}
		return nil
	})
}
