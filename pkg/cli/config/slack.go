package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for the optional stage announcement channel
type Slack struct {
	botToken  string
	channelID string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (announcements disabled when empty)",
			Category:    "Slack",
			Sources:     cli.EnvVars("FUNDER_PORTAL_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Channel that receives stage advance announcements",
			Category:    "Slack",
			Sources:     cli.EnvVars("FUNDER_PORTAL_SLACK_CHANNEL_ID"),
			Destination: &s.channelID,
		},
	}
}

// IsConfigured reports whether Slack announcements are enabled
func (s *Slack) IsConfigured() bool {
	return s.botToken != ""
}

// BotToken returns the configured bot token
func (s *Slack) BotToken() string {
	return s.botToken
}

// ChannelID returns the announcement channel ID
func (s *Slack) ChannelID() string {
	return s.channelID
}

// Validate checks the flag combination
func (s *Slack) Validate() error {
	if s.botToken != "" && s.channelID == "" {
		return goerr.New("slack-channel-id is required when slack-bot-token is set")
	}
	return nil
}
