package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestLoggerConfigure(t *testing.T) {
	t.Run("valid console logger", func(t *testing.T) {
		l := &Logger{level: "info", format: "console", output: "stderr"}
		closer, err := l.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("json logger to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "portal.log")
		l := &Logger{level: "debug", format: "json", output: path}
		closer, err := l.Configure()
		gt.NoError(t, err).Required()
		closer()

		_, err = os.Stat(path)
		gt.NoError(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		l := &Logger{level: "verbose", format: "console", output: "stdout"}
		_, err := l.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		l := &Logger{level: "info", format: "xml", output: "stdout"}
		_, err := l.Configure()
		gt.Error(t, err)
	})
}

func TestSlackValidate(t *testing.T) {
	t.Run("disabled is valid", func(t *testing.T) {
		s := &Slack{}
		gt.NoError(t, s.Validate())
		gt.Bool(t, s.IsConfigured()).False()
	})

	t.Run("token without channel fails", func(t *testing.T) {
		s := &Slack{botToken: "xoxb-test"}
		gt.Error(t, s.Validate())
	})

	t.Run("token with channel is valid", func(t *testing.T) {
		s := &Slack{botToken: "xoxb-test", channelID: "C0123456"}
		gt.NoError(t, s.Validate())
		gt.Bool(t, s.IsConfigured()).True()
	})
}

func TestMailConfigure(t *testing.T) {
	t.Run("no host disables mail", func(t *testing.T) {
		m := &Mail{}
		mailer, err := m.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, mailer).Nil()
	})

	t.Run("host without sender fails", func(t *testing.T) {
		m := &Mail{host: "smtp.example.com", port: 587}
		_, err := m.Configure()
		gt.Error(t, err)
	})

	t.Run("host with sender succeeds", func(t *testing.T) {
		m := &Mail{host: "smtp.example.com", port: 587, from: "portal@example.com"}
		mailer, err := m.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, mailer).NotNil()
	})
}
