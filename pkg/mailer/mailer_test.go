package mailer_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumishot/lumishot/pkg/mailer"
)

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	valid := mailer.Message{
		To:       "user@example.com",
		Subject:  "Hello",
		BodyHTML: "<p>hi</p>",
	}

	t.Run("valid message", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid.Validate())
	})

	tests := []struct {
		name   string
		mutate func(m *mailer.Message)
	}{
		{"empty recipient", func(m *mailer.Message) { m.To = "" }},
		{"whitespace recipient", func(m *mailer.Message) { m.To = "   " }},
		{"malformed recipient", func(m *mailer.Message) { m.To = "not-an-email" }},
		{"missing domain", func(m *mailer.Message) { m.To = "user@" }},
		{"empty subject", func(m *mailer.Message) { m.Subject = "" }},
		{"empty body", func(m *mailer.Message) { m.BodyHTML = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := valid
			tt.mutate(&msg)
			assert.ErrorIs(t, msg.Validate(), mailer.ErrInvalidMessage)
		})
	}
}

func TestNewPostmarkSender_Validation(t *testing.T) {
	t.Parallel()

	base := mailer.Config{
		PostmarkServerToken:  "server",
		PostmarkAccountToken: "account",
		SenderEmail:          "noreply@lumishot.app",
		SupportEmail:         "support@lumishot.app",
	}

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		sender, err := mailer.NewPostmarkSender(base)
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})

	tests := []struct {
		name   string
		mutate func(c *mailer.Config)
	}{
		{"missing server token", func(c *mailer.Config) { c.PostmarkServerToken = "" }},
		{"missing account token", func(c *mailer.Config) { c.PostmarkAccountToken = "" }},
		{"invalid sender email", func(c *mailer.Config) { c.SenderEmail = "nope" }},
		{"invalid support email", func(c *mailer.Config) { c.SupportEmail = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base
			tt.mutate(&cfg)
			_, err := mailer.NewPostmarkSender(cfg)
			assert.ErrorIs(t, err, mailer.ErrInvalidConfig)
		})
	}
}

func TestDevSender_Send(t *testing.T) {
	t.Parallel()

	t.Run("writes html and metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := mailer.NewDevSender(dir)

		err := sender.Send(context.Background(), mailer.Message{
			To:       "user@example.com",
			Subject:  "Quota reached",
			BodyHTML: "<p>upgrade</p>",
			Tag:      "quota-nudge",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		var htmlFile, jsonFile string
		for _, e := range entries {
			switch filepath.Ext(e.Name()) {
			case ".html":
				htmlFile = e.Name()
			case ".json":
				jsonFile = e.Name()
			}
		}
		require.NotEmpty(t, htmlFile)
		require.NotEmpty(t, jsonFile)
		assert.Contains(t, htmlFile, "quota-nudge")

		html, err := os.ReadFile(filepath.Join(dir, htmlFile))
		require.NoError(t, err)
		assert.Equal(t, "<p>upgrade</p>", string(html))

		raw, err := os.ReadFile(filepath.Join(dir, jsonFile))
		require.NoError(t, err)
		var meta map[string]string
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "user@example.com", meta["to"])
		assert.Equal(t, "quota-nudge", meta["tag"])
	})

	t.Run("rejects invalid message before writing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := mailer.NewDevSender(dir)

		err := sender.Send(context.Background(), mailer.Message{To: "bad"})
		assert.ErrorIs(t, err, mailer.ErrInvalidMessage)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestQuotaNudge(t *testing.T) {
	t.Parallel()

	msg, err := mailer.QuotaNudge(mailer.QuotaNudgeParams{
		To:          "user@example.com",
		PlanName:    "Free",
		ActionLabel: "photoshoots",
		UpgradePlan: "Pro",
		UpgradeURL:  "https://lumishot.app/upgrade",
		PeriodEnd:   time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", msg.To)
	assert.Equal(t, "quota-nudge", msg.Tag)
	assert.True(t, strings.Contains(msg.Subject, "photoshoots"))
	assert.Contains(t, msg.BodyHTML, "Free")
	assert.Contains(t, msg.BodyHTML, "Upgrade to Pro")
	assert.Contains(t, msg.BodyHTML, "https://lumishot.app/upgrade")
	assert.Contains(t, msg.BodyHTML, "March 31, 2025")
	assert.NoError(t, msg.Validate())
}
