// Package mailer dispatches submission emails over SMTP.
package mailer

import (
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
)

// DefaultRecipient receives submissions when no recipient is configured.
const DefaultRecipient = "don.kruger123@gmail.com"

// Config carries the dispatch credentials. Credentials are secrets and come
// from the environment, never from flags or the form session.
type Config struct {
	Address     string `env:"SURVEYFORM_EMAIL_ADDRESS"`
	AppPassword string `env:"SURVEYFORM_EMAIL_APP_PASSWORD"`
	Recipient   string `env:"SURVEYFORM_EMAIL_RECIPIENT"`
	SMTPHost    string `env:"SURVEYFORM_SMTP_HOST"`
	SMTPPort    int    `env:"SURVEYFORM_SMTP_PORT,default=465"`
}

// ConfigFromEnv decodes Config from the process environment and applies the
// research defaults for recipient and SMTP host.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return Config{}, fmt.Errorf("mailer: decode config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Recipient == "" {
		c.Recipient = DefaultRecipient
	}
	if c.SMTPHost == "" {
		c.SMTPHost = inferSMTPHost(c.Address)
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = 465
	}
}

// Validate reports whether the config can authenticate at all.
func (c Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("mailer: sender address is required")
	}
	if c.AppPassword == "" {
		return fmt.Errorf("mailer: app password is required")
	}
	return nil
}

// inferSMTPHost guesses the submission host from the sender's mail provider.
// Host inference is gmail-first: unknown providers fall back to smtp.gmail.com.
func inferSMTPHost(address string) string {
	lowered := strings.ToLower(address)
	switch {
	case strings.Contains(lowered, "gmail.com"), strings.Contains(lowered, "google"):
		return "smtp.gmail.com"
	case strings.Contains(lowered, "outlook"), strings.Contains(lowered, "hotmail"):
		return "smtp-mail.outlook.com"
	case strings.Contains(lowered, "yahoo"):
		return "smtp.mail.yahoo.com"
	default:
		return "smtp.gmail.com"
	}
}
