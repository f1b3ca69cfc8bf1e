package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Email providers.
const (
	EmailResend = "resend"
	EmailSMTP   = "smtp"
)

// EmailConfig configures the meeting-request mail. It is read from the
// environment each time a message is sent, so it is not part of Config.
type EmailConfig struct {
	Provider string `koanf:"provider"`
	Template string `koanf:"template"`
	From     string `koanf:"from"`

	// To overrides the recipient taken from PersonalInfo.
	To string `koanf:"to"`

	ResendAPIKey string `koanf:"resend_api_key"`

	// ResendBaseURL points the client at another Resend-compatible API.
	ResendBaseURL string `koanf:"resend_base_url"`

	SMTPHost string `koanf:"smtp_host"`
	SMTPPort string `koanf:"smtp_port"`
	SMTPUser string `koanf:"smtp_user"`
	SMTPPass string `koanf:"smtp_pass"`
}

// LoadEmail reads PORTFOLIO_EMAIL__* variables.
func LoadEmail() (EmailConfig, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(Prefix+"EMAIL__", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, Prefix+"EMAIL__"))
	}), nil); err != nil {
		return EmailConfig{}, fmt.Errorf("load email env: %w", err)
	}
	cfg := EmailConfig{Template: "meeting_request", SMTPPort: "587"}
	if err := k.Unmarshal("", &cfg); err != nil {
		return EmailConfig{}, fmt.Errorf("unmarshal email config: %w", err)
	}
	return cfg, nil
}

// Missing lists the settings the selected provider needs but does not have.
func (c EmailConfig) Missing() []string {
	var missing []string
	add := func(value, key string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, Prefix+"EMAIL__"+strings.ToUpper(key))
		}
	}
	add(c.Template, "template")
	add(c.From, "from")
	switch c.Provider {
	case EmailResend:
		add(c.ResendAPIKey, "resend_api_key")
	case EmailSMTP:
		add(c.SMTPHost, "smtp_host")
		add(c.SMTPPort, "smtp_port")
		add(c.SMTPUser, "smtp_user")
		add(c.SMTPPass, "smtp_pass")
	default:
		missing = append(missing, Prefix+"EMAIL__PROVIDER")
	}
	return missing
}
