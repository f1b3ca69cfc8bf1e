package contact

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Fields are the values interpolated into the message template.
type Fields map[string]string

// Message is one rendered email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Fields  Fields
	HTML    string
	Text    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// NewSender returns the sender for cfg.Provider.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	switch cfg.Provider {
	case config.EmailResend:
		s := NewResendSender(cfg.ResendAPIKey)
		if cfg.ResendBaseURL != "" {
			base, err := url.Parse(strings.TrimSuffix(cfg.ResendBaseURL, "/") + "/")
			if err != nil {
				return nil, fmt.Errorf("resend base url: %w", err)
			}
			s.client.BaseURL = base
		}
		return s, nil
	case config.EmailSMTP:
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

func render(name string, fields Fields) (string, error) {
	tmpl := templates.Lookup(name + ".html")
	if tmpl == nil {
		return "", errors.Errorf("email template %s not found", name)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, fields); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

func plainText(f Fields) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New meeting request from your portfolio:\n\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n\n%s\nMeeting link: %s\n", f["from_name"], f["from_email"], f["message"], f["meeting_url"])
	b.WriteString("\n---\nSent from your portfolio contact form\n")
	return b.String()
}
