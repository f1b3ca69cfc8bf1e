package contact

import (
	"context"
	"net"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"
)

// SMTPSender sends through an SMTP relay with PLAIN auth, e.g. Gmail with an
// app password.
type SMTPSender struct {
	host string
	port string
	user string
	pass string

	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host, port, user, pass string) *SMTPSender {
	return &SMTPSender{host: host, port: port, user: user, pass: pass, sendMail: smtp.SendMail}
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	from := m.From
	if from == "" {
		from = s.user
	}
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	err := s.sendMail(net.JoinHostPort(s.host, s.port), auth, s.user, []string{m.To}, smtpMessage(from, m))
	if err != nil {
		return errors.Wrapf(err, "failed to send email via %s", s.host)
	}
	return nil
}

func smtpMessage(from string, m Message) []byte {
	var b strings.Builder
	header := func(k, v string) {
		if v != "" {
			b.WriteString(k + ": " + strings.NewReplacer("\r", "", "\n", "").Replace(v) + "\r\n")
		}
	}
	header("To", m.To)
	header("From", from)
	header("Reply-To", m.ReplyTo)
	header("Subject", m.Subject)
	header("MIME-Version", "1.0")
	header("Content-Type", `text/html; charset="UTF-8"`)
	b.WriteString("\r\n")
	b.WriteString(m.HTML)
	b.WriteString("\r\n")
	return []byte(b.String())
}
