package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticDirectory content.PersonalInfo

func (d staticDirectory) PersonalInfo(context.Context) content.View[content.PersonalInfo] {
	return content.View[content.PersonalInfo]{Items: []content.PersonalInfo{content.PersonalInfo(d)}}
}

// fallbackDirectory is a site with no saved PersonalInfo.
type fallbackDirectory struct{}

func (fallbackDirectory) PersonalInfo(context.Context) content.View[content.PersonalInfo] {
	return content.View[content.PersonalInfo]{Items: []content.PersonalInfo{content.FallbackPersonalInfo}, Fallback: true}
}

type fakeSender struct {
	sent []Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

var owner = staticDirectory{Name: "Zach", Email: "zach@example.com", Location: "Minneapolis, MN"}

func newScheduler(cfg config.EmailConfig, sender *fakeSender) *Scheduler {
	logger := zerolog.Nop()
	s := NewScheduler(owner, &logger)
	s.loadConfig = func() (config.EmailConfig, error) { return cfg, nil }
	s.newSender = func(config.EmailConfig) (Sender, error) { return sender, nil }
	s.now = func() time.Time { return time.Date(2026, 3, 4, 15, 30, 0, 0, time.Local) }
	return s
}

func resendConfig() config.EmailConfig {
	return config.EmailConfig{
		Provider:     config.EmailResend,
		Template:     "meeting_request",
		From:         "portfolio@example.com",
		ResendAPIKey: "re_test",
	}
}

func TestScheduleSendsMeetingDetails(t *testing.T) {
	sender := &fakeSender{}
	s := newScheduler(resendConfig(), sender)

	err := s.Schedule(context.Background(), Request{
		Name:  " Ada ",
		Email: "ada@example.com",
		Date:  "2026-05-01T09:15",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	m := sender.sent[0]
	assert.Equal(t, "zach@example.com", m.To)
	assert.Equal(t, "ada@example.com", m.ReplyTo)
	assert.Equal(t, "portfolio@example.com", m.From)
	assert.Equal(t, Fields{
		"from_name":   "Ada",
		"from_email":  "ada@example.com",
		"to_name":     "Zach",
		"to_email":    "zach@example.com",
		"message":     "Meeting scheduled on 5/1/2026, 9:15:00 AM at Minneapolis, MN.",
		"meeting_url": "No meeting URL provided",
	}, m.Fields)
	assert.Contains(t, m.HTML, "Ada")
	assert.Contains(t, m.Text, "Meeting link: No meeting URL provided")
}

func TestScheduleUsesConfiguredRecipientAndNowFallback(t *testing.T) {
	cfg := resendConfig()
	cfg.To = "inbox@example.com"
	sender := &fakeSender{}
	s := newScheduler(cfg, sender)

	err := s.Schedule(context.Background(), Request{Name: "Ada", Email: "ada@example.com", MeetingURL: "https://meet.example.com/x", Date: "soon"})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "inbox@example.com", sender.sent[0].To)
	assert.Equal(t, "https://meet.example.com/x", sender.sent[0].Fields["meeting_url"])
	assert.Equal(t, "Meeting scheduled on 3/4/2026, 3:30:00 PM at Minneapolis, MN.", sender.sent[0].Fields["message"])
}

func TestScheduleChecksConfigurationFirst(t *testing.T) {
	cfg := resendConfig()
	cfg.ResendAPIKey = ""
	sender := &fakeSender{}
	s := newScheduler(cfg, sender)

	// Invalid request too: the configuration error wins.
	err := s.Schedule(context.Background(), Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, NotConfiguredMessage, err.Error())
	assert.Empty(t, sender.sent)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
}

func TestScheduleNeedsRecipientWithoutSavedProfile(t *testing.T) {
	logger := zerolog.Nop()
	sender := &fakeSender{}
	s := NewScheduler(fallbackDirectory{}, &logger)
	cfg := resendConfig()
	s.loadConfig = func() (config.EmailConfig, error) { return cfg, nil }
	s.newSender = func(config.EmailConfig) (Sender, error) { return sender, nil }

	err := s.Schedule(context.Background(), Request{Name: "Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, sender.sent)

	cfg.To = "inbox@example.com"
	require.NoError(t, s.Schedule(context.Background(), Request{Name: "Ada", Email: "ada@example.com"}))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "inbox@example.com", sender.sent[0].To)
	assert.NotEqual(t, content.FallbackPersonalInfo.Email, sender.sent[0].To)
}

func TestNewSenderHonoursResendBaseURL(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/emails", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	cfg := resendConfig()
	cfg.ResendBaseURL = srv.URL
	sender, err := NewSender(cfg)
	require.NoError(t, err)
	require.NoError(t, sender.Send(context.Background(), Message{From: "a@example.com", To: "b@example.com", Subject: "Hi", HTML: "<p>hi</p>"}))
	assert.Equal(t, 1, hits)
}

func TestScheduleReadsEnvironmentAtCallTime(t *testing.T) {
	logger := zerolog.Nop()
	s := NewScheduler(owner, &logger)
	sender := &fakeSender{}
	s.newSender = func(config.EmailConfig) (Sender, error) { return sender, nil }

	t.Setenv("PORTFOLIO_EMAIL__PROVIDER", "")
	err := s.Schedule(context.Background(), Request{Name: "Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	t.Setenv("PORTFOLIO_EMAIL__PROVIDER", "smtp")
	t.Setenv("PORTFOLIO_EMAIL__FROM", "me@example.com")
	t.Setenv("PORTFOLIO_EMAIL__SMTP_HOST", "smtp.example.com")
	t.Setenv("PORTFOLIO_EMAIL__SMTP_USER", "me@example.com")
	t.Setenv("PORTFOLIO_EMAIL__SMTP_PASS", "secret")
	require.NoError(t, s.Schedule(context.Background(), Request{Name: "Ada", Email: "ada@example.com"}))
	assert.Len(t, sender.sent, 1)
}

func TestScheduleValidatesRequester(t *testing.T) {
	sender := &fakeSender{}
	s := newScheduler(resendConfig(), sender)

	err := s.Schedule(context.Background(), Request{Name: "  ", Email: "ada@example.com"})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Equal(t, InvalidMessage, err.Error())

	err = s.Schedule(context.Background(), Request{Name: "Ada", Email: "not-an-email"})
	require.Error(t, err)
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "must be a valid email address", httpErr.Field("email"))
	assert.Empty(t, sender.sent)
}

func TestScheduleReportsSendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	s := newScheduler(resendConfig(), sender)

	err := s.Schedule(context.Background(), Request{Name: "Ada", Email: "ada@example.com"})
	require.Error(t, err)
	assert.Equal(t, SendFailedMessage, err.Error())
	assert.NotErrorIs(t, err, ErrNotConfigured)
}

func TestScheduleUnknownTemplate(t *testing.T) {
	cfg := resendConfig()
	cfg.Template = "missing"
	sender := &fakeSender{}
	err := newScheduler(cfg, sender).Schedule(context.Background(), Request{Name: "Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, sender.sent)
}

func TestResendSender(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	s := NewResendSender("re_test")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	s.client.BaseURL = base

	err = s.Send(context.Background(), Message{From: "a@example.com", To: "b@example.com", ReplyTo: "c@example.com", Subject: "Hi", HTML: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got["from"])
	assert.Equal(t, []any{"b@example.com"}, got["to"])
	assert.Equal(t, "c@example.com", got["reply_to"])
	assert.Equal(t, "<p>hi</p>", got["html"])
}

func TestSMTPSender(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", "587", "me@example.com", "secret")
	var (
		addr string
		to   []string
		body string
	)
	s.sendMail = func(a string, _ smtp.Auth, _ string, rcpt []string, msg []byte) error {
		addr, to, body = a, rcpt, string(msg)
		return nil
	}

	err := s.Send(context.Background(), Message{To: "zach@example.com", ReplyTo: "ada@example.com", Subject: "Meeting\r\nBcc: x", HTML: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", addr)
	assert.Equal(t, []string{"zach@example.com"}, to)
	assert.Contains(t, body, "From: me@example.com\r\n")
	assert.Contains(t, body, "Subject: MeetingBcc: x\r\n")
	assert.True(t, strings.HasSuffix(body, "<p>hi</p>\r\n"))

	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("535 auth failed") }
	assert.ErrorContains(t, s.Send(context.Background(), Message{To: "x@example.com"}), "535 auth failed")
}
