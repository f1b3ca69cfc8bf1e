// Package contact schedules meetings requested from the public contact form
// by mailing the site owner.
package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/errs"
	"github.com/rs/zerolog"
)

// ErrNotConfigured means the email provider settings are incomplete. Nothing
// is sent.
var ErrNotConfigured = errors.New("email is not configured")

const (
	NotConfiguredMessage = "Server configuration error. Please try again later."
	InvalidMessage       = "Please provide your name and email."
	SendFailedMessage    = "Failed to send meeting email"
	SuccessMessage       = "Meeting scheduled and email sent successfully!"

	noMeetingURL = "No meeting URL provided"
	// dateLayout is what a datetime-local input submits.
	dateLayout = "2006-01-02T15:04"
)

// Request is the meeting form.
type Request struct {
	Name       string `form:"name" validate:"required"`
	Email      string `form:"email" validate:"required,email"`
	MeetingURL string `form:"meeting_url"`
	Date       string `form:"meeting_date"`
}

// Directory supplies the owner details the message is addressed to.
type Directory interface {
	PersonalInfo(ctx context.Context) content.View[content.PersonalInfo]
}

// Scheduler validates meeting requests and sends them.
type Scheduler struct {
	directory Directory
	logger    *zerolog.Logger

	// loadConfig and newSender run on every Schedule so a changed environment
	// takes effect without a restart.
	loadConfig func() (config.EmailConfig, error)
	newSender  func(config.EmailConfig) (Sender, error)
	now        func() time.Time
}

func NewScheduler(directory Directory, logger *zerolog.Logger) *Scheduler {
	return &Scheduler{
		directory:  directory,
		logger:     logger,
		loadConfig: config.LoadEmail,
		newSender:  NewSender,
		now:        time.Now,
	}
}

// Schedule sends the meeting request to the site owner. Errors are
// *errs.HTTPError values carrying the message to show the visitor.
func (s *Scheduler) Schedule(ctx context.Context, req Request) error {
	cfg, err := s.loadConfig()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read email configuration")
		return s.notConfigured()
	}
	if missing := cfg.Missing(); len(missing) > 0 {
		s.logger.Error().Strs("missing", missing).Msg("email is not configured")
		return s.notConfigured()
	}

	// Without a stored profile the owner address is a placeholder, so only an
	// explicit recipient will do.
	owner := s.directory.PersonalInfo(ctx)
	if owner.Fallback && strings.TrimSpace(cfg.To) == "" {
		s.logger.Error().Msg("no recipient: personal info is not saved and " + config.Prefix + "EMAIL__TO is unset")
		return s.notConfigured()
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := errs.ValidateStruct(req, InvalidMessage); err != nil {
		return errs.From(err, InvalidMessage)
	}

	msg, err := s.compose(cfg, owner.Items[0], req)
	if err != nil {
		s.logger.Error().Err(err).Str("template", cfg.Template).Msg("failed to render meeting email")
		return s.notConfigured()
	}

	sender, err := s.newSender(cfg)
	if err != nil {
		s.logger.Error().Err(err).Str("provider", cfg.Provider).Msg("failed to create email sender")
		return s.notConfigured()
	}
	if err := sender.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("provider", cfg.Provider).Str("from_email", req.Email).Msg("failed to send meeting email")
		return errs.NewInternalServerError(SendFailedMessage)
	}

	s.logger.Info().Str("provider", cfg.Provider).Str("from_email", req.Email).Str("to", msg.To).Msg("meeting email sent")
	return nil
}

func (s *Scheduler) notConfigured() error {
	return &NotConfiguredError{HTTPError: errs.NewServiceUnavailableError(NotConfiguredMessage)}
}

// NotConfiguredError is returned by Schedule when the provider settings are
// incomplete. It matches ErrNotConfigured with errors.Is.
type NotConfiguredError struct {
	*errs.HTTPError
}

func (e *NotConfiguredError) Is(target error) bool {
	return target == ErrNotConfigured || e.HTTPError.Is(target)
}

func (e *NotConfiguredError) Unwrap() error {
	return e.HTTPError
}

func (s *Scheduler) compose(cfg config.EmailConfig, owner content.PersonalInfo, req Request) (Message, error) {
	to := owner.Email
	if cfg.To != "" {
		to = cfg.To
	}

	meetingURL := strings.TrimSpace(req.MeetingURL)
	if meetingURL == "" {
		meetingURL = noMeetingURL
	}

	fields := Fields{
		"from_name":   req.Name,
		"from_email":  req.Email,
		"to_name":     owner.Name,
		"to_email":    to,
		"message":     "Meeting scheduled on " + s.meetingTime(req.Date) + " at " + owner.Location + ".",
		"meeting_url": meetingURL,
	}
	html, err := render(cfg.Template, fields)
	if err != nil {
		return Message{}, err
	}
	return Message{
		From:    cfg.From,
		To:      to,
		ReplyTo: req.Email,
		Subject: "Meeting request from " + req.Name,
		Fields:  fields,
		HTML:    html,
		Text:    plainText(fields),
	}, nil
}

// meetingTime formats the requested date, or now when it is missing or
// unparseable.
func (s *Scheduler) meetingTime(raw string) string {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		t = s.now()
	}
	return t.Format("1/2/2006, 3:04:05 PM")
}
