package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/havenmed/records-api/pkg/logger"
)

// Service delivers account lifecycle mail
type Service interface {
	SendAccountAuthorized(ctx context.Context, to, name string) error
	SendLoginCode(ctx context.Context, to, code string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	cfg    Config
	dialer *gomail.Dialer
	log    *logger.Logger
}

func NewSMTPService(cfg Config, log *logger.Logger) Service {
	return &smtpService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		log:    log,
	}
}

// NewNoopService returns a Service that silently drops all mail. Used
// in tests and in deployments without an SMTP relay.
func NewNoopService() Service {
	return noopService{}
}

type noopService struct{}

func (noopService) SendAccountAuthorized(context.Context, string, string) error { return nil }
func (noopService) SendLoginCode(context.Context, string, string) error         { return nil }

func (s *smtpService) SendAccountAuthorized(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour account has been authorized. You can now log in to the patient records system.\n",
		name,
	)
	return s.send(to, "Account authorized", body)
}

func (s *smtpService) SendLoginCode(ctx context.Context, to, code string) error {
	body := fmt.Sprintf(
		"Your one-time login code is %s.\n\nThe code can be used once.\n",
		code,
	)
	return s.send(to, "One-time login code", body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Error(err, "failed to send email", "to", to, "subject", subject)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
