package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/pkg/logger"
)

// Config holds SMTP settings. When Enabled is false the sender becomes a
// no-op, which is the default for local development.
type Config struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	AdminEmail string `mapstructure:"admin_email"`
}

// Sender delivers best-effort notifications. Failures are logged, never
// surfaced to the request that triggered them.
type Sender interface {
	NotifyNewEnquiry(enquiry *model.Enquiry)
}

type sender struct {
	cfg    Config
	dialer *gomail.Dialer
	logger *logger.Logger
}

func NewSender(cfg Config, log *logger.Logger) Sender {
	return &sender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: log,
	}
}

func (s *sender) NotifyNewEnquiry(enquiry *model.Enquiry) {
	if !s.cfg.Enabled {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.AdminEmail)
	m.SetHeader("Subject", fmt.Sprintf("New enquiry: %s", enquiry.Service))
	m.SetBody("text/plain", fmt.Sprintf(
		"New enquiry received.\n\nPatient: %s (%d)\nMobile: %s\nService: %s\nMessage: %s\n",
		enquiry.PatientName, enquiry.PatientAge, enquiry.PatientMob,
		enquiry.Service, enquiry.Message,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error(err, "failed to send enquiry notification",
			"enquiry_id", enquiry.ID.String())
	}
}
