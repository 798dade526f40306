package services

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"galeri_app_echo/internal/config"
)

// ErrEmailNotConfigured is returned when SMTP credentials are missing.
var ErrEmailNotConfigured = errors.New("SMTP credentials not fully configured")

// EmailService sends plain-text mail over SMTP.
type EmailService struct {
	cfg  config.SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg, send: smtp.SendMail}
}

func (s *EmailService) SendEmail(to []string, subject, body string) error {
	if !s.cfg.Configured() {
		return ErrEmailNotConfigured
	}
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	message := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", s.cfg.From, strings.Join(to, ", "), subject, body))

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.From, to, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
