package services

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galeri_app_echo/internal/config"
)

func TestSendEmailRequiresConfiguration(t *testing.T) {
	s := NewEmailService(config.SMTPConfig{Host: "smtp.example"})
	err := s.SendEmail([]string{"curator@example.com"}, "New submission", "body")
	assert.ErrorIs(t, err, ErrEmailNotConfigured)
}

func TestSendEmailBuildsMessage(t *testing.T) {
	s := NewEmailService(config.SMTPConfig{
		Host: "smtp.example", Port: "587", User: "mailer", Password: "secret", From: "galeri@example.com",
	})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, s.SendEmail([]string{"curator@example.com"}, "New submission", "Have a look"))
	assert.Equal(t, "smtp.example:587", gotAddr)
	assert.Equal(t, "galeri@example.com", gotFrom)
	assert.Equal(t, []string{"curator@example.com"}, gotTo)
	assert.True(t, strings.Contains(string(gotMsg), "Subject: New submission\r\n"))
	assert.True(t, strings.HasSuffix(string(gotMsg), "Have a look\r\n"))

	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("421 try later")
	}
	err := s.SendEmail([]string{"curator@example.com"}, "New submission", "Have a look")
	assert.ErrorContains(t, err, "failed to send email")
}
