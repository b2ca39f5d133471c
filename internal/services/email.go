package services

import (
	"fmt"
	"net/smtp"

	"github.com/Shishir2405/notenex-api/internal/config"
)

type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	appURL       string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		fromEmail:    cfg.SMTPFromEmail,
		fromName:     cfg.SMTPFromName,
		appURL:       cfg.AppURL,
	}
}

// SendEmail sends an email using SMTP
func (s *EmailService) SendEmail(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", from, to, subject, body))

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg)
}

// SendWarningNotice emails a user that a moderator issued a warning.
func (s *EmailService) SendWarningNotice(to, username, reason string) error {
	subject := "You have received a warning"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>A moderator has issued a warning on your account:</p><blockquote>%s</blockquote>"+
			"<p>Repeated violations may lead to a ban. Review the community guidelines at <a href=\"%s\">%s</a>.</p>",
		username, reason, s.appURL, s.appURL)
	return s.SendEmail(to, subject, body)
}

// SendBanNotice emails a user that their account has been banned.
func (s *EmailService) SendBanNotice(to, username, reason string) error {
	subject := "Your account has been banned"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your account has been banned for the following reason:</p><blockquote>%s</blockquote>"+
			"<p>If you believe this is a mistake, contact the administrators.</p>",
		username, reason)
	return s.SendEmail(to, subject, body)
}
