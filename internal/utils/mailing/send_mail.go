package mailing

import (
	"strconv"

	"kitchen-planner/internal/utils"

	"gopkg.in/gomail.v2"
)

type (
	// Mailer delivers one HTML message.
	Mailer interface {
		Send(toEmail string, subject string, body string) error
	}

	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	smtpMailer struct {
		config MailConfig
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer(config MailConfig) Mailer {
	return &smtpMailer{config: config}
}

// NewMessage builds the gomail message without sending it.
func NewMessage(config MailConfig, toEmail string, subject string, body string) *gomail.Message {
	mailer := gomail.NewMessage()
	if config.SMTPSender != "" {
		mailer.SetAddressHeader("From", config.SMTPEmail, config.SMTPSender)
	} else {
		mailer.SetHeader("From", config.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	return mailer
}

func (m *smtpMailer) Send(toEmail string, subject string, body string) error {
	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(NewMessage(m.config, toEmail, subject, body))
}

func SendMail(toEmail string, subject string, body string) error {
	return NewMailer(LoadMailConfig()).Send(toEmail, subject, body)
}
