package email

import (
	"bytes"
	"fmt"
	"html/template"

	"go-jobboard-backend/config"

	"gopkg.in/gomail.v2"
)

// dialer is satisfied by *gomail.Dialer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService handles sending emails via SMTP
type EmailService struct {
	dialer    dialer
	fromEmail string
	tmpl      *template.Template
}

// StatusUpdateData holds the data for an application status email
type StatusUpdateData struct {
	To          string
	JobTitle    string
	CompanyName string
	Status      string
}

// statusUpdateTemplate is the HTML template for status change emails
const statusUpdateTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Application update</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .status { font-weight: bold; text-transform: capitalize; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Your application was updated</h1>
        </div>
        <p>Your application for <strong>{{.JobTitle}}</strong>{{if .CompanyName}} at {{.CompanyName}}{{end}}
        is now <span class="status">{{.Status}}</span>.</p>
        <div class="footer">
            <p>Sign in to your account to see the details.</p>
        </div>
    </div>
</body>
</html>`

// NewEmailService creates an email service from the SMTP settings in cfg
func NewEmailService(cfg *config.Config) *EmailService {
	return newEmailService(
		gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		cfg.SMTPFromEmail,
	)
}

func newEmailService(d dialer, from string) *EmailService {
	return &EmailService{
		dialer:    d,
		fromEmail: from,
		tmpl:      template.Must(template.New("status").Parse(statusUpdateTemplate)),
	}
}

// BuildStatusUpdate renders the status change message without sending it.
func (s *EmailService) BuildStatusUpdate(data StatusUpdateData) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromEmail)
	m.SetHeader("To", data.To)
	m.SetHeader("Subject", fmt.Sprintf("Application update: %s", data.JobTitle))
	m.SetBody("text/html", body.String())
	return m, nil
}

// SendStatusUpdate emails the candidate about a status change
func (s *EmailService) SendStatusUpdate(data StatusUpdateData) error {
	m, err := s.BuildStatusUpdate(data)
	if err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
