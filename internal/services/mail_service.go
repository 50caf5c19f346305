package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

type IMailService interface {
	SendReminderMail(ctx context.Context, to string, data ReminderEmailData) error
}

type SMTPConfig struct {
	Host     string
	Port     int // 587 for STARTTLS, 465 for implicit TLS
	Username string
	Password string
	From     string
	FromName string

	AppName    string
	AppBaseURL string
}

// Sender is the subset of gomail.Dialer the service needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type ReminderEmailData struct {
	FullName     string
	HabitName    string
	Motivation   string
	ReminderTime string
	ButtonURL    string
	AppName      string
	Year         int
}

type smtpMailService struct {
	cfg     SMTPConfig
	sender  Sender
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.Port == 465
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	return newMailService(cfg, dialer)
}

func newMailService(cfg SMTPConfig, sender Sender) (IMailService, error) {
	htmlTpl, err := template.New("reminderHTML").Parse(reminderHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse reminder html template: %w", err)
	}
	textTpl, err := template.New("reminderText").Parse(reminderTextTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse reminder text template: %w", err)
	}
	if cfg.AppName == "" {
		cfg.AppName = "Mente Viva"
	}
	return &smtpMailService{
		cfg:     cfg,
		sender:  sender,
		htmlTpl: htmlTpl,
		textTpl: textTpl,
	}, nil
}

func (s *smtpMailService) SendReminderMail(ctx context.Context, to string, data ReminderEmailData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if data.AppName == "" {
		data.AppName = s.cfg.AppName
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.ButtonURL == "" && s.cfg.AppBaseURL != "" {
		data.ButtonURL = strings.TrimRight(s.cfg.AppBaseURL, "/") + "/dashboard"
	}

	html, text, err := s.render(data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Hora do seu hábito: %s", data.HabitName))
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpMailService) render(data ReminderEmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

const reminderHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.HabitName}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f8fafc; color: #0f172a; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .wrapper { width: 100%; padding: 40px 16px; box-sizing: border-box; }
    .container { max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 16px; overflow: hidden; box-shadow: 0 20px 60px rgba(0, 0, 0, 0.08); }
    .header { padding: 28px 32px; border-bottom: 1px solid rgba(0, 0, 0, 0.06); }
    .brand { font-weight: 700; font-size: 20px; color: #7c3aed; text-transform: uppercase; letter-spacing: 0.5px; }
    .hero { padding: 36px 32px; }
    h1 { margin: 0 0 16px; font-size: 26px; line-height: 1.3; }
    p { margin: 0 0 18px; line-height: 1.7; color: #475569; font-size: 16px; }
    .motivation { border-left: 4px solid #7c3aed; padding: 12px 16px; background: #f5f3ff; border-radius: 8px; color: #4c1d95; }
    .btn { display: inline-block; padding: 14px 28px; background: #7c3aed; color: #ffffff !important; text-decoration: none; border-radius: 12px; font-weight: 600; }
    .footer { padding: 20px 32px; color: #64748b; font-size: 13px; text-align: center; border-top: 1px solid rgba(0, 0, 0, 0.06); }
  </style>
</head>
<body>
  <div class="wrapper">
    <div class="container">
      <div class="header"><div class="brand">{{.AppName}}</div></div>
      <div class="hero">
        <h1>Olá, {{.FullName}}!</h1>
        <p>Chegou a hora de <strong>{{.HabitName}}</strong>{{if .ReminderTime}} ({{.ReminderTime}}){{end}}.</p>
        {{if .Motivation}}<p class="motivation">{{.Motivation}}</p>{{end}}
        {{if .ButtonURL}}<p><a class="btn" href="{{.ButtonURL}}">Fazer check-in</a></p>{{end}}
      </div>
      <div class="footer">© {{.Year}} {{.AppName}}</div>
    </div>
  </div>
</body>
</html>`

const reminderTextTemplate = `Olá, {{.FullName}}!

Chegou a hora de {{.HabitName}}{{if .ReminderTime}} ({{.ReminderTime}}){{end}}.
{{if .Motivation}}
Lembre-se: {{.Motivation}}
{{end}}{{if .ButtonURL}}
Faça seu check-in: {{.ButtonURL}}
{{end}}
{{.AppName}} (c) {{.Year}}
`
