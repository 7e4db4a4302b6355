package email

import (
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/mol-coffee/mol-backend-go/internal/config"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

var subjects = map[string]string{
	TypePeriodClosed:         "MoL Coffee - Payroll ready for review",
	TypePayrollPaid:          "MoL Coffee - Salary paid",
	TypeConfirmationReminder: "MoL Coffee - Please confirm your payroll",
}

// Sender renders mail messages and delivers them over SMTP.
type Sender struct {
	client    *mail.Client
	from      string
	templates *template.Template
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return tmpl, nil
}

func NewSender(cfg config.SMTPConfig) (*Sender, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.DialTimeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &Sender{client: client, from: cfg.From, templates: tmpl}, nil
}

// Compose builds the mail for msg. Errors here are permanent.
func (s *Sender) Compose(msg MailMessage) (*mail.Msg, error) {
	subject, ok := subjects[msg.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported mail type %q", msg.Type)
	}
	tmpl := s.templates.Lookup(msg.Type + ".html")
	if tmpl == nil {
		return nil, fmt.Errorf("missing template for mail type %q", msg.Type)
	}

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(subject)
	if err := m.SetBodyHTMLTemplate(tmpl, msg.Data); err != nil {
		return nil, fmt.Errorf("failed to render mail body: %w", err)
	}
	return m, nil
}

// Deliver sends a composed mail. Errors here are worth retrying.
func (s *Sender) Deliver(ctx context.Context, m *mail.Msg) error {
	return s.client.DialAndSendWithContext(ctx, m)
}

func (s *Sender) Close() error {
	return s.client.Close()
}
