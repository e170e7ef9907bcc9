// Package email renders the notification emails and delivers them over SMTP.
package email

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/wneessen/go-mail"
)

// ResetEmailParams feed the password-reset confirmation template.
type ResetEmailParams struct {
	Username  string
	Email     string
	IPAddress string
	Date      string
}

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the embedded email templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates once at startup.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// ForgotPassword renders the reset-link email.
func (r *Renderer) ForgotPassword(username, resetLink string) (string, error) {
	var b strings.Builder
	err := r.templates.ExecuteTemplate(&b, "forgot-password.html", map[string]string{
		"Username":  username,
		"ResetLink": resetLink,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render forgot-password template: %w", err)
	}
	return b.String(), nil
}

// ResetConfirmation renders the reset-confirmation email.
func (r *Renderer) ResetConfirmation(params ResetEmailParams) (string, error) {
	var b strings.Builder
	err := r.templates.ExecuteTemplate(&b, "reset-password.html", params)
	if err != nil {
		return "", fmt.Errorf("failed to render reset-password template: %w", err)
	}
	return b.String(), nil
}

// Sender delivers rendered emails through an SMTP relay.
type Sender struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewSender creates a Sender for the given SMTP relay.
func NewSender(host string, port int, user, password, from string) *Sender {
	return &Sender{host: host, port: port, user: user, password: password, from: from}
}

// Send delivers one HTML email.
func (s *Sender) Send(to, subject, html string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	opts := []mail.Option{mail.WithPort(s.port)}
	if s.user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.user),
			mail.WithPassword(s.password),
		)
	}

	client, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
