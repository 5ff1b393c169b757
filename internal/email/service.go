package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"

	"github.com/redmonkez12/account-service/internal/logging"
)

type Service struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	fromEmail    string
	frontendURL  string
}

func NewService(smtpHost, smtpPort, smtpUser, smtpPassword, frontendURL string) *Service {
	return &Service{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpPassword: smtpPassword,
		fromEmail:    smtpUser,
		frontendURL:  frontendURL,
	}
}

// SendConfirmationNotice sends instructions for confirming the account's
// email address. Designed to be called in a goroutine.
func (s *Service) SendConfirmationNotice(ctx context.Context, toEmail string, accountID uuid.UUID) error {
	logger := logging.GetLoggerFromContext(ctx)

	confirmLink := fmt.Sprintf("%s/confirm?account=%s", s.frontendURL, accountID)

	subject := "Confirm your account"
	body, err := renderTemplate(confirmationTemplate, map[string]any{
		"Link": confirmLink,
	})
	if err != nil {
		logger.Error("failed to render confirmation email template", "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	if err := s.sendEmail(toEmail, subject, body); err != nil {
		logger.Error("failed to send confirmation email", "email", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("confirmation email sent", "email", toEmail)
	return nil
}

// SendPasswordChangedNotice tells the account holder their password was
// changed. Designed to be called in a goroutine.
func (s *Service) SendPasswordChangedNotice(ctx context.Context, toEmail string) error {
	logger := logging.GetLoggerFromContext(ctx)

	subject := "Your password was changed"
	body, err := renderTemplate(passwordChangedTemplate, map[string]any{
		"SupportURL": s.frontendURL,
	})
	if err != nil {
		logger.Error("failed to render password changed email template", "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	if err := s.sendEmail(toEmail, subject, body); err != nil {
		logger.Error("failed to send password changed email", "email", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("password changed email sent", "email", toEmail)
	return nil
}

func (s *Service) sendEmail(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.fromEmail, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func renderTemplate(tmpl *template.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<html>
<body style="font-family: sans-serif; color: #333;">
	<h2>Welcome!</h2>
	<p>Your account has been created. Please confirm your email address to finish setting it up:</p>
	<p><a href="{{.Link}}" style="display: inline-block; padding: 10px 20px; background: #2563eb; color: #fff; text-decoration: none; border-radius: 4px;">Confirm email</a></p>
	<p>If you did not create this account, you can ignore this email.</p>
</body>
</html>
`))

var passwordChangedTemplate = template.Must(template.New("password_changed").Parse(`
<html>
<body style="font-family: sans-serif; color: #333;">
	<h2>Password changed</h2>
	<p>The password for your account was just changed.</p>
	<p>If this was you, no action is needed. If not, please contact support immediately: <a href="{{.SupportURL}}">{{.SupportURL}}</a></p>
</body>
</html>
`))
