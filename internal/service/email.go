package service

import (
	"fmt"
	"html"

	"github.com/go-gomail/gomail"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/diacare/backend/config"
	"github.com/diacare/backend/internal/models"
)

// Mailer sends account emails.
type Mailer interface {
	SendPasswordReset(user *models.User, resetURL string) error
	SendWelcome(user *models.User) error
}

// EmailService delivers mail over SMTP. Without an SMTP host it only logs
// what would have been sent.
type EmailService struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
	log    zerolog.Logger
}

// NewEmailService creates an EmailService from the SMTP settings.
func NewEmailService(cfg config.SMTPConfig, log zerolog.Logger) *EmailService {
	s := &EmailService{cfg: cfg, log: log.With().Str("component", "email").Logger()}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

// SendEmail sends one HTML message.
func (s *EmailService) SendEmail(to, subject, body string) error {
	if s.dialer == nil {
		s.log.Info().Str("to", to).Str("subject", subject).Msg("SMTP not configured, email not sent")
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

// SendPasswordReset mails the reset link.
func (s *EmailService) SendPasswordReset(user *models.User, resetURL string) error {
	return s.SendEmail(user.Email, "Reset your DiaCare password", buildResetEmailBody(user, resetURL))
}

// SendWelcome greets a newly registered user.
func (s *EmailService) SendWelcome(user *models.User) error {
	return s.SendEmail(user.Email, "Welcome to DiaCare!", buildWelcomeEmailBody(user))
}

func displayName(user *models.User) string {
	return html.EscapeString(cases.Title(language.English).String(user.Name))
}

func buildResetEmailBody(user *models.User, resetURL string) string {
	link := html.EscapeString(resetURL)
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Reset your password - DiaCare</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background-color: #2E7D9A; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0; font-size: 28px;">DiaCare</h1>
	</div>
	<div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #2E7D9A; margin-top: 0;">Hello %s,</h2>
		<p>We received a request to reset your password. The link below is valid for one hour and can be used once.</p>
		<div style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #2E7D9A; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; font-weight: bold;">Reset Password</a>
		</div>
		<p style="color: #666; font-size: 14px;">If the button doesn't work, paste this link into your browser:</p>
		<p style="background-color: #eee; padding: 10px; border-radius: 5px; word-break: break-all; font-size: 12px;">%s</p>
		<p style="color: #666; font-size: 12px;">If you didn't ask for a reset you can ignore this email.</p>
	</div>
</body>
</html>
`, displayName(user), link, link)
}

func buildWelcomeEmailBody(user *models.User) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Welcome to DiaCare!</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background-color: #2E7D9A; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0; font-size: 28px;">Welcome to DiaCare!</h1>
	</div>
	<div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #2E7D9A; margin-top: 0;">Hello %s!</h2>
		<ul style="padding-left: 20px;">
			<li><strong>Recipes:</strong> generate diabetes-friendly recipes that respect your dietary, cultural and religious needs</li>
			<li><strong>Meal plans:</strong> plan up to two weeks of balanced meals</li>
			<li><strong>Calorie target:</strong> complete your profile to get a daily calorie estimate</li>
		</ul>
		<p style="color: #666; font-size: 12px;">Generated content is informational and does not replace medical advice.</p>
	</div>
</body>
</html>
`, displayName(user))
}
