package email

import (
	"fmt"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
)

// Notifier renders and sends the transactional messages the services need.
// Sends are best effort: a mail failure is logged and never fails the
// request that triggered it, so every method returns nothing.
type Notifier struct {
	provider    Provider
	frontendURL string
}

func NewNotifier(provider Provider, frontendURL string) *Notifier {
	return &Notifier{provider: provider, frontendURL: frontendURL}
}

func (n *Notifier) send(to, subject, templateName string, data any) {
	body, err := render(templateName, data)
	if err != nil {
		logger.Error("failed to render email", "template", templateName, "error", err)
		return
	}
	if err := n.provider.Send(to, subject, body); err != nil {
		logger.Error("failed to send email", "to", to, "subject", subject, "error", err)
	}
}

func (n *Notifier) SendOTP(to, code string, expiryMinutes int) {
	n.send(to, "Your login code", "otp_code", map[string]any{
		"Code":          code,
		"ExpiryMinutes": expiryMinutes,
	})
}

func (n *Notifier) SendPasswordReset(to, name, token string) {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s", n.frontendURL, token, to)
	n.send(to, "Password reset request", "password_reset", map[string]any{
		"Name":     name,
		"ResetURL": resetURL,
	})
}

func (n *Notifier) SendWelcome(to, name string) {
	n.send(to, "Welcome!", "welcome", map[string]any{
		"Name": name,
	})
}

// SendNewApplication tells the job owner someone applied.
func (n *Notifier) SendNewApplication(to, name, jobTitle, applicantName, applicantEmail string) {
	subject := fmt.Sprintf("New application for %s", jobTitle)
	n.send(to, subject, "new_application", map[string]any{
		"Name":           name,
		"JobTitle":       jobTitle,
		"ApplicantName":  applicantName,
		"ApplicantEmail": applicantEmail,
	})
}

func (n *Notifier) SendApplicationStatus(to, name, jobTitle, companyName string, status models.ApplicationStatus, notes string) {
	subject := fmt.Sprintf("Application update: %s", jobTitle)
	n.send(to, subject, "application_status", map[string]any{
		"Name":        name,
		"JobTitle":    jobTitle,
		"CompanyName": companyName,
		"Status":      string(status),
		"Notes":       notes,
	})
}
