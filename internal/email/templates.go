package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Templates are compiled once at startup; a bad template is a programmer
// error and fails the process early.
var templates = template.Must(template.New("email").Parse(`
{{define "otp_code"}}
<p>Hello,</p>
<p>Your login code is <strong>{{.Code}}</strong>.</p>
<p>The code expires in {{.ExpiryMinutes}} minutes. If you did not request it, ignore this message.</p>
{{end}}

{{define "password_reset"}}
<p>Hello {{.Name}},</p>
<p>We received a request to reset your password. Click the link below to choose a new one:</p>
<p><a href="{{.ResetURL}}">Reset your password</a></p>
<p>The link expires in 1 hour. If you did not request a reset, ignore this message.</p>
{{end}}

{{define "welcome"}}
<p>Hello {{.Name}},</p>
<p>Welcome aboard. Your account is ready: browse open positions, set your preferences, and start applying.</p>
{{end}}

{{define "new_application"}}
<p>Hello {{.Name}},</p>
<p>You have received a new application for <strong>{{.JobTitle}}</strong>.</p>
<p>Applicant: {{.ApplicantName}}{{if .ApplicantEmail}} ({{.ApplicantEmail}}){{end}}</p>
<p>Log in to your dashboard to review it.</p>
{{end}}

{{define "application_status"}}
<p>Hello {{.Name}},</p>
<p>Your application for <strong>{{.JobTitle}}</strong> at {{.CompanyName}} is now <strong>{{.Status}}</strong>.</p>
{{if .Notes}}<p>Note from the employer: {{.Notes}}</p>{{end}}
{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
