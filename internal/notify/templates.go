package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names.
const (
	tmplSignUp      = "sign_up"
	tmplEmailChange = "email_change"
	tmplReminder    = "reminder"
)

const layout = `{{define "header"}}<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>2DO</h2>
    <p>Hi {{.Username}},</p>{{end}}
{{define "footer"}}
  </div>
</body>
</html>{{end}}
{{define "sign_up"}}{{template "header" .}}
    <p>Use this code to finish creating your account:</p>
    <div style="font-size: 28px; font-weight: bold; letter-spacing: 3px;">{{.Code}}</div>
{{template "footer" .}}{{end}}
{{define "email_change"}}{{template "header" .}}
    <p>Someone asked to change the email address on your account. Use this code to confirm:</p>
    <div style="font-size: 28px; font-weight: bold; letter-spacing: 3px;">{{.Code}}</div>
    <p>If this was not you, change your password.</p>
{{template "footer" .}}{{end}}
{{define "reminder"}}{{template "header" .}}
    <p>This is a reminder for your task <strong>{{.Title}}</strong>.</p>
    <p><a href="{{.Link}}" target="_blank">Open task</a></p>
{{template "footer" .}}{{end}}`

var templates = template.Must(template.New("email").Parse(layout))

type templateData struct {
	Username string
	Code     string
	Title    string
	Link     string
}

func render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}
