// Package mail is the transactional mail collaborator. Delivery is
// best-effort: callers log failures and move on, they never fail the
// operation that triggered the mail.
package mail

import (
	"bytes"
	"fmt"
	"net/smtp"
	"text/template"
)

// Mailer renders a named template and delivers it to the recipient.
type Mailer interface {
	Send(templateName, recipient string, data map[string]interface{}) error
}

// templates holds the known mail templates. The first line of each rendered
// template is the subject; the rest is the plain-text body.
var templates = map[string]*template.Template{
	"welcome": template.Must(template.New("welcome").Parse(
		"Welcome to Arbor Haus\n" +
			"Hi {{.Name}},\n\n" +
			"Your account is ready. Browse the catalog and start furnishing.\n\n" +
			"— Arbor Haus\n")),
	"order_confirmation": template.Must(template.New("order_confirmation").Parse(
		"Your Arbor Haus order {{.OrderID}}\n" +
			"Hi {{.Name}},\n\n" +
			"Thanks for your order. We charged {{printf \"%.2f\" .Total}} {{.Currency}} for:\n" +
			"{{range .Lines}}  - {{.Name}} ({{.Color}}) — {{printf \"%.2f\" .Price}}\n{{end}}\n" +
			"We will be in touch when it ships.\n\n" +
			"— Arbor Haus\n")),
}

// render produces the subject and body for a template.
func render(templateName string, data map[string]interface{}) (subject, body string, err error) {
	tmpl, ok := templates[templateName]
	if !ok {
		return "", "", fmt.Errorf("unknown mail template: %s", templateName)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render template %s: %w", templateName, err)
	}
	rendered := buf.String()
	for i := 0; i < len(rendered); i++ {
		if rendered[i] == '\n' {
			return rendered[:i], rendered[i+1:], nil
		}
	}
	return rendered, "", nil
}

type smtpMailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

// NewSMTPMailer creates a Mailer delivering over plain SMTP. Auth is skipped
// when username is empty (local MailHog-style relays).
func NewSMTPMailer(host, port, from, username, password string) Mailer {
	return &smtpMailer{host: host, port: port, from: from, username: username, password: password}
}

func (m *smtpMailer) Send(templateName, recipient string, data map[string]interface{}) error {
	subject, body, err := render(templateName, data)
	if err != nil {
		return err
	}

	msg := "From: " + m.from + "\r\n" +
		"To: " + recipient + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("send %s to %s: %w", templateName, recipient, err)
	}
	return nil
}
