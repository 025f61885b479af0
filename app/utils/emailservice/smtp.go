package emailservice

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"pantrypal.app/pantry-api-gateway/config/environment_variables"
)

type Mailer struct {
	host     string
	port     int
	username string
	password string
	sender   string
}

func NewMailer() *Mailer {
	envs := environment_variables.EnvironmentVariables
	return &Mailer{
		host:     envs.SMTP_HOST,
		port:     envs.SMTP_PORT,
		username: envs.SMTP_USERNAME,
		password: envs.SMTP_PASSWORD,
		sender:   envs.SMTP_SENDER_EMAIL,
	}
}

func (m *Mailer) Configured() bool {
	return m != nil && m.host != "" && m.sender != ""
}

func (m *Mailer) Send(to string, subject string, body string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp is not configured")
	}
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("TLS dial error: %w", err)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("SMTP client error: %w", err)
	}
	defer client.Close()

	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth error: %w", err)
		}
	}

	if err = client.Mail(m.sender); err != nil {
		return err
	}
	if err = client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = writer.Write([]byte(m.compose(to, subject, body))); err != nil {
		return err
	}
	if err = writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func (m *Mailer) compose(to, subject, body string) string {
	var b strings.Builder
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("From: " + m.sender + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
