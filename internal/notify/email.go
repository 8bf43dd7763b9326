package notify

import (
	"fmt"
	"net/smtp"
)

type EmailSender struct {
	Host     string
	Port     string
	User     string
	Password string
}

func (e *EmailSender) Configured() bool {
	return e.Host != "" && e.User != "" && e.Password != ""
}

func (e *EmailSender) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", e.User, to, subject, body)
	auth := smtp.PlainAuth("", e.User, e.Password, e.Host)
	addr := e.Host + ":" + e.Port
	if err := smtp.SendMail(addr, auth, e.User, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp %s: %w", addr, err)
	}
	return nil
}
