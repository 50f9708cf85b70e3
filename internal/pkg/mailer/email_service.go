// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendScheduleArtifact(toEmail, subject, filename string, attachment []byte) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendScheduleArtifact mails the generated calendar file so the user can open
// it on the device. iOS wants the .ics attached, never inlined.
func (s *emailService) SendScheduleArtifact(toEmail, subject, filename string, attachment []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)

	body := `
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your feeding schedule is ready!</h2>
			<p>Open the attached file and add it to your calendar app.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`
	m.SetBody("text/html", body)
	m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(attachment)
		return err
	}))

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send schedule to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Schedule sent to %s\n", toEmail)
	return nil
}
