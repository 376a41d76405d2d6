package mailer

import (
	"fmt"
	"os"

	"github.com/resend/resend-go/v2"
)

// Sender delivers transactional mail. The zero value is unusable; build
// one with NewFromEnv.
type Sender struct {
	client *resend.Client
	from   string
}

// NewFromEnv reads RESEND_API_KEY and MAIL_FROM. Returns nil when the key
// is absent so callers can degrade to logging instead of sending.
func NewFromEnv() *Sender {
	key := os.Getenv("RESEND_API_KEY")
	if key == "" {
		return nil
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "no-reply@pitchpro.app"
	}
	return &Sender{client: resend.NewClient(key), from: from}
}

// SendPasswordReset mails a one-time reset code to the given address.
func (s *Sender) SendPasswordReset(to, code string) error {
	if s == nil {
		return fmt.Errorf("mailer not configured")
	}
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Your password reset code",
		Html: fmt.Sprintf(
			"<p>Use the code below to reset your dashboard password.</p><h2>%s</h2><p>The code expires in 15 minutes. If you did not request a reset you can ignore this email.</p>",
			code,
		),
	}
	_, err := s.client.Emails.Send(params)
	return err
}
