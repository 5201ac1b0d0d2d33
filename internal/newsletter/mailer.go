package newsletter

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers newsletter email. Implementations must be safe for
// concurrent use by the dispatcher and the verification service.
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}

type SendgridMailer struct {
	key  string
	from *sgmail.Email
}

var _ Mailer = (*SendgridMailer)(nil)

func NewSendgridMailer(apiKey, fromName, fromEmail string) *SendgridMailer {
	return &SendgridMailer{
		key:  apiKey,
		from: sgmail.NewEmail(fromName, fromEmail),
	}
}

func (m *SendgridMailer) Send(to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return nil
	}

	p := sgmail.NewPersonalization()
	p.Subject = subject
	for _, addr := range to {
		p.AddBCCs(sgmail.NewEmail("", addr))
	}
	// a single visible recipient keeps subscriber addresses private
	p.AddTos(m.from)

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(sgmail.NewContent("text/html", htmlBody))

	client := sendgrid.NewSendClient(m.key)
	resp, err := client.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}

	log.Info().Int("recipients", len(to)).Str("subject", subject).Msg("newsletter mail sent")
	return nil
}

// ConsoleMailer logs instead of sending; used in development and tests.
type ConsoleMailer struct{}

var _ Mailer = ConsoleMailer{}

func (ConsoleMailer) Send(to []string, subject, htmlBody string) error {
	log.Info().
		Strs("to", to).
		Str("subject", subject).
		Int("body_bytes", len(htmlBody)).
		Msg("console mailer: would send")
	return nil
}
