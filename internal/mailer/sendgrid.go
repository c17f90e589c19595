package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers messages through the SendGrid v3 mail API.
type SendGridSender struct {
	client *sendgrid.Client
}

// NewSendGrid returns a Sender backed by SendGrid.
func NewSendGrid(apiKey string) *SendGridSender {
	return &SendGridSender{client: sendgrid.NewSendClient(apiKey)}
}

func (s *SendGridSender) Send(ctx context.Context, msg *Message) error {
	resp, err := s.client.SendWithContext(ctx, buildMail(msg))
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func buildMail(msg *Message) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(msg.FromName, msg.From))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(mail.NewEmail("", to))
	}
	m.AddPersonalizations(p)

	// SendGrid requires plain text before HTML.
	m.AddContent(mail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		m.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	for _, a := range msg.Attachments {
		att := mail.NewAttachment()
		att.SetContent(a.Content)
		att.SetType(a.Type)
		att.SetFilename(a.Filename)
		att.SetDisposition(a.Disposition)
		m.AddAttachment(att)
	}
	return m
}
