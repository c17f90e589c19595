package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivepayment/pos-intake/internal/attachment"
)

func sampleMessage() *Message {
	return &Message{
		From:     "forms@example.com",
		FromName: "Forms Relay",
		To:       []string{"ops-a@example.com", "ops-b@example.com"},
		Subject:  "New POS Agent Application",
		Text:     "New Agent Application Received:\nFull Name: Adaeze Nwosu\n",
		HTML:     "New Agent Application Received:<br>Full Name: Adaeze Nwosu<br>",
		Attachments: []attachment.Attachment{{
			Filename:    "AgentApplication_Adaeze Nwosu_1.pdf",
			Type:        "application/pdf",
			Content:     "JVBERi0=",
			Disposition: attachment.DispositionAttachment,
		}},
	}
}

func TestBuildMail(t *testing.T) {
	m := buildMail(sampleMessage())

	require.NotNil(t, m.From)
	assert.Equal(t, "forms@example.com", m.From.Address)
	assert.Equal(t, "Forms Relay", m.From.Name)
	assert.Equal(t, "New POS Agent Application", m.Subject)

	require.Len(t, m.Personalizations, 1)
	require.Len(t, m.Personalizations[0].To, 2)
	assert.Equal(t, "ops-a@example.com", m.Personalizations[0].To[0].Address)
	assert.Equal(t, "ops-b@example.com", m.Personalizations[0].To[1].Address)

	// Plain text must precede HTML.
	require.Len(t, m.Content, 2)
	assert.Equal(t, "text/plain", m.Content[0].Type)
	assert.Equal(t, "text/html", m.Content[1].Type)

	require.Len(t, m.Attachments, 1)
	assert.Equal(t, "AgentApplication_Adaeze Nwosu_1.pdf", m.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", m.Attachments[0].Type)
	assert.Equal(t, "attachment", m.Attachments[0].Disposition)
	assert.Equal(t, "JVBERi0=", m.Attachments[0].Content)
}

func TestBuildMailNoHTML(t *testing.T) {
	msg := sampleMessage()
	msg.HTML = ""
	m := buildMail(msg)

	require.Len(t, m.Content, 1)
	assert.Equal(t, "text/plain", m.Content[0].Type)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := NewLogSender(logger).Send(context.Background(), sampleMessage())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "email delivery skipped")
	assert.Contains(t, buf.String(), "New POS Agent Application")
}
