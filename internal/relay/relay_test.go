package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivepayment/pos-intake/internal/attachment"
	"github.com/olivepayment/pos-intake/internal/forms"
	"github.com/olivepayment/pos-intake/internal/mailer"
	"github.com/olivepayment/pos-intake/internal/submission"
)

var submittedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// captureSender records the last message and returns a fixed error.
type captureSender struct {
	msg *mailer.Message
	err error
}

func (c *captureSender) Send(_ context.Context, m *mailer.Message) error {
	c.msg = m
	return c.err
}

func testOptions() Options {
	return Options{
		FromAddress:        "forms@example.com",
		FromName:           "Forms Relay",
		AgentRecipients:    []string{"agents@example.com"},
		MerchantRecipients: []string{"merchants-a@example.com", "merchants-b@example.com"},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func agentPayload() *submission.Payload {
	return &submission.Payload{
		FormType:       "Agent",
		ApplicantName:  "Adaeze Nwosu",
		ApplicantEmail: "adaeze@example.com",
		ApplicantPhone: "08031234567",
		Headline:       map[string]string{"monthlyTurnover": "2500000"},
		Fields: map[string]string{
			"fullName":        "Adaeze Nwosu",
			"email":           "adaeze@example.com",
			"monthlyTurnover": "2500000",
			"existingAgent":   "NO",
		},
		MultiFields: map[string][]string{"posFeatures": {"Card Payments"}},
		FileLabels:  map[string]string{"signature": "sig.png"},
		SubmittedAt: submittedAt,
	}
}

func TestProcessAddsFallbackPDF(t *testing.T) {
	sender := &captureSender{}
	svc := New(sender, testOptions(), testLogger())

	err := svc.Process(context.Background(), forms.Agent(), agentPayload())
	require.NoError(t, err)
	require.NotNil(t, sender.msg)

	assert.Equal(t, "forms@example.com", sender.msg.From)
	assert.Equal(t, []string{"agents@example.com"}, sender.msg.To)
	assert.Equal(t, "New POS Agent Application", sender.msg.Subject)

	require.Len(t, sender.msg.Attachments, 1)
	att := sender.msg.Attachments[0]
	assert.Equal(t, "application/pdf", att.Type)
	assert.True(t, strings.HasPrefix(att.Filename, "AgentApplication_Adaeze Nwosu_"), att.Filename)
	decoded, err := att.Decode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(decoded), "%PDF"))
}

func TestProcessKeepsClientPDF(t *testing.T) {
	sender := &captureSender{}
	svc := New(sender, testOptions(), testLogger())

	p := agentPayload()
	p.Attachments = []attachment.Attachment{{
		Filename:    "AgentApplication_Adaeze Nwosu_1741944600000.pdf",
		Type:        "application/pdf",
		Content:     "JVBERi0=",
		Disposition: attachment.DispositionAttachment,
	}}

	require.NoError(t, svc.Process(context.Background(), forms.Agent(), p))
	require.Len(t, sender.msg.Attachments, 1)
	assert.Equal(t, "JVBERi0=", sender.msg.Attachments[0].Content)
}

func TestProcessUploadedPDFDoesNotSuppressFallback(t *testing.T) {
	sender := &captureSender{}
	svc := New(sender, testOptions(), testLogger())

	// An applicant-uploaded PDF document is not the generated application PDF.
	p := agentPayload()
	p.Attachments = []attachment.Attachment{{
		Filename:    "cac-certificate.pdf",
		Type:        "application/pdf",
		Content:     "JVBERi0=",
		Disposition: attachment.DispositionAttachment,
	}}

	require.NoError(t, svc.Process(context.Background(), forms.Agent(), p))
	require.Len(t, sender.msg.Attachments, 2)
	assert.True(t, strings.HasPrefix(sender.msg.Attachments[1].Filename, "AgentApplication_"))
}

func TestProcessMerchantRouting(t *testing.T) {
	sender := &captureSender{}
	svc := New(sender, testOptions(), testLogger())

	p := agentPayload()
	p.FormType = "Merchant"
	p.ApplicantName = "Kano Traders Ltd"
	p.Fields = map[string]string{"businessName": "Kano Traders Ltd"}

	require.NoError(t, svc.Process(context.Background(), forms.Merchant(), p))
	assert.Equal(t, []string{"merchants-a@example.com", "merchants-b@example.com"}, sender.msg.To)
	assert.Equal(t, "New Merchant POS Application", sender.msg.Subject)
}

func TestProcessSendError(t *testing.T) {
	sendErr := errors.New("provider unavailable")
	sender := &captureSender{err: sendErr}
	svc := New(sender, testOptions(), testLogger())

	err := svc.Process(context.Background(), forms.Agent(), agentPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
	assert.Contains(t, err.Error(), "relay submission")
}

func TestBuildSummary(t *testing.T) {
	text := BuildSummary(forms.Agent(), agentPayload())

	assert.True(t, strings.HasPrefix(text, "New Agent Application Received:\n"))
	assert.Contains(t, text, "PERSONAL INFORMATION:\n")
	assert.Contains(t, text, "Full Name: Adaeze Nwosu\n")
	assert.Contains(t, text, "Monthly Turnover: NGN 2,500,000\n")
	assert.Contains(t, text, "POS Features: Card Payments\n")
	assert.Contains(t, text, "Signature: sig.png\n")
	assert.Contains(t, text, "BVN: Not provided\n")
	assert.Contains(t, text, "Application submitted on: 14 Mar 2025 09:30:00 UTC")

	// existingAgent is NO, so the provider row is omitted entirely.
	assert.NotContains(t, text, "Current Bank/Provider")
}

func TestBuildSummaryConditionalRows(t *testing.T) {
	p := agentPayload()
	p.Fields["existingAgent"] = "YES"
	p.Fields["existingAgentBank"] = "Moniepoint"

	text := BuildSummary(forms.Agent(), p)
	assert.Contains(t, text, "Current Bank/Provider: Moniepoint\n")
}

func TestHTMLSummary(t *testing.T) {
	assert.Equal(t, "a<br>b<br>", HTMLSummary("a\nb\n"))
}

func TestHasApplicationPDF(t *testing.T) {
	tests := []struct {
		name string
		att  attachment.Attachment
		want bool
	}{
		{
			name: "generated_pdf",
			att:  attachment.Attachment{Filename: "AgentApplication_X_1.pdf", Type: "application/pdf"},
			want: true,
		},
		{
			name: "wrong_prefix",
			att:  attachment.Attachment{Filename: "MerchantApplication_X_1.pdf", Type: "application/pdf"},
			want: false,
		},
		{
			name: "uploaded_document",
			att:  attachment.Attachment{Filename: "passport.pdf", Type: "application/pdf"},
			want: false,
		},
		{
			name: "wrong_type",
			att:  attachment.Attachment{Filename: "AgentApplication_X_1.pdf", Type: "image/png"},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hasApplicationPDF("Agent", []attachment.Attachment{tt.att})
			assert.Equal(t, tt.want, got)
		})
	}
}
