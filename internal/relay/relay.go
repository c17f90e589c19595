// Package relay forwards one submission to the outbound email provider:
// summary derivation, best-effort fallback PDF, and the single send call.
package relay

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olivepayment/pos-intake/internal/attachment"
	"github.com/olivepayment/pos-intake/internal/forms"
	"github.com/olivepayment/pos-intake/internal/mailer"
	"github.com/olivepayment/pos-intake/internal/pdfgen"
	"github.com/olivepayment/pos-intake/internal/submission"
)

// Options carries the delivery configuration injected at startup.
type Options struct {
	FromAddress        string
	FromName           string
	AgentRecipients    []string
	MerchantRecipients []string
}

// Service relays submissions. It is stateless and safe to call from
// concurrent handlers.
type Service struct {
	sender mailer.Sender
	opts   Options
	logger *slog.Logger
}

// New returns a relay service delivering through the given sender.
func New(sender mailer.Sender, opts Options, logger *slog.Logger) *Service {
	return &Service{sender: sender, opts: opts, logger: logger}
}

// Process sends one submission email. The text and HTML summaries are
// re-derived from the payload; attachments are the client-supplied files
// plus either the client PDF or, when that is absent, a server-generated
// fallback. Fallback PDF generation is best-effort: on failure the email
// still goes out, since the body carries the full summary.
func (s *Service) Process(ctx context.Context, def *forms.Definition, p *submission.Payload) error {
	text := BuildSummary(def, p)

	msg := &mailer.Message{
		From:        s.opts.FromAddress,
		FromName:    s.opts.FromName,
		To:          s.recipients(def.Type),
		Subject:     subjectFor(def.Type),
		Text:        text,
		HTML:        HTMLSummary(text),
		Attachments: append([]attachment.Attachment(nil), p.Attachments...),
	}

	if !hasApplicationPDF(def.Type, p.Attachments) {
		if pdf, err := s.fallbackPDF(def, p); err != nil {
			s.logger.WarnContext(ctx, "fallback PDF generation failed, sending summary only",
				"formType", def.Type, "error", err)
		} else {
			msg.Attachments = append(msg.Attachments, attachment.Attachment{
				Filename:    pdfgen.Filename(def.Type, p.ApplicantName, p.SubmittedAt),
				Type:        "application/pdf",
				Content:     base64.StdEncoding.EncodeToString(pdf),
				Disposition: attachment.DispositionAttachment,
			})
		}
	}

	s.logger.InfoContext(ctx, "relaying submission",
		"formType", def.Type, "recipients", len(msg.To), "attachments", len(msg.Attachments))

	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("relay submission: %w", err)
	}
	return nil
}

func (s *Service) recipients(formType string) []string {
	if formType == "Merchant" {
		return s.opts.MerchantRecipients
	}
	return s.opts.AgentRecipients
}

func subjectFor(formType string) string {
	if formType == "Merchant" {
		return "New Merchant POS Application"
	}
	return "New POS Agent Application"
}

// fallbackPDF rebuilds the application PDF from the payload field map. The
// wire form stores money fields as plain digit strings, so they are
// re-grouped for display first.
func (s *Service) fallbackPDF(def *forms.Definition, p *submission.Payload) ([]byte, error) {
	values := make(map[string]string, len(p.Fields))
	for k, v := range p.Fields {
		values[k] = v
	}
	for _, f := range def.MoneyFields() {
		if grouped, ok := forms.FormatMoney(values[f.Name]); ok {
			values[f.Name] = grouped
		}
	}

	rec := pdfgen.Record{
		Values:     values,
		Selected:   p.MultiFields,
		FileLabels: p.FileLabels,
	}
	b, err := pdfgen.Synthesize(def, rec, p.SubmittedAt)
	if err != nil {
		return nil, err
	}
	if err := pdfgen.Verify(b); err != nil {
		return nil, err
	}
	return b, nil
}

// hasApplicationPDF reports whether the client already attached its own
// generated application PDF. Uploaded documents that happen to be PDFs do
// not count; only the <FormType>Application_*.pdf artifact does.
func hasApplicationPDF(formType string, atts []attachment.Attachment) bool {
	prefix := formType + "Application_"
	for _, a := range atts {
		if a.Type == "application/pdf" && strings.HasPrefix(a.Filename, prefix) {
			return true
		}
	}
	return false
}
