package submission

import (
	"encoding/base64"
	"time"

	"github.com/olivepayment/pos-intake/internal/attachment"
	"github.com/olivepayment/pos-intake/internal/forms"
	"github.com/olivepayment/pos-intake/internal/pdfgen"
)

// Assemble builds the outbound payload for one completed application.
// Monetary values are stripped of their display separators before
// transmission. The generated PDF, when present, is appended to the
// attachment list under the <FormType>Application_<name>_<millis>.pdf name.
func Assemble(def *forms.Definition, s forms.State, files []attachment.Attachment, pdf []byte, now time.Time) *Payload {
	fields := s.Values()
	headline := map[string]string{}
	for _, f := range def.MoneyFields() {
		stripped := forms.StripGrouping(fields[f.Name])
		fields[f.Name] = stripped
		headline[f.Name] = stripped
	}

	multi := map[string][]string{}
	labels := map[string]string{}
	for _, sec := range def.Sections {
		for _, f := range sec.Fields {
			switch f.Kind {
			case forms.MultiSelect:
				if sel := s.Selected(f.Name); len(sel) > 0 {
					multi[f.Name] = sel
				}
			case forms.File:
				if name := s.FileName(f.Name); name != "" {
					labels[f.Name] = name
				}
			}
		}
	}

	p := &Payload{
		FormType:       def.Type,
		ApplicantName:  s.Value(def.PrimaryNameField),
		ApplicantEmail: s.Value(def.EmailField),
		ApplicantPhone: s.Value(def.PhoneField),
		Headline:       headline,
		Fields:         fields,
		MultiFields:    multi,
		FileLabels:     labels,
		SubmittedAt:    now.UTC(),
		Attachments:    append([]attachment.Attachment(nil), files...),
	}

	if len(pdf) > 0 {
		p.Attachments = append(p.Attachments, attachment.Attachment{
			Filename:    pdfgen.Filename(def.Type, p.ApplicantName, now),
			Type:        "application/pdf",
			Content:     base64.StdEncoding.EncodeToString(pdf),
			Disposition: attachment.DispositionAttachment,
		})
	}
	return p
}
