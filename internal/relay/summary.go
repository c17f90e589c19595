package relay

import (
	"fmt"
	"strings"

	"github.com/olivepayment/pos-intake/internal/forms"
	"github.com/olivepayment/pos-intake/internal/submission"
)

// notProvided mirrors the PDF fallback: the email summary is best-effort and
// shows it for every field the client chose not to duplicate.
const notProvided = "Not provided"

// BuildSummary re-derives a plain-text summary of a submission from the
// payload fields, independent of the client-generated PDF. The section and
// field order follows the form definition so summary and PDF never drift.
func BuildSummary(def *forms.Definition, p *submission.Payload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New %s Application Received:\n", def.Type)

	for _, sec := range def.Sections {
		b.WriteString("\n")
		b.WriteString(sec.Title)
		b.WriteString(":\n")
		for _, f := range sec.Fields {
			if f.Name == "existingAgentBank" && p.Fields["existingAgent"] != "YES" {
				continue
			}
			if f.Name == "additionalLocations" && p.Fields["hasMultipleStores"] != "YES" {
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", f.Label, fieldValue(f, p))
		}
	}

	fmt.Fprintf(&b, "\nApplication submitted on: %s\n", p.SubmittedAt.Format("02 Jan 2006 15:04:05 MST"))
	return b.String()
}

// HTMLSummary is the text summary with newlines converted to <br> tags.
func HTMLSummary(text string) string {
	return strings.ReplaceAll(text, "\n", "<br>")
}

func fieldValue(f forms.Field, p *submission.Payload) string {
	switch f.Kind {
	case forms.MultiSelect:
		if sel := p.MultiFields[f.Name]; len(sel) > 0 {
			return strings.Join(sel, ", ")
		}
	case forms.File:
		if label := p.FileLabels[f.Name]; label != "" {
			return label
		}
	case forms.Money:
		// The wire value is a plain digit string; re-group it for reading.
		if v := p.Fields[f.Name]; v != "" {
			if grouped, ok := forms.FormatMoney(v); ok {
				return "NGN " + grouped
			}
			return v
		}
	default:
		if v := p.Fields[f.Name]; v != "" {
			return v
		}
	}
	return notProvided
}
