// Package pdfgen turns an application record into the PDF document that is
// the authoritative copy of a submission. Output is built directly as vector
// text on an A4 page, so the result is small and searchable.
package pdfgen

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/olivepayment/pos-intake/internal/forms"
)

const (
	companyName = "OLIVE PAYMENT SOLUTIONS LIMITED"

	// notProvided is the literal fallback for every empty field. The PDF is
	// the authoritative record, so absent values must be visible as such.
	notProvided = "Not provided"

	labelColWidth = 70.0
	valueColWidth = 110.0
	rowHeight     = 6.0
)

// Record is the flattened view of a submission that the synthesizer renders.
// It decouples PDF generation from where the data came from: the client
// builds one from reducer state, the relay from a payload field map.
type Record struct {
	Values     map[string]string
	Selected   map[string][]string
	FileLabels map[string]string
}

// RecordFromState flattens reducer state into a Record.
func RecordFromState(def *forms.Definition, s forms.State) Record {
	rec := Record{
		Values:     s.Values(),
		Selected:   map[string][]string{},
		FileLabels: map[string]string{},
	}
	for _, f := range def.FileFields() {
		if name := s.FileName(f.Name); name != "" {
			rec.FileLabels[f.Name] = name
		}
	}
	for _, sec := range def.Sections {
		for _, f := range sec.Fields {
			if f.Kind == forms.MultiSelect {
				rec.Selected[f.Name] = s.Selected(f.Name)
			}
		}
	}
	return rec
}

// value renders one field of the record, with the notProvided fallback.
func (r Record) value(f forms.Field) string {
	switch f.Kind {
	case forms.MultiSelect:
		if len(r.Selected[f.Name]) == 0 {
			return notProvided
		}
		return strings.Join(r.Selected[f.Name], ", ")
	case forms.File:
		if r.FileLabels[f.Name] == "" {
			return notProvided
		}
		return r.FileLabels[f.Name]
	case forms.Money:
		if r.Values[f.Name] == "" {
			return notProvided
		}
		return "NGN " + r.Values[f.Name]
	default:
		if r.Values[f.Name] == "" {
			return notProvided
		}
		return r.Values[f.Name]
	}
}

// Synthesize renders the full application record as a styled PDF: header
// block, one bordered label/value table per definition section, declaration
// paragraph, and a submission-timestamp footer. File fields are rendered by
// label only; the uploaded bytes travel as separate attachments.
//
// Output is deterministic for a fixed submittedAt.
func Synthesize(def *forms.Definition, rec Record, submittedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(def.Title, true)
	pdf.SetCreationDate(submittedAt)
	pdf.SetModificationDate(submittedAt)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header block.
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(11, 61, 59)
	pdf.CellFormat(0, 9, companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(85, 85, 85)
	pdf.CellFormat(0, 8, def.Title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for i, sec := range def.Sections {
		writeSectionHeading(pdf, fmt.Sprintf("SECTION %d: %s", i+1, sec.Title))

		if strings.Contains(sec.Title, "DECLARATION") {
			writeDeclaration(pdf, tr, rec.Values[def.PrimaryNameField])
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(51, 51, 51)
		for _, f := range sec.Fields {
			if f.Name == "existingAgentBank" && rec.Values["existingAgent"] != "YES" {
				continue
			}
			if f.Name == "additionalLocations" && rec.Values["hasMultipleStores"] != "YES" {
				continue
			}
			writeRow(pdf, tr, f.Label, rec.value(f))
		}
		pdf.Ln(4)
	}

	// Footer.
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(119, 119, 119)
	pdf.CellFormat(0, 5, "Application submitted on: "+submittedAt.Format("02 Jan 2006 15:04:05 MST"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("(c) %d Olive Payment Solutions Limited. All rights reserved.", submittedAt.Year()), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(11, 61, 59)
	pdf.SetDrawColor(11, 61, 59)
	pdf.CellFormat(0, 7, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.SetDrawColor(221, 221, 221)
}

func writeRow(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.CellFormat(labelColWidth, rowHeight, tr(label), "1", 0, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(valueColWidth, rowHeight, tr(value), "1", "L", false)
}

func writeDeclaration(pdf *fpdf.Fpdf, tr func(string) string, name string) {
	if name == "" {
		name = notProvided
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(51, 51, 51)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf(
		"I, %s, hereby declare that the information provided in this application is accurate and complete "+
			"to the best of my knowledge. I understand that any false information may lead to the rejection of "+
			"this application or termination of the engagement.", name)), "", "L", false)
	pdf.Ln(2)
}

// Filename builds the attachment name for a generated application PDF,
// AgentApplication_<name>_<epochMillis>.pdf or the Merchant equivalent.
func Filename(formType, primaryName string, submittedAt time.Time) string {
	if primaryName == "" {
		primaryName = "Unknown"
	}
	return fmt.Sprintf("%sApplication_%s_%d.pdf", formType, primaryName, submittedAt.UnixMilli())
}
