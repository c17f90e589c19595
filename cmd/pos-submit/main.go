// pos-submit replays the browser submission flow from the command line:
// answers are fed through the field formatter, required fields are gated,
// referenced files are encoded, the application PDF is generated, and the
// assembled payload is posted to a running pos-intake server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olivepayment/pos-intake/internal/attachment"
	"github.com/olivepayment/pos-intake/internal/forms"
	"github.com/olivepayment/pos-intake/internal/pdfgen"
	"github.com/olivepayment/pos-intake/internal/submission"
)

var (
	serverURL   = flag.String("server", "http://127.0.0.1:8080", "Base URL of the pos-intake server")
	answersPath = flag.String("answers", "", "Path to the JSON answers file")
	pdfOut      = flag.String("pdf-out", "", "Also write the generated PDF to this path")
	dryRun      = flag.Bool("dry-run", false, "Assemble and validate without posting")
	help        = flag.Bool("help", false, "Show help message")
)

// answerFile is the on-disk input: scalar answers, multi-select choices and
// file paths keyed by field name.
type answerFile struct {
	Form        string              `json:"form"` // "agent" or "merchant"
	Fields      map[string]string   `json:"fields"`
	Multi       map[string][]string `json:"multi"`
	Files       map[string]string   `json:"files"`
	AcceptTerms bool                `json:"acceptTerms"`
}

func main() {
	flag.Parse()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *help {
		printHelp()
		return
	}
	if *answersPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -answers file required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	raw, err := os.ReadFile(*answersPath)
	if err != nil {
		return fmt.Errorf("read answers file: %w", err)
	}
	var answers answerFile
	if err := json.Unmarshal(raw, &answers); err != nil {
		return fmt.Errorf("parse answers file: %w", err)
	}

	var def *forms.Definition
	switch strings.ToLower(answers.Form) {
	case "agent":
		def = forms.Agent()
	case "merchant":
		def = forms.Merchant()
	default:
		return fmt.Errorf("unknown form type %q (want agent or merchant)", answers.Form)
	}

	// The merchant form is gated on the terms checkbox, same as the site.
	if def.Type == "Merchant" && !answers.AcceptTerms {
		return fmt.Errorf("you must accept the Terms and Conditions to submit the application")
	}

	state, err := capture(def, &answers, logger)
	if err != nil {
		return err
	}

	if missing := def.MissingRequired(state); len(missing) > 0 {
		return fmt.Errorf("required fields missing: %s", strings.Join(missing, ", "))
	}

	files, err := encodeFiles(def, answers.Files)
	if err != nil {
		return err
	}

	now := time.Now()

	// PDF generation is best-effort: the email summary carries every field,
	// so a failed render downgrades the submission instead of blocking it.
	var pdf []byte
	rec := pdfgen.RecordFromState(def, state)
	if pdf, err = pdfgen.Synthesize(def, rec, now); err != nil {
		logger.Warn("PDF generation failed, submitting without it", "error", err)
		pdf = nil
	} else if err := pdfgen.Verify(pdf); err != nil {
		logger.Warn("generated PDF failed verification, submitting without it", "error", err)
		pdf = nil
	}

	if *pdfOut != "" && pdf != nil {
		if err := os.WriteFile(*pdfOut, pdf, 0o600); err != nil {
			return fmt.Errorf("write PDF to %s: %w", *pdfOut, err)
		}
		logger.Info("wrote application PDF", "path", *pdfOut, "bytes", len(pdf))
	}

	payload := submission.Assemble(def, state, files, pdf, now)

	if *dryRun {
		fmt.Printf("Dry run: %s application for %q ready, %d attachment(s)\n",
			def.Type, payload.ApplicantName, len(payload.Attachments))
		return nil
	}

	client := submission.NewClient(*serverURL, nil)
	res, err := client.Submit(context.Background(), payload)
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("submission rejected: %s", res.Message)
	}
	fmt.Println(res.Message)
	return nil
}

// capture replays every answer through the reducer, exactly as the form
// does per keystroke. Rejected values are reported, not silently dropped,
// since a file of answers is not an interactive editor.
func capture(def *forms.Definition, answers *answerFile, logger *slog.Logger) (forms.State, error) {
	state := forms.NewState()
	for name, value := range answers.Fields {
		next, ok := def.Apply(state, name, value)
		if !ok {
			return state, fmt.Errorf("value for field %q was rejected: %q", name, value)
		}
		state = next
	}
	for name, values := range answers.Multi {
		for _, v := range values {
			state = def.Toggle(state, name, v)
		}
	}
	for name, path := range answers.Files {
		if path == "" {
			continue
		}
		state = def.SetFile(state, name, filepath.Base(path))
	}
	return state, nil
}

func encodeFiles(def *forms.Definition, paths map[string]string) ([]attachment.Attachment, error) {
	var out []attachment.Attachment
	for _, f := range def.FileFields() {
		att, err := attachment.EncodeFile(paths[f.Name], f.Name)
		if err != nil {
			return nil, err
		}
		if att != nil {
			out = append(out, *att)
		}
	}
	return out, nil
}

func printHelp() {
	fmt.Println("pos-submit - submit an agent or merchant POS application from the command line")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  pos-submit -answers application.json [-server URL] [-pdf-out out.pdf] [-dry-run]")
	fmt.Println()
	fmt.Println("ANSWERS FILE:")
	fmt.Println("  {")
	fmt.Println("    \"form\": \"agent\",")
	fmt.Println("    \"fields\": {\"fullName\": \"Ada Obi\", \"monthlyTurnover\": \"1234567\", ...},")
	fmt.Println("    \"multi\": {\"operatingPeriod\": [\"Weekdays\", \"Weekends\"]},")
	fmt.Println("    \"files\": {\"signature\": \"./signature.png\"},")
	fmt.Println("    \"acceptTerms\": true")
	fmt.Println("  }")
	fmt.Println()
	fmt.Println("  Uploads accept PDF, JPG and PNG files up to 5MB each.")
}
