package pdfgen

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Verify parses generated PDF bytes with pdfcpu and confirms the document
// carries at least one page. A submission never ships a PDF attachment that
// a reader cannot open.
func Verify(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("empty PDF document")
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(b), conf)
	if err != nil {
		return fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("failed to ensure page count: %w", err)
	}
	if ctx.PageCount < 1 {
		return fmt.Errorf("PDF document has no pages")
	}
	return nil
}
