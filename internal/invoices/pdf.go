package invoices

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

const pageMargin = 14.0 // mm, close to pdfkit's 40pt default

// renderPDF draws the prepared lines into a paginated A4 document.
func renderPDF(lines []line) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, l := range lines {
		style := ""
		if l.underline {
			style = "U"
		}
		pdf.SetFont("Helvetica", style, l.size)

		align := "L"
		switch l.align {
		case alignCenter:
			align = "C"
		case alignRight:
			align = "R"
		}

		height := l.size * 0.55
		pdf.CellFormat(0, height, tr(l.text), "", 1, align, false, 0, "")
		if l.gapAfter {
			pdf.Ln(height * 0.8)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
