package report

import "fmt"

// DrawCoverPage emits the cover: background artwork (or a drawn block
// when missing) with vessel name, IMO number, company and the reporting
// period right-aligned over the title block.
func (w *Writer) DrawCoverPage() {
	w.pdf.AddPage()
	if !w.fullPageImage(w.assets.CoverImage) {
		w.pdf.SetFillColor(30, 58, 95)
		w.pdf.Rect(0, pageHeight*0.38, pageWidth, pageHeight*0.22, "F")
	}

	textX := pageWidth - 30.0

	vesselY := pageHeight * 0.52
	imoY := vesselY - 38
	companyY := imoY - 32
	reportLabelY := pageHeight * 0.32
	dateRangeY := reportLabelY - 20

	w.pdf.SetFont("Helvetica", "B", 34)
	w.pdf.SetTextColor(255, 255, 255)
	w.rightText(textX, vesselY, w.meta.VesselName)

	if w.meta.IMONumber != "" {
		w.pdf.SetFont("Helvetica", "", 13)
		w.rightText(textX, imoY, fmt.Sprintf("IMO: %s", w.meta.IMONumber))
	}
	if w.meta.CompanyName != "" {
		w.pdf.SetFont("Helvetica", "", 15)
		w.rightText(textX, companyY, w.meta.CompanyName)
	}

	w.pdf.SetFont("Helvetica", "", 12)
	w.pdf.SetTextColor(102, 102, 102)
	w.rightText(textX, reportLabelY, "Onboard Test Report")
	w.pdf.SetFont("Helvetica", "B", 14)
	w.rightText(textX, dateRangeY, fmt.Sprintf("%s - %s", w.meta.PeriodStart, w.meta.PeriodEnd))
}

// DrawBackCover emits the closing page.
func (w *Writer) DrawBackCover() {
	w.pdf.AddPage()
	if !w.fullPageImage(w.assets.BackImage) {
		w.pdf.SetFillColor(30, 58, 95)
		w.pdf.Rect(0, 0, pageWidth, pageHeight, "F")
	}
}

// rightText draws s with its right edge at x, baseline at yFromBottom.
func (w *Writer) rightText(x, yFromBottom float64, s string) {
	t := w.tr(s)
	w.pdf.Text(x-w.pdf.GetStringWidth(t), top(yFromBottom), t)
}
