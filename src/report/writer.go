// Package report implements the PDF layout engine for vessel water-quality
// reports: page/section cursor state, 2x2 chart grid placement, paginated
// measurement tables with out-of-limit highlighting, and the section
// composer that drives them.
//
// Geometry follows the printed report: US Letter in points, a header band
// across the top of every content page, and a bottom margin below which
// nothing is drawn. The vertical cursor is measured from the page bottom
// and only ever decreases within a page; opening a page resets it to the
// fixed content top.
package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

// Page geometry, in PDF points (US Letter).
const (
	pageWidth  = 612.0
	pageHeight = 792.0

	marginLeft   = 25.0
	marginRight  = 25.0
	contentWidth = pageWidth - marginLeft - marginRight

	// The header band occupies roughly the top 100pt of a content page;
	// content starts 40pt below it.
	headerBandBottom = pageHeight - 100.0
	contentTop       = headerBandBottom - 40.0

	// bottomMargin is the pagination trigger: any placement that would
	// write below this line opens a continuation page first.
	bottomMargin = 85.0
)

// LayoutCursor is the page/section state machine. Exactly one live
// instance exists per document and every placement operation mutates it.
type LayoutCursor struct {
	// Y is the vertical write position in points from the page bottom.
	Y float64
	// Section is the current section name; empty means no section open.
	Section string
	// SectionPage counts pages within the current section, starting at 1.
	SectionPage int
	// GridSlot is the pending 2x2 grid position, 0..3.
	GridSlot int
	// GridRowTop records the Y at which the pending grid row started.
	GridRowTop float64
}

// Assets are optional full-page background images. Missing files fall
// back to drawn color bands so a report never fails on absent artwork.
type Assets struct {
	CoverImage   string
	ContentImage string
	BackImage    string
}

// Meta is the cover-page identity of a report.
type Meta struct {
	VesselName  string
	IMONumber   string
	CompanyName string
	PeriodStart string
	PeriodEnd   string
}

// Writer owns the PDF canvas, the layout cursor and the output buffer for
// one document. It is not safe for concurrent use; build one per report.
type Writer struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	cur    LayoutCursor
	meta   Meta
	assets Assets

	imageSeq int
	finished bool
}

// NewWriter constructs a document writer for one report.
func NewWriter(meta Meta, assets Assets) *Writer {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(marginLeft, 0, marginRight)
	return &Writer{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		meta:   meta,
		assets: assets,
	}
}

// Cursor exposes the live layout cursor, mainly for tests and for the
// composer's room checks.
func (w *Writer) Cursor() *LayoutCursor { return &w.cur }

// top converts a from-bottom Y into the canvas' from-top coordinate.
func top(yFromBottom float64) float64 { return pageHeight - yFromBottom }

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func (w *Writer) fullPageImage(path string) bool {
	if !fileExists(path) {
		return false
	}
	w.pdf.ImageOptions(path, 0, 0, pageWidth, pageHeight, false,
		fpdf.ImageOptions{ReadDpi: true}, 0, "")
	return true
}

// StartContentPage opens a content page for the named section. With
// continuation=true the section-local page number increments and the
// header shows "Name Page N"; otherwise the section and its page counter
// reset. The vertical cursor returns to the fixed content top and the
// chart grid slot resets.
func (w *Writer) StartContentPage(name string, continuation bool) {
	if continuation {
		w.cur.SectionPage++
	} else {
		w.cur.Section = name
		w.cur.SectionPage = 1
	}

	w.pdf.AddPage()
	if !w.fullPageImage(w.assets.ContentImage) {
		// Drawn header band stand-in for the background artwork.
		w.pdf.SetFillColor(31, 122, 92)
		w.pdf.Rect(0, 0, pageWidth, pageHeight-headerBandBottom, "F")
	}

	display := w.cur.Section
	if continuation {
		display = fmt.Sprintf("%s Page %d", w.cur.Section, w.cur.SectionPage)
	}
	w.pdf.SetFont("Helvetica", "B", 22)
	w.pdf.SetTextColor(255, 255, 255)
	w.pdf.Text(marginLeft, top(pageHeight-55), w.tr(display))

	w.cur.Y = contentTop
	w.cur.GridSlot = 0
}

// continuePage opens the implicit continuation page triggered by an
// overflowing placement.
func (w *Writer) continuePage() {
	w.StartContentPage(w.cur.Section, true)
}

// EnsureRoom opens a continuation page when fewer than need points remain
// above the bottom margin. Every placement calls this (directly or via
// its own row-level check) before writing.
func (w *Writer) EnsureRoom(need float64) {
	if w.cur.Y-need < bottomMargin {
		w.continuePage()
	}
}

// EndSection closes the current section. The next StartContentPage
// begins a fresh page, so there is nothing to flush on the canvas; the
// cursor just returns to the no-section state.
func (w *Writer) EndSection() {
	w.cur.Section = ""
	w.cur.SectionPage = 0
	w.cur.GridSlot = 0
}

// AddSubsection draws a subsection header. It reserves more than a bare
// line of room so a header never strands at a page bottom.
func (w *Writer) AddSubsection(title string) {
	if w.cur.Y < 180 {
		w.continuePage()
	}
	w.pdf.SetFont("Helvetica", "B", 13)
	w.pdf.SetTextColor(51, 102, 89)
	w.pdf.Text(marginLeft, top(w.cur.Y), w.tr(title))
	w.cur.Y -= 62
}

// AddText draws a single text line at the cursor.
func (w *Writer) AddText(text string, italic bool) {
	w.EnsureRoom(0)
	style := ""
	if italic {
		style = "I"
	}
	w.pdf.SetFont("Helvetica", style, 10)
	w.pdf.SetTextColor(89, 89, 89)
	w.pdf.Text(marginLeft, top(w.cur.Y), w.tr(text))
	w.cur.Y -= 16
}

// placeImage registers PNG bytes under a fresh name and draws them with
// the given bottom-left corner and size.
func (w *Writer) placeImage(png []byte, x, bottomY, width, height float64) {
	w.imageSeq++
	name := fmt.Sprintf("chart-%d", w.imageSeq)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	w.pdf.ImageOptions(name, x, top(bottomY+height), width, height, false, opts, 0, "")
}

// Output finalizes the document and returns the PDF bytes. It may be
// called exactly once; later calls return an error rather than a second,
// possibly diverging document.
func (w *Writer) Output() ([]byte, error) {
	if w.finished {
		return nil, fmt.Errorf("report already finalized")
	}
	w.finished = true
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("finalize pdf: %w", err)
	}
	return buf.Bytes(), nil
}
