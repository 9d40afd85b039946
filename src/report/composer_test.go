package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/munavvarfyrooz/accuport.cloud/src/limits"
	"github.com/munavvarfyrooz/accuport.cloud/src/types"
)

// stubSource is a canned MeasurementSource for composer tests.
type stubSource struct {
	records map[string][]types.MeasurementRecord // keyed by equipment name
	err     error
	panics  bool
}

func (s *stubSource) MeasurementsByEquipment(vesselID int64, equipmentName string, paramPatterns []string, start, end time.Time) ([]types.MeasurementRecord, error) {
	if s.panics {
		panic("stub source panic")
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.records[equipmentName], nil
}

func (s *stubSource) ScavengeDrainMeasurements(vesselID int64, paramPatterns []string, start, end time.Time) ([]types.MeasurementRecord, error) {
	if s.panics {
		panic("stub source panic")
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.records["scavenge"], nil
}

func (s *stubSource) EquipmentSpecs(vesselID int64, equipmentFilter string) ([]SpecCategory, error) {
	return nil, nil
}

func (s *stubSource) ScavengeDrainLimits() (iron, bn *types.LimitEntry, err error) {
	return nil, nil, nil
}

func testRequest() Request {
	return Request{
		VesselID: 1,
		Start:    time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC),
	}
}

func generateToPDF(t *testing.T, src MeasurementSource, req Request) ([]byte, *Writer) {
	t.Helper()
	w := newTestWriter()
	c := NewComposer(src, testResolver())
	if err := c.Generate(w, req); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	pdf, err := w.Output()
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	return pdf, w
}

func TestGenerateEmptySourceCoversOnly(t *testing.T) {
	w := newTestWriter()
	c := NewComposer(&stubSource{}, testResolver())
	if err := c.Generate(w, testRequest()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Sections with no data must not consume pages.
	if got := w.pdf.PageNo(); got != 2 {
		t.Errorf("page count = %d, want cover and back cover only", got)
	}
	if _, err := w.Output(); err != nil {
		t.Errorf("Output: %v", err)
	}
}

func TestGenerateSectionErrorsIsolated(t *testing.T) {
	src := &stubSource{err: errors.New("database locked")}
	_, w := generateToPDF(t, src, testRequest())

	// Every section failed before opening a page; covers still render.
	if got := w.pdf.PageNo(); got != 2 {
		t.Errorf("page count = %d, want 2", got)
	}
}

func TestGenerateSectionPanicsIsolated(t *testing.T) {
	src := &stubSource{panics: true}
	_, w := generateToPDF(t, src, testRequest())
	if got := w.pdf.PageNo(); got != 2 {
		t.Errorf("page count = %d, want 2", got)
	}
}

func TestGenerateUnknownSectionKeySkipped(t *testing.T) {
	req := testRequest()
	req.Sections = []string{"no_such_section", "potable_water"}
	_, w := generateToPDF(t, &stubSource{}, req)
	if got := w.pdf.PageNo(); got != 2 {
		t.Errorf("page count = %d, want 2", got)
	}
}

func TestGenerateSectionWithData(t *testing.T) {
	src := &stubSource{records: map[string][]types.MeasurementRecord{
		"PW1 Potable Water": {
			mrec(5, "PW1", "pH-Universal (liq)", 7.1),
			mrec(12, "PW1", "pH-Universal (liq)", 9.2),
			mrec(12, "PW1", "Chloride", 40),
		},
	}}

	req := testRequest()
	req.Sections = []string{"potable_water"}
	_, w := generateToPDF(t, src, req)

	// Cover, at least one section page, back cover.
	if got := w.pdf.PageNo(); got < 3 {
		t.Errorf("page count = %d, want section content between covers", got)
	}
}

func TestSectionCatalog(t *testing.T) {
	keys := SectionKeys()
	if len(keys) != 8 || keys[0] != "boiler" || keys[7] != "egcs" {
		t.Errorf("section keys = %v", keys)
	}
	if SectionName("central_cooling") != "Central Cooling" {
		t.Errorf("SectionName(central_cooling) = %q", SectionName("central_cooling"))
	}
	if SectionName("bogus") != "" {
		t.Errorf("unknown key should have empty name")
	}
}

func TestChartLimits(t *testing.T) {
	c := NewComposer(&stubSource{}, testResolver())

	if e := c.chartLimits(limits.EquipPotableWater, "pH-Universal (liq)"); e == nil || e.Lower != 6.5 {
		t.Errorf("chartLimits pH = %v", e)
	}
	// Sentinel pair suppresses the overlay.
	if e := c.chartLimits(limits.EquipPotableWater, "Iron"); e != nil {
		t.Errorf("sentinel limits produced overlay %v", e)
	}
	if e := c.chartLimits("UNKNOWN EQUIPMENT", "pH"); e != nil {
		t.Errorf("unknown equipment produced overlay %v", e)
	}
}
