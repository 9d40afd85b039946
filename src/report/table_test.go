package report

import (
	"fmt"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/munavvarfyrooz/accuport.cloud/src/limits"
	"github.com/munavvarfyrooz/accuport.cloud/src/types"
)

var testCatalog = limits.StaticCatalog{
	limits.EquipPotableWater: {
		"PH":       {Lower: 6.5, Upper: 8.5},
		"CHLORIDE": {Lower: 0, Upper: 250},
		"IRON":     {Lower: -1, Upper: -1},
	},
}

func testResolver() *limits.Resolver {
	return limits.NewResolver(testCatalog)
}

func mrec(day int, point, param string, value float64) types.MeasurementRecord {
	return types.MeasurementRecord{
		Date:          time.Date(2026, time.April, day, 9, 0, 0, 0, time.UTC),
		UnitID:        point,
		SamplingPoint: point,
		Parameter:     param,
		Value:         types.Float64(value),
	}
}

func TestPageSpans(t *testing.T) {
	cases := []struct {
		n, size int
		want    [][2]int
	}{
		{0, 24, nil},
		{10, 24, [][2]int{{0, 10}}},
		{24, 24, [][2]int{{0, 24}}},
		{53, 24, [][2]int{{0, 24}, {24, 48}, {48, 53}}},
	}
	for _, c := range cases {
		got := pageSpans(c.n, c.size)
		if len(got) != len(c.want) {
			t.Errorf("pageSpans(%d, %d) = %v, want %v", c.n, c.size, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("pageSpans(%d, %d)[%d] = %v, want %v", c.n, c.size, i, got[i], c.want[i])
			}
		}
	}
}

func TestRemapAlert(t *testing.T) {
	cases := []struct {
		global, start, count int
		want                 int
	}{
		{5, 0, 24, 5},
		{24, 0, 24, 24},
		{25, 0, 24, 0},
		{25, 24, 24, 1},
		{24, 24, 24, 0},
		{49, 48, 5, 1},
		{53, 48, 5, 5},
		{54, 48, 5, 0},
	}
	for _, c := range cases {
		if got := remapAlert(c.global, c.start, c.count); got != c.want {
			t.Errorf("remapAlert(%d, %d, %d) = %d, want %d", c.global, c.start, c.count, got, c.want)
		}
	}
}

func TestBuildMeasurementTable(t *testing.T) {
	records := []types.MeasurementRecord{
		mrec(1, "PW1", "pH-Universal (liq)", 7.2),
		mrec(3, "PW1", "pH-Universal (liq)", 9.0),
		mrec(2, "PW1", "Chloride", 120),
		{Date: time.Date(2026, time.April, 4, 0, 0, 0, 0, time.UTC), Parameter: "pH", UnitID: "PW1"},
	}

	tbl := BuildMeasurementTable(records, limits.EquipPotableWater, testResolver())

	// The nil-value record is dropped.
	if len(tbl.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(tbl.Rows))
	}
	// Newest first.
	if tbl.Rows[0][0] != "2026-04-03" || tbl.Rows[2][0] != "2026-04-01" {
		t.Errorf("rows not newest-first: %v", tbl.Rows)
	}

	// Row 1 is the 9.0 pH reading: outside 6.5-8.5.
	if tbl.Rows[0][6] != "ALERT" || tbl.Rows[0][3] != "9.0*" {
		t.Errorf("alert row = %v", tbl.Rows[0])
	}
	if tbl.Rows[0][5] != "6.5-8.5" {
		t.Errorf("limits cell = %q", tbl.Rows[0][5])
	}
	if len(tbl.Alerts) != 2 {
		t.Fatalf("alerts = %v, want value and status cells", tbl.Alerts)
	}
	for _, a := range tbl.Alerts {
		if a.Row != 1 {
			t.Errorf("alert on row %d, want 1", a.Row)
		}
	}

	// In-range rows stay OK without the asterisk.
	if tbl.Rows[1][6] != "OK" || tbl.Rows[1][3] != "120.0" {
		t.Errorf("ok row = %v", tbl.Rows[1])
	}
}

func TestBuildMeasurementTableSentinelLimits(t *testing.T) {
	records := []types.MeasurementRecord{
		mrec(1, "PW1", "Iron", 9999),
	}
	tbl := BuildMeasurementTable(records, limits.EquipPotableWater, testResolver())

	if len(tbl.Rows) != 1 {
		t.Fatalf("got %d rows", len(tbl.Rows))
	}
	// -1/-1 means monitor-only: no limits shown, no alert raised.
	if tbl.Rows[0][5] != "-" || tbl.Rows[0][6] != "OK" {
		t.Errorf("sentinel row = %v", tbl.Rows[0])
	}
	if len(tbl.Alerts) != 0 {
		t.Errorf("sentinel limits raised alerts: %v", tbl.Alerts)
	}
}

func TestBuildMeasurementTableMultibyteParameter(t *testing.T) {
	records := []types.MeasurementRecord{
		mrec(1, "PW1", "Sulphate SO₄²⁻ gravimetric extended", 12),
	}
	tbl := BuildMeasurementTable(records, limits.EquipPotableWater, testResolver())

	got := tbl.Rows[0][2]
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 20 {
		t.Errorf("parameter cell is %d runes, want 20: %q", n, got)
	}
}

func TestScavengeUnit(t *testing.T) {
	cases := []struct{ in, want string }{
		{"SD Scavenge Drain Unit 3", "Cyl 3"},
		{"Scavenge Unit 12", "Cyl 12"},
		{"Fresh Cylinder Oil", "Fresh Cyl Oil"},
		{"SD0 Reference", "Fresh Cyl Oil"},
		{"Short", "Short"},
		{"A Very Long Sampling Name", "A Very Lon"},
	}
	for _, c := range cases {
		if got := scavengeUnit(c.in); got != c.want {
			t.Errorf("scavengeUnit(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBuildScavengeTable(t *testing.T) {
	recs := []types.MeasurementRecord{
		mrec(2, "SD Scavenge Drain Unit 1", "Iron", 150),
		mrec(2, "SD Scavenge Drain Unit 1", "BaseNumber", 30),
		mrec(2, "SD Scavenge Drain Unit 2", "Iron", 300),
		mrec(1, "SD Scavenge Drain Unit 1", "Iron", 80),
	}
	iron := &types.LimitEntry{Lower: 0, Upper: 200}
	bn := &types.LimitEntry{Lower: 10, Upper: 50}

	tbl := BuildScavengeTable(recs, iron, bn)

	// One row per (date, unit), dates newest first, units ascending.
	if len(tbl.Rows) != 3 {
		t.Fatalf("got %d rows: %v", len(tbl.Rows), tbl.Rows)
	}
	if tbl.Rows[0][0] != "2026-04-02" || tbl.Rows[0][1] != "Cyl 1" {
		t.Errorf("row 0 = %v", tbl.Rows[0])
	}
	if tbl.Rows[0][2] != "150.0" || tbl.Rows[0][3] != "30.0" || tbl.Rows[0][4] != "No" {
		t.Errorf("row 0 = %v", tbl.Rows[0])
	}

	// Unit 2's iron is over limit.
	if tbl.Rows[1][1] != "Cyl 2" || tbl.Rows[1][4] != "Yes" || tbl.Rows[1][3] != "-" {
		t.Errorf("row 1 = %v", tbl.Rows[1])
	}
	if len(tbl.Alerts) != 1 || tbl.Alerts[0] != (AlertCell{Row: 2, Col: 4}) {
		t.Errorf("alerts = %v", tbl.Alerts)
	}
}

func TestBuildScavengeTableNoLimits(t *testing.T) {
	recs := []types.MeasurementRecord{
		mrec(1, "SD Scavenge Drain Unit 1", "Iron", 5000),
	}
	tbl := BuildScavengeTable(recs, nil, nil)
	if len(tbl.Alerts) != 0 || tbl.Rows[0][4] != "No" {
		t.Errorf("unconfigured limits still alerted: %v %v", tbl.Rows, tbl.Alerts)
	}
}

func TestRenderTablePagination(t *testing.T) {
	w := newTestWriter()
	w.StartContentPage("Test", false)

	tbl := Table{
		Headers: []string{"Date", "Value"},
		Widths:  scaleWidths([]float64{80, 80}),
	}
	for i := 0; i < 30; i++ {
		tbl.Rows = append(tbl.Rows, []string{fmt.Sprintf("2026-04-%02d", i%28+1), "1.0"})
	}

	w.RenderTable(tbl, TableOptions{})

	cur := w.Cursor()
	if cur.SectionPage != 2 {
		t.Fatalf("30 rows should span 2 pages, page = %d", cur.SectionPage)
	}
	want := contentTop - (tableHeaderHeight + 6*tableRowHeight) - tableGapAfter
	if cur.Y != want {
		t.Errorf("Y = %v, want %v after 6-row second page", cur.Y, want)
	}
}

func TestRenderTableEmptyIsNoop(t *testing.T) {
	w := newTestWriter()
	w.StartContentPage("Test", false)
	before := *w.Cursor()

	w.RenderTable(Table{Headers: []string{"A"}, Widths: []float64{50}}, TableOptions{NewPage: true})

	if *w.Cursor() != before {
		t.Errorf("empty table moved cursor: %+v", w.Cursor())
	}
}

func TestRenderTableNewPage(t *testing.T) {
	w := newTestWriter()
	w.StartContentPage("Test", false)
	w.Cursor().Y = 200

	tbl := Table{
		Headers: []string{"A"},
		Widths:  scaleWidths([]float64{50}),
		Rows:    [][]string{{"x"}},
	}
	w.RenderTable(tbl, TableOptions{NewPage: true})

	cur := w.Cursor()
	if cur.SectionPage != 2 {
		t.Fatalf("NewPage table stayed on page %d", cur.SectionPage)
	}
	want := contentTop - (tableHeaderHeight + tableRowHeight) - tableGapAfter
	if cur.Y != want {
		t.Errorf("Y = %v, want %v", cur.Y, want)
	}
}
