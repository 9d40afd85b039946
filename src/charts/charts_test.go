package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/munavvarfyrooz/accuport.cloud/src/types"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func rec(day int, unit, param string, v float64) types.MeasurementRecord {
	return types.MeasurementRecord{
		Date:      time.Date(2025, 11, day, 9, 30, 0, 0, time.UTC),
		UnitID:    unit,
		Parameter: param,
		Value:     types.Float64(v),
	}
}

func TestLineChartProducesPNG(t *testing.T) {
	records := []types.MeasurementRecord{
		rec(1, "Aux1", "Phosphate", 28),
		rec(2, "Aux1", "Phosphate", 31),
		rec(1, "Aux2", "Phosphate", 25),
		rec(3, "Aux2", "Phosphate", 40),
	}
	b := LineChart(records, LineOptions{
		Title:  "Phosphate",
		Colors: BoilerColors,
		Ideal:  &types.LimitEntry{Lower: 20, Upper: 40},
	})
	if b == nil {
		t.Fatalf("expected chart bytes")
	}
	if !bytes.HasPrefix(b, pngMagic) {
		t.Fatalf("output is not PNG, first bytes %v", b[:4])
	}
}

func TestLineChartSinglePointPads(t *testing.T) {
	b := LineChart([]types.MeasurementRecord{rec(5, "HT", "Nitrite", 700)}, LineOptions{Title: "Nitrite"})
	if b == nil {
		t.Fatalf("single-point series should still render")
	}
}

func TestLineChartEmptyInputs(t *testing.T) {
	if b := LineChart(nil, LineOptions{Title: "Nothing"}); b != nil {
		t.Fatalf("nil records should yield nil image")
	}
	// Records present but no numeric values: still nothing plottable.
	novalue := []types.MeasurementRecord{{Date: time.Now(), UnitID: "Aux1", Parameter: "pH"}}
	if b := LineChart(novalue, LineOptions{Title: "pH"}); b != nil {
		t.Fatalf("valueless records should yield nil image")
	}
}

func TestMultiLineChartFiltersByPattern(t *testing.T) {
	records := []types.MeasurementRecord{
		rec(1, "AE1", "TBN lube", 30),
		rec(2, "AE1", "TBN lube", 29),
		rec(1, "AE1", "Viscosity 100C", 14),
		rec(2, "AE1", "Unrelated", 1),
	}
	b := MultiLineChart(records, []string{"TBN", "Viscosity"}, LineOptions{Title: "AE1 Lube"})
	if b == nil {
		t.Fatalf("expected chart for matched parameters")
	}
	if b := MultiLineChart(records, []string{"Hydrazine"}, LineOptions{Title: "None"}); b != nil {
		t.Fatalf("no pattern match should yield nil")
	}
}

func TestScatterChartPairsByDay(t *testing.T) {
	records := []types.MeasurementRecord{
		{Date: time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC), SamplingPoint: "SD Unit 1", Parameter: "Iron in Oil", Value: types.Float64(120)},
		{Date: time.Date(2025, 11, 3, 14, 0, 0, 0, time.UTC), SamplingPoint: "SD Unit 1", Parameter: "BaseNumber", Value: types.Float64(22)},
		{Date: time.Date(2025, 11, 4, 8, 0, 0, 0, time.UTC), SamplingPoint: "SD Unit 2", Parameter: "Iron in Oil", Value: types.Float64(90)},
		{Date: time.Date(2025, 11, 4, 9, 0, 0, 0, time.UTC), SamplingPoint: "SD Unit 2", Parameter: "BaseNumber", Value: types.Float64(30)},
	}
	b := ScatterChart(records, "BaseNumber", "Iron", ScatterOptions{Title: "Iron vs BN"})
	if b == nil {
		t.Fatalf("expected scatter chart")
	}
	if !bytes.HasPrefix(b, pngMagic) {
		t.Fatalf("output is not PNG")
	}
	// Only one side of the pair present on a day: nothing to plot.
	lonely := []types.MeasurementRecord{
		{Date: time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC), SamplingPoint: "SD Unit 1", Parameter: "Iron in Oil", Value: types.Float64(120)},
	}
	if b := ScatterChart(lonely, "BaseNumber", "Iron", ScatterOptions{Title: "Iron vs BN"}); b != nil {
		t.Fatalf("unpaired readings should yield nil")
	}
}

func TestLegendPanel(t *testing.T) {
	b := LegendPanel([]string{"SD ME Unit 2", "SD ME Unit 1", "SD0 ME Fresh"}, "Scavenge Drain Legend")
	if b == nil || !bytes.HasPrefix(b, pngMagic) {
		t.Fatalf("expected PNG legend panel")
	}
	if b := LegendPanel(nil, "Empty"); b != nil {
		t.Fatalf("no names should yield nil")
	}
}

func TestCompactLabel(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Phosphate (HR tab). ortho", "Phosphate"},
		{"Iron vs BN", "Iron vs BN"},
		{"SD ME Unit 3", "Cyl 3"},
		{"SD0 ME Fresh", "Fresh Oil"},
		{"AB1 Aux Boiler 1", "Aux1"},
		{"AE2 Aux Engine", "AE2"},
		{"pH", "pH"},
		{"Some Very Long Unmatched Name", "Some Very Lo"},
		// Multi-byte first rune; truncation must count runes, not bytes.
		{"Šome Very Long Unmatched Name", "Šome Very Lo"},
	}
	for _, c := range cases {
		if got := CompactLabel(c.in); got != c.want {
			t.Fatalf("CompactLabel(%q) = %q want %q", c.in, got, c.want)
		}
	}
}

func TestUnitLabel(t *testing.T) {
	if got := UnitLabel("Conductivity"); got != "μS/cm" {
		t.Fatalf("conductivity unit = %q", got)
	}
	if got := UnitLabel("Base Number"); got != "mg KOH/g" {
		t.Fatalf("BN unit = %q", got)
	}
	if got := UnitLabel("Mystery"); got != "" {
		t.Fatalf("unknown title should give empty unit, got %q", got)
	}
}
