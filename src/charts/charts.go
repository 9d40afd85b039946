// Package charts renders measurement series into PNG images for report
// placement. All functions return nil when there is nothing plottable so
// callers can skip placement without special-casing.
package charts

import (
	"bytes"
	"sort"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/munavvarfyrooz/accuport.cloud/src/limits"
	"github.com/munavvarfyrooz/accuport.cloud/src/types"
	"github.com/munavvarfyrooz/accuport.cloud/src/waterlog"
)

// Chart pixel dimensions. The report dictates the placement box; charts
// render at 2x the grid box for sharpness.
const (
	DefaultWidth  = 800
	DefaultHeight = 550
)

// Color schemes matching the web dashboard.
var (
	BoilerColors = map[string]drawing.Color{
		"Aux1":    drawing.ColorFromHex("0d6efd"),
		"Aux2":    drawing.ColorFromHex("198754"),
		"EGE":     drawing.ColorFromHex("dc3545"),
		"Hotwell": drawing.ColorFromHex("ffc107"),
	}
	CoolingColors = map[string]drawing.Color{
		"HT": drawing.ColorFromHex("dc3545"),
		"LT": drawing.ColorFromHex("0d6efd"),
	}
	GenericPalette = []drawing.Color{
		drawing.ColorFromHex("0d6efd"),
		drawing.ColorFromHex("198754"),
		drawing.ColorFromHex("dc3545"),
		drawing.ColorFromHex("ffc107"),
		drawing.ColorFromHex("6f42c1"),
		drawing.ColorFromHex("fd7e14"),
		drawing.ColorFromHex("20c997"),
		drawing.ColorFromHex("6c757d"),
	}
	limitLineColor = drawing.ColorFromHex("ff8c00")
)

func seriesStyle(c drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 1.5,
		StrokeColor: c,
		DotWidth:    3,
		DotColor:    c,
	}
}

// PlotDay truncates a timestamp to midnight so same-day samples share one
// x-axis point, matching the dashboard charts.
func PlotDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type point struct {
	t time.Time
	v float64
}

// groupPoints buckets plottable records by key. Records without a value
// are skipped.
func groupPoints(records []types.MeasurementRecord, key func(types.MeasurementRecord) string) map[string][]point {
	grouped := map[string][]point{}
	for _, r := range records {
		if r.Value == nil {
			continue
		}
		k := key(r)
		grouped[k] = append(grouped[k], point{t: PlotDay(r.Date), v: *r.Value})
	}
	for k := range grouped {
		pts := grouped[k]
		sort.Slice(pts, func(i, j int) bool { return pts[i].t.Before(pts[j].t) })
		grouped[k] = pts
	}
	return grouped
}

// timeSeries builds a TimeSeries, padding single-point groups to two X
// values because go-chart cannot compute a range from one.
func timeSeries(name string, pts []point, st chart.Style) chart.TimeSeries {
	xs := make([]time.Time, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.t
		ys[i] = p.v
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(time.Second))
		ys = append(ys, ys[0])
	}
	return chart.TimeSeries{Name: name, XValues: xs, YValues: ys, Style: st}
}

func limitSeries(name string, y float64, min, max time.Time) chart.TimeSeries {
	if !max.After(min) {
		max = min.Add(time.Second)
	}
	st := chart.Style{StrokeWidth: 1.0, StrokeColor: limitLineColor}
	return chart.TimeSeries{
		Name:    name,
		XValues: []time.Time{min, max},
		YValues: []float64{y, y},
		Style:   st,
	}
}

func timeSpan(grouped map[string][]point) (time.Time, time.Time) {
	var min, max time.Time
	for _, pts := range grouped {
		for _, p := range pts {
			if min.IsZero() || p.t.Before(min) {
				min = p.t
			}
			if max.IsZero() || p.t.After(max) {
				max = p.t
			}
		}
	}
	return min, max
}

func renderPNG(ch chart.Chart, what string, hideLegend bool) []byte {
	if !hideLegend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		// A failed render must not sink the section; the caller treats
		// nil as "nothing to place".
		waterlog.Warnf("%s chart render failed: %v", what, err)
		return nil
	}
	return buf.Bytes()
}

// LineOptions configures LineChart.
type LineOptions struct {
	Title string
	// Colors maps group keys to line colors; unlisted keys draw from
	// GenericPalette in sorted-key order.
	Colors map[string]drawing.Color
	// Ideal, when a valid pair, draws horizontal limit lines and a
	// "Limits" legend entry.
	Ideal *types.LimitEntry
	// Key selects the grouping for one line per group. Default: UnitID.
	Key func(types.MeasurementRecord) string
	// HideLegend suppresses the legend; charts whose legend is drawn as
	// a separate panel set this.
	HideLegend bool
	Width      int
	Height     int
}

// LineChart renders one line per group of records, with optional ideal
// range lines. Returns nil when no record is plottable.
func LineChart(records []types.MeasurementRecord, opt LineOptions) []byte {
	if len(records) == 0 {
		return nil
	}
	key := opt.Key
	if key == nil {
		key = func(r types.MeasurementRecord) string { return r.UnitID }
	}
	grouped := groupPoints(records, key)
	if len(grouped) == 0 {
		return nil
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := []chart.Series{}
	if opt.Ideal != nil && limits.ValidRange(*opt.Ideal) {
		min, max := timeSpan(grouped)
		series = append(series,
			limitSeries("Limits", opt.Ideal.Lower, min, max),
			limitSeries("", opt.Ideal.Upper, min, max),
		)
	}
	for i, k := range keys {
		c, ok := opt.Colors[k]
		if !ok {
			c = GenericPalette[i%len(GenericPalette)]
		}
		series = append(series, timeSeries(CompactLabel(k), grouped[k], seriesStyle(c)))
	}

	w, h := opt.Width, opt.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	ch := chart.Chart{
		Title:      CompactLabel(opt.Title),
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 48}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02 Jan"),
		},
		YAxis:  chart.YAxis{Name: UnitLabel(opt.Title)},
		Series: series,
	}
	return renderPNG(ch, opt.Title, opt.HideLegend)
}

// MultiLineChart renders one line per distinct parameter whose name
// contains any of the given patterns (case-insensitive). When opt.Ideal
// is nil the ideal range embedded in the first carrying record is used.
func MultiLineChart(records []types.MeasurementRecord, patterns []string, opt LineOptions) []byte {
	if len(records) == 0 {
		return nil
	}
	var matched []types.MeasurementRecord
	var found *types.LimitEntry
	for _, r := range records {
		if r.Value == nil {
			continue
		}
		if found == nil && r.IdealLow != nil && r.IdealHigh != nil {
			found = &types.LimitEntry{Lower: *r.IdealLow, Upper: *r.IdealHigh}
		}
		lower := strings.ToLower(r.Parameter)
		for _, p := range patterns {
			if strings.Contains(lower, strings.ToLower(p)) {
				matched = append(matched, r)
				break
			}
		}
	}
	if len(matched) == 0 {
		return nil
	}
	if opt.Ideal == nil {
		opt.Ideal = found
	}
	opt.Key = func(r types.MeasurementRecord) string { return r.Parameter }
	return LineChart(matched, opt)
}

// ScatterOptions configures ScatterChart.
type ScatterOptions struct {
	Title string
	// Colors maps group keys to dot colors.
	Colors map[string]drawing.Color
	// Key selects the grouping; default SamplingPoint.
	Key        func(types.MeasurementRecord) string
	HideLegend bool
	Width      int
	Height     int
}

// ScatterChart pairs x- and y-parameter readings by (group, calendar day)
// and renders one dot series per group. Used for correlations such as
// scavenge-drain Iron vs Base Number.
func ScatterChart(records []types.MeasurementRecord, xParam, yParam string, opt ScatterOptions) []byte {
	if len(records) == 0 {
		return nil
	}
	key := opt.Key
	if key == nil {
		key = func(r types.MeasurementRecord) string { return r.SamplingPoint }
	}

	type pair struct{ x, y *float64 }
	byGroup := map[string]map[string]*pair{}
	for _, r := range records {
		if r.Value == nil {
			continue
		}
		lower := strings.ToLower(r.Parameter)
		var isX, isY bool
		if strings.Contains(lower, strings.ToLower(xParam)) {
			isX = true
		} else if strings.Contains(lower, strings.ToLower(yParam)) {
			isY = true
		} else {
			continue
		}
		g := key(r)
		day := PlotDay(r.Date).Format("2006-01-02")
		if byGroup[g] == nil {
			byGroup[g] = map[string]*pair{}
		}
		if byGroup[g][day] == nil {
			byGroup[g][day] = &pair{}
		}
		v := *r.Value
		if isX {
			byGroup[g][day].x = &v
		} else if isY {
			byGroup[g][day].y = &v
		}
	}

	keys := make([]string, 0, len(byGroup))
	for k := range byGroup {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := []chart.Series{}
	colorIdx := 0
	for _, g := range keys {
		var xs, ys []float64
		for _, p := range byGroup[g] {
			if p.x != nil && p.y != nil {
				xs = append(xs, *p.x)
				ys = append(ys, *p.y)
			}
		}
		if len(xs) == 0 {
			continue
		}
		if len(xs) == 1 {
			xs = append(xs, xs[0]+0.001)
			ys = append(ys, ys[0])
		}
		c, ok := opt.Colors[g]
		if !ok {
			c = GenericPalette[colorIdx%len(GenericPalette)]
		}
		colorIdx++
		series = append(series, chart.ContinuousSeries{
			Name:    CompactLabel(g),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    c,
			},
		})
	}
	if len(series) == 0 {
		return nil
	}

	w, h := opt.Width, opt.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	ch := chart.Chart{
		Title:      CompactLabel(opt.Title),
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 48}},
		XAxis:      chart.XAxis{Name: xParam},
		YAxis:      chart.YAxis{Name: yParam},
		Series:     series,
	}
	return renderPNG(ch, opt.Title, opt.HideLegend)
}
