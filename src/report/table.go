package report

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/munavvarfyrooz/accuport.cloud/src/limits"
	"github.com/munavvarfyrooz/accuport.cloud/src/types"
)

// Table row geometry.
const (
	tableHeaderHeight = 28.0
	tableRowHeight    = 18.0
	tableGapAfter     = 15.0

	// maxTableRows is the per-page row budget for paginated tables.
	maxTableRows = 24
)

// AlertCell is a (row, column) coordinate flagged for highlight styling.
// Row is 1-based over the data rows of the full, unpaged table.
type AlertCell struct {
	Row int
	Col int
}

// Table is a fully built, not-yet-paginated table: headers, scaled column
// widths, display rows and alert coordinates computed against the full
// row list.
type Table struct {
	Headers  []string
	Widths   []float64
	Rows     [][]string
	Alerts   []AlertCell
	LeftCols map[int]bool
}

// scaleWidths spreads base column widths over 90% of the content width.
func scaleWidths(base []float64) []float64 {
	var total float64
	for _, w := range base {
		total += w
	}
	scale := (contentWidth * 0.9) / total
	out := make([]float64, len(base))
	for i, w := range base {
		out[i] = w * scale
	}
	return out
}

// pageSpans slices n rows into contiguous [start, end) spans of at most
// size rows each.
func pageSpans(n, size int) [][2]int {
	var spans [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		spans = append(spans, [2]int{start, end})
	}
	return spans
}

// remapAlert converts a global 1-based alert row onto the page starting
// at offset start with count rows. Returns 0 when the alert belongs to a
// different page.
func remapAlert(globalRow, start, count int) int {
	local := globalRow - start
	if local < 1 || local > count {
		return 0
	}
	return local
}

// BuildMeasurementTable turns raw measurement records into the standard
// per-measurement table (Date, Sampling Point, Parameter, Value, Unit,
// Limits, Status), newest first. Values outside their resolved limits get
// ALERT status and alert cells on the Value and Status columns; records
// without a numeric value are skipped entirely.
func BuildMeasurementTable(records []types.MeasurementRecord, equipmentType string, resolver *limits.Resolver) Table {
	sorted := append([]types.MeasurementRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	t := Table{
		Headers:  []string{"Date", "Sampling Point", "Parameter", "Value", "Unit", "Limits", "Status"},
		Widths:   scaleWidths([]float64{50, 55, 95, 45, 35, 50, 40}),
		LeftCols: map[int]bool{2: true},
	}

	rowIdx := 1
	for _, r := range sorted {
		if r.Value == nil {
			continue
		}
		value := *r.Value

		limitsStr := "-"
		status := "OK"
		alert := false
		if e, ok := resolver.Resolve(equipmentType, r.Parameter); ok && limits.ValidRange(e) {
			limitsStr = fmt.Sprintf("%g-%g", e.Lower, e.Upper)
			if limits.OutOfRange(value, e) {
				alert = true
				status = "ALERT"
				t.Alerts = append(t.Alerts,
					AlertCell{Row: rowIdx, Col: 3},
					AlertCell{Row: rowIdx, Col: 6},
				)
			}
		}

		param := truncateRunes(r.Parameter, 20)
		valueStr := fmt.Sprintf("%.1f", value)
		if alert {
			valueStr += "*"
		}

		t.Rows = append(t.Rows, []string{
			r.Date.Format("2006-01-02"),
			r.UnitID,
			param,
			valueStr,
			SanitizeUnitText(r.Unit),
			limitsStr,
			status,
		})
		rowIdx++
	}
	return t
}

var scavengeUnitRe = regexp.MustCompile(`(?i)unit\s*(\d+)`)

// scavengeUnit compacts a scavenge-drain sampling point name to its
// table display unit.
func scavengeUnit(samplingPoint string) string {
	lower := strings.ToLower(samplingPoint)
	if strings.Contains(lower, "fresh") || strings.Contains(lower, "sd0") {
		return "Fresh Cyl Oil"
	}
	if m := scavengeUnitRe.FindStringSubmatch(samplingPoint); m != nil {
		return fmt.Sprintf("Cyl %s", m[1])
	}
	return truncateRunes(samplingPoint, 10)
}

// truncateRunes cuts a string to at most n runes. Byte slicing would
// split multi-byte characters in raw parameter and point names.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// BuildScavengeTable pivots scavenge-drain records into one row per
// (date, cylinder unit) with Iron and Base Number columns and an Alert
// column checked against the scavenge-drain limits. Nil limit entries
// mean no limits are configured and suppress alerting for that column.
func BuildScavengeTable(records []types.MeasurementRecord, ironLimits, bnLimits *types.LimitEntry) Table {
	type cell struct {
		iron *float64
		bn   *float64
	}
	organized := map[string]map[string]*cell{}
	for _, r := range records {
		if r.Value == nil {
			continue
		}
		date := r.Date.Format("2006-01-02")
		unit := scavengeUnit(r.SamplingPoint)
		if organized[date] == nil {
			organized[date] = map[string]*cell{}
		}
		if organized[date][unit] == nil {
			organized[date][unit] = &cell{}
		}
		v := *r.Value
		param := strings.ToLower(r.Parameter)
		if strings.Contains(param, "iron") || strings.Contains(param, "fe") {
			organized[date][unit].iron = &v
		} else if strings.Contains(param, "base") || strings.Contains(param, "bn") {
			organized[date][unit].bn = &v
		}
	}

	t := Table{
		Headers: []string{"Date", "Sampling Point", "Iron (ppm)", "BN (mg KOH/g)", "Alert"},
		Widths:  scaleWidths([]float64{80, 50, 90, 90, 60}),
	}

	dates := make([]string, 0, len(organized))
	for d := range organized {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	outside := func(v *float64, e *types.LimitEntry) bool {
		if v == nil || e == nil {
			return false
		}
		return limits.OutOfRange(*v, *e)
	}

	rowIdx := 1
	for _, date := range dates {
		units := make([]string, 0, len(organized[date]))
		for u := range organized[date] {
			units = append(units, u)
		}
		sort.Strings(units)
		for _, unit := range units {
			c := organized[date][unit]
			ironStr, bnStr := "-", "-"
			if c.iron != nil {
				ironStr = fmt.Sprintf("%.1f", *c.iron)
			}
			if c.bn != nil {
				bnStr = fmt.Sprintf("%.1f", *c.bn)
			}
			alertStr := "No"
			if outside(c.iron, ironLimits) || outside(c.bn, bnLimits) {
				alertStr = "Yes"
				t.Alerts = append(t.Alerts, AlertCell{Row: rowIdx, Col: 4})
			}
			t.Rows = append(t.Rows, []string{date, unit, ironStr, bnStr, alertStr})
			rowIdx++
		}
	}
	return t
}

// TableOptions controls table placement.
type TableOptions struct {
	// Title draws a subsection header before the table; continuation
	// pages repeat it with a "(continued)" suffix.
	Title string
	// NewPage opens a continuation page before the first table page.
	NewPage bool
}

// RenderTable draws a table across as many pages as its rows need. Each
// page slice re-draws the header row and remaps the table's global alert
// coordinates to page-local rows; coordinates outside the page are
// dropped. An empty table is a no-op and consumes no page.
func (w *Writer) RenderTable(t Table, opt TableOptions) {
	if len(t.Rows) == 0 {
		return
	}

	w.FlushGrid()
	if opt.NewPage {
		w.continuePage()
	}
	if opt.Title != "" {
		w.AddSubsection(opt.Title)
	}

	spans := pageSpans(len(t.Rows), maxTableRows)
	for pageIdx, span := range spans {
		start, end := span[0], span[1]
		count := end - start

		if pageIdx > 0 {
			w.continuePage()
			if opt.Title != "" {
				w.AddSubsection(opt.Title + " (continued)")
			}
		}

		height := tableHeaderHeight + float64(count)*tableRowHeight
		w.EnsureRoom(height)

		local := map[AlertCell]bool{}
		for _, a := range t.Alerts {
			if lr := remapAlert(a.Row, start, count); lr != 0 {
				local[AlertCell{Row: lr, Col: a.Col}] = true
			}
		}

		w.drawTablePage(t, t.Rows[start:end], local)
		w.cur.Y -= height + tableGapAfter
	}

	if len(t.Alerts) > 0 {
		w.EnsureRoom(12)
		w.pdf.SetFont("Helvetica", "I", 7)
		w.pdf.SetTextColor(197, 48, 48)
		w.pdf.Text(marginLeft, top(w.cur.Y), "* Value outside limits (highlighted in red)")
		w.cur.Y -= 15
	}
}

// drawTablePage draws one page slice of rows at the current cursor. The
// cursor itself is advanced by the caller.
func (w *Writer) drawTablePage(t Table, rows [][]string, alerts map[AlertCell]bool) {
	var tableWidth float64
	for _, cw := range t.Widths {
		tableWidth += cw
	}
	x0 := marginLeft + (contentWidth-tableWidth)/2

	w.pdf.SetDrawColor(222, 226, 230)
	w.pdf.SetLineWidth(0.5)

	// Header row
	y := top(w.cur.Y)
	w.pdf.SetFont("Helvetica", "B", 8)
	w.pdf.SetFillColor(44, 82, 130)
	w.pdf.SetTextColor(245, 245, 245)
	x := x0
	for i, h := range t.Headers {
		w.pdf.SetXY(x, y)
		w.pdf.CellFormat(t.Widths[i], tableHeaderHeight, w.tr(h), "1", 0, "CM", true, 0, "")
		x += t.Widths[i]
	}
	y += tableHeaderHeight

	for ri, row := range rows {
		x = x0
		for ci, cellText := range row {
			alerted := alerts[AlertCell{Row: ri + 1, Col: ci}]
			switch {
			case alerted:
				w.pdf.SetFont("Helvetica", "B", 7)
				w.pdf.SetFillColor(255, 204, 204)
				w.pdf.SetTextColor(197, 48, 48)
			case ri%2 == 1:
				w.pdf.SetFont("Helvetica", "", 7)
				w.pdf.SetFillColor(248, 249, 250)
				w.pdf.SetTextColor(33, 37, 41)
			default:
				w.pdf.SetFont("Helvetica", "", 7)
				w.pdf.SetFillColor(255, 255, 255)
				w.pdf.SetTextColor(33, 37, 41)
			}
			align := "CM"
			if t.LeftCols[ci] {
				align = "LM"
			}
			w.pdf.SetXY(x, y)
			w.pdf.CellFormat(t.Widths[ci], tableRowHeight, w.tr(cellText), "1", 0, align, true, 0, "")
			x += t.Widths[ci]
		}
		y += tableRowHeight
	}
}
