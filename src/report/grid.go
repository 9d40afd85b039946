package report

// 2x2 chart grid geometry.
const (
	gridChartWidth  = 275.0
	gridChartHeight = 245.0
	gridHGap        = 8.0
	gridVGap        = 15.0

	wideChartHeight = 280.0
)

// PlaceChart places a chart image into the next slot of the 2x2 grid:
// slot 0 top-left, 1 top-right, 2 bottom-left, 3 bottom-right. At slot 0
// the full row is fit-checked against the bottom margin first, so a row
// never straddles a page break. After the fourth placement the slot
// wraps to 0 and the cursor advances past both rows. Returns false for a
// nil image (nothing placed, cursor untouched).
func (w *Writer) PlaceChart(png []byte) bool {
	if png == nil {
		return false
	}

	if w.cur.GridSlot == 0 {
		if w.cur.Y-gridChartHeight < bottomMargin {
			w.continuePage()
		}
		w.cur.GridRowTop = w.cur.Y
	}

	x := marginLeft
	if w.cur.GridSlot%2 == 1 {
		x = marginLeft + gridChartWidth + gridHGap
	}

	var bottomY float64
	if w.cur.GridSlot < 2 {
		bottomY = w.cur.GridRowTop - gridChartHeight
	} else {
		bottomY = w.cur.GridRowTop - 2*gridChartHeight - gridVGap
	}

	w.placeImage(png, x, bottomY, gridChartWidth, gridChartHeight)

	w.cur.GridSlot++
	if w.cur.GridSlot >= 4 {
		w.cur.GridSlot = 0
		w.cur.Y = bottomY - gridVGap
	}
	return true
}

// FlushGrid completes a partially filled grid row: the cursor advances
// as if the pending row(s) had been fully placed and the slot resets.
// Tables, wide charts and spec blocks call this before drawing so their
// geometry never overlaps an open chart row.
func (w *Writer) FlushGrid() {
	if w.cur.GridSlot == 0 {
		return
	}
	rows := (w.cur.GridSlot + 1) / 2
	w.cur.Y = w.cur.GridRowTop - float64(rows)*(gridChartHeight+gridVGap)
	w.cur.GridSlot = 0
}

// PlaceWideChart places a chart at full content width, outside the grid.
// Any pending grid row is flushed first; the flush is a precondition of
// the wide layout, not an optimization.
func (w *Writer) PlaceWideChart(png []byte) bool {
	if png == nil {
		return false
	}

	w.FlushGrid()

	if w.cur.Y-wideChartHeight < bottomMargin {
		w.continuePage()
	}

	bottomY := w.cur.Y - wideChartHeight
	w.placeImage(png, marginLeft, bottomY, contentWidth, wideChartHeight)
	w.cur.Y = bottomY - gridVGap
	return true
}
