package report

// SpecField is one name/value line of an equipment specification.
type SpecField struct {
	Name  string
	Value string
}

// SpecCategory groups specification fields; categories and fields keep
// the order the source supplies them in.
type SpecCategory struct {
	Name   string
	Fields []SpecField
}

// RenderEquipmentSpecs draws the equipment-specification block after a
// section's tables: a ruled header then indented name/value lines, with
// per-category page-break checks. Empty input is a no-op.
func (w *Writer) RenderEquipmentSpecs(specs []SpecCategory) {
	total := 0
	for _, cat := range specs {
		total += len(cat.Fields)
	}
	if total == 0 {
		return
	}

	w.FlushGrid()

	needed := 30.0 + float64(total)*14 + float64(len(specs))*20
	w.EnsureRoom(needed)

	w.cur.Y -= 15
	w.pdf.SetFont("Helvetica", "B", 13)
	w.pdf.SetTextColor(51, 77, 128)
	w.pdf.Text(marginLeft, top(w.cur.Y), "Equipment Specifications")
	w.cur.Y -= 5

	w.pdf.SetDrawColor(179, 179, 179)
	w.pdf.SetLineWidth(0.5)
	w.pdf.Line(marginLeft, top(w.cur.Y), marginLeft+contentWidth, top(w.cur.Y))
	w.cur.Y -= 15

	w.pdf.SetFont("Helvetica", "", 10)
	for _, cat := range specs {
		if len(cat.Fields) == 0 {
			continue
		}
		categoryNeed := 15.0 + float64(len(cat.Fields))*12
		if w.cur.Y-categoryNeed < bottomMargin {
			w.continuePage()
			w.pdf.SetFont("Helvetica", "", 10)
		}
		for _, f := range cat.Fields {
			if f.Value == "" {
				continue
			}
			w.pdf.SetTextColor(102, 102, 102)
			w.pdf.Text(marginLeft+10, top(w.cur.Y), w.tr(f.Name+":"))
			w.pdf.SetTextColor(26, 26, 26)
			w.pdf.Text(marginLeft+150, top(w.cur.Y), w.tr(f.Value))
			w.cur.Y -= 15
		}
	}
	w.cur.Y -= 10
}
