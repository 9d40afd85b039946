package charts

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sort"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LegendPanel renders a legend-only image: one colored marker and label
// per name, with colors assigned in sorted raw-name order so they match
// the line charts drawn from the same groups. Returns nil for no names.
func LegendPanel(rawNames []string, title string) []byte {
	if len(rawNames) == 0 {
		return nil
	}
	names := append([]string(nil), rawNames...)
	sort.Strings(names)

	const (
		w       = 620
		rowH    = 26
		pad     = 18
		dotSize = 10
	)
	h := pad*2 + rowH + len(names)*rowH

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	titleCol := image.NewUniform(color.RGBA{R: 44, G: 62, B: 80, A: 255})
	labelCol := image.NewUniform(color.RGBA{R: 60, G: 60, B: 60, A: 255})

	dr := &font.Drawer{Dst: img, Src: titleCol, Face: face,
		Dot: fixed.Point26_6{X: fixed.I(pad), Y: fixed.I(pad + face.Metrics().Ascent.Ceil())}}
	dr.DrawString(title)

	y := pad + rowH
	for i, raw := range names {
		c := paletteRGBA(GenericPalette[i%len(GenericPalette)])
		dot := image.Rect(pad, y+rowH/2-dotSize/2, pad+dotSize, y+rowH/2+dotSize/2)
		draw.Draw(img, dot, image.NewUniform(c), image.Point{}, draw.Src)

		ld := &font.Drawer{Dst: img, Src: labelCol, Face: face,
			Dot: fixed.Point26_6{X: fixed.I(pad + dotSize + 8), Y: fixed.I(y + rowH/2 + face.Metrics().Ascent.Ceil()/2)}}
		ld.DrawString(CompactLabel(raw))
		y += rowH
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func paletteRGBA(c drawing.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
