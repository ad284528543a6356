package comparison

import (
	"image/color"

	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg/draw"
)

var (
	blue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	green = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	black = color.RGBA{A: 255}
)

var protocolColors = map[string]color.Color{
	"cubic": blue,
	"bbr":   green,
	"vegas": red,
}

var protocolGlyphs = map[string]draw.GlyphDrawer{
	"cubic": draw.CircleGlyph{},
	"bbr":   draw.BoxGlyph{},
	"vegas": draw.TriangleGlyph{},
}

// ProtocolStyle returns the color and marker of a protocol. Unknown
// protocols are drawn as black circles.
func ProtocolStyle(protocol string) (color.Color, draw.GlyphDrawer) {
	c, ok := protocolColors[protocol]
	if !ok {
		c = black
	}
	g, ok := protocolGlyphs[protocol]
	if !ok {
		g = draw.CircleGlyph{}
	}
	return c, g
}

//curve color: the protocol's own color, else the i-th palette color
func lineColor(protocol string, i int) color.Color {
	if c, ok := protocolColors[protocol]; ok {
		return c
	}
	return plotutil.Color(i)
}

//first scenario is drawn opaque, the others half transparent
func scenarioAlpha(idx int) float64 {
	if idx == 0 {
		return 1
	}
	return 0.5
}

func withAlpha(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * alpha)
	return n
}
