package chart

import "image/color"

// Surface is the drawing target. It keeps a current fill, stroke weight and
// text size that every call after the setter uses, the way a sketch canvas does.
//
// Rect takes two opposite corners rather than an origin and a size.
// Text draws with (x, y) on the left end of the baseline.
type Surface interface {
	Fill(c color.Color)
	StrokeWeight(w float64)
	Line(x1, y1, x2, y2 float64)
	Ellipse(cx, cy, diameter float64)
	Rect(x1, y1, x2, y2 float64)
	TextSize(size float64)
	TextWidth(s string) float64
	Text(s string, x, y float64)
}

// Standardize resets the surface style to the defaults every renderer starts from.
func Standardize(s Surface) {
	s.TextSize(TextSizeStandard)
	s.Fill(Black)
	s.StrokeWeight(LineWeightStandard)
}
