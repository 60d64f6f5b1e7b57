package canvasrenderer

import (
	"image/color"
	"math"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/fretsketch/chart"
)

// Surface adapts a canvas.Context to chart.Surface. Chart coordinates are
// pixels with y pointing down; scale converts them to canvas millimetres.
type Surface struct {
	ctx   *canvas.Context
	r     *Renderer
	scale float64

	fill   color.Color
	weight float64
	size   float64
}

var _ chart.Surface = (*Surface)(nil)

// NewSurface wraps ctx. The context must use canvas.CartesianIV so that y grows downwards.
func (r *Renderer) NewSurface(ctx *canvas.Context, scale float64) *Surface {
	if scale <= 0 {
		scale = 1
	}
	return &Surface{
		ctx:    ctx,
		r:      r,
		scale:  scale,
		fill:   chart.Black,
		weight: chart.LineWeightStandard,
		size:   chart.TextSizeStandard,
	}
}

func (s *Surface) Fill(c color.Color) { s.fill = c }

func (s *Surface) StrokeWeight(w float64) { s.weight = w }

func (s *Surface) TextSize(size float64) { s.size = size }

func (s *Surface) stroke() {
	s.ctx.SetStrokeColor(canvas.Black)
	s.ctx.SetStrokeWidth(s.weight * s.scale)
}

func (s *Surface) Line(x1, y1, x2, y2 float64) {
	if !finite(x1, y1, x2, y2) {
		return
	}
	s.stroke()
	s.ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo((x2-x1)*s.scale, (y2-y1)*s.scale)
	s.ctx.DrawPath(x1*s.scale, y1*s.scale, p)
}

func (s *Surface) Ellipse(cx, cy, diameter float64) {
	if !finite(cx, cy, diameter) {
		return
	}
	s.stroke()
	s.ctx.SetFillColor(s.fill)
	s.ctx.DrawPath(cx*s.scale, cy*s.scale, canvas.Circle(diameter*s.scale/2))
}

func (s *Surface) Rect(x1, y1, x2, y2 float64) {
	if !finite(x1, y1, x2, y2) {
		return
	}
	s.stroke()
	s.ctx.SetFillColor(s.fill)
	x, y := math.Min(x1, x2), math.Min(y1, y2)
	w, h := math.Abs(x2-x1), math.Abs(y2-y1)
	s.ctx.DrawPath(x*s.scale, y*s.scale, canvas.Rectangle(w*s.scale, h*s.scale))
}

// face returns the font face for the current text size and fill. Faces are
// sized in chart pixels; Text scales them to the page through the view.
func (s *Surface) face() *canvas.FontFace {
	return s.r.face(s.size, s.fill)
}

// TextWidth measures s at the current text size, in chart pixels.
func (s *Surface) TextWidth(text string) float64 {
	if text == "" || !finite(s.size) || s.size <= 0 {
		return 0
	}
	return s.face().TextWidth(text)
}

func (s *Surface) Text(text string, x, y float64) {
	if text == "" || !finite(x, y, s.size) || s.size <= 0 {
		return
	}
	line := canvas.NewTextLine(s.face(), text, canvas.Left)
	s.ctx.Push()
	s.ctx.Scale(s.scale, s.scale)
	s.ctx.DrawText(x, y, line)
	s.ctx.Pop()
}

// finite reports whether every value is a real number. Degenerate input
// (e.g. an empty fret window) is skipped instead of reaching the path code.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
