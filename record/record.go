// Package record provides a chart.Surface that records every call instead
// of drawing. It backs the chart tests and the --calls debug dump.
package record

import (
	"encoding/json"
	"image/color"
	"io"
	"unicode/utf8"

	"github.com/ByLCY/fretsketch/chart"
)

// Operation names as they appear in recorded calls.
const (
	OpFill         = "fill"
	OpStrokeWeight = "strokeWeight"
	OpLine         = "line"
	OpEllipse      = "ellipse"
	OpRect         = "rect"
	OpTextSize     = "textSize"
	OpText         = "text"
)

// Call is one recorded surface call.
type Call struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
	Text string    `json:"text,omitempty"`
}

// IsDraw reports whether the call puts marks on the surface.
func (c Call) IsDraw() bool {
	switch c.Op {
	case OpLine, OpEllipse, OpRect, OpText:
		return true
	}
	return false
}

// Style is the surface state a call sees.
type Style struct {
	Fill         color.Color
	StrokeWeight float64
	TextSize     float64
}

// MeasureFunc returns the width of text at the given text size.
type MeasureFunc func(text string, size float64) float64

// MonoMeasure gives every rune an advance of 0.6 times the text size.
func MonoMeasure(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * 0.6
}

// Recorder implements chart.Surface.
type Recorder struct {
	measure MeasureFunc
	calls   []Call
	styles  []Style
	style   Style
}

var _ chart.Surface = (*Recorder)(nil)

// New returns a Recorder measuring text with measure, or MonoMeasure when nil.
func New(measure MeasureFunc) *Recorder {
	if measure == nil {
		measure = MonoMeasure
	}
	return &Recorder{measure: measure, style: Style{Fill: color.Black}}
}

func (r *Recorder) add(c Call) {
	r.calls = append(r.calls, c)
	r.styles = append(r.styles, r.style)
}

func (r *Recorder) Fill(c color.Color) {
	r.style.Fill = c
	cr, cg, cb, ca := c.RGBA()
	r.add(Call{Op: OpFill, Args: []float64{float64(cr >> 8), float64(cg >> 8), float64(cb >> 8), float64(ca >> 8)}})
}

func (r *Recorder) StrokeWeight(w float64) {
	r.style.StrokeWeight = w
	r.add(Call{Op: OpStrokeWeight, Args: []float64{w}})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.add(Call{Op: OpLine, Args: []float64{x1, y1, x2, y2}})
}

func (r *Recorder) Ellipse(cx, cy, diameter float64) {
	r.add(Call{Op: OpEllipse, Args: []float64{cx, cy, diameter}})
}

func (r *Recorder) Rect(x1, y1, x2, y2 float64) {
	r.add(Call{Op: OpRect, Args: []float64{x1, y1, x2, y2}})
}

func (r *Recorder) TextSize(size float64) {
	r.style.TextSize = size
	r.add(Call{Op: OpTextSize, Args: []float64{size}})
}

// TextWidth measures at the current text size. It is not recorded.
func (r *Recorder) TextWidth(s string) float64 {
	return r.measure(s, r.style.TextSize)
}

func (r *Recorder) Text(s string, x, y float64) {
	r.add(Call{Op: OpText, Args: []float64{x, y}, Text: s})
}

// Calls returns every recorded call in order.
func (r *Recorder) Calls() []Call { return r.calls }

// DrawCalls returns only the calls that draw.
func (r *Recorder) DrawCalls() []Call {
	var out []Call
	for _, c := range r.calls {
		if c.IsDraw() {
			out = append(out, c)
		}
	}
	return out
}

// StyleAt returns the style in effect when call i was made.
func (r *Recorder) StyleAt(i int) Style { return r.styles[i] }

// Style returns the current surface style.
func (r *Recorder) Style() Style { return r.style }

// Reset drops recorded calls but keeps the current style, as a real surface would.
func (r *Recorder) Reset() {
	r.calls = nil
	r.styles = nil
}

// WriteJSON writes the recorded calls as indented JSON.
func (r *Recorder) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.calls)
}
