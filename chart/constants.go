package chart

import "image/color"

// Canvas geometry, in surface pixels.
const (
	Width           = 500.0
	Height          = 620.0
	NeckWidthMargin = 75.0
	NeckWidth       = Width - 2*NeckWidthMargin
	TopSpace        = 220.0
	NeckHeight      = 350.0
	TextHeight      = 120.0 // chord-name baseline
)

// Text sizes.
const (
	TextSizeStandard = 80.0
	TextSizeSubtext  = 40.0
)

// Line weights and the matching inset applied to both ends of a fret line.
const (
	LineWeightStandard = 4.0
	LineWeightThick    = 14.0
	CapAdjustStandard  = 0.0
	CapAdjustThick     = 5.0
)

// Chord-name kerning. Accidentals are pulled back under the key glyph; "A"
// leans further right than the other keys and needs the larger correction.
const (
	AccidentalKernA = 20.0
	AccidentalKern  = 15.0
	AccidentalRaise = 37.0
	SlashLeading    = 15.0
)

// Note markers.
const (
	MarkerDiameter   = 20.0
	BarreHalfHeight  = 20.0
	FingerTextSize   = 36.0
	FingerOffsetX    = 10.0
	FingerRowOffset  = 0.385
	OpenMarkerSize   = 15.0
	OpenMarkerRaise  = 25.0
	MuteTextSize     = 40.0
	MuteOffsetX      = 13.0
	MuteRaise        = 10.0
	MuteGlyph        = "X"
	SharpGlyph       = "♯"
	FlatGlyph        = "♭"
	SlashGlyph       = "/"
	fretCenterOffset = 0.5
)

// Fret label.
const (
	FretLabelTextSize = 30.0
	FretLabelInsetX   = 70.0
	FretLabelDropY    = 20.0
)

var (
	Black = color.Gray{Y: 0}
	White = color.Gray{Y: 255}
)

// accidentalKern returns the backward offset of the accidental glyphs after key.
func accidentalKern(key string) float64 {
	if key == "A" {
		return AccidentalKernA
	}
	return AccidentalKern
}
