package chart

import "github.com/ByLCY/fretsketch/chord"

// FindTextStartingX returns the x at which names must start to be centred
// on the canvas. ok is false for a nil name list; an empty list is centred
// at half the width.
func FindTextStartingX(s Surface, names chord.Names) (x float64, ok bool) {
	if names == nil {
		return 0, false
	}
	total := 0.0
	for i, name := range names {
		s.TextSize(TextSizeStandard)
		total += s.TextWidth(name.Key)
		if name.Aux != "" {
			s.TextSize(TextSizeSubtext)
			total += s.TextWidth(name.Aux)
		}
		if i > 0 {
			s.TextSize(TextSizeStandard)
			total += s.TextWidth(SlashGlyph)
		}
	}
	return (Width - total) / 2, true
}

// RenderChordName draws names left to right, joined with slashes.
// Accidentals are drawn small and raised over the end of the key; the
// quality suffix follows at the same small size.
func RenderChordName(s Surface, names chord.Names) {
	Standardize(s)
	x, ok := FindTextStartingX(s, names)
	if !ok {
		return
	}
	for i, name := range names {
		s.TextSize(TextSizeStandard)
		s.Text(name.Key, x, TextHeight)
		x += s.TextWidth(name.Key)

		s.TextSize(TextSizeSubtext)
		s.Text(name.Accidentals(), x-accidentalKern(name.Key), TextHeight-AccidentalRaise)

		if name.Aux != "" {
			s.Text(name.Aux, x, TextHeight)
			x += s.TextWidth(name.Aux)
		}

		if i+1 < len(names) {
			s.TextSize(TextSizeStandard)
			s.Text(SlashGlyph, x+SlashLeading, TextHeight)
			x += s.TextWidth(SlashGlyph) + SlashLeading
		}
	}
}
