package chart

import "github.com/ByLCY/fretsketch/chord"

// RenderNeck draws the fret and string grid. The top line is drawn as the
// nut when the window starts at the first fret.
//
// The stroke weight left on the surface is whatever the last line used.
func RenderNeck(s Surface, settings chord.Settings) {
	Standardize(s)
	strings := settings.Instrument.Strings
	checkSettings(settings)

	fretSpacing := fretSpacing(settings.Frets)
	for fret := 0; fret <= settings.Frets; fret++ {
		weight, capAdjust := LineWeightStandard, CapAdjustStandard
		if fret == 0 && settings.ShowsNut() {
			weight, capAdjust = LineWeightThick, CapAdjustThick
		}
		y := TopSpace + fretSpacing*float64(fret)
		s.StrokeWeight(weight)
		s.Line(NeckWidthMargin+capAdjust, y, Width-NeckWidthMargin-capAdjust, y)
	}

	stringSpacing := stringSpacing(strings)
	bottom := TopSpace + fretSpacing*float64(settings.Frets)
	for str := 0; str < strings; str++ {
		x := NeckWidthMargin + stringSpacing*float64(str)
		s.Line(x, TopSpace, x, bottom)
	}
}

// stringSpacing is 0 for fewer than two strings: a single string sits on the
// left edge of the neck.
func stringSpacing(strings int) float64 {
	if strings < 2 {
		return 0
	}
	return NeckWidth / float64(strings-1)
}

func fretSpacing(frets int) float64 {
	if frets < 1 {
		return 0
	}
	return NeckHeight / float64(frets)
}
