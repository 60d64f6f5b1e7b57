// Package chart draws chord diagrams: the neck grid, the chord name, note
// markers with finger numbers and the fret label.
//
// Renderers hold no state between calls. Each one resets the surface style
// before drawing, so they can be called in any order, but a full frame is
// drawn by Draw in the usual order: neck, name, notes, fret label.
package chart

import "github.com/ByLCY/fretsketch/chord"

// Draw renders one complete diagram. Settings are used as given; callers
// wanting the automatic fret window apply chord.ApplyPresetSettings first.
func Draw(s Surface, names chord.Names, notes []chord.Note, settings chord.Settings) {
	RenderNeck(s, settings)
	RenderChordName(s, names)
	RenderChordNotes(s, notes, settings)
	RenderFret(s, settings)
}

func checkSettings(settings chord.Settings) {
	if settings.Instrument.Strings < 2 {
		logger().Debug("chart: instrument needs at least two strings for an even grid", "strings", settings.Instrument.Strings)
	}
	if settings.Frets < 1 {
		logger().Debug("chart: fret window is empty", "frets", settings.Frets)
	}
}
