package chart

import (
	"strconv"

	"github.com/ByLCY/fretsketch/chord"
)

// StringState is the derived marker state of one string.
type StringState uint8

const (
	StringUnset   StringState = iota // no marker
	StringOpen                       // open circle above the nut
	StringFretted                    // no marker, the string is held down
	StringMuted                      // "X" above the nut
)

func (st StringState) String() string {
	switch st {
	case StringOpen:
		return "open"
	case StringFretted:
		return "fretted"
	case StringMuted:
		return "muted"
	default:
		return "unset"
	}
}

// StringStates derives the marker state of every string of the instrument.
// Rules apply in this order, each able to override the previous one:
//
//  1. a note with no pressed fret in the window opens its string; a pressed
//     note marks it fretted unless an earlier note already opened it
//  2. a barre marks every string it covers as fretted
//  3. a note with an explicit null fret mutes its string
//
// Rule 3 wins even over a string that another note frets.
func StringStates(notes []chord.Note, settings chord.Settings) []StringState {
	strings := settings.Instrument.Strings
	if strings < 0 {
		strings = 0
	}
	states := make([]StringState, strings)
	set := func(str int, st StringState) {
		if str < 0 || str >= len(states) {
			logger().Debug("chart: string index out of range", "string", str, "strings", len(states))
			return
		}
		states[str] = st
	}

	for _, note := range notes {
		if normalizedFret(note, settings) == 0 {
			set(note.String, StringOpen)
		} else if note.String >= 0 && note.String < len(states) && states[note.String] != StringOpen {
			set(note.String, StringFretted)
		}
	}

	for _, note := range notes {
		end, ok := note.BarreEnd(strings)
		if !ok || !hasFret(note) {
			continue
		}
		for str := note.String; str <= end; str++ {
			set(str, StringFretted)
		}
	}

	for _, note := range notes {
		if note.Fret.Muted() {
			set(note.String, StringMuted)
		}
	}
	return states
}

// normalizedFret is the note's row in the window, counted from 1; 0 means
// the note is not pressed.
func normalizedFret(note chord.Note, settings chord.Settings) int {
	if !note.Fret.Pressed() {
		return 0
	}
	return note.Fret.Number() - (settings.StartingFret - 1)
}

func hasFret(note chord.Note) bool {
	_, ok := note.Fret.Value()
	return ok
}

// RenderChordNotes draws pressed notes, barres, finger numbers and the
// open/muted markers above the neck.
func RenderChordNotes(s Surface, notes []chord.Note, settings chord.Settings) {
	Standardize(s)
	strings := settings.Instrument.Strings
	stringSpacing := stringSpacing(strings)
	fretSpacing := fretSpacing(settings.Frets)
	stringX := func(str int) float64 { return NeckWidthMargin + stringSpacing*float64(str) }
	rowY := func(fret int) float64 { return TopSpace + fretSpacing*(float64(fret)-fretCenterOffset) }

	s.Fill(Black)
	for _, note := range notes {
		if nf := normalizedFret(note, settings); nf != 0 {
			s.Ellipse(stringX(note.String), rowY(nf), MarkerDiameter)
		}
	}

	for _, note := range notes {
		end, ok := note.BarreEnd(strings)
		if !ok || !hasFret(note) {
			continue
		}
		y := rowY(note.Fret.Number() - (settings.StartingFret - 1))
		for _, str := range []int{note.String, end} {
			s.Ellipse(stringX(str), y, MarkerDiameter)
		}
		s.Rect(stringX(note.String), y+BarreHalfHeight, stringX(end), y-BarreHalfHeight)
	}

	for _, note := range notes {
		x := NeckWidthMargin - FingerOffsetX + stringSpacing*float64(note.String)
		if end, ok := note.BarreEnd(strings); ok {
			x = NeckWidthMargin - FingerOffsetX + stringSpacing*float64(note.String+end)/2
		}
		y := TopSpace
		if nf := normalizedFret(note, settings); nf != 0 {
			y = TopSpace + fretSpacing*(float64(nf)-FingerRowOffset)
		}
		s.Fill(White)
		if note.Finger != 0 {
			s.TextSize(FingerTextSize)
			s.Text(strconv.Itoa(note.Finger), x, y)
		}
	}

	for str, st := range StringStates(notes, settings) {
		switch st {
		case StringOpen:
			s.Fill(White)
			s.Ellipse(stringX(str), TopSpace-OpenMarkerRaise, OpenMarkerSize)
		case StringMuted:
			s.Fill(Black)
			s.TextSize(MuteTextSize)
			s.Text(MuteGlyph, stringX(str)-MuteOffsetX, TopSpace-MuteRaise)
		}
	}
}
