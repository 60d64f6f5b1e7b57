package chord

import "fmt"

// PresetFrets is the window height chosen when settings are reframed around a chord.
const PresetFrets = 4

// Limits accepted by Validate.
const (
	MaxStrings = 12
	MaxFrets   = 24
)

// Settings controls which part of the neck a diagram shows.
type Settings struct {
	Frets        int        `json:"frets"`
	StartingFret int        `json:"startingFret"`
	Instrument   Instrument `json:"instrument"`
	Custom       bool       `json:"custom,omitempty"` // window pinned by the caller
}

// DefaultSettings shows the first PresetFrets frets of inst, nut included.
func DefaultSettings(inst Instrument) Settings {
	return Settings{Frets: PresetFrets, StartingFret: 1, Instrument: inst}
}

// Validate checks that the window and string count can be drawn.
func (s Settings) Validate() error {
	switch {
	case s.Instrument.Strings < 1 || s.Instrument.Strings > MaxStrings:
		return fmt.Errorf("chord: strings must be within [1, %d], got %d", MaxStrings, s.Instrument.Strings)
	case s.Frets < 1 || s.Frets > MaxFrets:
		return fmt.Errorf("chord: frets must be within [1, %d], got %d", MaxFrets, s.Frets)
	case s.StartingFret < 1:
		return fmt.Errorf("chord: startingFret must be at least 1, got %d", s.StartingFret)
	}
	return nil
}

// ShowsNut reports whether the top grid line is the nut.
func (s Settings) ShowsNut() bool { return s.StartingFret == 1 }

// ApplyPresetSettings moves the fret window to the lowest pressed fret when
// the chord reaches past the current window. Custom settings and empty
// chords are returned untouched; the input is never modified.
func ApplyPresetSettings(settings Settings, notes []Note) Settings {
	if settings.Custom || len(notes) == 0 {
		return settings
	}
	minFret, maxFret := 0, 0
	for _, note := range notes {
		if !note.Fret.Pressed() {
			continue
		}
		fret := note.Fret.Number()
		if minFret == 0 || fret < minFret {
			minFret = fret
		}
		if maxFret == 0 || fret > maxFret {
			maxFret = fret
		}
	}
	if minFret == 0 {
		minFret = 1
	}
	if maxFret == 0 {
		maxFret = 1
	}
	if maxFret < settings.Frets+settings.StartingFret {
		return settings
	}
	adjusted := settings
	adjusted.Frets = PresetFrets
	adjusted.StartingFret = minFret
	return adjusted
}
