package chord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type fretState uint8

const (
	fretOpen fretState = iota
	fretMuted
	fretSet
)

// Fret is the fret position of a Note. The zero value is Open, meaning the
// fret was not given at all. Muted records an explicit null fret.
type Fret struct {
	n     int
	state fretState
}

// Open is a note without a fret (played open).
var Open = Fret{}

// Mute returns an explicitly muted fret.
func Mute() Fret { return Fret{state: fretMuted} }

// At returns a fret pressed at position n. At(0) is still an explicit fret.
func At(n int) Fret { return Fret{n: n, state: fretSet} }

// IsZero reports whether the fret was left unspecified.
func (f Fret) IsZero() bool { return f.state == fretOpen }

// Muted reports whether the fret was explicitly null.
func (f Fret) Muted() bool { return f.state == fretMuted }

// Value returns the fret number and whether one was given.
func (f Fret) Value() (int, bool) { return f.n, f.state == fretSet }

// Number returns the fret number, or 0 when none was given.
func (f Fret) Number() int {
	if f.state != fretSet {
		return 0
	}
	return f.n
}

// Pressed reports whether the note is held down on a real fret (a non-zero number).
func (f Fret) Pressed() bool { return f.state == fretSet && f.n != 0 }

func (f Fret) String() string {
	switch f.state {
	case fretMuted:
		return "x"
	case fretSet:
		return strconv.Itoa(f.n)
	default:
		return "open"
	}
}

// MarshalJSON writes null for a muted fret. Pair with `json:",omitzero"` so
// open frets are left out entirely.
func (f Fret) MarshalJSON() ([]byte, error) {
	if f.state == fretSet {
		return []byte(strconv.Itoa(f.n)), nil
	}
	return []byte("null"), nil
}

// UnmarshalJSON keeps the distinction between a null fret (muted) and a missing one (open).
func (f *Fret) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = Mute()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("chord: invalid fret %s: %w", data, err)
	}
	*f = At(n)
	return nil
}

// Note is a single fingering instruction on one string.
type Note struct {
	String int  `json:"string"`
	Fret   Fret `json:"fret,omitzero"`
	Finger int  `json:"finger,omitempty"` // 0 means no finger label
	Barre  int  `json:"barre,omitempty"`  // highest string index covered, 0 means no barre
}

// BarreEnd returns the last string index covered by the note's barre,
// clamped to the instrument. ok is false when the note has no barre.
func (n Note) BarreEnd(strings int) (end int, ok bool) {
	if n.Barre == 0 {
		return 0, false
	}
	if n.Barre < strings {
		return n.Barre, true
	}
	return strings - 1, true
}
