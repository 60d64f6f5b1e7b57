package chord

import "strings"

// Instrument describes a fretted instrument. Only the string count affects rendering.
type Instrument struct {
	Name    string   `json:"name"`
	Strings int      `json:"strings"`
	Tuning  []string `json:"tuning,omitempty"` // low to high, informational
}

var builtinInstruments = []Instrument{
	{Name: "guitar", Strings: 6, Tuning: []string{"E", "A", "D", "G", "B", "E"}},
	{Name: "ukulele", Strings: 4, Tuning: []string{"G", "C", "E", "A"}},
	{Name: "bass", Strings: 4, Tuning: []string{"E", "A", "D", "G"}},
	{Name: "mandolin", Strings: 4, Tuning: []string{"G", "D", "A", "E"}},
	{Name: "banjo", Strings: 5, Tuning: []string{"G", "D", "G", "B", "D"}},
}

// Guitar is the default instrument.
var Guitar = builtinInstruments[0]

// Instruments returns a copy of the built-in instrument table.
func Instruments() []Instrument {
	out := make([]Instrument, len(builtinInstruments))
	copy(out, builtinInstruments)
	return out
}

// LookupInstrument finds a built-in instrument by case-insensitive name.
func LookupInstrument(name string) (Instrument, bool) {
	name = strings.TrimSpace(name)
	for _, inst := range builtinInstruments {
		if strings.EqualFold(inst.Name, name) {
			return inst, true
		}
	}
	return Instrument{}, false
}

// NextInstrument returns the index following current in the built-in table, wrapping to 0.
func NextInstrument(current int) int {
	if current+1 < len(builtinInstruments) && current >= 0 {
		return current + 1
	}
	return 0
}
