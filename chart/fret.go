package chart

import (
	"strconv"

	"github.com/ByLCY/fretsketch/chord"
)

// OrdinalSuffix returns "st", "nd" or "rd" for 1, 2 and 3 and "th" for
// everything else, so 21 reads "21th".
func OrdinalSuffix(n int) string {
	switch n {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// FretLabel is the text RenderFret draws, e.g. "3rd".
func FretLabel(startingFret int) string {
	return strconv.Itoa(startingFret) + OrdinalSuffix(startingFret)
}

// RenderFret labels the top-right corner with the starting fret when the
// window does not include the nut. It draws nothing otherwise.
func RenderFret(s Surface, settings chord.Settings) {
	if settings.ShowsNut() {
		return
	}
	Standardize(s)
	s.TextSize(FretLabelTextSize)
	s.Text(FretLabel(settings.StartingFret), Width-FretLabelInsetX, TopSpace+FretLabelDropY)
}
