package chord

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Name is one part of a chord name, e.g. "B♭" + "m7".
type Name struct {
	Key   string `json:"key"`
	Sharp bool   `json:"sharp,omitempty"`
	Flat  bool   `json:"flat,omitempty"`
	Aux   string `json:"aux,omitempty"`
}

// Accidentals returns the accidental glyphs of the name, sharp first.
func (n Name) Accidentals() string {
	var b strings.Builder
	if n.Sharp {
		b.WriteString("♯")
	}
	if n.Flat {
		b.WriteString("♭")
	}
	return b.String()
}

func (n Name) String() string { return n.Key + n.Accidentals() + n.Aux }

// Names is a compound (slash) chord name such as "C/G".
type Names []Name

func (ns Names) String() string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = n.String()
	}
	return strings.Join(parts, "/")
}

var (
	symbolLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Slash", Pattern: `/`},
		{Name: "Key", Pattern: `[A-G]`},
		{Name: "Accidental", Pattern: `[#♯b♭]`},
		{Name: "Aux", Pattern: `[^/\s]+`},
	})

	symbolParser = participle.MustBuild[chordSymbol](
		participle.Lexer(symbolLexer),
		participle.Elide("Whitespace"),
	)
)

type chordSymbol struct {
	Parts []*symbolPart `parser:"@@ ( '/' @@ )*"`
}

type symbolPart struct {
	Key         string   `parser:"@Key"`
	Accidentals []string `parser:"@Accidental*"`
	Aux         []string `parser:"@(Aux | Key | Accidental)*"`
}

// ParseName parses a chord symbol such as "F#m7", "B♭maj7" or "C/G".
func ParseName(symbol string) (Names, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, fmt.Errorf("chord: empty chord symbol")
	}
	ast, err := symbolParser.ParseString("", symbol)
	if err != nil {
		return nil, fmt.Errorf("chord: parse %q: %w", symbol, err)
	}
	names := make(Names, 0, len(ast.Parts))
	for _, part := range ast.Parts {
		name := Name{Key: part.Key, Aux: strings.Join(part.Aux, "")}
		for _, acc := range part.Accidentals {
			switch acc {
			case "#", "♯":
				name.Sharp = true
			case "b", "♭":
				name.Flat = true
			}
		}
		names = append(names, name)
	}
	return names, nil
}
