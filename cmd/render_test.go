package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/fretsketch/layout"
	"github.com/ByLCY/fretsketch/renderer"
)

const testSheet = `sheet Test v1 {
  meta { title: "${who|nobody}" }
  chord "C" { mute 0; note 1 3 finger 3; note 4 1 finger 1 }
  chord "Bb" { note 0 6 finger 1 barre 5; note 2 8 }
}
`

type stubRenderer struct {
	result  *layout.Result
	formats []renderer.Format
}

func (s *stubRenderer) Render(result *layout.Result) ([]byte, error) {
	s.result = result
	return []byte("%PDF"), nil
}

func (s *stubRenderer) RenderImage(d layout.Diagram, width float64, format renderer.Format) ([]byte, error) {
	s.formats = append(s.formats, format)
	return []byte(d.Symbol), nil
}

func writeSheet(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "sheet.fret")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunPDF(t *testing.T) {
	dir := t.TempDir()
	r := &stubRenderer{}
	out := filepath.Join(dir, "out", "sheet.pdf")
	written, err := run(renderOptions{
		input:  writeSheet(t, dir, testSheet),
		output: out,
		data:   `{"who":"Ana"}`,
		debug:  filepath.Join(dir, "debug", "layout.json"),
	}, r)
	require.NoError(t, err)
	assert.Equal(t, []string{out}, written)

	require.NotNil(t, r.result)
	assert.Equal(t, "Ana", r.result.Meta.Title)
	assert.Len(t, r.result.Diagrams, 2)
	assert.Equal(t, 6, r.result.Diagrams[1].Settings.StartingFret)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	debug, err := os.ReadFile(filepath.Join(dir, "debug", "layout.json"))
	require.NoError(t, err)
	var decoded layout.Result
	require.NoError(t, json.Unmarshal(debug, &decoded))
	assert.True(t, decoded.Diagrams[0].Notes[0].Fret.Muted())
}

func TestRunImagesOnePerDiagram(t *testing.T) {
	dir := t.TempDir()
	r := &stubRenderer{}
	written, err := run(renderOptions{
		input:  writeSheet(t, dir, testSheet),
		output: filepath.Join(dir, "chord.svg"),
	}, r)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "chord-1.svg"), filepath.Join(dir, "chord-2.svg")}, written)
	assert.Equal(t, []renderer.Format{renderer.FormatSVG, renderer.FormatSVG}, r.formats)

	data, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Equal(t, "Bb", string(data))
}

func TestRunCalls(t *testing.T) {
	dir := t.TempDir()
	callsPath := filepath.Join(dir, "calls.json")
	_, err := run(renderOptions{
		input:  writeSheet(t, dir, testSheet),
		output: filepath.Join(dir, "out.pdf"),
		calls:  callsPath,
	}, &stubRenderer{})
	require.NoError(t, err)

	data, err := os.ReadFile(callsPath)
	require.NoError(t, err)
	var got []diagramCalls
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].Symbol)
	assert.NotEmpty(t, got[0].Calls)
	assert.Equal(t, "textSize", got[0].Calls[0].Op)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, testSheet)
	cases := map[string]renderOptions{
		"format":     {input: sheet, output: filepath.Join(dir, "a.gif")},
		"data":       {input: sheet, output: filepath.Join(dir, "a.pdf"), data: "{"},
		"missing":    {input: filepath.Join(dir, "nope.fret"), output: filepath.Join(dir, "a.pdf")},
		"instrument": {input: sheet, output: filepath.Join(dir, "a.pdf"), instrument: "lute"},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := run(opts, &stubRenderer{})
			assert.Error(t, err)
		})
	}

	_, err := run(renderOptions{input: sheet, output: filepath.Join(dir, "a.pdf")}, nil)
	assert.Error(t, err)
}

func TestRunLenientInstrument(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, `sheet U v1 { chord "C" { note 3 3 } }`)
	r := &stubRenderer{}
	_, err := run(renderOptions{input: sheet, output: filepath.Join(dir, "u.pdf"), instrument: "ukulele"}, r)
	require.NoError(t, err)
	assert.Equal(t, 4, r.result.Diagrams[0].Settings.Instrument.Strings)

	sheet = writeSheet(t, dir, `sheet U v1 { chord "C" { note 7 3 } }`)
	_, err = run(renderOptions{input: sheet, output: filepath.Join(dir, "u.pdf")}, r)
	assert.Error(t, err)
	_, err = run(renderOptions{input: sheet, output: filepath.Join(dir, "u.pdf"), lenient: true}, r)
	assert.NoError(t, err)
}

func TestOutputFormat(t *testing.T) {
	f, err := outputFormat("", "x/y.PNG")
	require.NoError(t, err)
	assert.Equal(t, renderer.FormatPNG, f)

	f, err = outputFormat("svg", "x/y.pdf")
	require.NoError(t, err)
	assert.Equal(t, renderer.FormatSVG, f)

	f, err = outputFormat("", "noext")
	require.NoError(t, err)
	assert.Equal(t, renderer.FormatPDF, f)
}

func TestImagePaths(t *testing.T) {
	assert.Equal(t, []string{"a.png"}, imagePaths("a.png", 1))
	assert.Equal(t, []string{"out/a-1.png", "out/a-2.png", "out/a-3.png"}, imagePaths("out/a.png", 3))
}

func TestListInstruments(t *testing.T) {
	var buf bytes.Buffer
	listInstruments(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "guitar"))
	assert.Contains(t, lines[1], "G C E A")
}
