package canvasrenderer

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/ByLCY/fretsketch/chart"
	"github.com/ByLCY/fretsketch/chord"
	"github.com/ByLCY/fretsketch/layout"
	"github.com/ByLCY/fretsketch/renderer"
)

func sampleResult(t *testing.T) *layout.Result {
	t.Helper()
	am, err := chord.ParseName("Am")
	if err != nil {
		t.Fatalf("parse name: %v", err)
	}
	f, err := chord.ParseName("F/C")
	if err != nil {
		t.Fatalf("parse name: %v", err)
	}
	return &layout.Result{
		Meta:  layout.SheetMeta{Title: "Test", Keywords: []string{"a", "b"}},
		Width: 50,
		Diagrams: []layout.Diagram{
			layout.NewDiagram("Am", am, []chord.Note{
				{String: 0, Fret: chord.Mute()},
				{String: 1},
				{String: 2, Fret: chord.At(2), Finger: 2},
				{String: 3, Fret: chord.At(2), Finger: 3},
				{String: 4, Fret: chord.At(1), Finger: 1},
				{String: 5},
			}, chord.DefaultSettings(chord.Guitar)),
			layout.NewDiagram("F/C", f, []chord.Note{
				{String: 0, Fret: chord.At(8), Finger: 1, Barre: 5},
			}, chord.DefaultSettings(chord.Guitar)),
		},
	}
}

func TestRenderPDF(t *testing.T) {
	r := NewRenderer(".")
	data, err := r.Render(sampleResult(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", data[:min(8, len(data))])
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := NewRenderer(".")
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := r.Render(&layout.Result{Width: 50}); err == nil {
		t.Fatalf("expected error without diagrams")
	}
}

func TestRenderImageFormats(t *testing.T) {
	r := NewRenderer(".")
	d := sampleResult(t).Diagrams[0]

	png, err := r.RenderImage(d, 50, renderer.FormatPNG)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("expected PNG signature")
	}

	svg, err := r.RenderImage(d, 50, renderer.FormatSVG)
	if err != nil {
		t.Fatalf("svg: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Fatalf("expected svg document")
	}

	pdf, err := r.RenderImage(d, 50, renderer.FormatPDF)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected PDF header")
	}

	if _, err := r.RenderImage(d, 50, renderer.Format("gif")); err == nil {
		t.Fatalf("expected error for gif")
	}
}

func TestMeasureTextScalesWithSize(t *testing.T) {
	r := NewRenderer(".")
	small, err := r.MeasureText("Cmaj7", chart.TextSizeSubtext, 50)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	large, err := r.MeasureText("Cmaj7", chart.TextSizeStandard, 50)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if small <= 0 || large <= small {
		t.Fatalf("expected widths to grow with text size: small=%g large=%g", small, large)
	}
	// 宽度以 chart 像素为单位，与输出尺寸无关
	other, err := r.MeasureText("Cmaj7", chart.TextSizeStandard, 120)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if diff := other - large; diff > 0.5 || diff < -0.5 {
		t.Fatalf("expected width independent of output size: %g vs %g", large, other)
	}
}

func TestFontFallback(t *testing.T) {
	r := NewRendererWithOptions(Options{BaseDir: t.TempDir(), Font: "missing.ttf"})
	if _, err := r.MeasureText("C", chart.TextSizeStandard, 50); err != nil {
		t.Fatalf("expected fallback to built-in font, got %v", err)
	}

	bad := NewRendererWithOptions(Options{Font: "relative.ttf"})
	if _, err := bad.MeasureText("C", chart.TextSizeStandard, 50); err != nil {
		t.Fatalf("expected fallback when base dir is missing, got %v", err)
	}
}

func TestConcurrentRenders(t *testing.T) {
	r := NewRenderer(".")
	res := sampleResult(t)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.RenderImage(res.Diagrams[i%2], 40, renderer.FormatSVG); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent render: %v", err)
	}
}

func TestRenderSingleStringInstrument(t *testing.T) {
	r := NewRenderer(".")
	settings := chord.Settings{Frets: 4, StartingFret: 1, Instrument: chord.Instrument{Name: "diddley bow", Strings: 1}}
	d := layout.NewDiagram("E", chord.Names{{Key: "E"}}, []chord.Note{{String: 0, Fret: chord.At(2), Finger: 1}}, settings)

	png, err := r.RenderImage(d, 50, renderer.FormatPNG)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("expected PNG signature")
	}
	if _, err := r.RenderImage(d, 50, renderer.FormatSVG); err != nil {
		t.Fatalf("svg: %v", err)
	}

	empty := layout.Diagram{Names: chord.Names{{Key: "E"}}, Settings: chord.Settings{StartingFret: 2, Instrument: chord.Guitar}}
	if _, err := r.RenderImage(empty, 50, renderer.FormatPNG); err != nil {
		t.Fatalf("png with empty fret window: %v", err)
	}
}

func TestFaceCacheIndependentOfWidth(t *testing.T) {
	r := NewRenderer(".")
	d := sampleResult(t).Diagrams[0]
	if _, err := r.RenderImage(d, 50, renderer.FormatSVG); err != nil {
		t.Fatalf("svg: %v", err)
	}
	r.fontMu.Lock()
	want := len(r.faces)
	r.fontMu.Unlock()

	for _, width := range []float64{10, 33.3, 71, 120, 499} {
		if _, err := r.RenderImage(d, width, renderer.FormatSVG); err != nil {
			t.Fatalf("svg at %gmm: %v", width, err)
		}
	}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if len(r.faces) != want {
		t.Fatalf("face cache grew with output width: %d -> %d", want, len(r.faces))
	}
}
