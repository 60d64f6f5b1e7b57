package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/fretsketch/chart"
	"github.com/ByLCY/fretsketch/fonts"
	"github.com/ByLCY/fretsketch/layout"
	"github.com/ByLCY/fretsketch/renderer"
)

// Renderer draws chord diagrams via github.com/tdewolff/canvas.
type Renderer struct {
	baseDir string
	fontSrc string

	fontMu sync.Mutex
	family *canvas.FontFamily
	faces  map[faceKey]*canvas.FontFace
}

var (
	_ renderer.Renderer      = (*Renderer)(nil)
	_ renderer.ImageRenderer = (*Renderer)(nil)
)

// faceKey identifies a face by chart text size, so the cache stays bounded
// whatever output width callers ask for.
type faceKey struct {
	size float64
	fill color.RGBA
}

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	// Font is "embed:<name>" for a built-in font or a TTF/OTF path relative to BaseDir.
	Font string
}

// NewRenderer creates a renderer using the default built-in font.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with the given font source.
func NewRendererWithOptions(opts Options) *Renderer {
	src := opts.Font
	if src == "" {
		src = fonts.Default
	}
	return &Renderer{
		baseDir: opts.BaseDir,
		fontSrc: src,
		faces:   map[faceKey]*canvas.FontFace{},
	}
}

// Render renders every diagram of the sheet onto its own PDF page.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Diagrams) == 0 {
		return nil, fmt.Errorf("缺少可渲染的和弦图")
	}
	if err := r.ensureFont(); err != nil {
		return nil, err
	}

	width, height := pageSize(result.Width)
	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	meta := result.Meta
	writer.SetInfo(meta.Title, meta.Subject, strings.Join(meta.Keywords, ", "), meta.Author, meta.Creator)
	for i, d := range result.Diagrams {
		if i > 0 {
			writer.NewPage(width, height)
		}
		c := r.drawDiagram(d, width, height)
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderImage renders one diagram as PNG, SVG or a single-page PDF.
// PNG output is chart.Width pixels wide regardless of width.
func (r *Renderer) RenderImage(d layout.Diagram, width float64, format renderer.Format) ([]byte, error) {
	if format == renderer.FormatPDF {
		return r.Render(&layout.Result{Meta: layout.SheetMeta{Title: d.Title}, Width: width, Diagrams: []layout.Diagram{d}})
	}
	if err := r.ensureFont(); err != nil {
		return nil, err
	}
	w, h := pageSize(width)
	c := r.drawDiagram(d, w, h)

	var write canvas.Writer
	switch format {
	case renderer.FormatPNG:
		write = renderers.PNG(canvas.DPMM(chart.Width / w))
	case renderer.FormatSVG:
		write = renderers.SVG()
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", format)
	}
	var buf bytes.Buffer
	if err := write(&buf, c); err != nil {
		return nil, fmt.Errorf("输出 %s 失败: %w", format, err)
	}
	return buf.Bytes(), nil
}

func pageSize(width float64) (float64, float64) {
	if width <= 0 {
		width = layout.DefaultWidth
	}
	return width, width * chart.Height / chart.Width
}

func (r *Renderer) drawDiagram(d layout.Diagram, width, height float64) *canvas.Canvas {
	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 与 chart 坐标一致：左上角为原点

	ctx.SetFillColor(canvas.White)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(0, 0, canvas.Rectangle(width, height))

	chart.Draw(r.NewSurface(ctx, width/chart.Width), d.Names, d.Notes, d.Settings)
	return c
}

// MeasureText returns the width of text at size (chart pixels) for a diagram
// of the given output width. It lets callers centre text exactly as Render would.
func (r *Renderer) MeasureText(text string, size, width float64) (float64, error) {
	if err := r.ensureFont(); err != nil {
		return 0, err
	}
	w, h := pageSize(width)
	s := r.NewSurface(canvas.NewContext(canvas.New(w, h)), w/chart.Width)
	s.TextSize(size)
	return s.TextWidth(text), nil
}

func (r *Renderer) face(size float64, fill color.Color) *canvas.FontFace {
	key := faceKey{size: size, fill: color.RGBAModel.Convert(fill).(color.RGBA)}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := r.family.Face(size*layout.MmToPt, key.fill, canvas.FontRegular, canvas.FontNormal)
	r.faces[key] = f
	return f
}

func (r *Renderer) ensureFont() error {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return nil
	}

	family := canvas.NewFontFamily("fretsketch")
	data, err := r.loadFontBytes(r.fontSrc)
	if err == nil {
		err = family.LoadFont(data, 0, canvas.FontRegular)
	}
	if err != nil {
		if r.fontSrc == fonts.Default {
			return fmt.Errorf("加载字体失败: %w", err)
		}
		// 回退到内置字体
		fallback, fbErr := fonts.Load(fonts.Default)
		if fbErr != nil {
			return err
		}
		family = canvas.NewFontFamily("fretsketch-fallback")
		if fbErr := family.LoadFont(fallback, 0, canvas.FontRegular); fbErr != nil {
			return err
		}
	}
	r.family = family
	return nil
}

func (r *Renderer) loadFontBytes(src string) ([]byte, error) {
	if strings.HasPrefix(src, "embed:") {
		return fonts.Load(src)
	}
	path := src
	if r.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 embed:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	return os.ReadFile(path)
}
