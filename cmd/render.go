package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/fretsketch/chart"
	"github.com/ByLCY/fretsketch/chord"
	"github.com/ByLCY/fretsketch/dsl"
	"github.com/ByLCY/fretsketch/layout"
	"github.com/ByLCY/fretsketch/record"
	"github.com/ByLCY/fretsketch/renderer"
	canvasrenderer "github.com/ByLCY/fretsketch/renderer/canvas"
)

type renderOptions struct {
	input      string
	output     string
	format     string
	data       string
	debug      string
	calls      string
	font       string
	instrument string
	lenient    bool
}

var renderOpts renderOptions

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderOpts.input, "in", "examples/campfire.fret", "曲谱文件路径")
	f.StringVar(&renderOpts.output, "out", "output/campfire.pdf", "输出路径")
	f.StringVar(&renderOpts.format, "format", "", "输出格式 pdf|png|svg，默认取输出文件扩展名")
	f.StringVar(&renderOpts.data, "data", "", "绑定到曲谱的 JSON 数据")
	f.StringVar(&renderOpts.debug, "debug", "", "布局调试 JSON 输出路径")
	f.StringVar(&renderOpts.calls, "calls", "", "绘制调用记录 JSON 输出路径")
	f.StringVar(&renderOpts.font, "font", "", "字体（embed:<name> 或相对曲谱目录的 TTF 路径）")
	f.StringVar(&renderOpts.instrument, "instrument", "", "曲谱未指定乐器时使用的乐器")
	f.BoolVar(&renderOpts.lenient, "lenient", false, "不校验弦号与指法范围")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders a chord sheet to PDF, PNG or SVG",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
			BaseDir: filepath.Dir(renderOpts.input),
			Font:    renderOpts.font,
		})
		written, err := run(renderOpts, r)
		if err != nil {
			return fmt.Errorf("生成和弦图失败: %w", err)
		}
		for _, path := range written {
			fmt.Fprintf(cmd.OutOrStdout(), "已生成：%s\n", path)
		}
		return nil
	},
}

// backend 是 run 需要的渲染能力。
type backend interface {
	renderer.Renderer
	renderer.ImageRenderer
}

// run 串联解析、布局与渲染，返回写出的文件列表。
func run(opts renderOptions, r backend) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer 不能为空")
	}
	format, err := outputFormat(opts.format, opts.output)
	if err != nil {
		return nil, err
	}

	var data any
	if opts.data != "" {
		if err := json.Unmarshal([]byte(opts.data), &data); err != nil {
			return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	buildOpts := layout.BuildOptions{Lenient: opts.lenient}
	if opts.instrument != "" {
		inst, ok := chord.LookupInstrument(opts.instrument)
		if !ok {
			return nil, fmt.Errorf("未知乐器 %q", opts.instrument)
		}
		buildOpts.Instrument = inst
	}

	file, err := os.Open(opts.input)
	if err != nil {
		return nil, fmt.Errorf("无法打开曲谱文件 %s: %w", opts.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析曲谱失败: %w", err)
	}
	result, err := layout.Build(doc, data, buildOpts)
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}

	if opts.debug != "" {
		if err := mkdirFor(opts.debug); err != nil {
			return nil, err
		}
		if err := layout.WriteDebugJSON(result, opts.debug); err != nil {
			return nil, fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	if opts.calls != "" {
		if err := writeCalls(result, r, opts.calls); err != nil {
			return nil, err
		}
	}

	if err := mkdirFor(opts.output); err != nil {
		return nil, err
	}
	if format == renderer.FormatPDF {
		pdfBytes, err := r.Render(result)
		if err != nil {
			return nil, fmt.Errorf("渲染 PDF 失败: %w", err)
		}
		if err := os.WriteFile(opts.output, pdfBytes, 0o644); err != nil {
			return nil, fmt.Errorf("写入 PDF 文件失败: %w", err)
		}
		return []string{opts.output}, nil
	}

	// 图片格式每张和弦图一个文件
	paths := imagePaths(opts.output, len(result.Diagrams))
	for i, d := range result.Diagrams {
		img, err := r.RenderImage(d, result.Width, format)
		if err != nil {
			return nil, fmt.Errorf("渲染和弦 %s 失败: %w", d.Symbol, err)
		}
		if err := os.WriteFile(paths[i], img, 0o644); err != nil {
			return nil, fmt.Errorf("写入文件 %s 失败: %w", paths[i], err)
		}
	}
	return paths, nil
}

func outputFormat(flag, output string) (renderer.Format, error) {
	if flag != "" {
		return renderer.ParseFormat(flag)
	}
	if ext := filepath.Ext(output); ext != "" {
		return renderer.ParseFormat(ext)
	}
	return renderer.FormatPDF, nil
}

// imagePaths 为多张图生成 name-1.png、name-2.png……，单张时原样返回。
func imagePaths(output string, n int) []string {
	if n == 1 {
		return []string{output}
	}
	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("%s-%d%s", base, i+1, ext)
	}
	return paths
}

type measurer interface {
	MeasureText(text string, size, width float64) (float64, error)
}

type diagramCalls struct {
	Symbol string        `json:"symbol"`
	Calls  []record.Call `json:"calls"`
}

// writeCalls 记录每张图的绘制调用；renderer 能测量文字时使用真实字宽。
func writeCalls(result *layout.Result, r backend, path string) error {
	var measure record.MeasureFunc
	if m, ok := r.(measurer); ok {
		measure = func(text string, size float64) float64 {
			w, err := m.MeasureText(text, size, result.Width)
			if err != nil {
				return record.MonoMeasure(text, size)
			}
			return w
		}
	}

	out := make([]diagramCalls, 0, len(result.Diagrams))
	for _, d := range result.Diagrams {
		rec := record.New(measure)
		chart.Draw(rec, d.Names, d.Notes, d.Settings)
		out = append(out, diagramCalls{Symbol: d.Symbol, Calls: rec.Calls()})
	}

	if err := mkdirFor(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建调用记录文件失败: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		f.Close()
		return fmt.Errorf("输出调用记录失败: %w", err)
	}
	return f.Close()
}

func mkdirFor(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	return nil
}
