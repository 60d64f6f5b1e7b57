package renderer

import (
	"fmt"
	"strings"

	"github.com/ByLCY/fretsketch/layout"
)

// Renderer 将整本曲谱输出为最终文件（例如多页 PDF）。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// ImageRenderer 将单张和弦图输出为图片，width 为输出宽度（mm）。
type ImageRenderer interface {
	RenderImage(d layout.Diagram, width float64, format Format) ([]byte, error)
}

// Format 是输出文件格式。
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat 解析格式名称，大小写不敏感，可带前导点（".png"）。
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	switch f {
	case FormatPDF, FormatPNG, FormatSVG:
		return f, nil
	}
	return "", fmt.Errorf("不支持的输出格式 %q", s)
}

// ContentType 返回格式对应的 MIME 类型。
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "application/octet-stream"
}
