package layout

import "github.com/ByLCY/fretsketch/chord"

// 该文件定义曲谱构建结果，供渲染与调试 JSON 共用。

// Result 保存构建后的全部和弦图与文档信息。
type Result struct {
	Meta     SheetMeta `json:"meta"`
	Width    float64   `json:"width"`  // 单张和弦图输出宽度（mm）
	Height   float64   `json:"height"` // 按画布比例推算的高度（mm）
	Diagrams []Diagram `json:"diagrams"`
}

// Diagram 是一张可以直接交给 chart.Draw 的和弦图。
type Diagram struct {
	Title    string         `json:"title"`
	Symbol   string         `json:"symbol"`
	Names    chord.Names    `json:"names"`
	Notes    []chord.Note   `json:"notes"`
	Settings chord.Settings `json:"settings"`
	// Adjusted 表示品格窗口已由 chord.ApplyPresetSettings 自动调整。
	Adjusted bool `json:"adjusted,omitempty"`
}

// SheetMeta 保存 PDF 元信息。
type SheetMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
