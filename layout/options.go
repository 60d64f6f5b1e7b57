package layout

import (
	"fmt"

	"github.com/ByLCY/fretsketch/chord"
)

// DefaultWidth 是未指定 size 时单张和弦图的宽度（mm）。
const DefaultWidth = 50.0

// 单张和弦图允许的宽度范围（mm）。
const (
	MinWidth = 10.0
	MaxWidth = 500.0
)

// CheckWidth 校验输出宽度是否在 [MinWidth, MaxWidth] 内。
func CheckWidth(width float64) error {
	if width < MinWidth || width > MaxWidth {
		return fmt.Errorf("宽度 %gmm 超出范围 [%g, %g]", width, MinWidth, MaxWidth)
	}
	return nil
}

// BuildOptions 配置构建阶段。
type BuildOptions struct {
	// Instrument 在 defaults 与 chord 都未指定乐器时使用，零值表示吉他。
	Instrument chord.Instrument
	// Lenient 为 true 时不校验弦号与指法范围，交由渲染阶段静默处理。
	Lenient bool
}

func (o BuildOptions) instrument() chord.Instrument {
	if o.Instrument.Strings == 0 {
		return chord.Guitar
	}
	return o.Instrument
}
