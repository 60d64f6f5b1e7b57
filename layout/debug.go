package layout

import (
	"encoding/json"
	"io"
	"os"
)

// WriteDebugJSON 将构建结果输出为 JSON 文件，便于检查自动调整后的品格窗口。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDebug(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeDebug 将构建结果以缩进 JSON 写入 w。
func EncodeDebug(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
