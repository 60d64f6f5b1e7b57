package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/fretsketch/binding"
	"github.com/ByLCY/fretsketch/chart"
	"github.com/ByLCY/fretsketch/chord"
	"github.com/ByLCY/fretsketch/dsl"
)

// Build 根据曲谱 AST 生成和弦图列表。data 为 JSON 解码后的数据，用于 ${path} 插值。
// 未固定窗口（custom）的和弦会经过 chord.ApplyPresetSettings 自动取景。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("曲谱为空")
	}

	meta, width, err := collectMeta(doc, data)
	if err != nil {
		return nil, err
	}
	defaults, err := collectDefaults(doc, opts)
	if err != nil {
		return nil, err
	}

	chords := doc.Chords()
	if len(chords) == 0 {
		return nil, fmt.Errorf("曲谱中缺少 chord 段落")
	}
	diagrams := make([]Diagram, 0, len(chords))
	for _, sec := range chords {
		d, err := buildDiagram(sec, defaults, data, opts)
		if err != nil {
			return nil, err
		}
		diagrams = append(diagrams, d)
	}

	return &Result{
		Meta:     meta,
		Width:    width,
		Height:   width * chart.Height / chart.Width,
		Diagrams: diagrams,
	}, nil
}

// NewDiagram 由已解析的数据组装一张和弦图并按需自动取景，供不经过 DSL 的调用方使用。
func NewDiagram(title string, names chord.Names, notes []chord.Note, settings chord.Settings) Diagram {
	adjusted := chord.ApplyPresetSettings(settings, notes)
	return Diagram{
		Title:    title,
		Symbol:   names.String(),
		Names:    names,
		Notes:    notes,
		Settings: adjusted,
		Adjusted: adjusted.StartingFret != settings.StartingFret || adjusted.Frets != settings.Frets,
	}
}

func collectMeta(doc *dsl.Document, data any) (SheetMeta, float64, error) {
	meta := SheetMeta{Title: doc.Name, Creator: "fretsketch"}
	width := DefaultWidth
	for _, sec := range doc.Sections {
		if sec.Meta == nil || sec.Meta.Block == nil {
			continue
		}
		for _, st := range sec.Meta.Block.Statements {
			as := st.Assignment
			if as == nil {
				continue
			}
			switch strings.ToLower(as.Key) {
			case "title":
				meta.Title = binding.Interpolate(as.Value.Text(), data)
			case "author":
				meta.Author = binding.Interpolate(as.Value.Text(), data)
			case "subject":
				meta.Subject = binding.Interpolate(as.Value.Text(), data)
			case "creator":
				meta.Creator = binding.Interpolate(as.Value.Text(), data)
			case "keywords":
				meta.Keywords = valueStrings(as.Value, data)
			case "size", "width":
				l, err := ParseLength(as.Value.Text())
				if err != nil {
					return meta, 0, fmt.Errorf("%s: 无法解析尺寸 %q", as.Pos, as.Value.Text())
				}
				if err := CheckWidth(l.ToMM()); err != nil {
					return meta, 0, fmt.Errorf("%s: %w", as.Pos, err)
				}
				width = l.ToMM()
			}
		}
	}
	return meta, width, nil
}

func collectDefaults(doc *dsl.Document, opts BuildOptions) (chord.Settings, error) {
	settings := chord.DefaultSettings(opts.instrument())
	for _, sec := range doc.Sections {
		if sec.Defaults == nil || sec.Defaults.Block == nil {
			continue
		}
		for _, st := range sec.Defaults.Block.Statements {
			if st.Assignment == nil {
				continue
			}
			if err := applySetting(&settings, st.Assignment.Key, st.Assignment.Value.Text(), st.Assignment.Pos); err != nil {
				return settings, err
			}
		}
	}
	return settings, nil
}

func buildDiagram(sec *dsl.ChordSection, defaults chord.Settings, data any, opts BuildOptions) (Diagram, error) {
	settings := defaults
	symbol := binding.Interpolate(string(sec.Symbol), data)
	title := symbol

	for _, p := range sec.Params {
		if err := applySetting(&settings, "instrument", p.Value, p.Pos); err != nil {
			return Diagram{}, err
		}
	}

	var notes []chord.Note
	if sec.Block != nil {
		for _, st := range sec.Block.Statements {
			switch {
			case st.Assignment != nil:
				as := st.Assignment
				if strings.EqualFold(as.Key, "title") || strings.EqualFold(as.Key, "name") {
					title = binding.Interpolate(as.Value.Text(), data)
					continue
				}
				if err := applySetting(&settings, as.Key, as.Value.Text(), as.Pos); err != nil {
					return Diagram{}, err
				}
			case st.Command != nil:
				parsed, err := parseNoteCommand(st.Command)
				if err != nil {
					return Diagram{}, err
				}
				notes = append(notes, parsed...)
			}
		}
	}

	names, err := chord.ParseName(symbol)
	if err != nil {
		return Diagram{}, fmt.Errorf("%s: 和弦名称无效: %w", sec.Pos, err)
	}
	if err := settings.Validate(); err != nil {
		return Diagram{}, fmt.Errorf("%s: 和弦 %q 的设置无效: %w", sec.Pos, symbol, err)
	}
	if !opts.Lenient {
		if err := validate(symbol, notes, settings, sec.Pos); err != nil {
			return Diagram{}, err
		}
	}
	return NewDiagram(title, names, notes, settings), nil
}

// applySetting 处理 defaults 与 chord 中共用的设置项。
func applySetting(settings *chord.Settings, key, value string, pos lexer.Position) error {
	switch strings.ToLower(key) {
	case "instrument":
		inst, ok := chord.LookupInstrument(value)
		if !ok {
			return fmt.Errorf("%s: 未知乐器 %q", pos, value)
		}
		settings.Instrument = inst
	case "strings":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s: 弦数无效 %q", pos, value)
		}
		settings.Instrument = chord.Instrument{Name: settings.Instrument.Name, Strings: n}
	case "frets":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s: 品格数无效 %q", pos, value)
		}
		settings.Frets = n
	case "start", "starting-fret":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s: 起始品格无效 %q", pos, value)
		}
		settings.StartingFret = n
	case "custom":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: custom 需要 true/false，实际 %q", pos, value)
		}
		settings.Custom = b
	default:
		return fmt.Errorf("%s: 未知设置项 %q", pos, key)
	}
	return nil
}

// parseNoteCommand 解析 note/open/mute 命令：
//
//	note <弦> <品|x|o> [finger N] [barre N]
//	open <弦>...
//	mute <弦>...
func parseNoteCommand(cmd *dsl.Command) ([]chord.Note, error) {
	switch strings.ToLower(cmd.Name) {
	case "note":
		if len(cmd.Args) < 2 {
			return nil, fmt.Errorf("%s: note 需要弦号与品格", cmd.Pos)
		}
		str, err := argInt(cmd.Args[0])
		if err != nil {
			return nil, err
		}
		fret, err := parseFret(cmd.Args[1])
		if err != nil {
			return nil, err
		}
		note := chord.Note{String: str, Fret: fret}
		rest := cmd.Args[2:]
		for len(rest) > 0 {
			if len(rest) < 2 {
				return nil, fmt.Errorf("%s: %s 缺少取值", rest[0].Pos, rest[0].Value)
			}
			n, err := argInt(rest[1])
			if err != nil {
				return nil, err
			}
			switch strings.ToLower(rest[0].Value) {
			case "finger":
				note.Finger = n
			case "barre":
				note.Barre = n
			default:
				return nil, fmt.Errorf("%s: 未知的 note 参数 %q", rest[0].Pos, rest[0].Value)
			}
			rest = rest[2:]
		}
		return []chord.Note{note}, nil
	case "open", "mute":
		if len(cmd.Args) == 0 {
			return nil, fmt.Errorf("%s: %s 需要至少一个弦号", cmd.Pos, cmd.Name)
		}
		notes := make([]chord.Note, 0, len(cmd.Args))
		for _, arg := range cmd.Args {
			str, err := argInt(arg)
			if err != nil {
				return nil, err
			}
			note := chord.Note{String: str}
			if strings.EqualFold(cmd.Name, "mute") {
				note.Fret = chord.Mute()
			}
			notes = append(notes, note)
		}
		return notes, nil
	default:
		return nil, fmt.Errorf("%s: 未知命令 %q", cmd.Pos, cmd.Name)
	}
}

func parseFret(arg *dsl.Arg) (chord.Fret, error) {
	switch strings.ToLower(arg.Value) {
	case "x", "mute", "muted":
		return chord.Mute(), nil
	case "o", "open":
		return chord.Open, nil
	}
	n, err := argInt(arg)
	if err != nil {
		return chord.Fret{}, err
	}
	return chord.At(n), nil
}

func argInt(arg *dsl.Arg) (int, error) {
	n, err := strconv.Atoi(arg.Value)
	if err != nil {
		return 0, fmt.Errorf("%s: 需要整数，实际 %q", arg.Pos, arg.Value)
	}
	return n, nil
}

// validate 拒绝超出乐器范围的弦号与不合理的指法；渲染层本身不会报错。
func validate(symbol string, notes []chord.Note, settings chord.Settings, pos lexer.Position) error {
	count := settings.Instrument.Strings
	for _, n := range notes {
		if n.String < 0 || n.String >= count {
			return fmt.Errorf("%s: 和弦 %q 的弦号 %d 超出范围 [0, %d)", pos, symbol, n.String, count)
		}
		if n.Finger < 0 || n.Finger > 4 {
			return fmt.Errorf("%s: 和弦 %q 的手指编号 %d 无效（1-4）", pos, symbol, n.Finger)
		}
		if n.Barre < 0 {
			return fmt.Errorf("%s: 和弦 %q 的横按弦号 %d 无效", pos, symbol, n.Barre)
		}
		if fret, ok := n.Fret.Value(); ok && fret < 0 {
			return fmt.Errorf("%s: 和弦 %q 的品格 %d 无效", pos, symbol, fret)
		}
	}
	return nil
}

func valueStrings(val *dsl.Value, data any) []string {
	if val == nil {
		return nil
	}
	if val.Array == nil {
		return []string{binding.Interpolate(val.Text(), data)}
	}
	out := make([]string, 0, len(val.Array.Values))
	for _, item := range val.Array.Values {
		out = append(out, binding.Interpolate(item.Text(), data))
	}
	return out
}
