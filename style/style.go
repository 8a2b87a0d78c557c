// Package style 加载视觉风格：样式表以 dsl 语法书写，内置风格随二进制嵌入。
package style

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ByLCY/cvflow/dsl"
	"github.com/ByLCY/cvflow/layout"
	"github.com/ByLCY/cvflow/theme"
)

//go:embed sheets/*.style
var builtinFS embed.FS

// DefaultName 是未指定风格时使用的内置风格。
const DefaultName = "modern"

// Info 描述一个已加载的风格。
type Info struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Aliases     []string     `json:"aliases,omitempty"`
	Style       layout.Style `json:"style"`
}

// Registry 按名称与别名索引风格。
type Registry struct {
	infos   map[string]Info
	aliases map[string]string
}

var (
	builtinOnce sync.Once
	builtin     *Registry
	builtinErr  error
)

// Builtin 返回内置风格注册表。内置样式表解析失败属于程序错误，直接 panic。
func Builtin() *Registry {
	builtinOnce.Do(func() {
		builtin, builtinErr = loadBuiltin()
	})
	if builtinErr != nil {
		panic(builtinErr)
	}
	return builtin
}

func loadBuiltin() (*Registry, error) {
	entries, err := builtinFS.ReadDir("sheets")
	if err != nil {
		return nil, fmt.Errorf("读取内置样式失败: %w", err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		name := path.Join("sheets", e.Name())
		f, err := builtinFS.Open(name)
		if err != nil {
			return nil, fmt.Errorf("打开内置样式 %s 失败: %w", name, err)
		}
		info, err := Load(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		if err := reg.Add(info); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// NewRegistry 创建空注册表。
func NewRegistry() *Registry {
	return &Registry{infos: map[string]Info{}, aliases: map[string]string{}}
}

// Add 注册风格及其别名，名称冲突时报错。
func (r *Registry) Add(info Info) error {
	name := strings.ToLower(info.Name)
	if _, ok := r.infos[name]; ok {
		return fmt.Errorf("风格 %s 重复定义", info.Name)
	}
	if _, ok := r.aliases[name]; ok {
		return fmt.Errorf("风格 %s 与已有别名冲突", info.Name)
	}
	r.infos[name] = info
	for _, a := range info.Aliases {
		a = strings.ToLower(a)
		if _, ok := r.infos[a]; ok {
			return fmt.Errorf("别名 %s 与已有风格冲突", a)
		}
		r.aliases[a] = name
	}
	return nil
}

// Lookup 按名称或别名查找风格，大小写不敏感。
func (r *Registry) Lookup(name string) (Info, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	info, ok := r.infos[key]
	return info, ok
}

// Resolve 返回风格参数。空名称取 DefaultName，未知名称报错。
func (r *Registry) Resolve(name string) (layout.Style, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	info, ok := r.Lookup(name)
	if !ok {
		return layout.Style{}, fmt.Errorf("未知风格 %q，可选：%s", name, strings.Join(r.Names(), ", "))
	}
	return info.Style, nil
}

// Names 返回排序后的风格名称（不含别名）。
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.infos))
	for name := range r.infos {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Infos 按名称顺序返回全部风格。
func (r *Registry) Infos() []Info {
	names := r.Names()
	out := make([]Info, 0, len(names))
	for _, n := range names {
		out = append(out, r.infos[n])
	}
	return out
}

// Resolve 在内置风格中查找。
func Resolve(name string) (layout.Style, error) {
	return Builtin().Resolve(name)
}

// Names 返回内置风格名称。
func Names() []string {
	return Builtin().Names()
}

// LoadFile 从磁盘加载自定义样式表。
func LoadFile(filename string) (Info, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Info{}, fmt.Errorf("打开样式表失败: %w", err)
	}
	defer f.Close()
	return Load(filename, f)
}

// Load 解析样式表并转换为风格参数。
func Load(filename string, r io.Reader) (Info, error) {
	sheet, err := dsl.Parse(filename, r)
	if err != nil {
		return Info{}, fmt.Errorf("解析样式表失败: %w", err)
	}
	return FromSheet(sheet)
}

// FromSheet 把样式表语法树转换为风格参数。未知字段与非法取值报错。
func FromSheet(sheet *dsl.Sheet) (Info, error) {
	info := Info{Name: sheet.Name}
	s := layout.Style{Name: sheet.Name}

	for _, sec := range sheet.Sections {
		var err error
		switch sec.Kind {
		case "meta":
			err = applyMeta(&info, sec)
		case "page":
			err = applyLengths(sec, map[string]*float64{
				"width":          &s.Width,
				"padding":        &s.Padding,
				"padding-top":    &s.TopPadding,
				"padding-bottom": &s.BottomPadding,
			})
		case "columns":
			err = applyColumns(&s, sec)
		case "type":
			err = applyType(&s, sec)
		case "spacing":
			err = applyLengths(sec, map[string]*float64{
				"title-gap":   &s.TitleGap,
				"section-gap": &s.SectionGap,
				"block-gap":   &s.BlockGap,
				"header-gap":  &s.HeaderGap,
			})
		case "header":
			err = applyHeader(&s.Header, sec)
		case "slots":
			err = applySlots(&s, sec)
		}
		if err != nil {
			return Info{}, fmt.Errorf("样式 %s: %w", sheet.Name, err)
		}
	}
	if sum := s.LeftFraction + s.GapFraction + s.RightFraction; sum > 1.0001 {
		return Info{}, fmt.Errorf("样式 %s: 栏宽比例之和 %.3f 超过 100%%", sheet.Name, sum)
	}
	info.Style = s
	return info, nil
}

func applyMeta(info *Info, sec *dsl.Section) error {
	for key, v := range sec.Block.Assignments() {
		switch key {
		case "description":
			info.Description = v.Text()
		case "aliases":
			if v.Array == nil {
				info.Aliases = []string{v.Text()}
				continue
			}
			for _, item := range v.Array.Values {
				info.Aliases = append(info.Aliases, item.Text())
			}
		default:
			return unknownKey(sec, key)
		}
	}
	sort.Strings(info.Aliases)
	return nil
}

func applyLengths(sec *dsl.Section, targets map[string]*float64) error {
	for key, v := range sec.Block.Assignments() {
		dst, ok := targets[key]
		if !ok {
			return unknownKey(sec, key)
		}
		l, ok := layout.ParseRawLengthStr(v.Text())
		if !ok || l.Value < 0 {
			return fmt.Errorf("%s.%s: 非法长度 %q", sec.Kind, key, v.Text())
		}
		*dst = l.ToPT()
	}
	return nil
}

func applyColumns(s *layout.Style, sec *dsl.Section) error {
	targets := map[string]*float64{"left": &s.LeftFraction, "gap": &s.GapFraction, "right": &s.RightFraction}
	for key, v := range sec.Block.Assignments() {
		dst, ok := targets[key]
		if !ok {
			return unknownKey(sec, key)
		}
		f, err := parseFraction(v.Text())
		if err != nil {
			return fmt.Errorf("columns.%s: %w", key, err)
		}
		*dst = f
	}
	return nil
}

func applyType(s *layout.Style, sec *dsl.Section) error {
	sizes := map[string]*float64{
		"title":    &s.TitleSize,
		"subtitle": &s.SubtitleSize,
		"section":  &s.SectionSize,
		"body":     &s.BodySize,
	}
	colors := map[string]*theme.Color{"text": &s.TextColor, "muted": &s.MutedColor}
	for key, v := range sec.Block.Assignments() {
		if dst, ok := sizes[key]; ok {
			l, ok := layout.ParseRawLengthStr(v.Text())
			if !ok || l.Value <= 0 {
				return fmt.Errorf("type.%s: 非法字号 %q", key, v.Text())
			}
			*dst = l.ToPT()
			continue
		}
		if dst, ok := colors[key]; ok {
			c, err := theme.ParseColor(v.Text())
			if err != nil {
				return fmt.Errorf("type.%s: %w", key, err)
			}
			*dst = c
			continue
		}
		return unknownKey(sec, key)
	}
	return nil
}

func applyHeader(h *layout.HeaderSpec, sec *dsl.Section) error {
	for key, v := range sec.Block.Assignments() {
		var err error
		switch key {
		case "title":
			h.Title = v.Text()
		case "subtitle":
			h.Subtitle = v.Text()
		case "align":
			switch a := strings.ToLower(v.Text()); a {
			case "left", "center", "right":
				h.Align = a
			default:
				err = fmt.Errorf("header.align: 非法取值 %q", v.Text())
			}
		case "divider":
			h.Divider, err = strconv.ParseBool(v.Text())
		case "tint":
			h.Tint, err = strconv.ParseBool(v.Text())
		default:
			err = unknownKey(sec, key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// applySlots 解析栏位指令：<slot> <section> ["title"]。
func applySlots(s *layout.Style, sec *dsl.Section) error {
	seen := map[layout.SectionKey]bool{}
	for _, cmd := range sec.Block.Commands() {
		slot, ok := layout.ParseSlot(cmd.Name)
		if !ok {
			return fmt.Errorf("%s: 未知栏位 %q", cmd.Pos, cmd.Name)
		}
		if len(cmd.Args) == 0 || len(cmd.Args) > 2 {
			return fmt.Errorf("%s: 栏位指令格式为 <slot> <section> [\"title\"]", cmd.Pos)
		}
		key := layout.SectionKey(strings.ToLower(cmd.Args[0].Value))
		if !key.Valid() {
			return fmt.Errorf("%s: 未知章节 %q", cmd.Pos, cmd.Args[0].Value)
		}
		if seen[key] {
			return fmt.Errorf("%s: 章节 %s 重复分配", cmd.Pos, key)
		}
		seen[key] = true
		title := string(key)
		if len(cmd.Args) == 2 {
			title = cmd.Args[1].Value
		}
		s.Slots = append(s.Slots, layout.SlotSpec{Key: key, Slot: slot, Title: title})
	}
	for _, st := range sec.Block.Statements {
		if st.Assignment != nil {
			return unknownKey(sec, st.Assignment.Key)
		}
	}
	return nil
}

// parseFraction 解析 "65%" 或 0.65。
func parseFraction(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil || f < 0 || f > 100 {
			return 0, fmt.Errorf("非法比例 %q", v)
		}
		return f / 100, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		return 0, fmt.Errorf("非法比例 %q", v)
	}
	return f, nil
}

func unknownKey(sec *dsl.Section, key string) error {
	return fmt.Errorf("%s: %s 中的未知字段 %q", sec.Pos, sec.Kind, key)
}
