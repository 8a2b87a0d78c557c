package layout

import (
	"strings"

	"github.com/ByLCY/cvflow/theme"
)

// 该文件定义排版输入（归一化后的章节）与输出（画布计划、分页结果），供排版、渲染与调试 JSON 共用。

// SectionKey 标识简历中的一个章节。
type SectionKey string

const (
	SectionSummary    SectionKey = "summary"
	SectionExperience SectionKey = "experience"
	SectionProjects   SectionKey = "projects"
	SectionSkills     SectionKey = "skills"
	SectionEducation  SectionKey = "education"
	SectionContact    SectionKey = "contact"
)

// CanonicalSections 是章节全集，也是缺省顺序。
var CanonicalSections = []SectionKey{
	SectionSummary,
	SectionExperience,
	SectionProjects,
	SectionSkills,
	SectionEducation,
	SectionContact,
}

// Valid 判断是否为已知章节。
func (k SectionKey) Valid() bool {
	for _, known := range CanonicalSections {
		if k == known {
			return true
		}
	}
	return false
}

// Slot 是章节所在的纵向栏位，由视觉风格决定。
type Slot string

const (
	SlotCentered Slot = "centered"
	SlotLeft     Slot = "left"
	SlotRight    Slot = "right"
)

// ParseSlot 解析栏位名称，未知值返回 false。
func ParseSlot(v string) (Slot, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "centered", "center", "single":
		return SlotCentered, true
	case "left", "main":
		return SlotLeft, true
	case "right", "side", "aside":
		return SlotRight, true
	default:
		return "", false
	}
}

// Block 是不可拆分的最小排版单元：一条工作经历，或其他章节的整段文本。
type Block struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

// Section 是归一化后的章节。Text 为整段扁平文本，Blocks 为参与测量的块。
type Section struct {
	Key    SectionKey `json:"key"`
	Title  string     `json:"title"`
	Slot   Slot       `json:"slot"`
	Text   string     `json:"text"`
	Blocks []Block    `json:"blocks"`
}

// Empty 判断章节是否没有可见内容。
func (s Section) Empty() bool {
	if strings.TrimSpace(s.Text) != "" {
		return false
	}
	for _, b := range s.Blocks {
		if strings.TrimSpace(b.Text) != "" {
			return false
		}
	}
	return true
}

// Sections 以章节键索引归一化结果。
type Sections map[SectionKey]Section

// Document 是排版引擎的完整输入：页眉字段（供模板插值）与章节。
type Document struct {
	Fields   map[string]string `json:"fields"`
	Sections Sections          `json:"sections"`
}

// Theme 是排版需要的主题信息：缩放系数、主色与字体族。
type Theme struct {
	Scale      theme.ScaleFactors `json:"scale"`
	Primary    theme.Color        `json:"primary"`
	FontFamily string             `json:"fontFamily"`
}

// NewTheme 从用户主题解析排版主题。
func NewTheme(cfg theme.Config) Theme {
	cfg = cfg.WithDefaults()
	return Theme{
		Scale:      theme.Resolve(cfg),
		Primary:    cfg.Primary(),
		FontFamily: cfg.FontFamily,
	}
}

// Margin 以 pt 为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Column 是解析后的栏位几何。
type Column struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// Columns 汇总三个栏位。
type Columns struct {
	Centered Column `json:"centered"`
	Left     Column `json:"left"`
	Right    Column `json:"right"`
}

// For 返回栏位对应的几何，未知栏位按左栏处理。
func (c Columns) For(slot Slot) Column {
	switch slot {
	case SlotCentered:
		return c.Centered
	case SlotRight:
		return c.Right
	default:
		return c.Left
	}
}

// MeasuredBlock 是测量后的块，只在一次排版计算中存在。
type MeasuredBlock struct {
	Field  string  `json:"field"`
	Text   string  `json:"text"`
	Lines  int     `json:"lines"`
	Height float64 `json:"height"`
}

// PlacedBlock 是已定位的块。
type PlacedBlock struct {
	MeasuredBlock
	Y float64 `json:"y"`
}

// Placement 记录一个章节在画布上的位置。
type Placement struct {
	Key      SectionKey    `json:"key"`
	Title    string        `json:"title"`
	Slot     Slot          `json:"slot"`
	X        float64       `json:"x"`
	Width    float64       `json:"width"`
	TitleY   float64       `json:"titleY"`
	ContentY float64       `json:"contentY"`
	Height   float64       `json:"height"`
	Blocks   []PlacedBlock `json:"blocks"`
}

// Typography 是解析后的字号、行高与颜色。
type Typography struct {
	Family       string      `json:"family"`
	TitleSize    float64     `json:"titleSize"`
	SubtitleSize float64     `json:"subtitleSize"`
	SectionSize  float64     `json:"sectionSize"`
	BodySize     float64     `json:"bodySize"`
	LineHeight   float64     `json:"lineHeight"`
	Primary      theme.Color `json:"primary"`
	Text         theme.Color `json:"text"`
	Muted        theme.Color `json:"muted"`
	HeaderAlign  string      `json:"headerAlign,omitempty"`
}

// Plan 是画布排版结果：纵向无界，每个可见章节一个条目。
type Plan struct {
	Style      string      `json:"style"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Columns    Columns     `json:"columns"`
	Typography Typography  `json:"typography"`
	Header     []TextRun   `json:"header"`
	Shapes     Shapes      `json:"shapes"`
	Sections   []Placement `json:"sections"`
}

// Lookup 按章节键查找条目。
func (p *Plan) Lookup(key SectionKey) (Placement, bool) {
	if p == nil {
		return Placement{}, false
	}
	for _, pl := range p.Sections {
		if pl.Key == key {
			return pl, true
		}
	}
	return Placement{}, false
}

// PageSection 是章节在某一页上的片段。章节跨页时，后续片段 HasTitle 为 false。
type PageSection struct {
	Key      SectionKey    `json:"key"`
	Title    string        `json:"title"`
	Slot     Slot          `json:"slot"`
	X        float64       `json:"x"`
	Width    float64       `json:"width"`
	HasTitle bool          `json:"hasTitle"`
	TitleY   float64       `json:"titleY,omitempty"`
	ContentY float64       `json:"contentY"`
	Blocks   []PlacedBlock `json:"blocks"`
}

// Page 是一张可打印页面上的排版结果。
type Page struct {
	Index      int           `json:"index"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Margin     Margin        `json:"margin"`
	Typography Typography    `json:"typography"`
	Header     []TextRun     `json:"header,omitempty"`
	Shapes     Shapes        `json:"shapes"`
	Sections   []PageSection `json:"sections"`
}

// TextRun 是可直接绘制的文本片段。Lines 已按栏宽折行，宿主不得重新折行或测量。
type TextRun struct {
	Text       string      `json:"text"`
	Lines      []string    `json:"lines"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	FontSize   float64     `json:"fontSize"`
	LineHeight float64     `json:"lineHeight"`
	Family     string      `json:"family"`
	Bold       bool        `json:"bold,omitempty"`
	Color      theme.Color `json:"color"`
	Align      string      `json:"align,omitempty"` // left（默认）/center/right
	Field      string      `json:"field,omitempty"`
	Value      string      `json:"value,omitempty"` // 字段当前的权威值，Text 可能经过模板变换
	Editable   bool        `json:"editable,omitempty"`
}

// Rect 是轴对齐矩形区域，也用于背景色块。
type Rect struct {
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Fill    *theme.Color `json:"fill,omitempty"`
	Opacity float64      `json:"opacity,omitempty"`
}

// Contains 判断点是否落在矩形内（含边界）。
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Line 表示一条线段。
type Line struct {
	X1    float64     `json:"x1"`
	Y1    float64     `json:"y1"`
	X2    float64     `json:"x2"`
	Y2    float64     `json:"y2"`
	Color theme.Color `json:"color"`
	Width float64     `json:"width"` // <=0 时由渲染器给默认值
}

// Shapes 汇总装饰图形。
type Shapes struct {
	Rects []Rect `json:"rects,omitempty"`
	Lines []Line `json:"lines,omitempty"`
}

// EditIntent 是点击可编辑文本后发给宿主的编辑意图。
type EditIntent struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Region Rect   `json:"region"`
}
