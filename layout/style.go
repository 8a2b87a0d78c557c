package layout

import "github.com/ByLCY/cvflow/theme"

// Style 是一种视觉风格的版式参数（单位 pt）。栏位分配属于风格本身，不由用户在引擎层修改。
type Style struct {
	Name string `json:"name"`

	Width         float64 `json:"width"`
	Padding       float64 `json:"padding"`       // 左右边距，随 margin 档位缩放
	TopPadding    float64 `json:"topPadding"`    // 随 margin 档位缩放
	BottomPadding float64 `json:"bottomPadding"` // 随 margin 档位缩放

	LeftFraction  float64 `json:"leftFraction"`
	GapFraction   float64 `json:"gapFraction"`
	RightFraction float64 `json:"rightFraction"`

	TitleSize    float64 `json:"titleSize"`
	SubtitleSize float64 `json:"subtitleSize"`
	SectionSize  float64 `json:"sectionSize"`
	BodySize     float64 `json:"bodySize"`

	TitleGap   float64 `json:"titleGap"`   // 章节标题到正文
	SectionGap float64 `json:"sectionGap"` // 章节之间，随 spacing 档位缩放
	BlockGap   float64 `json:"blockGap"`   // 块之间，随 spacing 档位缩放
	HeaderGap  float64 `json:"headerGap"`  // 页眉到第一个章节，随 spacing 档位缩放

	Header HeaderSpec `json:"header"`
	Slots  []SlotSpec `json:"slots"`

	TextColor  theme.Color `json:"textColor"`
	MutedColor theme.Color `json:"mutedColor"`
}

// HeaderSpec 描述页眉：标题与副标题是 ${path} 模板。
type HeaderSpec struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Align    string `json:"align,omitempty"`
	Divider  bool   `json:"divider,omitempty"`
	Tint     bool   `json:"tint,omitempty"`
}

// SlotSpec 把章节分配到栏位并给出显示标题。
type SlotSpec struct {
	Key   SectionKey `json:"key"`
	Slot  Slot       `json:"slot"`
	Title string     `json:"title"`
}

// DefaultStyle 是未指定风格时使用的双栏版式。
func DefaultStyle() Style {
	return Style{
		Name:          "modern",
		Width:         A4Width,
		Padding:       34,
		TopPadding:    30,
		BottomPadding: 30,
		LeftFraction:  0.65,
		GapFraction:   0.05,
		RightFraction: 0.30,
		TitleSize:     26,
		SubtitleSize:  13,
		SectionSize:   11,
		BodySize:      9.5,
		TitleGap:      14,
		SectionGap:    18,
		BlockGap:      8,
		HeaderGap:     12,
		Header:        HeaderSpec{Title: "${name|upper}", Subtitle: "${designation}", Align: "left", Divider: true, Tint: true},
		Slots: []SlotSpec{
			{Key: SectionSummary, Slot: SlotLeft, Title: "PROFILE SUMMARY"},
			{Key: SectionExperience, Slot: SlotLeft, Title: "EXPERIENCE"},
			{Key: SectionProjects, Slot: SlotLeft, Title: "PROJECTS"},
			{Key: SectionSkills, Slot: SlotLeft, Title: "SKILLS"},
			{Key: SectionEducation, Slot: SlotRight, Title: "EDUCATION"},
			{Key: SectionContact, Slot: SlotRight, Title: "CONTACT"},
		},
		TextColor:  theme.Color{R: 0x44, G: 0x44, B: 0x44},
		MutedColor: theme.Color{R: 0x66, G: 0x66, B: 0x66},
	}
}

// SlotFor 返回章节的栏位分配。未列出的章节按左栏、以键名为标题。
func (s Style) SlotFor(key SectionKey) SlotSpec {
	for _, spec := range s.Slots {
		if spec.Key == key {
			return spec
		}
	}
	return SlotSpec{Key: key, Slot: SlotLeft, Title: string(key)}
}

// withDefaults 用缺省风格补齐零值字段。
func (s Style) withDefaults() Style {
	d := DefaultStyle()
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&s.Width, d.Width)
	fill(&s.Padding, d.Padding)
	fill(&s.TopPadding, d.TopPadding)
	fill(&s.BottomPadding, d.BottomPadding)
	fill(&s.TitleSize, d.TitleSize)
	fill(&s.SubtitleSize, d.SubtitleSize)
	fill(&s.SectionSize, d.SectionSize)
	fill(&s.BodySize, d.BodySize)
	fill(&s.TitleGap, d.TitleGap)
	fill(&s.SectionGap, d.SectionGap)
	fill(&s.BlockGap, d.BlockGap)
	fill(&s.HeaderGap, d.HeaderGap)
	if s.LeftFraction <= 0 && s.RightFraction <= 0 {
		s.LeftFraction, s.GapFraction, s.RightFraction = d.LeftFraction, d.GapFraction, d.RightFraction
	}
	if s.Name == "" {
		s.Name = d.Name
	}
	if len(s.Slots) == 0 {
		s.Slots = d.Slots
	}
	return s
}

// PageSpec 描述导出页面。
type PageSpec struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// PageSpec 返回与画布几何一致的 A4 页面规格：宽度取风格宽度，边距随 margin 档位缩放。
func (s Style) PageSpec(scale theme.ScaleFactors) PageSpec {
	s = s.withDefaults()
	m := resolveMetrics(s, scale)
	return PageSpec{
		Width:  s.Width,
		Height: A4Height,
		Margin: Margin{Top: m.top, Right: m.pad, Bottom: m.bottom, Left: m.pad},
	}
}

// metrics 是风格与缩放系数合成后的具体尺寸。
type metrics struct {
	cols         Columns
	typo         Typography
	pad          float64
	top          float64
	bottom       float64
	titleGap     float64
	sectionGap   float64
	blockGap     float64
	headerGap    float64
	titleLead    float64
	subtitleLead float64
}

func resolveMetrics(s Style, scale theme.ScaleFactors) metrics {
	if scale.Font <= 0 {
		scale.Font = 1
	}
	if scale.Margin <= 0 {
		scale.Margin = 1
	}
	if scale.Spacing <= 0 {
		scale.Spacing = 1
	}
	if scale.LineHeight <= 0 {
		scale.LineHeight = theme.DefaultLineHeight
	}
	pad := s.Padding * scale.Margin
	full := s.Width - pad - pad
	if full < 1 {
		full = 1
	}
	m := metrics{
		pad:        pad,
		top:        s.TopPadding * scale.Margin,
		bottom:     s.BottomPadding * scale.Margin,
		titleGap:   s.TitleGap * scale.Font,
		sectionGap: s.SectionGap * scale.Spacing,
		blockGap:   s.BlockGap * scale.Spacing,
		headerGap:  s.HeaderGap * scale.Spacing,
	}
	m.cols = Columns{
		Centered: Column{X: pad, Width: full},
		Left:     Column{X: pad, Width: full * s.LeftFraction},
		Right:    Column{X: pad + full*(s.LeftFraction+s.GapFraction), Width: full * s.RightFraction},
	}
	m.typo = Typography{
		TitleSize:    s.TitleSize * scale.Font,
		SubtitleSize: s.SubtitleSize * scale.Font,
		SectionSize:  s.SectionSize * scale.Font,
		BodySize:     s.BodySize * scale.Font,
		LineHeight:   scale.LineHeight,
		Text:         s.TextColor,
		Muted:        s.MutedColor,
		HeaderAlign:  s.Header.Align,
	}
	m.titleLead = m.typo.TitleSize * 1.2
	m.subtitleLead = m.typo.SubtitleSize * 1.3
	return m
}
