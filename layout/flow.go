package layout

import (
	"math"
	"strings"

	"github.com/ByLCY/cvflow/binding"
)

// Build 计算画布排版：纵向无界，每个栏位维护独立游标。
// 居中栏先在页眉下方占据一条保留带，左右两栏从保留带底部开始。
// 同样的输入总是得到同样的输出；结果不可变，任何改动都应重新计算。
func Build(doc Document, order Order, th Theme, style Style) *Plan {
	style = style.withDefaults()
	m := resolveMetrics(style, th.Scale)
	m.typo.Family = th.FontFamily
	m.typo.Primary = th.Primary

	header, shapes, contentTop := buildHeader(doc, style, m, m.top)
	plan := &Plan{
		Style:      style.Name,
		Width:      style.Width,
		Columns:    m.cols,
		Typography: m.typo,
		Header:     header,
		Shapes:     shapes,
	}

	sections := visibleSections(doc, order, style)
	placed := make(map[SectionKey]Placement, len(sections))

	centerY := contentTop
	for _, sec := range sections {
		if sec.Slot != SlotCentered {
			continue
		}
		placed[sec.Key], centerY = placeSection(sec, m.cols.Centered, centerY, m)
	}

	leftY, rightY := centerY, centerY
	for _, sec := range sections {
		switch sec.Slot {
		case SlotCentered:
			continue
		case SlotRight:
			placed[sec.Key], rightY = placeSection(sec, m.cols.Right, rightY, m)
		default:
			placed[sec.Key], leftY = placeSection(sec, m.cols.Left, leftY, m)
		}
	}

	for _, sec := range sections {
		plan.Sections = append(plan.Sections, placed[sec.Key])
	}
	plan.Height = math.Max(centerY, math.Max(leftY, rightY)) + m.bottom
	return plan
}

// visibleSections 按顺序返回需要渲染的章节：必须出现在顺序中，且内容非空。
func visibleSections(doc Document, order Order, style Style) []Section {
	var out []Section
	for _, key := range order.Keys() {
		sec, ok := doc.Sections[key]
		if !ok || sec.Empty() {
			continue
		}
		spec := style.SlotFor(key)
		sec.Key = key
		sec.Slot = spec.Slot
		if sec.Title == "" {
			sec.Title = spec.Title
		}
		if len(sec.Blocks) == 0 {
			sec.Blocks = []Block{{Field: string(key), Text: sec.Text}}
		}
		out = append(out, sec)
	}
	return out
}

// measureSection 测量章节内的块，空白块不参与排版。
func measureSection(sec Section, col Column, m metrics) []MeasuredBlock {
	out := make([]MeasuredBlock, 0, len(sec.Blocks))
	for _, b := range sec.Blocks {
		if IsBlank(b.Text) {
			continue
		}
		out = append(out, Measure(b, m.typo.BodySize, col.Width, m.typo.LineHeight))
	}
	return out
}

// placeSection 在游标 y 处放置章节：块之间插入块间距，最后一个块之后不加。
// 返回章节条目与栏位游标的新位置（标题间距 + 内容高度 + 章节间距）。
func placeSection(sec Section, col Column, y float64, m metrics) (Placement, float64) {
	pl := Placement{
		Key:      sec.Key,
		Title:    sec.Title,
		Slot:     sec.Slot,
		X:        col.X,
		Width:    col.Width,
		TitleY:   y,
		ContentY: y + m.titleGap,
	}
	cursor := pl.ContentY
	blocks := measureSection(sec, col, m)
	for i, b := range blocks {
		if i > 0 {
			cursor += m.blockGap
		}
		pl.Blocks = append(pl.Blocks, PlacedBlock{MeasuredBlock: b, Y: cursor})
		cursor += b.Height
	}
	pl.Height = cursor - pl.ContentY
	return pl, cursor + m.sectionGap
}

// buildHeader 在 top 处排版页眉，返回页眉文本、装饰图形以及正文起始位置。
// 页眉字段都为空时不占空间。
func buildHeader(doc Document, style Style, m metrics, top float64) ([]TextRun, Shapes, float64) {
	data := make(map[string]any, len(doc.Fields))
	for k, v := range doc.Fields {
		data[k] = v
	}
	title := strings.TrimSpace(binding.Interpolate(style.Header.Title, data))
	subtitle := strings.TrimSpace(binding.Interpolate(style.Header.Subtitle, data))
	if binding.HasPlaceholder(title) {
		title = ""
	}
	if binding.HasPlaceholder(subtitle) {
		subtitle = ""
	}
	if title == "" && subtitle == "" {
		return nil, Shapes{}, top
	}

	x, width := m.cols.Centered.X, m.cols.Centered.Width
	align := style.Header.Align
	var runs []TextRun
	y := top
	if title != "" {
		runs = append(runs, TextRun{
			Text:       title,
			Lines:      []string{title},
			X:          x,
			Y:          y,
			Width:      width,
			Height:     m.titleLead,
			FontSize:   m.typo.TitleSize,
			LineHeight: 1.2,
			Family:     m.typo.Family,
			Bold:       true,
			Color:      m.typo.Primary,
			Align:      align,
			Field:      "name",
			Value:      doc.Fields["name"],
			Editable:   true,
		})
		y += m.titleLead
	}
	if subtitle != "" {
		runs = append(runs, TextRun{
			Text:       subtitle,
			Lines:      []string{subtitle},
			X:          x,
			Y:          y,
			Width:      width,
			Height:     m.subtitleLead,
			FontSize:   m.typo.SubtitleSize,
			LineHeight: 1.3,
			Family:     m.typo.Family,
			Color:      m.typo.Muted,
			Align:      align,
			Field:      "designation",
			Value:      doc.Fields["designation"],
			Editable:   true,
		})
		y += m.subtitleLead
	}

	bottom := y + m.headerGap
	var shapes Shapes
	if style.Header.Tint {
		fill := m.typo.Primary
		shapes.Rects = append(shapes.Rects, Rect{X: 0, Y: 0, Width: style.Width, Height: bottom, Fill: &fill, Opacity: 0.07})
	}
	if style.Header.Divider {
		lineY := y + m.headerGap/2
		shapes.Lines = append(shapes.Lines, Line{X1: x, Y1: lineY, X2: x + width, Y2: lineY, Color: m.typo.Primary, Width: 0.75})
	}
	return runs, shapes, bottom
}
