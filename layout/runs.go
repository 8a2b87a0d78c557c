package layout

// Runs 返回画布上的全部可绘制文本：页眉、章节标题与正文块。
// 正文块可编辑，携带字段标识与当前值；章节标题不可编辑。
func (p *Plan) Runs() []TextRun {
	if p == nil {
		return nil
	}
	runs := append([]TextRun(nil), p.Header...)
	for _, pl := range p.Sections {
		runs = append(runs, titleRun(pl.Title, pl.X, pl.TitleY, pl.Width, p.Typography))
		runs = append(runs, blockRuns(pl.Blocks, pl.X, pl.Width, p.Typography)...)
	}
	return runs
}

// HitTest 把画布坐标上的点击转换为编辑意图。未命中可编辑文本时返回 false。
func (p *Plan) HitTest(x, y float64) (EditIntent, bool) {
	for _, r := range p.Runs() {
		if !r.Editable {
			continue
		}
		region := Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
		if region.Contains(x, y) {
			return EditIntent{Field: r.Field, Value: r.Value, Region: region}, true
		}
	}
	return EditIntent{}, false
}

// Runs 返回本页的可绘制文本。续页片段不重复章节标题。
func (pg Page) Runs() []TextRun {
	runs := append([]TextRun(nil), pg.Header...)
	for _, sec := range pg.Sections {
		if sec.HasTitle {
			runs = append(runs, titleRun(sec.Title, sec.X, sec.TitleY, sec.Width, pg.Typography))
		}
		runs = append(runs, blockRuns(sec.Blocks, sec.X, sec.Width, pg.Typography)...)
	}
	return runs
}

func titleRun(title string, x, y, width float64, typo Typography) TextRun {
	return TextRun{
		Text:       title,
		Lines:      []string{title},
		X:          x,
		Y:          y,
		Width:      width,
		Height:     typo.SectionSize * 1.3,
		FontSize:   typo.SectionSize,
		LineHeight: 1.3,
		Family:     typo.Family,
		Bold:       true,
		Color:      typo.Primary,
	}
}

func blockRuns(blocks []PlacedBlock, x, width float64, typo Typography) []TextRun {
	out := make([]TextRun, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, TextRun{
			Text:       b.Text,
			Lines:      WrapLines(b.Text, typo.BodySize, width),
			X:          x,
			Y:          b.Y,
			Width:      width,
			Height:     b.Height,
			FontSize:   typo.BodySize,
			LineHeight: typo.LineHeight,
			Family:     typo.Family,
			Color:      typo.Text,
			Field:      b.Field,
			Value:      b.Text,
			Editable:   b.Field != "",
		})
	}
	return out
}
