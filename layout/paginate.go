package layout

// breakEpsilon 用于判断游标是否仍位于页面顶部。
const breakEpsilon = 0.5

// pageCollector 管理分页过程中的页面集合。
type pageCollector struct {
	spec  PageSpec
	typo  Typography
	pages []Page
}

func (pc *pageCollector) page(idx int) *Page {
	for len(pc.pages) <= idx {
		pc.pages = append(pc.pages, Page{
			Index:      len(pc.pages),
			Width:      pc.spec.Width,
			Height:     pc.spec.Height,
			Margin:     pc.spec.Margin,
			Typography: pc.typo,
		})
	}
	return &pc.pages[idx]
}

func (pc *pageCollector) add(idx int, seg PageSection) {
	p := pc.page(idx)
	p.Sections = append(p.Sections, seg)
}

func (pc *pageCollector) contentTop() float64 { return pc.spec.Margin.Top }

func (pc *pageCollector) contentBottom() float64 { return pc.spec.Height - pc.spec.Margin.Bottom }

// cursor 是某个栏位在分页流中的位置。
type cursor struct {
	page int
	y    float64
}

// fits 判断高度 h 能否放在当前位置；位于页顶时总是放得下，超高的块独占一页并溢出。
func (pc *pageCollector) fits(c cursor, h float64) bool {
	if c.y <= pc.contentTop()+breakEpsilon {
		return true
	}
	return c.y+h <= pc.contentBottom()
}

func (pc *pageCollector) nextPage(c cursor) cursor {
	return cursor{page: c.page + 1, y: pc.contentTop()}
}

// Paginate 把同一份画布排版切分成固定尺寸的页面。
// 块是最小单元，从不跨页；章节标题与第一个块保持在同一页；每个栏位独立分页。
// 页眉与装饰图形只出现在第一页。结果至少包含一页。
func Paginate(doc Document, order Order, th Theme, style Style, spec PageSpec) []Page {
	style = style.withDefaults()
	if spec.Width <= 0 || spec.Height <= 0 {
		spec = style.PageSpec(th.Scale)
	}
	m := resolveMetrics(style, th.Scale)
	m.typo.Family = th.FontFamily
	m.typo.Primary = th.Primary
	m.cols = pageColumns(style, spec)

	pc := &pageCollector{spec: spec, typo: m.typo}
	first := pc.page(0)

	headerStyle := style
	headerStyle.Width = spec.Width
	header, shapes, top := buildHeader(doc, headerStyle, m, pc.contentTop())
	first.Header = header
	first.Shapes = shapes

	sections := visibleSections(doc, order, style)

	center := cursor{page: 0, y: top}
	for _, sec := range sections {
		if sec.Slot == SlotCentered {
			center = flowSection(pc, sec, m.cols.Centered, center, m)
		}
	}

	left, right := center, center
	for _, sec := range sections {
		switch sec.Slot {
		case SlotCentered:
			continue
		case SlotRight:
			right = flowSection(pc, sec, m.cols.Right, right, m)
		default:
			left = flowSection(pc, sec, m.cols.Left, left, m)
		}
	}
	return pc.pages
}

// flowSection 把一个章节的块依次放入页面，返回放置后的栏位游标。
func flowSection(pc *pageCollector, sec Section, col Column, c cursor, m metrics) cursor {
	blocks := measureSection(sec, col, m)

	lead := m.titleGap
	if len(blocks) > 0 {
		lead += blocks[0].Height
	}
	if !pc.fits(c, lead) {
		c = pc.nextPage(c)
	}

	seg := PageSection{
		Key:      sec.Key,
		Title:    sec.Title,
		Slot:     sec.Slot,
		X:        col.X,
		Width:    col.Width,
		HasTitle: true,
		TitleY:   c.y,
		ContentY: c.y + m.titleGap,
	}
	segPage := c.page
	c.y += m.titleGap

	for i, b := range blocks {
		y := c.y
		if i > 0 {
			y += m.blockGap
		}
		if i > 0 && !pc.fits(cursor{page: c.page, y: y}, b.Height) {
			pc.add(segPage, seg)
			c = pc.nextPage(c)
			y = c.y
			seg = PageSection{
				Key:      sec.Key,
				Title:    sec.Title,
				Slot:     sec.Slot,
				X:        col.X,
				Width:    col.Width,
				ContentY: y,
			}
			segPage = c.page
		}
		seg.Blocks = append(seg.Blocks, PlacedBlock{MeasuredBlock: b, Y: y})
		c.y = y + b.Height
	}
	pc.add(segPage, seg)
	c.y += m.sectionGap
	return c
}

// pageColumns 按页面宽度与边距计算栏位几何，栏位比例取自风格。
func pageColumns(s Style, spec PageSpec) Columns {
	full := spec.Width - spec.Margin.Left - spec.Margin.Right
	if full < 1 {
		full = 1
	}
	x := spec.Margin.Left
	return Columns{
		Centered: Column{X: x, Width: full},
		Left:     Column{X: x, Width: full * s.LeftFraction},
		Right:    Column{X: x + full*(s.LeftFraction+s.GapFraction), Width: full * s.RightFraction},
	}
}
