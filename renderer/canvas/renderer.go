package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/cvflow/fonts"
	"github.com/ByLCY/cvflow/layout"
	"github.com/ByLCY/cvflow/renderer"
	"github.com/ByLCY/cvflow/theme"
)

const defaultStrokeWidth = 0.2 // mm

// Renderer draws layout results via github.com/tdewolff/canvas.
// 排版几何以 pt 为单位，canvas 以 mm 为单位，统一在绘制边界换算。
type Renderer struct {
	// injected fonts, keyed by lower-cased family name
	fontBlobs map[string][]byte

	fontMu   sync.Mutex
	families map[string]*canvas.FontFamily
}

var (
	_ renderer.PDFRenderer     = (*Renderer)(nil)
	_ renderer.PreviewRenderer = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Fonts map[string]Resource // 按主题字体族名称注入的字体，同时用于常规与粗体
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer that only uses the built-in fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected fonts.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		fontBlobs: map[string][]byte{},
		families:  map[string]*canvas.FontFamily{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[strings.ToLower(name)] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // 读取失败时回退到内置字体
			if len(data) > 0 {
				r.fontBlobs[strings.ToLower(name)] = data
			}
		}
	}
	return r
}

// RenderPDF renders the paginated result into a PDF byte slice.
func (r *Renderer) RenderPDF(pages []layout.Page, meta renderer.Meta) ([]byte, error) {
	if len(pages) == 0 {
		return nil, &renderer.RenderError{Message: "缺少可渲染的页面"}
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, toMm(pages[0].Width), toMm(pages[0].Height), nil)
	writer.SetInfo(meta.Title, meta.Subject, strings.Join(meta.Keywords, ", "), meta.Author, meta.Creator)
	for i, page := range pages {
		w, h := toMm(page.Width), toMm(page.Height)
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点

		if err := r.drawScene(ctx, page.Shapes, page.Runs()); err != nil {
			return nil, &renderer.RenderError{Message: fmt.Sprintf("绘制第 %d 页失败", i+1), Cause: err}
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, &renderer.RenderError{Message: "写入 PDF 失败", Cause: err}
	}
	return buf.Bytes(), nil
}

// RenderPreview renders the canvas plan into a single SVG image.
func (r *Renderer) RenderPreview(plan *layout.Plan) ([]byte, error) {
	if plan == nil {
		return nil, &renderer.RenderError{Message: "排版结果为空"}
	}
	w, h := toMm(plan.Width), toMm(plan.Height)
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	// 白色底板
	ctx.SetFillColor(canvas.White)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	if err := r.drawScene(ctx, plan.Shapes, plan.Runs()); err != nil {
		return nil, &renderer.RenderError{Message: "绘制预览失败", Cause: err}
	}

	var buf bytes.Buffer
	writer := svg.New(&buf, w, h, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, &renderer.RenderError{Message: "写入 SVG 失败", Cause: err}
	}
	return buf.Bytes(), nil
}

// drawScene 先绘制背景形状，再绘制文本。
func (r *Renderer) drawScene(ctx *canvas.Context, shapes layout.Shapes, runs []layout.TextRun) error {
	r.drawRects(ctx, shapes.Rects)
	r.drawLines(ctx, shapes.Lines)
	for _, run := range runs {
		if err := r.drawRun(ctx, run); err != nil {
			return err
		}
	}
	return nil
}

// drawRun 逐行绘制已折好的文本，行距 = 字号 × 行高系数。
func (r *Renderer) drawRun(ctx *canvas.Context, run layout.TextRun) error {
	if len(run.Lines) == 0 {
		return nil
	}
	face, err := r.fontFace(run.Family, run.Bold, run.FontSize, run.Color)
	if err != nil {
		return err
	}

	// 处理水平对齐：left（默认）/center/right。
	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(run.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = toMm(run.X + run.Width/2)
	case "right", "end":
		textAlign = canvas.Right
		anchorX = toMm(run.X + run.Width)
	default:
		textAlign = canvas.Left
		anchorX = toMm(run.X)
	}

	lineHeight := run.FontSize * run.LineHeight
	if lineHeight <= 0 {
		lineHeight = run.FontSize
	}
	ascent := face.Metrics().Ascent
	cursorY := toMm(run.Y)
	for _, line := range run.Lines {
		if line != "" {
			// 基线位置：行顶部加上字体上升部
			ctx.DrawText(anchorX, cursorY+ascent, canvas.NewTextLine(face, line, textAlign))
		}
		cursorY += toMm(lineHeight)
	}
	return nil
}

// drawRects 绘制背景色块
func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		if rc.Fill == nil {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		} else {
			alpha := rc.Opacity
			if alpha <= 0 || alpha > 1 {
				alpha = 1
			}
			ctx.SetFillColor(colorFromTheme(*rc.Fill, alpha))
		}
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(toMm(rc.X), toMm(rc.Y), canvas.Rectangle(toMm(rc.Width), toMm(rc.Height)))
	}
}

// drawLines 绘制直线列表，线宽以 pt 给出
func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := toMm(ln.Width)
		if w <= 0 {
			w = defaultStrokeWidth
		}
		ctx.SetStrokeColor(colorFromTheme(ln.Color, 1))
		ctx.SetStrokeWidth(w)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(toMm(ln.X2-ln.X1), toMm(ln.Y2-ln.Y1))
		ctx.DrawPath(toMm(ln.X1), toMm(ln.Y1), p)
	}
}

// Overflow 记录实际字形宽度超过栏宽的行。排版按平均字宽估算，这里用真实字体度量做事后检查。
type Overflow struct {
	Field string  `json:"field"`
	Line  string  `json:"line"`
	Width float64 `json:"width"` // pt
	Limit float64 `json:"limit"` // pt
}

// CheckOverflow 测量每一行的真实宽度，返回超出栏宽的行。
func (r *Renderer) CheckOverflow(runs []layout.TextRun) ([]Overflow, error) {
	var out []Overflow
	for _, run := range runs {
		if run.Width <= 0 || len(run.Lines) == 0 {
			continue
		}
		face, err := r.fontFace(run.Family, run.Bold, run.FontSize, run.Color)
		if err != nil {
			return nil, err
		}
		for _, line := range run.Lines {
			w := toPt(face.TextWidth(line))
			if w > run.Width+1e-6 {
				out = append(out, Overflow{Field: run.Field, Line: line, Width: w, Limit: run.Width})
			}
		}
	}
	return out, nil
}

// fontFace 创建字体面，size 为 pt。
func (r *Renderer) fontFace(family string, bold bool, size float64, col theme.Color) (*canvas.FontFace, error) {
	fam, style, err := r.ensureFontFamily(family, bold)
	if err != nil {
		return nil, err
	}
	return fam.Face(size, colorFromTheme(col, 1), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(family string, bold bool) (*canvas.FontFamily, canvas.FontStyle, error) {
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}

	name := strings.ToLower(strings.TrimSpace(family))
	data, custom := r.fontBlobs[name]
	key := fonts.ForFamily(family, bold)
	if custom {
		key = fmt.Sprintf("custom:%s|%d", name, style)
	}

	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if fam, ok := r.families[key]; ok {
		return fam, style, nil
	}
	if !custom {
		var err error
		data, err = fonts.Load(key)
		if err != nil {
			return nil, style, err
		}
	}
	fam := canvas.NewFontFamily(key)
	if err := fam.LoadFont(data, 0, style); err != nil {
		return nil, style, fmt.Errorf("加载字体 %s 失败: %w", key, err)
	}
	r.families[key] = fam
	return fam, style, nil
}

func colorFromTheme(c theme.Color, alpha float64) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, alpha)
}

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
