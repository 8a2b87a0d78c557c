package canvasrenderer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/cvflow/layout"
	"github.com/ByLCY/cvflow/renderer"
	"github.com/ByLCY/cvflow/theme"
)

func testDoc() layout.Document {
	return layout.Document{
		Fields: map[string]string{"name": "Grace Hopper", "designation": "Rear Admiral"},
		Sections: layout.Sections{
			layout.SectionSummary: {Text: "Pioneer of machine-independent programming languages."},
			layout.SectionExperience: {Blocks: []layout.Block{
				{Field: "experience[0]", Text: "Programmer - Harvard (1944-1949)\nMark I"},
				{Field: "experience[1]", Text: "Senior Mathematician - Remington Rand (1949-1967)\nUNIVAC, FLOW-MATIC"},
			}},
			layout.SectionContact: {Text: "grace@example.org"},
		},
	}
}

func TestRenderPDF(t *testing.T) {
	th := layout.NewTheme(theme.Default())
	style := layout.DefaultStyle()
	pages := layout.Paginate(testDoc(), layout.DefaultOrder(), th, style, style.PageSpec(th.Scale))

	r := NewRenderer()
	data, err := r.RenderPDF(pages, renderer.Meta{Title: "Grace Hopper", Author: "Grace Hopper", Creator: "cvflow"})
	if err != nil {
		t.Fatalf("渲染 PDF 失败: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("输出不是 PDF：%q", data[:min(len(data), 16)])
	}
}

func TestRenderPDFRequiresPages(t *testing.T) {
	_, err := NewRenderer().RenderPDF(nil, renderer.Meta{})
	var rerr *renderer.RenderError
	if !errors.As(err, &rerr) {
		t.Fatalf("空页面应返回 RenderError，实际 %v", err)
	}
}

func TestRenderPreviewSVG(t *testing.T) {
	th := layout.NewTheme(theme.Default())
	plan := layout.Build(testDoc(), layout.DefaultOrder(), th, layout.DefaultStyle())

	data, err := NewRenderer().RenderPreview(plan)
	if err != nil {
		t.Fatalf("渲染预览失败: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Fatalf("输出不是 SVG")
	}

	if _, err := NewRenderer().RenderPreview(nil); err == nil {
		t.Fatalf("空排版结果应报错")
	}
}

// TestCheckOverflow 真实字形宽度超过栏宽时给出提示。
func TestCheckOverflow(t *testing.T) {
	r := NewRenderer()
	runs := []layout.TextRun{
		{Field: "summary", Lines: []string{"WWWWWWWWWWWWWWWWWWWW"}, Width: 20, FontSize: 12, LineHeight: 1.2},
		{Field: "contact", Lines: []string{"i"}, Width: 200, FontSize: 12, LineHeight: 1.2},
	}
	over, err := r.CheckOverflow(runs)
	if err != nil {
		t.Fatalf("检查失败: %v", err)
	}
	if len(over) != 1 || over[0].Field != "summary" {
		t.Fatalf("应只有 summary 溢出：%+v", over)
	}
	if over[0].Width <= over[0].Limit {
		t.Fatalf("溢出宽度应大于栏宽：%+v", over[0])
	}
}

func TestFontFamiliesAreCached(t *testing.T) {
	r := NewRenderer()
	a, _, err := r.ensureFontFamily("sans", true)
	if err != nil {
		t.Fatalf("加载字体失败: %v", err)
	}
	b, _, _ := r.ensureFontFamily("Sans", true)
	if a != b {
		t.Fatalf("同一字体应只加载一次")
	}
	m, _, _ := r.ensureFontFamily("JetBrains Mono", false)
	if m == a {
		t.Fatalf("等宽字体族应使用不同字体")
	}
}
