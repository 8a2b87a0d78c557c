package layout

import (
	"strings"
	"testing"
)

func TestPlanRunsCarryFieldAndValue(t *testing.T) {
	plan := Build(sampleDoc(), DefaultOrder(), defaultTheme(), DefaultStyle())
	runs := plan.Runs()

	var titles, editable int
	for _, r := range runs {
		if r.Editable {
			editable++
			if r.Field == "" {
				t.Fatalf("可编辑文本必须带字段标识：%+v", r)
			}
		} else if r.Bold && r.FontSize == plan.Typography.SectionSize {
			titles++
		}
	}
	// 2 个页眉 + summary + 2 条经历 + skills + education + contact
	if editable != 8 {
		t.Fatalf("可编辑文本数量期望 8，实际 %d", editable)
	}
	if titles != len(plan.Sections) {
		t.Fatalf("每个章节应有一个标题，实际 %d", titles)
	}
}

func TestPlanRunsLinesMatchMeasurement(t *testing.T) {
	doc := sampleDoc()
	doc.Sections[SectionSummary] = Section{Text: strings.Repeat("long summary text ", 30)}
	plan := Build(doc, DefaultOrder(), defaultTheme(), DefaultStyle())
	sum, _ := plan.Lookup(SectionSummary)
	for _, r := range plan.Runs() {
		if r.Field == "summary" && len(r.Lines) != sum.Blocks[0].Lines {
			t.Fatalf("折行数 %d 与测量行数 %d 不一致", len(r.Lines), sum.Blocks[0].Lines)
		}
	}
}

func TestHitTest(t *testing.T) {
	plan := Build(sampleDoc(), DefaultOrder(), defaultTheme(), DefaultStyle())
	exp, _ := plan.Lookup(SectionExperience)
	b := exp.Blocks[1]

	intent, ok := plan.HitTest(exp.X+1, b.Y+b.Height/2)
	if !ok {
		t.Fatalf("点击经历块应命中")
	}
	if intent.Field != "experience[1]" || intent.Value != b.Text {
		t.Fatalf("编辑意图错误：%+v", intent)
	}
	if !intent.Region.Contains(exp.X+1, b.Y+1) {
		t.Fatalf("编辑区域应覆盖点击位置")
	}

	// 章节标题不可编辑
	if _, ok := plan.HitTest(exp.X+1, exp.TitleY+1); ok {
		t.Fatalf("章节标题不应产生编辑意图")
	}
	if _, ok := plan.HitTest(-10, -10); ok {
		t.Fatalf("空白区域不应命中")
	}

	intent, ok = plan.HitTest(plan.Header[0].X+1, plan.Header[0].Y+1)
	if !ok || intent.Field != "name" || intent.Value != "Ada Lovelace" {
		t.Fatalf("点击姓名应返回原始值：%+v %v", intent, ok)
	}
}

func TestPageRunsSkipContinuedTitles(t *testing.T) {
	spec := PageSpec{Width: 300, Height: 55, Margin: Margin{Top: 10, Right: 10, Bottom: 10, Left: 10}}
	pages := Paginate(experienceDoc("first", "second"), DefaultOrder(), unitTheme(), tinyStyle(), spec)
	if got := len(pages[0].Runs()); got != 2 {
		t.Fatalf("第一页应有标题与一个块，实际 %d", got)
	}
	runs := pages[1].Runs()
	if len(runs) != 1 || runs[0].Field != "experience[1]" {
		t.Fatalf("续页只应包含块：%+v", runs)
	}
}
