package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/cvflow/dsl"
)

const sampleSheet = `
// 双栏示例
style sample v1 {
  meta {
    description: "two columns"
    aliases: ["minimal", "plain"]
  }

  page {
    padding: 34pt; padding-top: 30
  }

  columns {
    left: 65%
    gap: 5%
    right: 30%
  }

  type {
    body: 9.5pt
    text: #444
  }

  header {
    title: "${name|upper}"
    align: center
    divider: true
  }

  slots {
    left summary "PROFILE SUMMARY"
    right contact "CONTACT"
  }
}
`

func TestParseSheet(t *testing.T) {
	sheet, err := dsl.ParseString("sample.style", sampleSheet)
	if err != nil {
		t.Fatalf("解析样式表失败: %v", err)
	}
	if sheet.Name != "sample" || sheet.Version != "v1" {
		t.Fatalf("样式名或版本错误：%s %s", sheet.Name, sheet.Version)
	}
	if len(sheet.Sections) != 6 {
		t.Fatalf("期望 6 个分组，实际 %d", len(sheet.Sections))
	}

	meta := sheet.Lookup("meta").Block.Assignments()
	if got := meta["description"].Text(); got != "two columns" {
		t.Fatalf("description 解析错误：%q", got)
	}
	aliases := meta["aliases"]
	if aliases.Array == nil || len(aliases.Array.Values) != 2 {
		t.Fatalf("aliases 应为两个元素的数组：%+v", aliases)
	}

	page := sheet.Lookup("page").Block.Assignments()
	if page["padding"].Number == nil || *page["padding"].Number != "34pt" {
		t.Fatalf("分号分隔的赋值应被识别")
	}
	if page["padding-top"].Text() != "30" {
		t.Fatalf("padding-top 解析错误：%q", page["padding-top"].Text())
	}

	typ := sheet.Lookup("type").Block.Assignments()
	if typ["text"].Color == nil || *typ["text"].Color != "#444" {
		t.Fatalf("颜色值应被识别为 Color")
	}

	header := sheet.Lookup("header").Block.Assignments()
	if header["title"].Text() != "${name|upper}" {
		t.Fatalf("模板字符串解析错误：%q", header["title"].Text())
	}
	if header["align"].Text() != "center" || header["divider"].Text() != "true" {
		t.Fatalf("标识符值解析错误")
	}

	cmds := sheet.Lookup("slots").Block.Commands()
	if len(cmds) != 2 {
		t.Fatalf("期望 2 条栏位指令，实际 %d", len(cmds))
	}
	if cmds[0].Name != "left" || len(cmds[0].Args) != 2 || cmds[0].Args[1].Value != "PROFILE SUMMARY" {
		t.Fatalf("栏位指令解析错误：%+v", cmds[0])
	}
}

func TestParseWithoutVersion(t *testing.T) {
	sheet, err := dsl.Parse("inline.style", strings.NewReader("style bare {\n  page { padding: 20 }\n}\n"))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if sheet.Version != "" || sheet.Lookup("page") == nil {
		t.Fatalf("无版本样式表解析错误：%+v", sheet)
	}
	if sheet.Lookup("slots") != nil {
		t.Fatalf("不存在的分组应返回 nil")
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := dsl.ParseString("broken.style", "style broken {\n  unknown { a: 1 }\n}\n")
	if err == nil {
		t.Fatalf("未知分组应报错")
	}
	if !strings.Contains(err.Error(), "broken.style") {
		t.Fatalf("错误信息应包含文件名：%v", err)
	}
}
