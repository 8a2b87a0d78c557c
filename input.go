package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/cvflow/content"
	"github.com/ByLCY/cvflow/internal/config"
	"github.com/ByLCY/cvflow/internal/schemas"
	"github.com/ByLCY/cvflow/layout"
	canvasrenderer "github.com/ByLCY/cvflow/renderer/canvas"
	"github.com/ByLCY/cvflow/session"
	"github.com/ByLCY/cvflow/style"
	"github.com/ByLCY/cvflow/theme"
)

// inputDocument 是命令行读入的简历文档。
type inputDocument struct {
	Resume content.Resume `json:"resume"`
	Theme  theme.Config   `json:"theme"`
	Order  []string       `json:"order"`
	Style  string         `json:"style"`
}

// readInput 读取、校验并清理输入文档。路径为空时使用示例简历。
func readInput(path string) (inputDocument, error) {
	if path == "" {
		return inputDocument{Resume: content.Default(), Theme: theme.Default()}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return inputDocument{}, fmt.Errorf("读取简历文件 %s 失败: %w", path, err)
	}
	if err := schemas.ValidateDocument(data); err != nil {
		return inputDocument{}, err
	}

	var doc inputDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return inputDocument{}, fmt.Errorf("解析简历 JSON 失败: %w", err)
	}
	doc.Resume = content.Sanitize(doc.Resume)
	if err := doc.Resume.Validate(); err != nil {
		return inputDocument{}, err
	}
	if err := doc.Theme.Validate(); err != nil {
		return inputDocument{}, err
	}
	return doc, nil
}

// resolveStyle 按名称查找内置风格，以 .style 结尾时从文件加载。
func resolveStyle(name string) (layout.Style, error) {
	if strings.HasSuffix(strings.ToLower(name), ".style") {
		info, err := style.LoadFile(name)
		if err != nil {
			return layout.Style{}, err
		}
		return info.Style, nil
	}
	return style.Resolve(name)
}

// openSession 由输入文档与配置创建编辑会话。
// 风格：命令行参数 > 文档 > 配置；顺序：文档 > 配置 > 缺省顺序。文档中显式的空顺序不渲染任何章节。
func openSession(path string, c config.Config, styleFlag string) (*session.Session, error) {
	doc, err := readInput(path)
	if err != nil {
		return nil, err
	}

	name := c.Style
	if doc.Style != "" {
		name = doc.Style
	}
	if styleFlag != "" {
		name = styleFlag
	}
	st, err := resolveStyle(name)
	if err != nil {
		return nil, err
	}

	var order layout.Order
	switch {
	case doc.Order != nil:
		order = layout.ParseOrder(doc.Order)
	case len(c.Order) > 0:
		order = layout.ParseOrder(c.Order)
	}
	s := session.New(doc.Resume, doc.Theme, order, st)
	if doc.Order != nil && order.Len() == 0 {
		s.SetOrder(order)
	}
	log.Printf("会话 %s: 风格 %s, 顺序 %s", s.ID, st.Name, s.Order())
	return s, nil
}

// pageSpec 返回导出使用的页面规格。
func pageSpec(s *session.Session, c config.Config) (layout.PageSpec, error) {
	size, err := config.ParsePage(c.Page)
	if err != nil {
		return layout.PageSpec{}, err
	}
	return size.Apply(s.Snapshot().PageSpec()), nil
}

// newRenderer 创建渲染器并注入配置中的字体。
func newRenderer(c config.Config) *canvasrenderer.Renderer {
	fonts := map[string]canvasrenderer.Resource{}
	for family, path := range c.FontMap() {
		fonts[family] = canvasrenderer.Resource{Path: path}
	}
	return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Fonts: fonts})
}

// outputPath 在 out 为空时按输入文件名与扩展名生成输出路径。
func outputPath(out, input, outDir, ext string) string {
	if out != "" {
		return out
	}
	base := "resume"
	if input != "" {
		base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	return filepath.Join(outDir, base+ext)
}

// writeOutput 写入文件，必要时创建目录。
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}
