// Package config 负责命令行配置的加载、校验与合并。
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/cvflow/layout"
)

// 环境变量名称。
const (
	EnvStyle  = "CVFLOW_STYLE"
	EnvOutDir = "CVFLOW_OUT_DIR"
	EnvPage   = "CVFLOW_PAGE"
)

// 纸张名称。
const (
	PageA4     = "a4"
	PageLetter = "letter"
)

// Letter 纸张尺寸（pt）。
const (
	LetterWidth  = 612.0
	LetterHeight = 792.0
)

// Config 是命令行的可选配置，可从 JSON 文件与环境变量加载。未设置的字段取缺省值。
type Config struct {
	Style   string   `json:"style,omitempty"`   // 内置风格名称或 .style 文件路径
	OutDir  string   `json:"out_dir,omitempty"` // 输出目录
	Page    string   `json:"page,omitempty"`    // a4、letter 或带单位的页面高度，如 "280mm"
	Order   []string `json:"order,omitempty"`   // 缺省章节顺序
	Fonts   []string `json:"fonts,omitempty"`   // 额外字体，形如 family=path
	Verbose bool     `json:"verbose,omitempty"` // 输出调试日志
}

// Defaults 返回内置缺省配置。
func Defaults() Config {
	return Config{
		Style:  "modern",
		OutDir: "output",
		Page:   PageA4,
	}
}

// LoadConfig 从 JSON 文件加载配置。
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("配置文件路径为空")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("获取当前目录失败: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置 JSON 失败: %w", err)
	}
	return &cfg, nil
}

// FromEnv 用环境变量覆盖已设置的字段。
func (c Config) FromEnv() Config {
	if v := strings.TrimSpace(os.Getenv(EnvStyle)); v != "" {
		c.Style = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutDir)); v != "" {
		c.OutDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPage)); v != "" {
		c.Page = v
	}
	return c
}

// Validate 检查字段取值。
func (c *Config) Validate() error {
	if c.Page != "" {
		if _, err := ParsePage(c.Page); err != nil {
			return fmt.Errorf("配置错误: %w", err)
		}
	}
	for _, key := range c.Order {
		if !layout.SectionKey(strings.ToLower(strings.TrimSpace(key))).Valid() {
			return fmt.Errorf("配置错误: 未知章节 %q", key)
		}
	}
	for _, f := range c.Fonts {
		family, path, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(family) == "" {
			return fmt.Errorf("配置错误: 字体应写作 family=path: %q", f)
		}
		info, err := os.Stat(strings.TrimSpace(path))
		if err != nil {
			return fmt.Errorf("配置错误: 字体 %s 不可读: %w", strings.TrimSpace(family), err)
		}
		if info.IsDir() {
			return fmt.Errorf("配置错误: 字体 %s 的路径是目录: %s", strings.TrimSpace(family), path)
		}
	}
	return nil
}

// MergeWithDefaults 返回新配置，空字段取 defaults 中的值。布尔字段无法区分未设置与 false，不合并。
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c
	if result.Style == "" {
		result.Style = defaults.Style
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.Page == "" {
		result.Page = defaults.Page
	}
	if len(result.Order) == 0 {
		result.Order = defaults.Order
	}
	if len(result.Fonts) == 0 {
		result.Fonts = defaults.Fonts
	}
	return result
}

// FontMap 把 family=path 列表转换为映射。
func (c Config) FontMap() map[string]string {
	out := make(map[string]string, len(c.Fonts))
	for _, f := range c.Fonts {
		family, path, ok := strings.Cut(f, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(family)] = strings.TrimSpace(path)
	}
	return out
}

// PageSize 是解析后的纸张设置。Width 为零表示沿用风格宽度。
type PageSize struct {
	Width  float64
	Height float64
}

// ParsePage 解析纸张名称或带单位的页面高度。
func ParsePage(v string) (PageSize, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", PageA4:
		return PageSize{Height: layout.A4Height}, nil
	case PageLetter:
		return PageSize{Width: LetterWidth, Height: LetterHeight}, nil
	}
	l, ok := layout.ParseRawLengthStr(v)
	if !ok || l.ToPT() <= 0 {
		return PageSize{}, fmt.Errorf("无法解析页面规格 %q", v)
	}
	return PageSize{Height: l.ToPT()}, nil
}

// Apply 把纸张设置应用到与画布一致的页面规格上。
func (p PageSize) Apply(spec layout.PageSpec) layout.PageSpec {
	if p.Width > 0 {
		spec.Width = p.Width
	}
	if p.Height > 0 {
		spec.Height = p.Height
	}
	return spec
}
