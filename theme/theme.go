// Package theme 描述用户可调节的主题参数，并把离散档位换算为排版所需的缩放系数。
package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 档位范围与缺省值。零值表示“未设置”，取中间档。
const (
	MinLevel = 1

	MaxFontSizeLevel       = 5
	MaxPageMarginLevel     = 8
	MaxSectionSpacingLevel = 8

	DefaultFontSizeLevel       = 3
	DefaultPageMarginLevel     = 4
	DefaultSectionSpacingLevel = 4

	MinLineHeight     = 1.0
	MaxLineHeight     = 3.0
	DefaultLineHeight = 1.6

	DefaultPrimaryColor = "#2563eb"
	DefaultFontFamily   = "sans"
)

// Config 是编辑会话持有的主题设置。
type Config struct {
	PrimaryColor        string  `json:"primaryColor,omitempty" validate:"omitempty,themecolor"`
	FontFamily          string  `json:"fontFamily,omitempty"`
	FontSizeLevel       int     `json:"fontSizeLevel,omitempty"`
	LineHeight          float64 `json:"lineHeight,omitempty"`
	PageMarginLevel     int     `json:"pageMarginLevel,omitempty"`
	SectionSpacingLevel int     `json:"sectionSpacingLevel,omitempty"`
}

// Default 返回新建简历时使用的主题。
func Default() Config {
	return Config{
		PrimaryColor:        DefaultPrimaryColor,
		FontFamily:          DefaultFontFamily,
		FontSizeLevel:       DefaultFontSizeLevel,
		LineHeight:          DefaultLineHeight,
		PageMarginLevel:     DefaultPageMarginLevel,
		SectionSpacingLevel: DefaultSectionSpacingLevel,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// themecolor 与 ParseColor 接受的写法保持一致：#rgb、#rrggbb、#rrggbbaa，# 可省略
	_ = v.RegisterValidation("themecolor", func(fl validator.FieldLevel) bool {
		_, err := ParseColor(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate 检查导入的主题设置。越界档位不算错误，由 Resolve 夹紧。
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("主题校验失败: %w", err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("主题校验失败: %s", strings.Join(parts, ", "))
}

// WithDefaults 用缺省值补齐未设置的字段。越界档位不在这里处理，由 Resolve 夹紧。
func (c Config) WithDefaults() Config {
	d := Default()
	if strings.TrimSpace(c.PrimaryColor) == "" {
		c.PrimaryColor = d.PrimaryColor
	}
	if strings.TrimSpace(c.FontFamily) == "" {
		c.FontFamily = d.FontFamily
	}
	if c.FontSizeLevel == 0 {
		c.FontSizeLevel = d.FontSizeLevel
	}
	if c.LineHeight == 0 {
		c.LineHeight = d.LineHeight
	}
	if c.PageMarginLevel == 0 {
		c.PageMarginLevel = d.PageMarginLevel
	}
	if c.SectionSpacingLevel == 0 {
		c.SectionSpacingLevel = d.SectionSpacingLevel
	}
	return c
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Hex 返回 #rrggbb 形式。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Primary 解析主色，无法解析时退回缺省主色。
func (c Config) Primary() Color {
	if col, err := ParseColor(c.PrimaryColor); err == nil {
		return col
	}
	col, _ := ParseColor(DefaultPrimaryColor)
	return col
}

// ParseColor 解析 #rgb、#rrggbb 与 #rrggbbaa（忽略 alpha）。
func ParseColor(value string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(v) {
	case 3:
		r, err1 := parseHex(strings.Repeat(v[0:1], 2))
		g, err2 := parseHex(strings.Repeat(v[1:2], 2))
		b, err3 := parseHex(strings.Repeat(v[2:3], 2))
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
		}
		return Color{R: r, G: g, B: b}, nil
	case 6, 8:
		r, err1 := parseHex(v[0:2])
		g, err2 := parseHex(v[2:4])
		b, err3 := parseHex(v[4:6])
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
		}
		return Color{R: r, G: g, B: b}, nil
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

func parseHex(s string) (int, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
