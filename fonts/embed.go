package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名称。
const (
	Regular  = "go-regular"
	Bold     = "go-bold"
	Mono     = "go-mono"
	MonoBold = "go-mono-bold"
)

var builtin = map[string][]byte{
	Regular:  goregular.TTF,
	Bold:     gobold.TTF,
	Mono:     gomono.TTF,
	MonoBold: gomonobold.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:go-regular" 或直接 "go-regular"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "embed:"))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 未知字体", name)
	}
	return data, nil
}

// ForFamily 按主题字体族选择内置字体：monospace 类映射到 Go Mono，其余使用 Go 比例字体。
func ForFamily(family string, bold bool) string {
	f := strings.ToLower(family)
	mono := strings.Contains(f, "mono") || strings.Contains(f, "courier") || strings.Contains(f, "code")
	switch {
	case mono && bold:
		return MonoBold
	case mono:
		return Mono
	case bold:
		return Bold
	default:
		return Regular
	}
}

// Names 返回全部内置字体名称。
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
