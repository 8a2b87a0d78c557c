package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// filters 是占位符支持的文本变换，写作 ${path|upper}。Caser 有状态，每次调用新建。
var filters = map[string]func(string) string{
	"upper": func(s string) string { return cases.Upper(language.Und).String(s) },
	"lower": func(s string) string { return cases.Lower(language.Und).String(s) },
	"title": func(s string) string { return cases.Title(language.Und).String(s) },
	"trim":  strings.TrimSpace,
}

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值，可追加 |filter 变换。
// 若 data 为空、路径不存在或过滤器未知，则返回原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		parts := strings.Split(groups[1], "|")
		path := strings.TrimSpace(parts[0])
		if path == "" {
			return match
		}
		val, ok := resolvePath(data, path)
		if !ok {
			return match
		}
		out := fmt.Sprint(val)
		for _, name := range parts[1:] {
			fn, ok := filters[strings.TrimSpace(name)]
			if !ok {
				return match
			}
			out = fn(out)
		}
		return out
	})
}

// HasPlaceholder 判断文本中是否仍有未解析的占位符。
func HasPlaceholder(text string) bool {
	return exprPattern.MatchString(text)
}

func resolvePath(data any, path string) (any, bool) {
	current := data
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			current, ok = descendMap(current, name)
			if !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			current, ok = descendArray(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []string) {
	name := segment
	indexes := []string{}
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 {
			if rest[0] != '[' {
				break
			}
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]interface{}:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []interface{}:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	case []string:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
