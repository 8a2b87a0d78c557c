package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// 文本高度估算：不做真实字形排版，按平均字宽近似每行可容纳的字符数。
// 画布与导出共用同一套估算，保证两者的纵向几何一致。

const (
	// charWidthFactor 是平均字宽与字号之比，经验值。
	charWidthFactor = 0.55
	// blockPadding 是每个非空文本块额外附加的固定高度（pt）。
	blockPadding = 4.0
)

// CharsPerLine 返回给定字号与栏宽下每行可容纳的字符数，至少为 1。
func CharsPerLine(fontSize, columnWidth float64) int {
	if fontSize <= 0 || columnWidth <= 0 {
		return 1
	}
	n := int(math.Floor(columnWidth / (fontSize * charWidthFactor)))
	if n < 1 {
		return 1
	}
	return n
}

// IsBlank 判断文本是否为空或仅含空白。
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// logicalLines 按显式换行切分文本，并统一为 NFC 以便按字符计数。
func logicalLines(text string) []string {
	text = norm.NFC.String(strings.ReplaceAll(text, "\r\n", "\n"))
	return strings.Split(text, "\n")
}

// EstimateLines 估算折行后的总行数。空白文本为 0 行；每个显式行至少占 1 行。
func EstimateLines(text string, fontSize, columnWidth float64) int {
	if IsBlank(text) {
		return 0
	}
	perLine := CharsPerLine(fontSize, columnWidth)
	total := 0
	for _, line := range logicalLines(text) {
		total += wrappedCount(utf8.RuneCountInString(line), perLine)
	}
	return total
}

func wrappedCount(runes, perLine int) int {
	if runes <= 0 {
		return 1
	}
	return (runes + perLine - 1) / perLine
}

// EstimateHeight 估算文本块高度：行数 × 字号 × 行高系数 + 固定内边距。空白文本返回 0，使空章节收拢。
func EstimateHeight(text string, fontSize, columnWidth, lineHeightFactor float64) float64 {
	lines := EstimateLines(text, fontSize, columnWidth)
	if lines == 0 {
		return 0
	}
	return float64(lines)*fontSize*lineHeightFactor + blockPadding
}

// WrapLines 按与 EstimateLines 相同的规则折行，返回的行数与估算一致。
// 导出端直接使用该结果，不得再次折行。
func WrapLines(text string, fontSize, columnWidth float64) []string {
	if IsBlank(text) {
		return nil
	}
	perLine := CharsPerLine(fontSize, columnWidth)
	var out []string
	for _, line := range logicalLines(text) {
		runes := []rune(line)
		if len(runes) == 0 {
			out = append(out, "")
			continue
		}
		for start := 0; start < len(runes); start += perLine {
			end := start + perLine
			if end > len(runes) {
				end = len(runes)
			}
			out = append(out, string(runes[start:end]))
		}
	}
	return out
}

// Measure 测量单个块。
func Measure(b Block, fontSize, columnWidth, lineHeightFactor float64) MeasuredBlock {
	return MeasuredBlock{
		Field:  b.Field,
		Text:   b.Text,
		Lines:  EstimateLines(b.Text, fontSize, columnWidth),
		Height: EstimateHeight(b.Text, fontSize, columnWidth, lineHeightFactor),
	}
}
