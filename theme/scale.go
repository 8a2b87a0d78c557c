package theme

// ScaleFactors 是主题档位换算后的具体倍数，供测量、流式排版与分页共用。
type ScaleFactors struct {
	Font       float64 `json:"font"`
	Margin     float64 `json:"margin"`
	Spacing    float64 `json:"spacing"`
	LineHeight float64 `json:"lineHeight"`
}

// 字号档位查表，3 档为 1.0。
var fontScale = map[int]float64{
	1: 0.85,
	2: 0.95,
	3: 1.0,
	4: 1.1,
	5: 1.2,
}

// Resolve 把主题换算为缩放系数。越界档位夹紧到合法区间，不报错。
func Resolve(c Config) ScaleFactors {
	c = c.WithDefaults()
	return ScaleFactors{
		Font:       fontScale[clampLevel(c.FontSizeLevel, MaxFontSizeLevel)],
		Margin:     interpolate(clampLevel(c.PageMarginLevel, MaxPageMarginLevel), MaxPageMarginLevel, 0.6, 1.2),
		Spacing:    interpolate(clampLevel(c.SectionSpacingLevel, MaxSectionSpacingLevel), MaxSectionSpacingLevel, 0.7, 1.2),
		LineHeight: clampFloat(c.LineHeight, MinLineHeight, MaxLineHeight),
	}
}

// interpolate: base + (level-1)/(max-1)*span
func interpolate(level, maxLevel int, base, span float64) float64 {
	if maxLevel <= MinLevel {
		return base
	}
	return base + float64(level-MinLevel)/float64(maxLevel-MinLevel)*span
}

func clampLevel(level, maxLevel int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > maxLevel {
		return maxLevel
	}
	return level
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
