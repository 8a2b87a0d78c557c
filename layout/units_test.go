package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

// TestLengthConversions 覆盖 Length 在常见单位上的转换。
func TestLengthConversions(t *testing.T) {
	if got := (Length{Value: 1, Unit: UnitIN}).ToMM(); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("1in 转 mm 期望 25.4，实际 %g", got)
	}
	if got := (Length{Value: 2.54, Unit: UnitCM}).ToMM(); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("2.54cm 转 mm 期望 25.4，实际 %g", got)
	}
	if got := (Length{Value: 10, Unit: UnitMM}).ToPT(); math.Abs(got-10*MmToPt) > 1e-9 {
		t.Fatalf("10mm 转 pt 期望 %g，实际 %g", 10*MmToPt, got)
	}
	if got := (Length{Value: 12}).ToPT(); got != 12 {
		t.Fatalf("无单位数值应按 pt 处理，实际 %g", got)
	}
}

func TestParseRawLengthStr(t *testing.T) {
	cases := []struct {
		in   string
		want Length
		ok   bool
	}{
		{"12pt", Length{12, UnitPT}, true},
		{" 18 mm", Length{18, UnitMM}, true},
		{"1.5in", Length{1.5, UnitIN}, true},
		{"45", Length{45, UnitNone}, true},
		{"abc", Length{}, false},
		{"", Length{}, false},
	}
	for _, c := range cases {
		got, ok := ParseRawLengthStr(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseRawLengthStr(%q) = %+v,%v；期望 %+v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}
