package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		back := Length{Value: pt, Unit: UnitPT}.ToMM() * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

// TestParseRawLengthStr 覆盖常见单位的解析与换算。
func TestParseRawLengthStr(t *testing.T) {
	cases := []struct {
		in     string
		wantMM float64
		unit   Unit
	}{
		{"1in", 25.4, UnitIN},
		{"2.54cm", 25.4, UnitCM},
		{" 18MM ", 18, UnitMM},
		{"12pt", 12 * PtToMm, UnitPT},
		{"7", 7, UnitNone},
	}
	for _, c := range cases {
		l, err := ParseRawLengthStr(c.in)
		if err != nil {
			t.Fatalf("解析 %q 失败: %v", c.in, err)
		}
		if l.Unit != c.unit {
			t.Fatalf("%q 单位错误: got=%v want=%v", c.in, l.Unit, c.unit)
		}
		if diff := math.Abs(l.ToMM() - c.wantMM); diff > 1e-9 {
			t.Fatalf("%q 转 mm 错误: got=%g want=%g", c.in, l.ToMM(), c.wantMM)
		}
	}
	for _, bad := range []string{"", "pt", "abc", "-3mm"} {
		if _, err := ParseRawLengthStr(bad); err == nil {
			t.Fatalf("%q 应当解析失败", bad)
		}
	}
}

// TestParseLineHeight 验证倍数与绝对值两种行高语义。
func TestParseLineHeight(t *testing.T) {
	fontSize := Length{Value: 10, Unit: UnitPT}

	factor, err := ParseLineHeight("1.5x")
	if err != nil {
		t.Fatalf("解析 1.5x 失败: %v", err)
	}
	if factor.Kind != LineHeightFactor {
		t.Fatalf("1.5x 应为倍数行高")
	}
	if diff := math.Abs(factor.ResolveMM(fontSize) - 15*PtToMm); diff > 1e-9 {
		t.Fatalf("1.5x 行高错误: got=%g", factor.ResolveMM(fontSize))
	}

	abs, err := ParseLineHeight("6mm")
	if err != nil {
		t.Fatalf("解析 6mm 失败: %v", err)
	}
	if abs.Kind != LineHeightAbsolute || abs.ResolveMM(fontSize) != 6 {
		t.Fatalf("6mm 行高错误: %#v", abs)
	}

	if _, err := ParseLineHeight("0x"); err == nil {
		t.Fatalf("0x 应当解析失败")
	}
}
