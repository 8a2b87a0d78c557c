package fonts

import "testing"

func TestLoadBuiltin(t *testing.T) {
	for _, name := range Names() {
		data, err := Load("embed:" + name)
		if err != nil || len(data) == 0 {
			t.Fatalf("内置字体 %s 读取失败: %v", name, err)
		}
	}
	if _, err := Load("Inter-Regular"); err == nil {
		t.Fatalf("未知字体应报错")
	}
}

func TestForFamily(t *testing.T) {
	cases := []struct {
		family string
		bold   bool
		want   string
	}{
		{"sans", false, Regular},
		{"Poppins, sans-serif", true, Bold},
		{"JetBrains Mono", false, Mono},
		{"Courier New", true, MonoBold},
	}
	for _, c := range cases {
		if got := ForFamily(c.family, c.bold); got != c.want {
			t.Fatalf("ForFamily(%q,%v) = %s，期望 %s", c.family, c.bold, got, c.want)
		}
	}
}
