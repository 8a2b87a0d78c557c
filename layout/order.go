package layout

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Order 是用户选择的章节顺序。值语义：所有调整都返回新的 Order，画布与导出拿到的是同一份顺序。
type Order struct {
	keys []SectionKey
}

// DefaultOrder 返回缺省顺序。
func DefaultOrder() Order {
	return NewOrder(CanonicalSections...)
}

// NewOrder 构建顺序，丢弃未知键与重复键（保留第一次出现的位置）。
func NewOrder(keys ...SectionKey) Order {
	seen := make(map[SectionKey]bool, len(keys))
	out := make([]SectionKey, 0, len(keys))
	for _, k := range keys {
		if !k.Valid() || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return Order{keys: out}
}

// ParseOrder 从字符串列表构建顺序，大小写与首尾空白不敏感。
func ParseOrder(names []string) Order {
	keys := make([]SectionKey, 0, len(names))
	for _, n := range names {
		keys = append(keys, SectionKey(strings.ToLower(strings.TrimSpace(n))))
	}
	return NewOrder(keys...)
}

// Keys 返回顺序副本。
func (o Order) Keys() []SectionKey {
	out := make([]SectionKey, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o Order) Len() int { return len(o.keys) }

// Index 返回键的位置，不存在时为 -1。
func (o Order) Index(key SectionKey) int {
	for i, k := range o.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Contains 判断顺序中是否包含该章节。不在顺序中的章节不会被渲染，即使有内容。
func (o Order) Contains(key SectionKey) bool { return o.Index(key) >= 0 }

// IsPermutation 判断顺序是否恰好覆盖全部章节。
func (o Order) IsPermutation() bool {
	return len(o.keys) == len(CanonicalSections)
}

// Missing 返回顺序中缺失的章节（按缺省顺序）。
func (o Order) Missing() []SectionKey {
	var out []SectionKey
	for _, k := range CanonicalSections {
		if !o.Contains(k) {
			out = append(out, k)
		}
	}
	return out
}

// Move 把 from 位置的章节移动到 to 位置。
func (o Order) Move(from, to int) (Order, error) {
	n := len(o.keys)
	if from < 0 || from >= n || to < 0 || to >= n {
		return o, fmt.Errorf("章节顺序越界：from=%d to=%d len=%d", from, to, n)
	}
	keys := o.Keys()
	k := keys[from]
	keys = append(keys[:from], keys[from+1:]...)
	keys = append(keys[:to], append([]SectionKey{k}, keys[to:]...)...)
	return Order{keys: keys}, nil
}

// MoveUp 把章节上移一位；已在首位或不存在时原样返回。
func (o Order) MoveUp(key SectionKey) Order {
	i := o.Index(key)
	if i <= 0 {
		return o
	}
	moved, _ := o.Move(i, i-1)
	return moved
}

// MoveDown 把章节下移一位；已在末位或不存在时原样返回。
func (o Order) MoveDown(key SectionKey) Order {
	i := o.Index(key)
	if i < 0 || i >= len(o.keys)-1 {
		return o
	}
	moved, _ := o.Move(i, i+1)
	return moved
}

// Strings 返回字符串形式。
func (o Order) Strings() []string {
	out := make([]string, len(o.keys))
	for i, k := range o.keys {
		out[i] = string(k)
	}
	return out
}

func (o Order) String() string { return strings.Join(o.Strings(), ",") }

func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Strings())
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("解析章节顺序失败: %w", err)
	}
	*o = ParseOrder(names)
	return nil
}
