package game

import (
	"sort"
	"strconv"
	"strings"
)

// Combination 由碎片数字组成的有序密码
// Digits 按碎片 ID 升序排列，只包含已收集的碎片；
// Complete 仅在全部碎片收集完毕后为 true
type Combination struct {
	Digits   []int
	Complete bool
}

// CombinationOf 由碎片列表计算密码
// 结果只取决于碎片 ID 与收集状态，与收集顺序无关
func CombinationOf(fragments []Fragment) Combination {
	sorted := append([]Fragment(nil), fragments...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	c := Combination{Complete: len(sorted) > 0}
	for _, f := range sorted {
		if !f.Collected {
			c.Complete = false
			continue
		}
		c.Digits = append(c.Digits, f.Number)
	}
	return c
}

// String 以 "-" 连接的展示形式，如 "3-5-7"
func (c Combination) String() string {
	parts := make([]string, len(c.Digits))
	for i, d := range c.Digits {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "-")
}

// Code 不带分隔符的输入形式，如 "357"
func (c Combination) Code() string {
	var sb strings.Builder
	for _, d := range c.Digits {
		sb.WriteString(strconv.Itoa(d))
	}
	return sb.String()
}

// Matches 比较玩家输入与密码
// 输入中的空白和 "-" 会被忽略；密码不完整时永远不匹配
func (c Combination) Matches(input string) bool {
	if !c.Complete {
		return false
	}
	normalized := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, strings.TrimSpace(input))
	return normalized != "" && normalized == c.Code()
}
