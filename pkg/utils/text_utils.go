package utils

import (
	"strings"
	"unicode/utf8"
)

// DebugGlyphWidth ebitenutil.DebugPrint 字体每个字符的宽度（像素）
const DebugGlyphWidth = 6

// DebugTextWidth 测量调试字体下文本的宽度
func DebugTextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s) * DebugGlyphWidth)
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - maxWidth: 最大宽度（像素）
//   - measure: 测量函数，nil 时使用 DebugTextWidth
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，强制断行
func WrapText(textStr string, maxWidth float64, measure func(string) float64) []string {
	if measure == nil {
		measure = DebugTextWidth
	}
	if textStr == "" || maxWidth <= 0 || measure(textStr) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}

		// 单词本身超宽时按字符强制断行
		current = ""
		for _, r := range word {
			if current != "" && measure(current+string(r)) > maxWidth {
				lines = append(lines, current)
				current = ""
			}
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
