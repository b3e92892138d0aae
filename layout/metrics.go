package layout

import "unicode/utf8"

// lineMetrics 保存一个段落的单词长度前缀和，width/raggedness 均可 O(1) 求值。
// 单词长度按 rune 计数，不做东亚宽字符等显示宽度换算。
type lineMetrics struct {
	limit  int
	prefix []int // prefix[k] = len(words[0]) + ... + len(words[k-1])
}

func newLineMetrics(words []string, limit int) *lineMetrics {
	prefix := make([]int, len(words)+1)
	for i, w := range words {
		prefix[i+1] = prefix[i] + utf8.RuneCountInString(w)
	}
	return &lineMetrics{limit: limit, prefix: prefix}
}

func (m *lineMetrics) count() int { return len(m.prefix) - 1 }

// span 返回 words[i..j] 以单个空格连接后的实际宽度，不做合法性检查。
func (m *lineMetrics) span(i, j int) int {
	return m.prefix[j+1] - m.prefix[i] + (j - i)
}

// width 返回 words[i..j]（闭区间）排成一行的宽度。
// 越界、宽度非正或超过 limit 时返回 0：调用方必须把 0 理解为“不可用的行”，而不是零宽行。
func (m *lineMetrics) width(i, j int) int {
	if i < 0 || j >= m.count() || i > j {
		return 0
	}
	w := m.span(i, j)
	if w <= 0 || w > m.limit {
		return 0
	}
	return w
}

// raggedness 返回 (L - width(i, j))²。不可用的行名义上得到 L²，
// 但求解器在累加之前总会先用 width 判断合法性。
func (m *lineMetrics) raggedness(i, j int) int {
	slack := m.limit - m.width(i, j)
	return slack * slack
}
