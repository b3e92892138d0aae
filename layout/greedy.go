package layout

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Greedy 使用 reflow 的贪心换行（尽量填满当前行再换行）排版 words，
// 代价按与 Solve 相同的规则计算，便于两种策略直接比较。
func Greedy(words []string, limit int) (*Paragraph, error) {
	if err := validate(words, limit); err != nil {
		return nil, err
	}

	ww := wordwrap.NewWriter(limit)
	ww.Breakpoints = nil // 只在空格处断行，不在连字符处拆词
	ww.Newline = []rune{'\n'}
	if _, err := ww.Write([]byte(strings.Join(words, " "))); err != nil {
		return nil, err
	}
	if err := ww.Close(); err != nil {
		return nil, err
	}

	m := newLineMetrics(words, limit)
	var spans [][2]int
	next := 0
	for _, raw := range strings.Split(ww.String(), "\n") {
		k := len(strings.Fields(raw))
		if k == 0 || next+k > len(words) {
			continue
		}
		spans = append(spans, [2]int{next, next + k - 1})
		next += k
	}
	if next < len(words) {
		spans = append(spans, [2]int{next, len(words) - 1})
	}

	lines, overflow := textLines(words, m, spans)
	cost := 0
	for _, ln := range lines[:len(lines)-1] {
		if ln.Width <= limit {
			slack := limit - ln.Width
			cost += slack * slack
		}
	}
	last := lines[len(lines)-1]
	return &Paragraph{
		Width:    limit,
		Lines:    lines,
		Cost:     cost,
		Tail:     last.End - last.Start + 1,
		Overflow: overflow,
		Strategy: StrategyGreedy,
	}, nil
}
