package layout

import (
	"errors"
	"strings"

	"github.com/ByLCY/ragwrap/input"
)

var (
	// ErrEmptyWords 表示段落中没有任何单词。
	ErrEmptyWords = errors.New("layout: paragraph has no words")

	// ErrInvalidWidth 表示行宽上限 L 不在 1..MaxWidth 之内。
	ErrInvalidWidth = errors.New("layout: line width must be in 1..MaxWidth")
)

// MaxWidth 是可接受的最大行宽，保证 (L-w)² 的累加不会溢出 int。
const MaxWidth = input.MaxWidth

// entry 是 DP 表中的一格：从某个位置起排完（不含保留的末行）所需的最小代价，
// 以及首行的结束偏移 offset（首行为 [i, i+offset]）。offset 为 -1 表示此处已无行。
type entry struct {
	cost   int
	offset int
}

// solver 为一个段落求解最小 raggedness 的断行。
// DP 表按末行保留的单词数 tail 缓存：不同 tail 的表互不干扰，不需要在尝试之间清空。
type solver struct {
	words  []string
	m      *lineMetrics
	tables map[int][]entry
}

func newSolver(words []string, limit int) *solver {
	return &solver{
		words:  words,
		m:      newLineMetrics(words, limit),
		tables: map[int][]entry{},
	}
}

// table 返回保留 tail 个末尾单词时的 DP 表，必要时自底向上填表。
//
// 递推：C(i) = min{ r(i, l) + C(l+1) : l = i, i+1, ... 且 width(i, l) > 0 且 l <= end }，
// 其中 end = n-1-tail，C(end+1) = 0。l 按升序枚举，只在严格更小时更新，
// 因此代价相同时总是选择最小的 l。
//
// 若位置 i 的单词本身就超过 L（没有任何候选行），该单词单独成行且不计代价。
func (s *solver) table(tail int) []entry {
	if t, ok := s.tables[tail]; ok {
		return t
	}
	end := s.m.count() - 1 - tail
	t := make([]entry, end+2)
	t[end+1] = entry{cost: 0, offset: -1}
	for i := end; i >= 0; i-- {
		best := entry{offset: -1}
		for l := i; l <= end && s.m.width(i, l) > 0; l++ {
			c := s.m.raggedness(i, l) + t[l+1].cost
			if best.offset < 0 || c < best.cost {
				best = entry{cost: c, offset: l - i}
			}
		}
		if best.offset < 0 {
			best = entry{cost: t[i+1].cost, offset: 0}
		}
		t[i] = best
	}
	s.tables[tail] = t
	return t
}

// lookup 读取 (tail, i) 处的表项；表不存在或越界时 ok 为 false。
func (s *solver) lookup(tail, i int) (entry, bool) {
	t, ok := s.tables[tail]
	if !ok || i < 0 || i >= len(t) {
		return entry{}, false
	}
	return t[i], true
}

// bestTail 枚举末行单词数 last = 1..n，返回总代价最小的 last。
// last = 1 总是参与比较；其余 last 只有在末行本身放得下时才参与。
// 只有严格更小的代价才会替换当前最优，因此平局时保留较小的 last。
// 落选的表随即丢弃，返回时 tables 中只剩 last 对应的一张。
func (s *solver) bestTail() (cost, last int, trials []TailTrial) {
	n := s.m.count()
	last = 1
	cost = s.table(1)[0].cost
	trials = append(trials, TailTrial{Tail: 1, Cost: cost})
	for k := 2; k <= n; k++ {
		if s.m.width(n-k, n-1) == 0 {
			continue
		}
		c := s.table(k)[0].cost
		trials = append(trials, TailTrial{Tail: k, Cost: c})
		if c < cost {
			delete(s.tables, last)
			cost, last = c, k
		} else {
			delete(s.tables, k)
		}
	}
	return cost, last, trials
}

// spans 沿 tail=last 的 DP 表回溯出每一行的单词区间，最后追加末行。
// 表项缺失时提前结束回溯，不视为错误。
func (s *solver) spans(last int) [][2]int {
	n := s.m.count()
	if last >= n {
		return [][2]int{{0, n - 1}}
	}
	var out [][2]int
	for i := 0; ; {
		e, ok := s.lookup(last, i)
		if !ok || e.offset < 0 {
			break
		}
		out = append(out, [2]int{i, i + e.offset})
		i += e.offset + 1
	}
	if last > 0 {
		out = append(out, [2]int{n - last, n - 1})
	}
	return out
}

// textLines 把单词区间转换为 TextLine，并报告是否有行超过了 L。
func textLines(words []string, m *lineMetrics, spans [][2]int) ([]TextLine, bool) {
	lines := make([]TextLine, 0, len(spans))
	overflow := false
	for _, sp := range spans {
		w := m.span(sp[0], sp[1])
		if w > m.limit {
			overflow = true
		}
		lines = append(lines, TextLine{
			Content: strings.Join(words[sp[0]:sp[1]+1], " "),
			Width:   w,
			Start:   sp[0],
			End:     sp[1],
		})
	}
	return lines, overflow
}

func validate(words []string, limit int) error {
	if len(words) == 0 {
		return ErrEmptyWords
	}
	if limit <= 0 || limit > MaxWidth {
		return ErrInvalidWidth
	}
	return nil
}

// Solve 计算 words 在行宽 limit 下的最优断行。
//
// 代价为除末行之外每一行 (L - w)² 之和；末行保留若干个尾部单词且不计代价。
// 函数对同一输入总是返回相同结果。宽度超过 L 的单词会单独成行，
// 此时 Paragraph.Overflow 为 true。
func Solve(words []string, limit int) (*Paragraph, error) {
	if err := validate(words, limit); err != nil {
		return nil, err
	}
	s := newSolver(words, limit)
	cost, last, trials := s.bestTail()
	lines, overflow := textLines(words, s.m, s.spans(last))
	return &Paragraph{
		Width:    limit,
		Lines:    lines,
		Cost:     cost,
		Tail:     last,
		Overflow: overflow,
		Strategy: StrategyOptimal,
		Trials:   trials,
	}, nil
}

// Layout 是 Solve 的简化形式，只返回各行文本。
func Layout(words []string, limit int) ([]string, error) {
	p, err := Solve(words, limit)
	if err != nil {
		return nil, err
	}
	return p.Contents(), nil
}
