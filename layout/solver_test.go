package layout

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidthSentinel(t *testing.T) {
	m := newLineMetrics([]string{"aaa", "bb", "c"}, 6)

	assert.Equal(t, 3, m.width(0, 0))
	assert.Equal(t, 6, m.width(0, 1))
	assert.Equal(t, 0, m.width(0, 2), "over-wide line")
	assert.Equal(t, 4, m.width(1, 2))
	assert.Equal(t, 0, m.width(2, 3), "out of range")
	assert.Equal(t, 0, m.width(2, 1), "empty range")

	assert.Equal(t, 0, m.raggedness(0, 1))
	assert.Equal(t, 9, m.raggedness(0, 0))
	assert.Equal(t, 36, m.raggedness(0, 2), "invalid range costs L²")
}

func TestWidthCountsRunes(t *testing.T) {
	m := newLineMetrics([]string{"héllo", "wörld"}, 11)
	assert.Equal(t, 11, m.width(0, 1))
}

func TestSolveSingleWord(t *testing.T) {
	lines, err := Layout([]string{"Hi"}, 80)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi"}, lines)
}

func TestSolveExactFit(t *testing.T) {
	p, err := Solve([]string{"aaaa", "bbbb"}, 9)
	require.NoError(t, err)

	assert.Equal(t, []string{"aaaa bbbb"}, p.Contents())
	assert.Equal(t, 2, p.Tail, "whole paragraph is the tail")
	assert.Equal(t, 0, p.Cost)
	assert.Equal(t, []TailTrial{{Tail: 1, Cost: 25}, {Tail: 2, Cost: 0}}, p.Trials)
}

func TestSolveForcedWrap(t *testing.T) {
	p, err := Solve([]string{"a", "b", "c", "d"}, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"a b", "c d"}, p.Contents())
	assert.Equal(t, 2, p.Tail)
	assert.Equal(t, 0, p.Cost)
	// tail=1 costs 4 ("a" alone then "b c", or "a b" then "c"), tail=3 and 4 do not fit.
	assert.Equal(t, []TailTrial{{Tail: 1, Cost: 4}, {Tail: 2, Cost: 0}}, p.Trials)
}

func TestSolvePrefersShortTailWhenCheaper(t *testing.T) {
	p, err := Solve([]string{"a", "b", "c"}, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"a b", "c"}, p.Contents())
	assert.Equal(t, 1, p.Tail)
	assert.Equal(t, 0, p.Cost)
}

func TestSolveTieKeepsEarliestBreak(t *testing.T) {
	// tail=1: "a" / "b c" and "a b" / "c" both cost 4; the smaller first line wins.
	s := newSolver([]string{"a", "b", "c", "d"}, 3)
	tbl := s.table(1)
	assert.Equal(t, entry{cost: 4, offset: 0}, tbl[0])
	assert.Equal(t, [][2]int{{0, 0}, {1, 2}, {3, 3}}, s.spans(1))
}

func TestSolveUnfittableWord(t *testing.T) {
	p, err := Solve([]string{"averylongword"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"averylongword"}, p.Contents())
	assert.True(t, p.Overflow)
}

func TestSolveOverwideWordPlacedAlone(t *testing.T) {
	p, err := Solve([]string{"ab", "toolongword", "cd", "ef"}, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"ab", "toolongword", "cd ef"}, p.Contents())
	assert.True(t, p.Overflow)
	assert.Equal(t, 9, p.Cost, `"ab" leaves 3 columns, the over-wide line adds nothing`)
}

func TestSolveRejectsBadInput(t *testing.T) {
	_, err := Solve(nil, 10)
	assert.ErrorIs(t, err, ErrEmptyWords)
	_, err = Solve([]string{"a"}, 0)
	assert.ErrorIs(t, err, ErrInvalidWidth)
	_, err = Greedy([]string{"a"}, -1)
	assert.ErrorIs(t, err, ErrInvalidWidth)
	_, err = Solve([]string{"a"}, MaxWidth+1)
	assert.ErrorIs(t, err, ErrInvalidWidth)
	_, err = Greedy([]string{"a"}, MaxWidth+1)
	assert.ErrorIs(t, err, ErrInvalidWidth)
}

func TestSolveAtMaxWidthKeepsCostsPositive(t *testing.T) {
	p, err := Solve([]string{"a", "b", "c", "d"}, MaxWidth)
	require.NoError(t, err)

	assert.Equal(t, []string{"a b c d"}, p.Contents())
	assert.Equal(t, 4, p.Tail)
	assert.Equal(t, 0, p.Cost)
	for _, tr := range p.Trials {
		assert.GreaterOrEqual(t, tr.Cost, 0, "tail=%d", tr.Tail)
	}
}

func TestBestTailKeepsOnlyWinningTable(t *testing.T) {
	s := newSolver(strings.Fields("the quick brown fox jumps over the lazy dog"), 12)
	_, last, trials := s.bestTail()
	require.Greater(t, len(trials), 1)

	require.Len(t, s.tables, 1)
	_, ok := s.tables[last]
	assert.True(t, ok)
	_, ok = s.lookup(last, 0)
	assert.True(t, ok)
}

func TestSpansStopsOnMissingEntry(t *testing.T) {
	s := newSolver([]string{"a", "b", "c"}, 3)
	// tail=1 was never computed: only the tail line survives.
	assert.Equal(t, [][2]int{{2, 2}}, s.spans(1))
}

func TestSolveIdempotent(t *testing.T) {
	words := strings.Fields("the quick brown fox jumps over the lazy dog and keeps on running far away")
	first, err := Solve(words, 16)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Solve(words, 16)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// TestSolveMatchesBruteForce 将 DP 与穷举所有分行方式的结果逐一比较，
// 穷举按首行结束位置升序进行并只接受严格更小的代价，与 DP 的平局规则一致。
func TestSolveMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 300; round++ {
		limit := 3 + rng.IntN(10)
		n := 1 + rng.IntN(8)
		words := make([]string, n)
		for i := range words {
			words[i] = strings.Repeat(string(rune('a'+i)), 1+rng.IntN(limit))
		}

		p, err := Solve(words, limit)
		require.NoError(t, err)
		wantCost, wantLines := bruteForce(words, limit)

		require.Equal(t, wantCost, p.Cost, "words=%v L=%d", words, limit)
		require.Equal(t, wantLines, p.Contents(), "words=%v L=%d", words, limit)
		assert.False(t, p.Overflow)

		for _, ln := range p.Lines {
			assert.LessOrEqual(t, ln.Width, limit)
			assert.NotEmpty(t, ln.Content)
		}
		last := p.Lines[len(p.Lines)-1]
		assert.Equal(t, p.Tail, last.End-last.Start+1)
		assert.Equal(t, n-1, last.End)

		for _, tr := range p.Trials {
			assert.LessOrEqual(t, p.Cost, tr.Cost)
		}
	}
}

func bruteForce(words []string, limit int) (int, []string) {
	n := len(words)
	fits := func(ws []string) bool { return len(strings.Join(ws, " ")) <= limit }

	bestCost := -1
	var best []string
	for last := 1; last <= n; last++ {
		if last > 1 && !fits(words[n-last:]) {
			continue
		}
		cost, lines := bestPartition(words[:n-last], limit)
		if bestCost < 0 || cost < bestCost {
			bestCost = cost
			best = append(lines, strings.Join(words[n-last:], " "))
		}
	}
	return bestCost, best
}

func bestPartition(words []string, limit int) (int, []string) {
	if len(words) == 0 {
		return 0, nil
	}
	bestCost := -1
	var best []string
	for l := 1; l <= len(words); l++ {
		line := strings.Join(words[:l], " ")
		if len(line) > limit {
			break
		}
		rest, restLines := bestPartition(words[l:], limit)
		slack := limit - len(line)
		if c := slack*slack + rest; bestCost < 0 || c < bestCost {
			bestCost = c
			best = append([]string{line}, restLines...)
		}
	}
	return bestCost, best
}
