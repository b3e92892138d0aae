package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreedyFillsLines(t *testing.T) {
	p, err := Greedy(strings.Fields("aaa bb cc dddd e"), 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"aaa bb cc", "dddd e"}, p.Contents())
	assert.Equal(t, 1, p.Cost)
	assert.Equal(t, 2, p.Tail)
	assert.False(t, p.Overflow)
}

func TestGreedyKeepsHyphenatedWords(t *testing.T) {
	p, err := Greedy([]string{"well-known", "fact"}, 6)
	require.NoError(t, err)

	assert.Equal(t, []string{"well-known", "fact"}, p.Contents())
	assert.True(t, p.Overflow)
}

// TestOptimalNeverWorseThanGreedy 贪心结果本身就是一个合法分行，最优代价不可能更大。
func TestOptimalNeverWorseThanGreedy(t *testing.T) {
	text := "Call me Ishmael. Some years ago never mind how long precisely having little or no money in my purse, and nothing particular to interest me on shore, I thought I would sail about a little and see the watery part of the world."
	words := strings.Fields(text)
	for _, limit := range []int{12, 20, 31, 45, 60} {
		opt, err := Solve(words, limit)
		require.NoError(t, err)
		greedy, err := Greedy(words, limit)
		require.NoError(t, err)

		assert.LessOrEqual(t, opt.Cost, greedy.Cost, "L=%d", limit)
		assert.Equal(t, strings.Join(words, " "), strings.Join(greedy.Contents(), " "))
		assert.Equal(t, strings.Join(words, " "), strings.Join(opt.Contents(), " "))
	}
}
