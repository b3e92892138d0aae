package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// data 为空或路径不存在时保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if val, ok := Lookup(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// InterpolateWords 对每个单词做插值，并按空白重新切分：
// 插值结果含空格时会变成多个单词，结果为空串时该单词被移除。
func InterpolateWords(words []string, data any) []string {
	if data == nil {
		return words
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, strings.Fields(Interpolate(w, data))...)
	}
	return out
}

// Lookup 按 a.b[0].c 形式的路径在 JSON 解码后的数据中取值。
func Lookup(data any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	current := data
	for _, step := range splitPath(path) {
		switch c := current.(type) {
		case map[string]any:
			if step.index {
				return nil, false
			}
			v, ok := c[step.key]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			if !step.index {
				return nil, false
			}
			i, err := strconv.Atoi(step.key)
			if err != nil || i < 0 || i >= len(c) {
				return nil, false
			}
			current = c[i]
		default:
			return nil, false
		}
	}
	return current, true
}

type pathStep struct {
	key   string
	index bool
}

// splitPath 把 "items[1].name" 拆成 items、[1]、name 三步。
func splitPath(path string) []pathStep {
	var steps []pathStep
	for _, seg := range strings.Split(path, ".") {
		name, rest, _ := strings.Cut(seg, "[")
		if name != "" {
			steps = append(steps, pathStep{key: name})
		}
		for rest != "" {
			idx, tail, ok := strings.Cut(rest, "]")
			if !ok {
				break
			}
			steps = append(steps, pathStep{key: idx, index: true})
			rest = strings.TrimPrefix(tail, "[")
		}
	}
	return steps
}
