package layout

import (
	"fmt"
	"log"
	"strings"
)

// Strategy 选择断行算法。
type Strategy string

const (
	StrategyOptimal Strategy = "optimal" // 最小 raggedness 动态规划（默认）
	StrategyGreedy  Strategy = "greedy"  // 贪心填充，作为对照
)

// ParseStrategy 解析策略名称，空字符串视为 optimal。
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", StrategyOptimal:
		return StrategyOptimal, nil
	case StrategyGreedy:
		return StrategyGreedy, nil
	default:
		return "", fmt.Errorf("layout: 未知的断行策略 %q", name)
	}
}

// BuildOptions 配置整批排版。
type BuildOptions struct {
	Strategy Strategy
	Logger   *log.Logger // 为空时不输出警告
	Debug    DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	Trials   bool // 保留每个末行长度的尝试代价
	Baseline bool // 附带贪心换行的基线代价
}
